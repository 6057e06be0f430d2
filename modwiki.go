// Package modwiki provides a local, CLI-based catalog of game mods listed on
// a wiki. It fetches category listings and mod pages, caches the merged
// catalog on disk, and serves browse, search and lookup queries from the
// cached copy.
//
// This package contains domain types, interfaces and the pure parts of the
// pipeline (merging, staleness, querying). Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, prometheus/).
package modwiki
