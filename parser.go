package modwiki

import "strings"

// MemberParser extracts mod names from a category listing response.
type MemberParser interface {
	// ParseMembers returns the content page titles in the listing.
	// A response without a member section yields an empty slice.
	// Returns EPARSE if the body cannot be decoded.
	ParseMembers(body string) ([]string, error)
}

// ModParser extracts structured fields from a mod page.
type ModParser interface {
	// ParseMod parses the page HTML. fallbackName is used as the mod name
	// when the page carries no title of its own.
	ParseMod(html string, fallbackName string) (*ModFields, error)
}

// nonContentNamespaces lists wiki namespaces that never hold mod pages.
var nonContentNamespaces = map[string]bool{
	"category":  true,
	"file":      true,
	"image":     true,
	"template":  true,
	"user":      true,
	"talk":      true,
	"help":      true,
	"mediawiki": true,
	"module":    true,
	"special":   true,
	"project":   true,
	"meta":      true,
}

// IsContentTitle reports whether a page title belongs to the main
// namespace. Titles prefixed with a meta namespace ("Category:",
// "File:", "Template talk:", ...) are not content.
func IsContentTitle(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	prefix, _, ok := strings.Cut(title, ":")
	if !ok {
		return true
	}
	ns := strings.ToLower(strings.TrimSpace(prefix))
	ns = strings.TrimSuffix(ns, " talk")
	return !nonContentNamespaces[ns]
}
