package modwiki

import (
	"net/url"
	"strconv"
	"strings"
)

// Listing formats understood by the MediaWiki API.
const (
	ListingJSON = "json"
	ListingXML  = "xml"
)

// Wiki describes where category listings and mod pages are published.
type Wiki struct {
	BaseURL string

	// ListingFormat selects the API response format, ListingJSON or ListingXML.
	ListingFormat string

	// MemberLimit caps the number of members requested per category.
	MemberLimit int
}

// CategoryURL returns the API address listing the members of a category.
func (w Wiki) CategoryURL(key string) string {
	format := w.ListingFormat
	if format == "" {
		format = ListingJSON
	}
	limit := w.MemberLimit
	if limit <= 0 {
		limit = DefaultMemberLimit
	}

	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "categorymembers")
	q.Set("cmtitle", "Category:"+key)
	q.Set("format", format)
	q.Set("cmlimit", strconv.Itoa(limit))
	return strings.TrimRight(w.BaseURL, "/") + "/w/api.php?" + q.Encode()
}

// PageURL returns the address of a mod's wiki page.
func (w Wiki) PageURL(name string) string {
	title := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	// Subpage separators stay literal.
	segments := strings.Split(title, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(w.BaseURL, "/") + "/wiki/" + strings.Join(segments, "/")
}
