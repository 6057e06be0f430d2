package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/modwiki"
)

// Strategy selects candidate description blocks from a page.
type Strategy struct {
	// Name identifies the strategy in tests and debug output.
	Name string

	// Selector picks candidate elements.
	Selector string

	// Extract returns the raw text of a candidate. Nil means all text
	// nodes of the element joined by spaces.
	Extract func(*goquery.Selection) string

	// Qualify reports whether cleaned candidate text is usable.
	Qualify func(string) bool

	// Limit caps the number of accepted candidates. Zero means no cap.
	Limit int

	// SharedLimit makes Limit count the texts already accepted by earlier
	// strategies of the same stage.
	SharedLimit bool
}

// Stage is a group of strategies whose results are joined together.
type Stage []Strategy

// Policy declares how a mod page is turned into fields.
type Policy struct {
	TitleSelector      string
	InfoboxRowSelector string
	RepositoryHosts    []string

	// Stages are tried in order. The first stage whose joined text is
	// longer than MinLength characters becomes the description.
	Stages    []Stage
	MinLength int

	MaxLength   int
	Placeholder string
}

// DefaultPolicy returns the description policy for MediaWiki mod pages.
func DefaultPolicy() Policy {
	return Policy{
		TitleSelector:      "h1.firstHeading",
		InfoboxRowSelector: ".infobox tr",
		RepositoryHosts:    []string{"github.com"},
		Stages: []Stage{
			{InfoboxDescription, BodyParagraphs, FeatureListItems},
			{ContentBlocks},
		},
		MinLength:   10,
		MaxLength:   modwiki.MaxDescriptionLength,
		Placeholder: "No description available",
	}
}

// InfoboxDescription takes the infobox "description" cell unless it is a
// bare link.
var InfoboxDescription = Strategy{
	Name:     "infobox",
	Selector: ".infobox tr",
	Extract: func(row *goquery.Selection) string {
		header, value, ok := infoboxCells(row)
		if !ok || !strings.Contains(header, "description") {
			return ""
		}
		return nodeText(value)
	},
	Qualify: func(s string) bool {
		return modwiki.Len(s) > 10 && !isLink(s, codeHosts)
	},
	Limit: 1,
}

// BodyParagraphs takes top-level article paragraphs that are not wiki
// boilerplate. An infobox description counts toward its limit.
var BodyParagraphs = Strategy{
	Name:     "paragraphs",
	Selector: "div.mw-parser-output > p",
	Qualify: func(s string) bool {
		return modwiki.Len(s) > 20 &&
			!isLink(s, downloadHosts) &&
			!containsFold(s, paragraphDenyList) &&
			!containsAny(s, tocMarkers)
	},
	Limit:       3,
	SharedLimit: true,
}

// FeatureListItems takes list items describing what a mod adds.
var FeatureListItems = Strategy{
	Name:     "features",
	Selector: "div.mw-parser-output ul li",
	Qualify: func(s string) bool {
		return modwiki.Len(s) > 15 &&
			!isLink(s, codeHosts) &&
			containsFold(s, featureKeywords)
	},
	Limit: 2,
}

// ContentBlocks takes the first generic block of article text.
var ContentBlocks = Strategy{
	Name:     "content",
	Selector: "div.mw-parser-output div, div.mw-parser-output li",
	Qualify: func(s string) bool {
		return modwiki.Len(s) > 30 &&
			!isLink(s, downloadHosts) &&
			!containsFold(s, contentDenyList)
	},
	Limit: 1,
}

var featureKeywords = []string{"adds", "features", "includes", "joker"}

var (
	codeHosts     = []string{"github.com"}
	downloadHosts = []string{"github.com", "gamebanana.com", "drive.google.com"}
)

var paragraphDenyList = []string{
	"disambiguation",
	"redirect",
	"this article is a stub",
	"bibliography",
	"references",
	"external links",
	"see also",
	"categories",
	"navigation",
}

var contentDenyList = []string{
	"navigation",
	"categories",
	"this article is a stub",
}

// Table of contents numbering.
var tocMarkers = []string{"2.1", "2.2", "2.3"}

// isLink reports whether s is a URL or mentions one of hosts.
func isLink(s string, hosts []string) bool {
	return strings.HasPrefix(s, "http") || containsAny(s, hosts)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// containsFold is containsAny ignoring case. subs must be lowercase.
func containsFold(s string, subs []string) bool {
	return containsAny(strings.ToLower(s), subs)
}
