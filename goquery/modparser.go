// Package goquery implements modwiki.ModParser for server-rendered
// MediaWiki pages using github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/modwiki"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ modwiki.ModParser = (*ModParser)(nil)

// ModParser extracts mod fields from a wiki page according to a Policy.
type ModParser struct {
	policy Policy
}

// NewModParser creates a ModParser using DefaultPolicy. Non-empty hosts
// replace the repository hosts of the policy.
func NewModParser(hosts ...string) *ModParser {
	p := DefaultPolicy()
	if len(hosts) > 0 {
		p.RepositoryHosts = hosts
	}
	return NewModParserWithPolicy(p)
}

// NewModParserWithPolicy creates a ModParser using a custom Policy.
func NewModParserWithPolicy(p Policy) *ModParser {
	return &ModParser{policy: p}
}

// ParseMod parses a mod page.
func (p *ModParser) ParseMod(page string, fallbackName string) (*modwiki.ModFields, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, modwiki.Errorf(modwiki.EPARSE, "failed to parse HTML: %v", err)
	}

	fields := &modwiki.ModFields{
		Name:          p.title(doc, fallbackName),
		Description:   p.description(doc),
		RepositoryURL: p.repositoryURL(doc),
		Dependencies:  []string{},
	}

	doc.Find(p.policy.InfoboxRowSelector).Each(func(_ int, row *goquery.Selection) {
		header, value, ok := infoboxCells(row)
		if !ok {
			return
		}
		switch {
		case strings.Contains(header, "author"):
			if fields.Author == "" {
				fields.Author = modwiki.CleanText(nodeText(value))
			}
		case strings.Contains(header, "version"):
			if fields.Version == "" {
				fields.Version = modwiki.CleanText(nodeText(value))
			}
		case strings.Contains(header, "dependenc"), strings.Contains(header, "requires"):
			fields.Dependencies = append(fields.Dependencies, splitList(value)...)
		}
	})

	return fields, nil
}

func (p *ModParser) title(doc *goquery.Document, fallback string) string {
	if p.policy.TitleSelector != "" {
		if name := strings.Join(strings.Fields(doc.Find(p.policy.TitleSelector).First().Text()), " "); name != "" {
			return name
		}
	}
	return fallback
}

func (p *ModParser) repositoryURL(doc *goquery.Document) string {
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		for _, host := range p.policy.RepositoryHosts {
			if host != "" && strings.Contains(href, host) {
				found = href
				return false
			}
		}
		return true
	})
	return found
}

func (p *ModParser) description(doc *goquery.Document) string {
	for _, stage := range p.policy.Stages {
		var parts []string
		for _, s := range stage {
			prior := 0
			if s.SharedLimit {
				prior = len(parts)
			}
			parts = append(parts, collect(doc, s, prior)...)
		}
		combined := strings.Join(parts, " ")
		if modwiki.Len(combined) > p.policy.MinLength {
			return modwiki.Truncate(combined, p.policy.MaxLength)
		}
	}
	return p.policy.Placeholder
}

// collect returns the cleaned texts accepted by s, in document order.
// prior texts already count toward the limit of s.
func collect(doc *goquery.Document, s Strategy, prior int) []string {
	var out []string
	if s.Limit > 0 && prior >= s.Limit {
		return out
	}
	doc.Find(s.Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := ""
		if s.Extract != nil {
			raw = s.Extract(sel)
		} else {
			raw = nodeText(sel)
		}
		text := modwiki.CleanText(raw)
		if text == "" || (s.Qualify != nil && !s.Qualify(text)) {
			return true
		}
		out = append(out, text)
		return s.Limit == 0 || prior+len(out) < s.Limit
	})
	return out
}

// infoboxCells splits an infobox row into its lowercased header text and
// value cell. Rows without at least two cells are rejected.
func infoboxCells(row *goquery.Selection) (string, *goquery.Selection, bool) {
	cells := row.ChildrenFiltered("th, td")
	if cells.Length() < 2 {
		return "", nil, false
	}
	header := strings.ToLower(nodeText(cells.Eq(0)))
	return header, cells.Eq(1), true
}

// splitList splits a value cell into items on commas and line breaks.
func splitList(sel *goquery.Selection) []string {
	var items []string
	for _, segment := range textNodes(sel) {
		for _, part := range strings.FieldsFunc(segment, func(r rune) bool {
			return r == ',' || r == '\n'
		}) {
			if item := modwiki.CleanText(part); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}

// nodeText joins the text nodes under sel with single spaces.
func nodeText(sel *goquery.Selection) string {
	return strings.Join(textNodes(sel), " ")
}

func textNodes(sel *goquery.Selection) []string {
	var parts []string
	for _, n := range sel.Nodes {
		walkText(n, &parts)
	}
	return parts
}

func walkText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		*parts = append(*parts, n.Data)
		return
	case html.ElementNode:
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, parts)
	}
}
