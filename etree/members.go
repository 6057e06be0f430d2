// Package etree decodes XML responses of the MediaWiki action API using
// github.com/beevik/etree.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/modwiki"
)

var _ modwiki.MemberParser = (*MemberParser)(nil)

// MemberParser decodes list=categorymembers responses in XML format.
type MemberParser struct{}

// NewMemberParser creates a new MemberParser.
func NewMemberParser() *MemberParser {
	return &MemberParser{}
}

// ParseMembers returns the content page titles listed in body.
func (p *MemberParser) ParseMembers(body string) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, modwiki.Errorf(modwiki.EPARSE, "decode category members: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "api" {
		return nil, modwiki.Errorf(modwiki.EPARSE, "decode category members: missing api element")
	}
	if apiErr := root.SelectElement("error"); apiErr != nil {
		return nil, modwiki.Errorf(modwiki.EPARSE, "category members: api error %s: %s",
			apiErr.SelectAttrValue("code", ""), apiErr.SelectAttrValue("info", ""))
	}

	names := []string{}
	for _, cm := range root.FindElements("./query/categorymembers/cm") {
		title := strings.TrimSpace(cm.SelectAttrValue("title", ""))
		if modwiki.IsContentTitle(title) {
			names = append(names, title)
		}
	}
	return names, nil
}
