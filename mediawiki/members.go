// Package mediawiki decodes responses of the MediaWiki action API.
package mediawiki

import (
	"encoding/json"

	"github.com/fwojciec/modwiki"
)

var _ modwiki.MemberParser = (*MemberParser)(nil)

// MemberParser decodes list=categorymembers responses in JSON format.
type MemberParser struct{}

// NewMemberParser creates a new MemberParser.
func NewMemberParser() *MemberParser {
	return &MemberParser{}
}

type membersResponse struct {
	Query *struct {
		CategoryMembers []struct {
			PageID int    `json:"pageid"`
			NS     int    `json:"ns"`
			Title  string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// ParseMembers returns the content page titles listed in body.
func (p *MemberParser) ParseMembers(body string) ([]string, error) {
	var resp membersResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, modwiki.Errorf(modwiki.EPARSE, "decode category members: %v", err)
	}
	if resp.Error != nil {
		return nil, modwiki.Errorf(modwiki.EPARSE, "category members: api error %s: %s", resp.Error.Code, resp.Error.Info)
	}

	names := []string{}
	if resp.Query == nil {
		return names, nil
	}
	for _, cm := range resp.Query.CategoryMembers {
		if modwiki.IsContentTitle(cm.Title) {
			names = append(names, cm.Title)
		}
	}
	return names, nil
}
