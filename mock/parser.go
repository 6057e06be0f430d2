package mock

import "github.com/fwojciec/modwiki"

var _ modwiki.MemberParser = (*MemberParser)(nil)

// MemberParser is a mock implementation of modwiki.MemberParser.
type MemberParser struct {
	ParseMembersFn func(body string) ([]string, error)
}

func (p *MemberParser) ParseMembers(body string) ([]string, error) {
	return p.ParseMembersFn(body)
}

var _ modwiki.ModParser = (*ModParser)(nil)

// ModParser is a mock implementation of modwiki.ModParser.
type ModParser struct {
	ParseModFn func(html string, fallbackName string) (*modwiki.ModFields, error)
}

func (p *ModParser) ParseMod(html string, fallbackName string) (*modwiki.ModFields, error) {
	return p.ParseModFn(html, fallbackName)
}
