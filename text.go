package modwiki

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// MaxDescriptionLength is the maximum length of a stored description,
// counted in characters.
const MaxDescriptionLength = 500

// markupArtifacts are wiki markup fragments left behind in rendered text.
var markupArtifacts = strings.NewReplacer("[[", "", "]]", "", "{{", "", "}}", "", "()", "")

// CleanText collapses whitespace, drops bare links and strips leftover
// wiki markup from extracted page text.
func CleanText(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if isLinkWord(w) {
			continue
		}
		kept = append(kept, w)
	}
	out := markupArtifacts.Replace(strings.Join(kept, " "))
	for strings.Contains(out, "  ") {
		out = strings.ReplaceAll(out, "  ", " ")
	}
	return strings.TrimSpace(out)
}

func isLinkWord(w string) bool {
	return strings.HasPrefix(w, "http") ||
		strings.Contains(w, "github.com") ||
		strings.Contains(w, "gamebanana.com")
}

// Len returns the number of user-perceived characters in s.
func Len(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Truncate shortens s to at most max characters, replacing the tail with
// Ellipsis when anything is cut. Characters are grapheme clusters, so
// multi-byte glyphs are never split.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if Len(s) <= max {
		return s
	}
	if max <= len(Ellipsis) {
		return Ellipsis[:max]
	}

	keep := max - len(Ellipsis)
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < keep && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	b.WriteString(Ellipsis)
	return b.String()
}
