package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/modwiki"
	"github.com/fwojciec/modwiki/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure ModParser implements modwiki.ModParser at compile time.
var _ modwiki.ModParser = (*goquery.ModParser)(nil)

const modPage = `<!DOCTYPE html>
<html>
<head><title>Cryptid - Balatro Mods Wiki</title><style>.infobox{}</style></head>
<body>
<h1 id="firstHeading" class="firstHeading">Cryptid</h1>
<div class="mw-parser-output">
<table class="infobox">
	<tr><th colspan="2">Cryptid</th></tr>
	<tr><th>Author</th><td><a href="/wiki/User:MathIsFun">MathIsFun_</a></td></tr>
	<tr><th>Version</th><td>0.5.2</td></tr>
	<tr><th>Dependencies</th><td><ul><li>Steamodded</li><li>Talisman</li></ul></td></tr>
	<tr><th>Source</th><td><a href="https://github.com/MathIsFun0/Cryptid">GitHub</a></td></tr>
</table>
<p>Cryptid is a content mod that adds many powerful <a href="/wiki/Jokers">Jokers</a> to the game.</p>
<p>See also</p>
<p>It also ships new consumables, decks and a harder difficulty mode.</p>
<ul>
	<li>Adds over 100 new Jokers</li>
	<li>Short</li>
</ul>
</div>
</body>
</html>`

func TestModParser_ParseMod(t *testing.T) {
	t.Parallel()

	t.Run("extracts all fields", func(t *testing.T) {
		t.Parallel()

		fields, err := goquery.NewModParser().ParseMod(modPage, "Cryptid_lookup")

		require.NoError(t, err)
		assert.Equal(t, "Cryptid", fields.Name)
		assert.Equal(t, "MathIsFun_", fields.Author)
		assert.Equal(t, "0.5.2", fields.Version)
		assert.Equal(t, "https://github.com/MathIsFun0/Cryptid", fields.RepositoryURL)
		assert.Equal(t, []string{"Steamodded", "Talisman"}, fields.Dependencies)
		assert.Equal(t,
			"Cryptid is a content mod that adds many powerful Jokers to the game. "+
				"It also ships new consumables, decks and a harder difficulty mode. "+
				"Adds over 100 new Jokers",
			fields.Description)
	})

	t.Run("falls back to lookup name", func(t *testing.T) {
		t.Parallel()

		fields, err := goquery.NewModParser().ParseMod(`<html><body></body></html>`, "Foo Mod")

		require.NoError(t, err)
		assert.Equal(t, "Foo Mod", fields.Name)
		assert.Equal(t, "No description available", fields.Description)
		assert.Empty(t, fields.Author)
		assert.Empty(t, fields.RepositoryURL)
		assert.NotNil(t, fields.Dependencies)
	})

	t.Run("infobox description leads paragraphs and features", func(t *testing.T) {
		t.Parallel()

		page := `<h1 class="firstHeading">Foo</h1>
<div class="mw-parser-output">
<table class="infobox"><tr><td>Description</td><td>A tidy quality of life mod.</td></tr></table>
<p>This paragraph is long enough to be used as a description.</p>
<ul><li>Adds a sorting button to the shop</li></ul>
</div>`

		fields, err := goquery.NewModParser().ParseMod(page, "Foo")

		require.NoError(t, err)
		assert.Equal(t,
			"A tidy quality of life mod. "+
				"This paragraph is long enough to be used as a description. "+
				"Adds a sorting button to the shop",
			fields.Description)
	})

	t.Run("infobox description counts toward the paragraph cap", func(t *testing.T) {
		t.Parallel()

		page := `<div class="mw-parser-output">
<table class="infobox"><tr><td>Description</td><td>A tidy quality of life mod.</td></tr></table>
<p>First paragraph with enough text.</p>
<p>Second paragraph with enough text.</p>
<p>Third paragraph with enough text.</p>
</div>`

		fields, err := goquery.NewModParser().ParseMod(page, "Foo")

		require.NoError(t, err)
		assert.Equal(t,
			"A tidy quality of life mod. First paragraph with enough text. Second paragraph with enough text.",
			fields.Description)
	})

	t.Run("infobox description that is a link is skipped", func(t *testing.T) {
		t.Parallel()

		page := `<div class="mw-parser-output">
<table class="infobox"><tr><td>Description</td><td>https://example.com/readme</td></tr></table>
<p>This paragraph is long enough to be used as a description.</p>
</div>`

		fields, err := goquery.NewModParser().ParseMod(page, "Foo")

		require.NoError(t, err)
		assert.Equal(t, "This paragraph is long enough to be used as a description.", fields.Description)
	})

	t.Run("skips boilerplate paragraphs", func(t *testing.T) {
		t.Parallel()

		page := `<div class="mw-parser-output">
<p>This article is a stub. You can help by expanding it.</p>
<p>For other uses see the disambiguation page here.</p>
<p>2.1 Installation steps for the mod loader</p>
<p>A real description of what the mod does.</p>
</div>`

		fields, err := goquery.NewModParser().ParseMod(page, "Foo")

		require.NoError(t, err)
		assert.Equal(t, "A real description of what the mod does.", fields.Description)
	})

	t.Run("takes at most three paragraphs", func(t *testing.T) {
		t.Parallel()

		page := `<div class="mw-parser-output">
<p>First paragraph with enough text.</p>
<p>Second paragraph with enough text.</p>
<p>Third paragraph with enough text.</p>
<p>Fourth paragraph with enough text.</p>
</div>`

		fields, err := goquery.NewModParser().ParseMod(page, "Foo")

		require.NoError(t, err)
		assert.NotContains(t, fields.Description, "Fourth")
		assert.Contains(t, fields.Description, "Third")
	})

	t.Run("feature list items need a keyword", func(t *testing.T) {
		t.Parallel()

		page := `<div class="mw-parser-output"><ul>
<li>Works with every deck in the game</li>
<li>Includes a new boss blind set</li>
<li>Features custom music tracks</li>
<li>Adds a third thing nobody reads</li>
</ul></div>`

		fields, err := goquery.NewModParser().ParseMod(page, "Foo")

		require.NoError(t, err)
		assert.Equal(t, "Includes a new boss blind set Features custom music tracks", fields.Description)
	})

	t.Run("falls back to first content block", func(t *testing.T) {
		t.Parallel()

		page := `<div class="mw-parser-output">
<div>Navigation: Main page</div>
<div>A block of generic text describing this mod at length.</div>
</div>`

		fields, err := goquery.NewModParser().ParseMod(page, "Foo")

		require.NoError(t, err)
		assert.Equal(t, "A block of generic text describing this mod at length.", fields.Description)
	})

	t.Run("cleans links and markup from text", func(t *testing.T) {
		t.Parallel()

		page := `<div class="mw-parser-output">
<p>Download from https://gamebanana.com/mods/1 the [[best]] {{mod}} ever made ()</p>
</div>`

		fields, err := goquery.NewModParser().ParseMod(page, "Foo")

		require.NoError(t, err)
		assert.Equal(t, "Download from the best mod ever made", fields.Description)
	})

	t.Run("truncates long descriptions", func(t *testing.T) {
		t.Parallel()

		page := `<div class="mw-parser-output"><p>` + strings.Repeat("joker ", 200) + `</p></div>`

		fields, err := goquery.NewModParser().ParseMod(page, "Foo")

		require.NoError(t, err)
		assert.Equal(t, modwiki.MaxDescriptionLength, modwiki.Len(fields.Description))
		assert.True(t, strings.HasSuffix(fields.Description, modwiki.Ellipsis))
	})

	t.Run("custom repository host", func(t *testing.T) {
		t.Parallel()

		page := `<a href="https://github.com/a/b">gh</a><a href="https://codeberg.org/a/b">cb</a>`

		fields, err := goquery.NewModParser("codeberg.org").ParseMod(page, "Foo")

		require.NoError(t, err)
		assert.Equal(t, "https://codeberg.org/a/b", fields.RepositoryURL)
	})

	t.Run("dependencies split on commas", func(t *testing.T) {
		t.Parallel()

		page := `<table class="infobox"><tr><th>Requires</th><td>Steamodded, Talisman,<br>Lovely</td></tr></table>`

		fields, err := goquery.NewModParser().ParseMod(page, "Foo")

		require.NoError(t, err)
		assert.Equal(t, []string{"Steamodded", "Talisman", "Lovely"}, fields.Dependencies)
	})
}

func TestModParser_CustomPolicy(t *testing.T) {
	t.Parallel()

	policy := goquery.DefaultPolicy()
	policy.Stages = []goquery.Stage{{
		{Name: "lead", Selector: "p.lead", Limit: 1},
	}}
	policy.Placeholder = "n/a"

	parser := goquery.NewModParserWithPolicy(policy)

	fields, err := parser.ParseMod(`<p>ignored paragraph text here</p><p class="lead">The lead paragraph.</p>`, "Foo")
	require.NoError(t, err)
	assert.Equal(t, "The lead paragraph.", fields.Description)

	fields, err = parser.ParseMod(`<p>nothing</p>`, "Foo")
	require.NoError(t, err)
	assert.Equal(t, "n/a", fields.Description)
}
