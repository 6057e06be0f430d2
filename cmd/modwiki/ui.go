package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/modwiki"
)

// listDescriptionLength caps descriptions in browse and search listings.
const listDescriptionLength = 300

const ruleWidth = 50

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorDim    = lipgloss.Color("240")
)

// printer renders command output. Styles are bound to the writer's
// renderer, so output that is not a terminal stays plain text.
type printer struct {
	w io.Writer

	title   lipgloss.Style
	name    lipgloss.Style
	label   lipgloss.Style
	link    lipgloss.Style
	dim     lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		title:   r.NewStyle().Bold(true).Foreground(colorCyan),
		name:    r.NewStyle().Bold(true),
		label:   r.NewStyle().Foreground(colorCyan),
		link:    r.NewStyle().Foreground(colorBlue),
		dim:     r.NewStyle().Foreground(colorDim),
		success: r.NewStyle().Foreground(colorGreen),
		warning: r.NewStyle().Foreground(colorYellow),
		added:   r.NewStyle().Foreground(colorGreen),
		removed: r.NewStyle().Foreground(colorRed),
	}
}

func (p *printer) heading(format string, args ...any) {
	fmt.Fprintln(p.w, p.title.Render(fmt.Sprintf(format, args...)))
	fmt.Fprintln(p.w, p.dim.Render(strings.Repeat("─", ruleWidth)))
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) blank() {
	fmt.Fprintln(p.w)
}

func (p *printer) field(label, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.label.Render(label+":"), value)
}

// modEntry prints a mod as a listing entry. showCategory is set for search
// results, which mix categories.
func (p *printer) modEntry(mod *modwiki.Mod, showCategory bool) {
	fmt.Fprintln(p.w, p.name.Render(mod.Name))
	if showCategory {
		fmt.Fprintf(p.w, "   %s\n", p.dim.Render(mod.Category))
	}
	fmt.Fprintf(p.w, "   %s\n", modwiki.Truncate(mod.Description, listDescriptionLength))
	if mod.Author != "" {
		fmt.Fprintf(p.w, "   by %s\n", mod.Author)
	}
	if mod.RepositoryURL != "" {
		fmt.Fprintf(p.w, "   %s\n", p.link.Render(mod.RepositoryURL))
	}
	fmt.Fprintln(p.w)
}

// reportError prints err to w in the form shown to users and returns it.
func reportError(w io.Writer, err error) error {
	msg := modwiki.ErrorMessage(err)
	if modwiki.ErrorCode(err) == modwiki.EINTERNAL {
		msg = err.Error()
	}
	fmt.Fprintf(w, "error: %s\n", msg)
	if modwiki.ErrorCode(err) == modwiki.ECORRUPT {
		fmt.Fprintln(w, "Hint: run 'modwiki update' to rebuild the cache")
	}
	return err
}
