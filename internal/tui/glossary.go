package tui

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/glossview/internal/glossary"
)

type glossaryState struct {
	loading string
	terms   []glossary.Term
	errText string
	offset  int
	filter  string
	editing bool
}

// filterTerms keeps the terms whose name or description contains query, or whose name is
// within two edits of it. Order is preserved.
func filterTerms(terms []glossary.Term, query string) []glossary.Term {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return terms
	}
	out := make([]glossary.Term, 0, len(terms))
	for _, t := range terms {
		name := strings.ToLower(t.Name)
		switch {
		case strings.Contains(name, q), strings.Contains(strings.ToLower(t.Description), q):
			out = append(out, t)
		case len([]rune(q)) >= 3 && levenshtein.ComputeDistance(q, name) <= 2:
			out = append(out, t)
		}
	}
	return out
}

// renderCards draws one bordered card per term, heading first then description.
func renderCards(terms []glossary.Term, width int) []string {
	w := max(width-2, 12)
	var lines []string
	for _, t := range terms {
		body := termNameStyle.Render(t.Name) + "\n" + descStyle.Render(t.Description)
		card := cardStyle.Width(w).Render(body)
		lines = append(lines, strings.Split(card, "\n")...)
	}
	return lines
}

func (a *App) glossaryLines() []string {
	g := a.glossary
	switch {
	case g.loading != "":
		return []string{dimStyle.Render(g.loading)}
	case g.errText != "":
		return []string{errorStyle.Render(g.errText)}
	}
	var head []string
	shown := filterTerms(g.terms, g.filter)
	if g.editing || g.filter != "" {
		prompt := "/" + g.filter
		if g.editing {
			prompt += "█"
		}
		head = append(head, prompt+dimStyle.Render(fmt.Sprintf("  %d of %d", len(shown), len(g.terms))))
	}
	return append(head, renderCards(shown, a.width)...)
}

func (a *App) scrollGlossary(delta int) {
	limit := max(len(a.glossaryLines())-a.bodyHeight(), 0)
	a.glossary.offset = clamp(a.glossary.offset+delta, 0, limit)
}

func (a *App) renderGlossary() string {
	lines := a.glossaryLines()
	h := a.bodyHeight()
	start := clamp(a.glossary.offset, 0, max(len(lines)-h, 0))
	end := min(start+h, len(lines))
	return strings.Join(lines[start:end], "\n")
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
