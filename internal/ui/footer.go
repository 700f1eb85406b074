package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint is a key hint for the footer bar. These are shorter than the
// KeyMap help text.
type footerHint struct {
	key  string
	desc string
}

// Global footer hints, always shown.
var globalFooterHints = []footerHint{
	{"/", "Search"},
	{"⏎", "Detail"},
	{"?", "Help"},
	{"q", "Quit"},
}

var reviewFooterHints = []footerHint{
	{"y/n", "Review"},
	{"␣", "Select"},
	{"Y/N", "Bulk"},
	{"f", "Filter"},
	{"s", "Sort"},
	{"←→", "Page"},
}

var detailsFooterHints = []footerHint{
	{"↑↓", "Scroll"},
	{"1/2", "Sections"},
	{"⇥", "Focus"},
}

var knowledgeFooterHints = []footerHint{
	{"↑↓", "Move"},
	{"u", "Upload"},
	{"d", "Delete"},
	{"i", "Indexing"},
	{"r", "Reload"},
	{"esc", "Back"},
	{"?", "Help"},
	{"q", "Quit"},
}

var searchFooterHints = []footerHint{
	{"⏎", "Apply"},
	{"esc", "Clear"},
}

// renderFooter renders the footer bar with pill-style key hints.
func (m *App) renderFooter() string {
	var hints []footerHint
	global := len(globalFooterHints)
	switch {
	case m.searching:
		hints = searchFooterHints
		global = len(hints)
	case m.screen == ScreenKnowledge:
		hints = knowledgeFooterHints
		global = len(hints)
	case m.focus == FocusDetails:
		hints = append(append(hints, detailsFooterHints...), globalFooterHints...)
	default:
		hints = append(append(hints, reviewFooterHints...), globalFooterHints...)
	}

	right := styleMuted().Render(m.footerContext())
	available := m.width - lipgloss.Width(right) - 4
	hints = trimHintsToFit(hints, global, available)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, "  ")
	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 2)
	return left + strings.Repeat(" ", spacing) + right
}

func (m *App) footerContext() string {
	var parts []string
	if id := m.session.BatchID(); id > 0 && m.screen == ScreenReview {
		parts = append(parts, fmt.Sprintf("Batch #%d", id))
	}
	if m.version != "" {
		parts = append(parts, "v"+strings.TrimPrefix(m.version, "v"))
	}
	return strings.Join(parts, " · ")
}

// keyPill renders a single key hint as a pill with description.
func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleMuted().Render(desc)
}

// trimHintsToFit drops hints until the bar fits. Context hints at the front
// go first; once only the trailing global hints remain they are dropped from
// the end.
func trimHintsToFit(hints []footerHint, globalCount, availableWidth int) []footerHint {
	for len(hints) > 0 && renderHintsWidth(hints) > availableWidth {
		if len(hints) > globalCount {
			hints = hints[1:]
		} else {
			hints = hints[:len(hints)-1]
		}
	}
	return hints
}

func renderHintsWidth(hints []footerHint) int {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return lipgloss.Width(strings.Join(parts, "  "))
}
