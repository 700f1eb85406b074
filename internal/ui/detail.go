package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"tcreview/internal/review"
	"tcreview/internal/ui/theme"
)

// markdownCache keeps one glamour renderer per width, format and theme.
// Building a renderer is far more expensive than rendering with one.
type markdownCache struct {
	width  int
	format string
	theme  string
	render func(string) string
}

func (c *markdownCache) get(format string, width int) func(string) string {
	name := theme.CurrentName()
	if c.render == nil || c.width != width || c.format != format || c.theme != name {
		c.width, c.format, c.theme = width, format, name
		c.render = buildMarkdownRenderer(format, width)
	}
	return c.render
}

// detailDimensions returns the viewport size for the detail pane.
func (m *App) detailDimensions() (int, int) {
	listWidth := m.listWidth()
	w := max(m.width-listWidth-2, minViewportWidth)
	h := max(m.paneHeight()-2, minViewportHeight)
	return w, h
}

// refreshDetail re-renders the detail pane for the row under the cursor.
// It is a no-op while the pane is hidden.
func (m *App) refreshDetail() {
	if !m.ShowDetails || !m.ready {
		return
	}
	w, h := m.detailDimensions()
	m.viewport.Width = w
	m.viewport.Height = h

	tc, ok := m.currentRow()
	if !ok {
		m.detailID = 0
		m.viewport.SetContent(styleMuted().Render(review.NoResultsMessage))
		return
	}
	if tc.ID != m.detailID {
		m.viewport.GotoTop()
	}
	m.detailID = tc.ID

	var row review.RowView
	for _, r := range m.session.View().Rows {
		if r.ID == tc.ID {
			row = r
			break
		}
	}
	m.viewport.SetContent(m.renderDetail(row, w))
}

func (m *App) renderDetail(row review.RowView, width int) string {
	render := m.markdown.get(m.outputFormat, max(width-2, 10))

	title := styleID().Render(fmt.Sprintf("#%d", row.ID)) + " " +
		styleSectionHeader().Render(wordwrap.String(row.Title, max(width-8, 10)))

	makeRow := func(k, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Left, styleField().Render(k), v)
	}
	meta := []string{
		makeRow("Status:", styleStatus(row.Status).Render(row.Status.Icon()+" "+row.Status.Label())),
		makeRow("Selected:", checkboxGlyph(row.Checked)),
	}
	if name := m.session.Batch().Name; name != "" {
		meta = append(meta, makeRow("Batch:", styleText().Render(name)))
	}

	sections := []string{
		title,
		strings.Join(meta, "\n"),
		renderContentSection("Description", render(row.Description)),
		renderContentSection("Preconditions", render(row.Preconditions)),
		renderCollapsible("Steps", "1", m.showSteps, row.Steps, render),
		renderCollapsible("Expected results", "2", m.showExpect, row.ExpectedResults, render),
	}
	return joinDetailSections(sections...)
}

// renderCollapsible renders a section that shows only its header until
// expanded.
func renderCollapsible(label, toggleKey string, expanded bool, body string, render func(string) string) string {
	if !expanded {
		header := styleSectionHeader().Render("▸ " + label)
		return header + " " + styleMuted().Render("("+toggleKey+" to expand)")
	}
	header := styleSectionHeader().Render("▾ "+label) + " " + styleMuted().Render("("+toggleKey+" to collapse)")
	if strings.TrimSpace(body) == "" {
		return header + "\n" + styleMuted().Render("none")
	}
	return header + "\n" + normalizeSectionBody(render(body))
}

func renderContentSection(label, body string) string {
	return styleSectionHeader().Render(label) + "\n" + normalizeSectionBody(body)
}

func normalizeSectionBody(body string) string {
	body = strings.TrimRight(body, "\r\n")
	return trimLeadingWhitespaceLines(body)
}

func joinDetailSections(sections ...string) string {
	cleaned := make([]string, 0, len(sections))
	for _, section := range sections {
		if strings.TrimSpace(section) == "" {
			continue
		}
		cleaned = append(cleaned, strings.Trim(section, "\n\r"))
	}
	return strings.Join(cleaned, "\n\n")
}

// trimLeadingWhitespaceLines drops the blank lines glamour puts above a
// rendered block, including ones that only carry styling.
func trimLeadingWhitespaceLines(body string) string {
	lines := strings.Split(strings.TrimLeft(body, "\r\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[0])) == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

func checkboxGlyph(checked bool) string {
	if checked {
		return styleCheckbox(true).Render("[✓]")
	}
	return styleCheckbox(false).Render("[ ]")
}
