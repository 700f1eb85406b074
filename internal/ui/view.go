package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"tcreview/internal/domain"
	"tcreview/internal/review"
)

const (
	headerHeight = 1
	footerHeight = 1
	// controls row, bulk row and pagination row on the review screen
	reviewChromeHeight = 3
)

// View implements tea.Model.
func (m *App) View() string {
	if !m.ready {
		return "Loading..."
	}

	var body string
	if m.screen == ScreenKnowledge {
		body = m.renderKnowledgeScreen()
	} else {
		body = m.renderReviewScreen()
	}
	base := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body)
	base = fitHeight(base, m.height-footerHeight) + "\n" + m.renderFooter()

	if m.showHelp {
		base = overlayCentered(renderHelpOverlay(m.keys), base, m.width, m.height)
	}
	base = overlayCentered(m.loader.View(), base, m.width, m.height)
	base = overlayCentered(m.dialogs.View(), base, m.width, m.height)
	base = overlayBottomRight(m.toaster.View(), base, m.width, m.height)
	return zone.Scan(base)
}

func (m *App) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m *App) paneHeight() int {
	return max(m.bodyHeight()-reviewChromeHeight, 3)
}

func (m *App) listWidth() int {
	if !m.ShowDetails {
		return max(m.width, minListWidth)
	}
	w := max(m.width*55/100, minListWidth)
	return max(min(w, m.width-minViewportWidth-2), 10)
}

func (m *App) renderHeader() string {
	title := "Test Case Review"
	if m.screen == ScreenKnowledge {
		title = "Knowledge Base"
	}
	left := styleAppHeader().Render(title)
	if m.screen == ScreenReview {
		if b := m.session.Batch(); b.Name != "" {
			left += " " + styleText().Bold(true).Render(b.Name)
		} else if id := m.session.BatchID(); id > 0 {
			left += " " + styleMuted().Render(fmt.Sprintf("batch #%d", id))
		}
	}

	right := ""
	if m.screen == ScreenReview && m.session.Loaded() {
		right = renderStats(m.session.Stats())
	} else if m.screen == ScreenKnowledge && m.knowledge.loaded {
		right = styleMuted().Render(fmt.Sprintf("%d files", len(m.knowledge.files)))
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func renderStats(s domain.Stats) string {
	t := currentTheme()
	part := func(label string, n int, color lipgloss.AdaptiveColor) string {
		return styleMuted().Render(label+" ") + lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprint(n))
	}
	return strings.Join([]string{
		part("Total", s.Total, t.Text),
		part("Reviewed", s.Reviewed, t.Info),
		part("Approved", s.Approved, t.Success),
		part("Rejected", s.Rejected, t.Error),
	}, "  ")
}

func (m *App) renderReviewScreen() string {
	view := m.session.View()
	controls := m.renderControls(view)
	bulk := renderBulkBar(view)

	listWidth := m.listWidth()
	list := stylePane(m.focus == FocusList).
		Width(max(listWidth-2, 10)).
		Height(m.paneHeight() - 2).
		Render(m.renderRows(view, max(listWidth-2, 10)))

	panes := list
	if m.ShowDetails {
		detail := stylePane(m.focus == FocusDetails).Render(m.viewport.View())
		panes = lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
	}
	return lipgloss.JoinVertical(lipgloss.Left, controls, bulk, panes, renderPagination(view))
}

func (m *App) renderControls(view review.PageView) string {
	var search string
	switch {
	case m.searching:
		search = m.searchInput.View()
	case view.Query != "":
		search = styleText().Render("/ " + view.Query)
	default:
		search = styleMuted().Render("/ search")
	}

	parts := []string{search, " "}
	for _, f := range review.Filters {
		parts = append(parts, zone.Mark(zoneFilter(f), styleControl(true, f == view.Filter).Render(f.Label())))
	}
	parts = append(parts, "  ", zone.Mark(zoneSort, styleControl(true, false).Render("Sort: "+view.Sort.Label())))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderBulkBar(view review.PageView) string {
	b := view.Buttons
	items := []string{
		zone.Mark(zoneSelectAll, styleControl(b.SelectAll, false).Render("Select page")),
		zone.Mark(zoneDeselect, styleControl(b.DeselectAll, false).Render("Deselect all")),
		zone.Mark(zoneBulkAccept, styleControl(b.Approve, false).Render("Approve selected")),
		zone.Mark(zoneBulkReject, styleControl(b.Reject, false).Render("Reject selected")),
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(items, " ")...)
	if view.Selected > 0 {
		bar += "  " + styleMuted().Render(fmt.Sprintf("%d selected", view.Selected))
	}
	return bar
}

func (m *App) renderRows(view review.PageView, width int) string {
	if !m.session.Loaded() {
		if m.session.BatchID() <= 0 {
			return styleMuted().Render("No batch selected. Press u to upload a document.")
		}
		return styleMuted().Render("Loading test cases...")
	}
	if view.Empty {
		return styleMuted().Render(view.Message)
	}

	lines := make([]string, 0, len(view.Rows))
	for i, row := range view.Rows {
		lines = append(lines, m.renderRow(i, row, width))
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderRow(index int, row review.RowView, width int) string {
	pointer := "  "
	if index == m.cursor {
		pointer = styleID().Render("▸ ")
	}
	check := zone.Mark(zoneCheck(row.ID), checkboxGlyph(row.Checked))
	id := styleID().Render(fmt.Sprintf("#%-4d", row.ID))
	status := styleStatus(row.Status).Render(fmt.Sprintf("%s %-8s", row.Status.Icon(), row.Status.Label()))

	actions := make([]string, 0, len(row.Actions))
	for _, a := range row.Actions {
		actions = append(actions, zone.Mark(zoneAction(row.ID, a), styleAction(a).Render(a.Label())))
	}
	actionBlock := strings.Join(actions, " ")

	fixed := lipgloss.Width(pointer) + lipgloss.Width(check) + lipgloss.Width(id) +
		lipgloss.Width(status) + lipgloss.Width(actionBlock) + 4
	titleWidth := max(width-fixed, 8)
	title := truncateText(row.Title, titleWidth)
	title += strings.Repeat(" ", max(titleWidth-lipgloss.Width(title), 0))
	if index == m.cursor {
		title = styleCursorRow().Render(title)
	} else {
		title = styleText().Render(title)
	}

	return pointer + check + " " + id + " " + zone.Mark(zoneRow(index), title) + " " + status + " " + actionBlock
}

func renderPagination(view review.PageView) string {
	p := view.Pagination
	if p == nil {
		if view.Empty {
			return ""
		}
		return styleMuted().Render(fmt.Sprintf("%d test cases", len(view.Rows)))
	}

	parts := []string{zone.Mark(zonePrevPage, styleControl(p.PrevEnabled, false).Render("‹ Prev"))}
	for _, page := range p.Pages {
		parts = append(parts, zone.Mark(zonePage(page), styleControl(true, page == p.Page).Render(fmt.Sprint(page))))
	}
	parts = append(parts, zone.Mark(zoneNextPage, styleControl(p.NextEnabled, false).Render("Next ›")))
	bar := lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(parts, " ")...)
	return bar + "  " + styleMuted().Render(fmt.Sprintf("Page %d of %d", p.Page, p.TotalPages))
}

func (m *App) renderKnowledgeScreen() string {
	height := m.bodyHeight() - 2
	content := m.renderKnowledge(m.width-2, height)
	return stylePane(true).Width(max(m.width-2, 10)).Height(max(height, 1)).Render(content)
}

// fitHeight pads or cuts s to exactly height lines.
func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
