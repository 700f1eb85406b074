package ui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"tcreview/internal/domain"
	"tcreview/internal/review"
)

var zoneOnce sync.Once

// InitZones starts the global bubblezone manager every view marks its mouse
// targets with. It must run before the first View; repeat calls are no-ops.
func InitZones() {
	zoneOnce.Do(func() { zone.NewGlobal() })
}

const (
	zonePrevPage   = "page:prev"
	zoneNextPage   = "page:next"
	zoneSort       = "sort"
	zoneSelectAll  = "bulk:select"
	zoneDeselect   = "bulk:deselect"
	zoneBulkAccept = "bulk:approve"
	zoneBulkReject = "bulk:reject"
)

func zoneRow(index int) string                  { return fmt.Sprintf("row:%d", index) }
func zoneCheck(id int) string                   { return fmt.Sprintf("check:%d", id) }
func zoneAction(id int, a domain.Action) string { return fmt.Sprintf("act:%d:%s", id, a) }
func zonePage(page int) string                  { return fmt.Sprintf("page:%d", page) }
func zoneFilter(f review.Filter) string         { return "filter:" + string(f) }
func zoneKnowledgeRow(index int) string         { return fmt.Sprintf("kb:%d", index) }
func zoneKnowledgeDelete(index int) string      { return fmt.Sprintf("kb:%d:delete", index) }

func inZone(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

func clicked(msg tea.MouseMsg) bool {
	return msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease
}

func wheelDelta(msg tea.MouseMsg) (int, bool) {
	if msg.Action != tea.MouseActionPress {
		return 0, false
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return -1, true
	case tea.MouseButtonWheelDown:
		return 1, true
	}
	return 0, false
}

func (m *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp {
		if clicked(msg) {
			m.showHelp = false
		}
		return nil
	}
	if delta, ok := wheelDelta(msg); ok {
		if m.screen == ScreenKnowledge {
			m.knowledge.move(delta)
			return nil
		}
		if m.focus == FocusDetails {
			if delta < 0 {
				m.viewport.ScrollUp(1)
			} else {
				m.viewport.ScrollDown(1)
			}
			return nil
		}
		m.moveCursor(delta)
		return nil
	}
	if !clicked(msg) {
		return nil
	}
	if m.screen == ScreenKnowledge {
		return m.handleKnowledgeClick(msg)
	}
	return m.handleReviewClick(msg)
}

func (m *App) handleReviewClick(msg tea.MouseMsg) tea.Cmd {
	rows := m.session.PageRecords()
	for i, tc := range rows {
		if inZone(zoneCheck(tc.ID), msg) {
			m.cursor = i
			m.session.Selection().Toggle(tc.ID)
			return nil
		}
		for _, a := range tc.Actions() {
			if inZone(zoneAction(tc.ID, a), msg) {
				m.cursor = i
				return m.startReview(tc.ID, a)
			}
		}
	}
	for i := range rows {
		if inZone(zoneRow(i), msg) {
			m.cursor = i
			m.focus = FocusList
			m.refreshDetail()
			return nil
		}
	}

	buttons := m.session.Buttons()
	switch {
	case inZone(zoneSelectAll, msg):
		if buttons.SelectAll {
			m.session.SelectAll()
		}
		return nil
	case inZone(zoneDeselect, msg):
		if buttons.DeselectAll {
			m.session.DeselectAll()
		}
		return nil
	case inZone(zoneBulkAccept, msg):
		if buttons.Approve {
			return m.confirmBulk(domain.ActionApprove)
		}
		return nil
	case inZone(zoneBulkReject, msg):
		if buttons.Reject {
			return m.confirmBulk(domain.ActionReject)
		}
		return nil
	case inZone(zoneSort, msg):
		m.session.SetSort(m.session.Sort().Next())
		m.refreshDetail()
		return nil
	}

	for _, f := range review.Filters {
		if inZone(zoneFilter(f), msg) {
			m.session.SetFilter(f)
			m.cursor = 0
			m.refreshDetail()
			return nil
		}
	}

	view := m.session.View()
	if view.Pagination == nil {
		return nil
	}
	p := view.Pagination
	target := 0
	switch {
	case inZone(zonePrevPage, msg):
		if p.PrevEnabled {
			target = p.Page - 1
		}
	case inZone(zoneNextPage, msg):
		if p.NextEnabled {
			target = p.Page + 1
		}
	default:
		for _, page := range p.Pages {
			if inZone(zonePage(page), msg) {
				target = page
			}
		}
	}
	if target > 0 && target != p.Page {
		m.session.SetPage(target)
		m.cursor = 0
		m.refreshDetail()
	}
	return nil
}
