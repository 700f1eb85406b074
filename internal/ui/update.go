package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tcreview/internal/domain"
	"tcreview/internal/review"
	"tcreview/internal/ui/theme"
)

// clipboardWriteAll is replaced in tests.
var clipboardWriteAll = clipboard.WriteAll

// Update implements tea.Model.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.refreshDetail()
		return m, nil
	case spinner.TickMsg, progress.FrameMsg:
		return m, m.loader.Update(msg)
	case toastExpiredMsg:
		m.toaster.Update(msg)
		return m, nil
	case dialogRemovedMsg:
		_, cmd := m.dialogs.Update(msg)
		return m, cmd
	}

	if cmd, handled := m.handleResult(msg); handled {
		return m, cmd
	}

	if mouse, ok := msg.(tea.MouseMsg); ok && m.toaster.Update(mouse) {
		return m, nil
	}
	consumed, dialogCmd := m.dialogs.Update(msg)
	if consumed {
		return m, dialogCmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, tea.Batch(dialogCmd, cmd)
	}
	return m, dialogCmd
}

// handleResult applies the outcome of a finished command or a widget
// callback. Every server result is applied here, on the Update goroutine.
func (m *App) handleResult(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case batchLoadedMsg:
		if msg.batchID != m.session.BatchID() {
			return nil, true
		}
		m.loader.Hide()
		if msg.err != nil {
			return m.notifyError("Failed to load test cases", msg.err), true
		}
		msg.snapshot.Apply(m.session)
		if !m.statsCapture {
			m.initialStats = m.session.Stats()
			m.statsCapture = true
		}
		m.clampCursor()
		m.refreshDetail()
		return nil, true

	case reviewRequestMsg:
		return m.startReview(msg.id, msg.action), true

	case reviewDoneMsg:
		// The batch was switched while the request was in flight.
		if msg.batchID != m.session.BatchID() {
			return nil, true
		}
		m.loader.Hide()
		if msg.err != nil {
			return m.notifyError("Failed to review test case", msg.err), true
		}
		msg.result.Apply(m.session)
		m.clampCursor()
		m.refreshDetail()
		return m.notify("Test case "+msg.action.Verb(), SeveritySuccess), true

	case bulkConfirmedMsg:
		return m.startBulk(msg.action), true

	case bulkProgressMsg:
		var cmds []tea.Cmd
		if m.setProgress != nil && msg.total > 0 {
			cmds = append(cmds, m.setProgress(float64(msg.done)/float64(msg.total)))
		}
		cmds = append(cmds, waitForBulkProgress(m.bulkUpdates))
		return tea.Batch(cmds...), true

	case bulkDoneMsg:
		m.bulkRunning = false
		m.bulkUpdates = nil
		m.setProgress = nil
		if msg.batchID != m.session.BatchID() {
			return nil, true
		}
		m.loader.Hide()
		if msg.err != nil {
			return m.notifyError(fmt.Sprintf("Bulk %s failed", msg.action), msg.err), true
		}
		msg.result.Apply(m.session)
		return tea.Batch(
			m.notify(fmt.Sprintf("Successfully %s %d test cases", msg.action.Verb(), msg.result.Count()), SeveritySuccess),
			m.fetchBatchCmd(m.session.BatchID()),
		), true

	case exportRequestMsg:
		return tea.Batch(m.loader.Show("Generating Excel file..."), m.exportCmd(m.session.BatchID(), msg.status)), true

	case exportDoneMsg:
		m.loader.Hide()
		if msg.err != nil {
			return m.notifyError("Export failed", msg.err), true
		}
		return m.notify(exportToast(msg.status, msg.path), SeveritySuccess), true

	case uploadRequestMsg:
		return m.startUpload(msg.path), true

	case uploadDoneMsg:
		m.loader.Hide()
		if msg.err != nil {
			return m.notifyError("Upload failed", msg.err), true
		}
		text := fmt.Sprintf("Generated %d test cases", len(msg.result.TestCases))
		if msg.result.BatchName != "" {
			text += " in " + msg.result.BatchName
		}
		return tea.Batch(m.notify(text, SeveritySuccess), m.openBatch(msg.result.BatchID)), true

	case knowledgeLoadedMsg, knowledgeUploadedMsg, knowledgeDeletedMsg, indexingStatusMsg,
		knowledgeUploadRequestMsg, knowledgeDeleteConfirmedMsg:
		return m.handleKnowledgeResult(msg), true
	}
	return nil, false
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.showHelp = false
		}
		return nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil
	case key.Matches(msg, m.keys.Theme):
		return m.cycleTheme()
	case key.Matches(msg, m.keys.Dismiss):
		m.toaster.CloseNewest()
		return nil
	case key.Matches(msg, m.keys.Knowledge):
		if m.screen == ScreenKnowledge {
			m.screen = ScreenReview
			return nil
		}
		return m.openKnowledge()
	}

	if m.screen == ScreenKnowledge {
		return m.handleKnowledgeKey(msg)
	}
	return m.handleReviewKey(msg)
}

func (m *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applyQuery("")
		return nil
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applyQuery(m.searchInput.Value())
	return cmd
}

// applyQuery re-derives the list only when the normalized text changed, so
// cursor movement inside the box does not reset the page.
func (m *App) applyQuery(raw string) {
	if review.NormalizeQuery(raw) == m.session.Query() {
		return
	}
	m.session.SetQuery(raw)
	m.cursor = 0
	m.refreshDetail()
}

func (m *App) handleReviewKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Tab):
		if m.ShowDetails {
			if m.focus == FocusList {
				m.focus = FocusDetails
			} else {
				m.focus = FocusList
			}
		}
	case key.Matches(msg, m.keys.Up):
		if m.focus == FocusDetails {
			m.viewport.ScrollUp(1)
			return nil
		}
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		if m.focus == FocusDetails {
			m.viewport.ScrollDown(1)
			return nil
		}
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PrevPage):
		if m.session.PrevPage() {
			m.cursor = 0
			m.refreshDetail()
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.session.NextPage() {
			m.cursor = 0
			m.refreshDetail()
		}
	case key.Matches(msg, m.keys.Toggle):
		if tc, ok := m.currentRow(); ok {
			m.session.Selection().Toggle(tc.ID)
		}
	case key.Matches(msg, m.keys.SelectAll):
		if m.session.Buttons().SelectAll {
			m.session.SelectAll()
		}
	case key.Matches(msg, m.keys.DeselectAll):
		m.session.DeselectAll()
	case key.Matches(msg, m.keys.Approve):
		return m.reviewCurrent(domain.ActionApprove)
	case key.Matches(msg, m.keys.Reject):
		return m.reviewCurrent(domain.ActionReject)
	case key.Matches(msg, m.keys.BulkApprove):
		return m.confirmBulk(domain.ActionApprove)
	case key.Matches(msg, m.keys.BulkReject):
		return m.confirmBulk(domain.ActionReject)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.session.Query())
		m.searchInput.CursorEnd()
		return m.searchInput.Focus()
	case key.Matches(msg, m.keys.Filter):
		m.session.SetFilter(m.session.Filter().Next())
		m.cursor = 0
		m.refreshDetail()
	case key.Matches(msg, m.keys.Sort):
		m.session.SetSort(m.session.Sort().Next())
		m.clampCursor()
		m.refreshDetail()
	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.ShowDetails:
			m.ShowDetails = false
			m.focus = FocusList
		case m.session.Query() != "":
			m.searchInput.SetValue("")
			m.applyQuery("")
		}
	case key.Matches(msg, m.keys.Detail):
		m.ShowDetails = !m.ShowDetails
		if !m.ShowDetails {
			m.focus = FocusList
		}
		m.refreshDetail()
	case key.Matches(msg, m.keys.ToggleSteps):
		m.showSteps = !m.showSteps
		m.refreshDetail()
	case key.Matches(msg, m.keys.ToggleExpect):
		m.showExpect = !m.showExpect
		m.refreshDetail()
	case key.Matches(msg, m.keys.Export):
		return m.showExportDialog()
	case key.Matches(msg, m.keys.Upload):
		return m.promptUpload()
	case key.Matches(msg, m.keys.Refresh):
		if m.session.BatchID() > 0 {
			return tea.Batch(m.loader.Show("Loading test cases..."), m.fetchBatchCmd(m.session.BatchID()))
		}
	case key.Matches(msg, m.keys.Copy):
		return m.copyCurrent()
	}
	return nil
}

func (m *App) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.refreshDetail()
}

// reviewCurrent approves or rejects the row under the cursor when its status
// offers that action.
func (m *App) reviewCurrent(action domain.Action) tea.Cmd {
	tc, ok := m.currentRow()
	if !ok {
		return nil
	}
	for _, a := range tc.Actions() {
		if a == action {
			return m.startReview(tc.ID, action)
		}
	}
	return m.notify(fmt.Sprintf("Test case #%d is already %s", tc.ID, tc.Status.Effective()), SeverityWarning)
}

func (m *App) startReview(id int, action domain.Action) tea.Cmd {
	message := "Approving test case..."
	if action == domain.ActionReject {
		message = "Rejecting test case..."
	}
	return tea.Batch(m.loader.Show(message), m.reviewCmd(id, action))
}

func (m *App) confirmBulk(action domain.Action) tea.Cmd {
	count := m.session.Selection().Len()
	if count == 0 {
		return m.notify("Select at least one test case first", SeverityWarning)
	}
	if m.bulkRunning {
		return m.notify("A bulk review is already running", SeverityWarning)
	}
	verb := "approve"
	if action == domain.ActionReject {
		verb = "reject"
	}
	_, cmd := m.dialogs.Confirm(
		fmt.Sprintf("Are you sure you want to %s the %d selected test cases?", verb, count),
		func() tea.Cmd { return msgCmd(bulkConfirmedMsg{action: action}) },
		nil,
	)
	return cmd
}

func (m *App) startBulk(action domain.Action) tea.Cmd {
	ids := m.session.Selection().IDs()
	if len(ids) == 0 || m.bulkRunning {
		return nil
	}
	message := fmt.Sprintf("Approving %d test cases...", len(ids))
	if action == domain.ActionReject {
		message = fmt.Sprintf("Rejecting %d test cases...", len(ids))
	}
	spin, set := m.loader.ShowProgress(message, progressBarWidth)
	m.setProgress = set
	run, updates := m.bulkReviewCmd(ids, action)
	m.bulkUpdates = updates
	m.bulkRunning = true
	return tea.Batch(spin, run, waitForBulkProgress(updates))
}

func (m *App) showExportDialog() tea.Cmd {
	if !m.session.Loaded() {
		return m.notify("No batch loaded", SeverityWarning)
	}
	export := func(status domain.Status) func(string) tea.Cmd {
		return func(string) tea.Cmd { return msgCmd(exportRequestMsg{status: status}) }
	}
	_, cmd := m.dialogs.Show(DialogOptions{
		Title:   "Export",
		Content: fmt.Sprintf("Export test cases of %q to %s", m.session.Batch().Name, m.exportLocation()),
		Buttons: []Button{
			{Label: "Cancel"},
			{Label: "Pending", Handler: export(domain.StatusPending)},
			{Label: "Rejected", Handler: export(domain.StatusRejected)},
			{Label: "Approved", Handler: export(domain.StatusApproved)},
			{Label: "All", Role: RolePrimary, Handler: export(domain.StatusUnknown)},
		},
	})
	return cmd
}

func (m *App) exportLocation() string {
	if m.exportDir == "" {
		return "the current directory"
	}
	return m.exportDir
}

func exportToast(status domain.Status, path string) string {
	return review.ExportMessage(status) + ": " + path
}

func (m *App) promptUpload() tea.Cmd {
	_, cmd := m.dialogs.Prompt(
		"Upload document",
		"Path to a .pdf, .docx or .md file. A new batch is generated from it.",
		"",
		func(value string) tea.Cmd { return msgCmd(uploadRequestMsg{path: value}) },
	)
	return cmd
}

func (m *App) startUpload(path string) tea.Cmd {
	path = strings.TrimSpace(path)
	if path == "" {
		return m.notify("Select a file to upload", SeverityWarning)
	}
	if !domain.UploadableDocument(path) {
		return m.notify("Only .pdf, .docx and .md files are supported", SeverityWarning)
	}
	message := fmt.Sprintf("Uploading and processing %s, this may take a while...", filepath.Base(path))
	return tea.Batch(m.loader.Show(message), m.uploadCmd(path))
}

func (m *App) copyCurrent() tea.Cmd {
	tc, ok := m.currentRow()
	if !ok {
		return nil
	}
	if err := clipboardWriteAll(fmt.Sprintf("#%d %s", tc.ID, tc.Title)); err != nil {
		return m.notifyError("Copy failed", err)
	}
	return m.notify(fmt.Sprintf("Copied #%d to clipboard", tc.ID), SeverityInfo)
}

func (m *App) cycleTheme() tea.Cmd {
	name := theme.Cycle()
	m.refreshDetail()
	if m.saveTheme != nil {
		if err := m.saveTheme(name); err != nil {
			return m.notifyError("Theme not saved", err)
		}
	}
	return m.notify("Theme: "+name, SeverityInfo)
}
