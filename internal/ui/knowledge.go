package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"

	"tcreview/internal/domain"
)

// knowledgeEmptyMessage is shown when the knowledge base holds no files.
const knowledgeEmptyMessage = "No files in the knowledge base"

// knowledgeState is the knowledge-base screen: the file list and the token
// of the most recent upload, used to poll indexing progress.
type knowledgeState struct {
	files      []domain.KnowledgeFile
	cursor     int
	loaded     bool
	loading    bool
	lastUpload string
	lastName   string
	loc        *time.Location
	now        func() time.Time
}

func (k *knowledgeState) move(delta int) {
	if len(k.files) == 0 {
		k.cursor = 0
		return
	}
	k.cursor = max(0, min(k.cursor+delta, len(k.files)-1))
}

func (k *knowledgeState) current() (domain.KnowledgeFile, bool) {
	if len(k.files) == 0 {
		return domain.KnowledgeFile{}, false
	}
	k.move(0)
	return k.files[k.cursor], true
}

func (m *App) openKnowledge() tea.Cmd {
	m.screen = ScreenKnowledge
	m.knowledge.loading = true
	return tea.Batch(m.loader.Show("Loading knowledge base..."), m.loadKnowledgeCmd())
}

func (m *App) handleKnowledgeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.screen = ScreenReview
	case key.Matches(msg, m.keys.Up):
		m.knowledge.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.knowledge.move(1)
	case key.Matches(msg, m.keys.Refresh):
		return m.openKnowledge()
	case key.Matches(msg, m.keys.Upload):
		_, cmd := m.dialogs.Prompt(
			"Upload to knowledge base",
			"Path of the file to add to the knowledge base.",
			"",
			func(value string) tea.Cmd { return msgCmd(knowledgeUploadRequestMsg{path: value}) },
		)
		return cmd
	case key.Matches(msg, m.keys.Delete):
		if file, ok := m.knowledge.current(); ok {
			return m.confirmKnowledgeDelete(file)
		}
	case key.Matches(msg, m.keys.Indexing):
		if m.knowledge.lastUpload == "" {
			return m.notify("Upload a file first to check its indexing status", SeverityInfo)
		}
		return m.indexingStatusCmd(m.knowledge.lastUpload)
	}
	return nil
}

func (m *App) handleKnowledgeClick(msg tea.MouseMsg) tea.Cmd {
	for i, file := range m.knowledge.files {
		if inZone(zoneKnowledgeDelete(i), msg) {
			m.knowledge.cursor = i
			return m.confirmKnowledgeDelete(file)
		}
		if inZone(zoneKnowledgeRow(i), msg) {
			m.knowledge.cursor = i
			return nil
		}
	}
	return nil
}

func (m *App) confirmKnowledgeDelete(file domain.KnowledgeFile) tea.Cmd {
	_, cmd := m.dialogs.Show(DialogOptions{
		Title:   "Delete file",
		Content: fmt.Sprintf("Delete %q from the knowledge base? This cannot be undone.", file.Name),
		Buttons: []Button{
			{Label: "Cancel", Role: RolePrimary},
			{Label: "Delete", Role: RoleDanger, Handler: func(string) tea.Cmd {
				return msgCmd(knowledgeDeleteConfirmedMsg{file: file})
			}},
		},
	})
	return cmd
}

func (m *App) handleKnowledgeResult(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case knowledgeLoadedMsg:
		m.loader.Hide()
		m.knowledge.loading = false
		if msg.err != nil {
			return m.notifyError("Failed to load knowledge base", msg.err)
		}
		m.knowledge.files = msg.files
		m.knowledge.loaded = true
		m.knowledge.move(0)
		return nil

	case knowledgeUploadRequestMsg:
		path := strings.TrimSpace(msg.path)
		if path == "" {
			return m.notify("Select a file to upload", SeverityWarning)
		}
		return tea.Batch(
			m.loader.Show(fmt.Sprintf("Uploading %s...", filepath.Base(path))),
			m.uploadKnowledgeCmd(path),
		)

	case knowledgeUploadedMsg:
		m.loader.Hide()
		if msg.err != nil {
			return m.notifyError("Upload failed", msg.err)
		}
		m.knowledge.lastUpload = msg.upload.Batch
		m.knowledge.lastName = msg.upload.File.FileName
		text := "File uploaded"
		if msg.upload.File.FileName != "" {
			text = "Uploaded " + msg.upload.File.FileName
		}
		if msg.upload.Batch != "" {
			text += "; press i for indexing status"
		}
		return tea.Batch(m.notify(text, SeveritySuccess), m.loadKnowledgeCmd())

	case knowledgeDeleteConfirmedMsg:
		return tea.Batch(m.loader.Show("Deleting file..."), m.deleteKnowledgeCmd(msg.file))

	case knowledgeDeletedMsg:
		m.loader.Hide()
		if msg.err != nil {
			return m.notifyError("Delete failed", msg.err)
		}
		return tea.Batch(m.notify("Deleted "+msg.name, SeveritySuccess), m.loadKnowledgeCmd())

	case indexingStatusMsg:
		if msg.err != nil {
			return m.notifyError("Failed to get indexing status", msg.err)
		}
		_, cmd := m.dialogs.Alert("Indexing status", m.indexingSummary(msg), nil)
		return cmd
	}
	return nil
}

func (m *App) indexingSummary(msg indexingStatusMsg) string {
	if len(msg.progress) == 0 {
		return "No documents are being processed."
	}
	lines := make([]string, 0, len(msg.progress))
	for _, p := range msg.progress {
		name := p.ID
		if len(msg.progress) == 1 && m.knowledge.lastName != "" {
			name = m.knowledge.lastName
		}
		line := fmt.Sprintf("%s: %s", name, p.Status.Label())
		if p.TotalSegments > 0 {
			line += fmt.Sprintf(" (%d/%d segments)", p.CompletedSegments, p.TotalSegments)
		}
		if p.Error != "" {
			line += " - " + p.Error
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderKnowledge draws the file list for the knowledge screen.
func (m *App) renderKnowledge(width, height int) string {
	k := &m.knowledge
	if !k.loaded {
		if k.loading {
			return styleMuted().Render("Loading knowledge base...")
		}
		return styleMuted().Render("Knowledge base not loaded. Press r to load.")
	}
	if len(k.files) == 0 {
		return styleMuted().Render(knowledgeEmptyMessage)
	}

	now := time.Now()
	if k.now != nil {
		now = k.now()
	}
	nameWidth := max(width-84, 16)

	lines := make([]string, 0, len(k.files)+1)
	header := fmt.Sprintf("   %-*s  %-6s  %10s  %-10s  %s", nameWidth, "Name", "Type", "Size", "Status", "Uploaded")
	lines = append(lines, styleSectionHeader().Render(header))

	for i, f := range k.files {
		uploaded := domain.FormatDateTime(f.CreatedAt, k.loc)
		if t, ok := f.CreatedAt.Time(); ok {
			uploaded += " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
		}
		name := truncateText(f.Name, nameWidth)
		row := fmt.Sprintf("%s %-*s  %-6s  %10s  %s  %s",
			f.Icon(),
			nameWidth, name,
			strings.ToLower(f.Extension),
			domain.FormatFileSize(f.Size),
			indexingStyle(f.IndexingStatus).Render(fmt.Sprintf("%-10s", f.IndexingStatus.Label())),
			styleMuted().Render(uploaded),
		)
		del := zone.Mark(zoneKnowledgeDelete(i), styleAction(domain.ActionReject).Render("Delete"))
		if i == k.cursor {
			row = styleCursorRow().Render(row)
		}
		lines = append(lines, zone.Mark(zoneKnowledgeRow(i), row)+" "+del)
	}

	if len(lines) > height && height > 1 {
		start := max(0, min(k.cursor+1-(height-1), len(lines)-height))
		lines = append(lines[:1], lines[1+start:1+start+height-1]...)
	}
	return strings.Join(lines, "\n")
}

func indexingStyle(s domain.IndexingStatus) lipgloss.Style {
	t := currentTheme()
	switch s {
	case domain.IndexingCompleted:
		return lipgloss.NewStyle().Foreground(t.Success)
	case domain.IndexingError:
		return lipgloss.NewStyle().Foreground(t.Error)
	case domain.IndexingWaiting, domain.IndexingIndexing:
		return lipgloss.NewStyle().Foreground(t.Warning)
	}
	return styleMuted()
}

// truncateText shortens s to width cells, ending with an ellipsis.
func truncateText(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}
