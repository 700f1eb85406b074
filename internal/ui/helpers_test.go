package ui

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"tcreview/internal/api"
	"tcreview/internal/domain"
	"tcreview/internal/ui/theme"
)

const testBatchID = 5

func sampleRecords(n int) []domain.TestCase {
	records := make([]domain.TestCase, n)
	for i := range records {
		records[i] = domain.TestCase{
			ID:              i + 1,
			Title:           fmt.Sprintf("Case %02d", i+1),
			Description:     fmt.Sprintf("Checks scenario %d", i+1),
			Steps:           "1. Open the page\n2. Submit the form",
			ExpectedResults: "The form is accepted",
			Status:          domain.StatusPending,
		}
	}
	return records
}

// mockWithBatch serves records for testBatchID and echoes reviews.
func mockWithBatch(records []domain.TestCase) *api.MockClient {
	mock := api.NewMockClient()
	mock.BatchFn = func(_ context.Context, id int) (api.BatchDetail, error) {
		return api.BatchDetail{
			Batch:     domain.Batch{ID: id, Name: "Checkout flow"},
			TestCases: append([]domain.TestCase(nil), records...),
		}, nil
	}
	return mock
}

// newLoadedApp builds a sized app and runs Init to completion.
func newLoadedApp(t *testing.T, mock *api.MockClient, mutate ...func(*Config)) *App {
	t.Helper()
	cfg := Config{
		Client:        mock,
		BatchID:       testBatchID,
		PageSize:      10,
		ToastDuration: -1,
		ExportDir:     t.TempDir(),
		Theme:         theme.Default,
	}
	for _, fn := range mutate {
		fn(&cfg)
	}
	m, err := NewApp(cfg)
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	drain(t, m, m.Init())
	return m
}

// drain runs cmd and every command produced while handling its messages.
// Animation ticks are dropped and commands that do not return promptly
// (cursor blink, timers) are skipped.
func drain(t *testing.T, m *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatalf("commands did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg, ok := runCmd(next)
		if !ok || msg == nil {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, progress.FrameMsg, tea.QuitMsg:
		default:
			_, c := m.Update(msg)
			queue = append(queue, c)
		}
	}
}

func runCmd(cmd tea.Cmd) (tea.Msg, bool) {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg, true
	case <-time.After(100 * time.Millisecond):
		return nil, false
	}
}

// press sends a key and drains whatever it triggers.
func press(t *testing.T, m *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		drain(t, m, cmd)
	}
}

func typeText(t *testing.T, m *App, text string) {
	t.Helper()
	for _, r := range text {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		drain(t, m, cmd)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
