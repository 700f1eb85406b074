package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"
)

// Severity selects a toast's icon and border colour.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
	SeverityWarning
)

// Icon returns the fixed glyph for the severity.
func (s Severity) Icon() string {
	switch s {
	case SeveritySuccess:
		return "✅"
	case SeverityError:
		return "❌"
	case SeverityWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

const toastMaxWidth = 48

type toast struct {
	id       int
	message  string
	severity Severity
}

type toastExpiredMsg struct{ id int }

// Toaster holds the notifications currently on screen. Each toast is timed
// independently and there is no limit on how many coexist.
type Toaster struct {
	toasts []toast
	nextID int
}

// NewToaster returns an empty toaster.
func NewToaster() *Toaster {
	return &Toaster{}
}

// Show adds a toast and returns its id. A positive duration returns a tick
// that expires it; zero or negative durations keep it until closed.
func (t *Toaster) Show(message string, severity Severity, duration time.Duration) (int, tea.Cmd) {
	t.nextID++
	id := t.nextID
	t.toasts = append(t.toasts, toast{id: id, message: message, severity: severity})
	if duration <= 0 {
		return id, nil
	}
	return id, tea.Tick(duration, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

// Close removes the toast with id. Closing a toast that is already gone is
// a no-op; it reports whether anything was removed.
func (t *Toaster) Close(id int) bool {
	for i, ts := range t.toasts {
		if ts.id == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// CloseNewest dismisses the most recent toast.
func (t *Toaster) CloseNewest() bool {
	if len(t.toasts) == 0 {
		return false
	}
	return t.Close(t.toasts[len(t.toasts)-1].id)
}

// Update consumes expiry ticks and clicks on a toast. It reports whether msg
// was handled.
func (t *Toaster) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case toastExpiredMsg:
		t.Close(msg.id)
		return true
	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return false
		}
		for _, ts := range t.toasts {
			if z := zone.Get(toastZoneID(ts.id)); z != nil && z.InBounds(msg) {
				t.Close(ts.id)
				return true
			}
		}
	}
	return false
}

// Len returns the number of visible toasts.
func (t *Toaster) Len() int { return len(t.toasts) }

// Messages returns the visible messages, oldest first.
func (t *Toaster) Messages() []string {
	out := make([]string, len(t.toasts))
	for i, ts := range t.toasts {
		out[i] = ts.message
	}
	return out
}

// View stacks the toasts vertically, newest at the bottom.
func (t *Toaster) View() string {
	if len(t.toasts) == 0 {
		return ""
	}
	boxes := make([]string, 0, len(t.toasts))
	for _, ts := range t.toasts {
		body := ts.severity.Icon() + " " + wordwrap.String(ts.message, toastMaxWidth)
		boxes = append(boxes, zone.Mark(toastZoneID(ts.id), styleToast(ts.severity).Render(body)))
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

func toastZoneID(id int) string {
	return fmt.Sprintf("toast:%d", id)
}

// errorText is the message shown for a failed operation.
func errorText(prefix string, err error) string {
	msg := strings.TrimSpace(err.Error())
	if prefix == "" {
		return msg
	}
	return prefix + ": " + msg
}
