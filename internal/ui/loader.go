package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultLoaderMessage is shown when Show is called with an empty message.
const DefaultLoaderMessage = "Loading..."

// Loader is the single busy overlay. It does not lock input; it only tells
// the user a request is in flight.
type Loader struct {
	spinner spinner.Model
	message string
	active  bool
	bar     *ProgressBar
}

// NewLoader returns a hidden loader.
func NewLoader() Loader {
	s := spinner.New()
	s.Spinner = spinner.Points
	return Loader{spinner: s}
}

// Show replaces whatever loader is showing with a fresh one and starts the
// spinner.
func (l *Loader) Show(message string) tea.Cmd {
	l.Hide()
	if message == "" {
		message = DefaultLoaderMessage
	}
	l.message = message
	l.active = true
	l.spinner.Style = lipgloss.NewStyle().Foreground(currentTheme().Secondary)
	return l.spinner.Tick
}

// ShowProgress shows the loader with a progress bar below the message and
// returns the bar's setter.
func (l *Loader) ShowProgress(message string, width int) (tea.Cmd, func(float64) tea.Cmd) {
	cmd := l.Show(message)
	bar, set := NewProgressBar(width)
	l.bar = bar
	return cmd, set
}

// Hide removes the loader. Hiding when nothing is shown is a no-op.
func (l *Loader) Hide() {
	l.active = false
	l.message = ""
	l.bar = nil
}

// Active reports whether the loader is showing.
func (l *Loader) Active() bool { return l.active }

// Message returns the current loader text.
func (l *Loader) Message() string { return l.message }

// Update advances the spinner and progress animation while shown.
func (l *Loader) Update(msg tea.Msg) tea.Cmd {
	if !l.active {
		return nil
	}
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return cmd
	case progress.FrameMsg:
		if l.bar != nil {
			return l.bar.Update(msg)
		}
	}
	return nil
}

// View renders the loader box, or "" when hidden.
func (l *Loader) View() string {
	if !l.active {
		return ""
	}
	content := l.spinner.View() + " " + l.message
	if l.bar != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", l.bar.View())
	}
	return styleLoader().Render(content)
}

// ProgressBar is a single bar whose fill is driven by the setter returned
// from NewProgressBar.
type ProgressBar struct {
	model   progress.Model
	percent float64
}

// NewProgressBar creates a bar and a setter bound to it. The setter takes a
// fraction in [0, 1]; values outside are clamped.
func NewProgressBar(width int) (*ProgressBar, func(float64) tea.Cmd) {
	if width <= 0 {
		width = 40
	}
	bar := &ProgressBar{model: progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(width),
	)}
	set := func(percent float64) tea.Cmd {
		percent = max(0, min(1, percent))
		bar.percent = percent
		return bar.model.SetPercent(percent)
	}
	return bar, set
}

// Percent returns the last value given to the setter.
func (b *ProgressBar) Percent() float64 { return b.percent }

// Update animates the bar towards its target.
func (b *ProgressBar) Update(msg tea.Msg) tea.Cmd {
	m, cmd := b.model.Update(msg)
	if pm, ok := m.(progress.Model); ok {
		b.model = pm
	}
	return cmd
}

// View renders the bar.
func (b *ProgressBar) View() string {
	return b.model.View()
}
