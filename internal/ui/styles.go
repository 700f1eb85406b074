package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tcreview/internal/domain"
	"tcreview/internal/ui/theme"
)

// Styles are built on demand so a theme switch takes effect on the next
// frame.

func currentTheme() theme.Theme { return theme.Current() }

func styleAppHeader() lipgloss.Style {
	t := currentTheme()
	return lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Primary).
		Bold(true).
		Padding(0, 1)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(currentTheme().TextMuted)
}

func styleText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(currentTheme().Text)
}

func styleID() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(currentTheme().Accent).Bold(true)
}

func styleCursorRow() lipgloss.Style {
	t := currentTheme()
	return lipgloss.NewStyle().Background(t.BackgroundSecondary).Foreground(t.TextEmphasized).Bold(true)
}

func stylePane(focused bool) lipgloss.Style {
	t := currentTheme()
	if focused {
		return lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(t.BorderFocused)
	}
	return lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderNormal)
}

func statusColor(s domain.Status) lipgloss.AdaptiveColor {
	t := currentTheme()
	switch s.Effective() {
	case domain.StatusApproved:
		return t.Success
	case domain.StatusRejected:
		return t.Error
	default:
		return t.Warning
	}
}

func styleStatus(s domain.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(statusColor(s)).Bold(true)
}

func styleCheckbox(checked bool) lipgloss.Style {
	if checked {
		return lipgloss.NewStyle().Foreground(currentTheme().Success).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(currentTheme().TextMuted)
}

func styleAction(a domain.Action) lipgloss.Style {
	t := currentTheme()
	fg := t.Success
	if a == domain.ActionReject {
		fg = t.Error
	}
	return lipgloss.NewStyle().Foreground(fg).Background(t.BackgroundDarker).Padding(0, 1)
}

func styleControl(enabled, active bool) lipgloss.Style {
	t := currentTheme()
	s := lipgloss.NewStyle().Padding(0, 1)
	switch {
	case !enabled:
		return s.Foreground(t.BorderDim)
	case active:
		return s.Foreground(t.Background).Background(t.Secondary).Bold(true)
	default:
		return s.Foreground(t.Text).Background(t.BackgroundDarker)
	}
}

func styleSectionHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(currentTheme().TextEmphasized).Bold(true)
}

func styleField() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(currentTheme().Secondary).Bold(true).Width(15)
}

func styleToast(s Severity) lipgloss.Style {
	t := currentTheme()
	border := t.Info
	switch s {
	case SeveritySuccess:
		border = t.Success
	case SeverityError:
		border = t.Error
	case SeverityWarning:
		border = t.Warning
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(t.Text).
		Padding(0, 1)
}

func styleDialog() lipgloss.Style {
	t := currentTheme()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocused).
		Background(t.BackgroundSecondary).
		Foreground(t.Text).
		Padding(1, 2)
}

func styleDialogTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(currentTheme().Accent).Bold(true)
}

func styleButton(role ButtonRole, focused bool) lipgloss.Style {
	t := currentTheme()
	s := lipgloss.NewStyle().Padding(0, 2)
	bg := t.BackgroundDarker
	switch role {
	case RolePrimary:
		bg = t.Primary
	case RoleDanger:
		bg = t.Error
	}
	if focused {
		return s.Background(bg).Foreground(t.Background).Bold(true).Underline(true)
	}
	return s.Background(t.BackgroundDarker).Foreground(bg)
}

func styleLoader() lipgloss.Style {
	t := currentTheme()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Foreground(t.Text).
		Padding(1, 3)
}

func styleKeyPill() lipgloss.Style {
	t := currentTheme()
	return lipgloss.NewStyle().Background(t.Primary).Foreground(t.Background).Bold(true)
}

func styleHelpOverlay() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(currentTheme().Primary).
		Padding(1, 2)
}

func styleHelpKey() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(currentTheme().Info).Bold(true)
}

// buildMarkdownRenderer returns a renderer for free-text fields. "plain"
// only wraps; "rich" and "light" use glamour's dark and light styles.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	switch style {
	case "plain":
		return fallback
	case "light":
	default:
		style = "dark"
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
