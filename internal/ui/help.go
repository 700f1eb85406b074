package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type helpSection struct {
	title string
	rows  [][]string
}

func helpRow(b key.Binding) []string {
	return []string{b.Help().Key, b.Help().Desc}
}

// getHelpSections lays out the help overlay. Text comes from the bindings.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "NAVIGATION",
			rows: [][]string{
				helpRow(keys.Up),
				helpRow(keys.PrevPage),
				helpRow(keys.Tab),
				helpRow(keys.Detail),
				helpRow(keys.ToggleSteps),
				helpRow(keys.ToggleExpect),
			},
		},
		{
			title: "REVIEW",
			rows: [][]string{
				helpRow(keys.Approve),
				helpRow(keys.Reject),
				helpRow(keys.Toggle),
				helpRow(keys.SelectAll),
				helpRow(keys.DeselectAll),
				helpRow(keys.BulkApprove),
				helpRow(keys.BulkReject),
			},
		},
		{
			title: "LIST",
			rows: [][]string{
				helpRow(keys.Search),
				helpRow(keys.Filter),
				helpRow(keys.Sort),
				helpRow(keys.Escape),
				helpRow(keys.Refresh),
			},
		},
		{
			title: "MORE",
			rows: [][]string{
				helpRow(keys.Export),
				helpRow(keys.Upload),
				helpRow(keys.Knowledge),
				helpRow(keys.Copy),
				helpRow(keys.Theme),
				helpRow(keys.Dismiss),
				helpRow(keys.Quit),
			},
		},
	}
}

// renderHelpOverlay builds the help modal; the caller positions it.
func renderHelpOverlay(keys KeyMap) string {
	sections := getHelpSections(keys)

	left := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSection(sections[0]), "", renderHelpSection(sections[2]))
	right := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSection(sections[1]), "", renderHelpSection(sections[3]))
	columns := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	width := max(lipgloss.Width(columns), 40)
	content := lipgloss.JoinVertical(lipgloss.Center,
		styleDialogTitle().Render("TEST CASE REVIEW HELP"),
		lipgloss.NewStyle().Foreground(currentTheme().Primary).Render(strings.Repeat("─", width)),
		"",
		columns,
		"",
		styleMuted().Italic(true).Render("Press ? or Esc to close"),
	)
	return styleHelpOverlay().Render(content)
}

func renderHelpSection(section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHelpKey().Width(14)
			}
			return styleMuted()
		}).
		Rows(section.rows...)

	header := styleSectionHeader().Render(section.title)
	underline := styleMuted().Render(strings.Repeat("─", len(section.title)))
	// The hidden border leaves an empty first line.
	body := strings.TrimPrefix(t.String(), "\n")
	return lipgloss.JoinVertical(lipgloss.Left, header, underline, body)
}
