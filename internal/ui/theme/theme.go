// Package theme provides the semantic colour palettes of the tcreview UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a named set of semantic colours. Every colour is adaptive so the
// same theme works on light and dark terminals.
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor // header background, focused borders
	Secondary lipgloss.AdaptiveColor // field labels, links
	Accent    lipgloss.AdaptiveColor // ids, titles

	Error   lipgloss.AdaptiveColor // rejected, failures, destructive buttons
	Warning lipgloss.AdaptiveColor // pending, warnings
	Success lipgloss.AdaptiveColor // approved, checked boxes
	Info    lipgloss.AdaptiveColor

	Text           lipgloss.AdaptiveColor
	TextMuted      lipgloss.AdaptiveColor
	TextEmphasized lipgloss.AdaptiveColor

	Background          lipgloss.AdaptiveColor
	BackgroundSecondary lipgloss.AdaptiveColor // cursor row, dialogs
	BackgroundDarker    lipgloss.AdaptiveColor // pills, badges

	BorderNormal  lipgloss.AdaptiveColor
	BorderFocused lipgloss.AdaptiveColor
	BorderDim     lipgloss.AdaptiveColor
}

func c(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}
