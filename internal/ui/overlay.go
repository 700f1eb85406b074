package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// placeOverlay draws fg over bg with its top-left corner at (x, y). Both
// strings may carry ANSI styling; cells outside fg keep bg's content.
func placeOverlay(fg, bg string, x, y int) string {
	if fg == "" {
		return bg
	}
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < y+len(fgLines) {
		bgLines = append(bgLines, "")
	}
	x = max(x, 0)
	y = max(y, 0)

	for i, fgLine := range fgLines {
		row := y + i
		bgLine := bgLines[row]

		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ""
		end := x + ansi.StringWidth(fgLine)
		if end < ansi.StringWidth(bgLine) {
			right = ansi.TruncateLeft(bgLine, end, "")
		}
		bgLines[row] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}

// centeredOffsets centres a content block inside a container, keeping it
// between the top and bottom margins.
func centeredOffsets(containerWidth, containerHeight, contentWidth, contentHeight, topMargin, bottomMargin int) (int, int) {
	topMargin = max(topMargin, 0)
	bottomMargin = max(bottomMargin, 0)

	usable := max(containerHeight-topMargin-bottomMargin, contentHeight)
	y := topMargin + (usable-contentHeight)/2
	y = min(y, containerHeight-bottomMargin-contentHeight)
	y = max(y, topMargin, 0)

	x := max((containerWidth-contentWidth)/2, 0)
	return x, y
}

// overlayCentered places fg in the middle of a width x height screen.
func overlayCentered(fg, bg string, width, height int) string {
	if fg == "" {
		return bg
	}
	x, y := centeredOffsets(width, height, lipgloss.Width(fg), lipgloss.Height(fg), 1, 1)
	return placeOverlay(fg, bg, x, y)
}

// overlayBottomRight places fg in the bottom-right corner above the footer.
func overlayBottomRight(fg, bg string, width, height int) string {
	if fg == "" {
		return bg
	}
	x := max(width-lipgloss.Width(fg)-1, 0)
	y := max(height-lipgloss.Height(fg)-2, 1)
	return placeOverlay(fg, bg, x, y)
}
