package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tcreview/internal/domain"
	"tcreview/internal/ui"
	"tcreview/internal/ui/theme"
)

// ExitSummary holds what is printed once the review screen closes.
type ExitSummary struct {
	Version     string
	EndStats    domain.Stats
	SessionInfo ui.SessionInfo
}

// printExitSummary prints a two line recap of the session after the TUI has
// left the alt screen.
func printExitSummary(w io.Writer, summary ExitSummary) {
	palette := theme.Current()
	appStyle := lipgloss.NewStyle().Bold(true).Foreground(palette.Primary)
	dimStyle := lipgloss.NewStyle().Foreground(palette.TextMuted)
	statsStyle := lipgloss.NewStyle().Foreground(palette.Text)
	positiveStyle := lipgloss.NewStyle().Foreground(palette.Success)
	neutralStyle := lipgloss.NewStyle().Foreground(palette.Info)

	versionStr := ""
	if summary.Version != "" {
		versionStr = dimStyle.Render(fmt.Sprintf(" v%s", summary.Version))
	}
	duration := formatDuration(time.Since(summary.SessionInfo.StartTime))
	sessionStr := dimStyle.Render(fmt.Sprintf(" • %s session", duration))

	start := summary.SessionInfo.InitialStats
	end := summary.EndStats

	withDelta := func(label string, now, before int, style lipgloss.Style) string {
		part := fmt.Sprintf("%d %s", now, label)
		if delta := now - before; delta != 0 {
			part += " " + style.Render(formatDelta(delta))
		}
		return part
	}

	var parts []string
	if end.Approved > 0 || end.Approved != start.Approved {
		style := neutralStyle
		if end.Approved > start.Approved {
			style = positiveStyle
		}
		parts = append(parts, withDelta("Approved", end.Approved, start.Approved, style))
	}
	if end.Rejected > 0 || end.Rejected != start.Rejected {
		parts = append(parts, withDelta("Rejected", end.Rejected, start.Rejected, neutralStyle))
	}
	if end.Pending() > 0 || end.Pending() != start.Pending() {
		parts = append(parts, withDelta("Pending", end.Pending(), start.Pending(), neutralStyle))
	}

	statsStr := withDelta("test cases", end.Total, start.Total, neutralStyle)
	if len(parts) > 0 {
		statsStr += ": " + strings.Join(parts, ", ")
	}

	_, _ = fmt.Fprintln(w, appStyle.Render("Test Case Review")+versionStr+sessionStr)
	_, _ = fmt.Fprintln(w, statsStyle.Render(statsStr))
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// formatDelta formats a numeric delta with +/- prefix.
func formatDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("(+%d)", delta)
	}
	return fmt.Sprintf("(%d)", delta)
}
