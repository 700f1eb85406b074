package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts. Related bindings share help text
// because they appear as one row in the help overlay.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Tab      key.Binding

	// Selection
	Toggle      key.Binding
	SelectAll   key.Binding
	DeselectAll key.Binding

	// Review
	Approve     key.Binding
	Reject      key.Binding
	BulkApprove key.Binding
	BulkReject  key.Binding

	// List controls
	Search key.Binding
	Filter key.Binding
	Sort   key.Binding
	Escape key.Binding

	// Detail
	Detail       key.Binding
	ToggleSteps  key.Binding
	ToggleExpect key.Binding

	// Other
	Export    key.Binding
	Upload    key.Binding
	Knowledge key.Binding
	Delete    key.Binding
	Indexing  key.Binding
	Refresh   key.Binding
	Copy      key.Binding
	Theme     key.Binding
	Dismiss   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓  k/j", "Move up/down"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓  k/j", "Move up/down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/→  h/l", "Previous/next page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("←/→  h/l", "Previous/next page"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("⇥ (Tab)", "Switch focus"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "Check/uncheck"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Select page"),
		),
		DeselectAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Deselect all"),
		),

		Approve: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Approve"),
		),
		Reject: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Reject"),
		),
		BulkApprove: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "Approve selected"),
		),
		BulkReject: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "Reject selected"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle status filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle sort order"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Clear/cancel"),
		),

		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎ (Enter)", "Toggle detail"),
		),
		ToggleSteps: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Show/hide steps"),
		),
		ToggleExpect: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Show/hide expected results"),
		),

		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Export batch"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Upload document"),
		),
		Knowledge: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "Knowledge base"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "Delete file"),
		),
		Indexing: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Indexing status"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy ID and title"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Next theme"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss notification"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}
