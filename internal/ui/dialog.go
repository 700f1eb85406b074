package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"
)

const (
	defaultDialogTitle  = "Notice"
	defaultConfirmTitle = "Confirm"
	defaultPromptTitle  = "Input"
	dialogContentWidth  = 52
)

// ButtonRole is the visual role of a dialog button.
type ButtonRole int

const (
	RoleDefault ButtonRole = iota
	RolePrimary
	RoleDanger
)

// Button is one dialog action. Handler receives the prompt input's value at
// click time (empty for dialogs without input). The dialog closes after the
// handler runs unless KeepOpen is set.
type Button struct {
	Label    string
	Role     ButtonRole
	Handler  func(value string) tea.Cmd
	KeepOpen bool
}

// DialogOptions configures a dialog. Zero values give a "Notice" dialog with
// a single OK button that closes on an outside click.
type DialogOptions struct {
	Title   string
	Content string
	Buttons []Button
	// KeepOnOutsideClick disables closing when the user clicks off the panel.
	KeepOnOutsideClick bool
	// OnClose runs once the dialog has been removed.
	OnClose func() tea.Cmd

	prompt       bool
	defaultValue string
}

type dialog struct {
	id      int
	opts    DialogOptions
	focused int
	input   textinput.Model
	closing bool
}

type dialogRemovedMsg struct{ id int }

// Dialogs is the modal layer. Dialogs stack; the newest one that is not
// closing is the active one and receives input.
type Dialogs struct {
	stack  []*dialog
	nextID int
	delay  time.Duration
}

// NewDialogs returns an empty dialog layer. closeDelay is how long a closed
// dialog lingers before removal.
func NewDialogs(closeDelay time.Duration) *Dialogs {
	if closeDelay < 0 {
		closeDelay = 0
	}
	return &Dialogs{delay: closeDelay}
}

// Show opens a dialog and returns its id.
func (d *Dialogs) Show(opts DialogOptions) (int, tea.Cmd) {
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = defaultDialogTitle
	}
	if len(opts.Buttons) == 0 {
		opts.Buttons = []Button{{Label: "OK", Role: RolePrimary}}
	}
	d.nextID++
	dl := &dialog{id: d.nextID, opts: opts, focused: defaultFocus(opts.Buttons)}

	var cmd tea.Cmd
	if opts.prompt {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.CharLimit = 256
		ti.Width = dialogContentWidth - 4
		ti.SetValue(opts.defaultValue)
		cmd = ti.Focus()
		dl.input = ti
	}
	d.stack = append(d.stack, dl)
	return dl.id, cmd
}

// Confirm asks a yes/no question. onConfirm and onCancel may be nil.
func (d *Dialogs) Confirm(message string, onConfirm, onCancel func() tea.Cmd) (int, tea.Cmd) {
	return d.Show(DialogOptions{
		Title:   defaultConfirmTitle,
		Content: message,
		Buttons: []Button{
			{Label: "Cancel", Role: RoleDefault, Handler: ignoreValue(onCancel)},
			{Label: "Confirm", Role: RolePrimary, Handler: ignoreValue(onConfirm)},
		},
	})
}

// Alert shows a message with a single OK button.
func (d *Dialogs) Alert(title, message string, onOK func() tea.Cmd) (int, tea.Cmd) {
	return d.Show(DialogOptions{
		Title:   title,
		Content: message,
		Buttons: []Button{{Label: "OK", Role: RolePrimary, Handler: ignoreValue(onOK)}},
	})
}

// Prompt asks for a line of text. onInput receives the value when the user
// confirms; cancelling discards it without calling anything.
func (d *Dialogs) Prompt(title, message, defaultValue string, onInput func(string) tea.Cmd) (int, tea.Cmd) {
	if strings.TrimSpace(title) == "" {
		title = defaultPromptTitle
	}
	return d.Show(DialogOptions{
		Title:   title,
		Content: message,
		Buttons: []Button{
			{Label: "Cancel", Role: RoleDefault},
			{Label: "OK", Role: RolePrimary, Handler: onInput},
		},
		prompt:       true,
		defaultValue: defaultValue,
	})
}

// Active reports whether a dialog is accepting input.
func (d *Dialogs) Active() bool {
	return d.active() != nil
}

// Len returns the number of dialogs not yet removed, closing ones included.
func (d *Dialogs) Len() int {
	return len(d.stack)
}

// Close closes the active dialog. It is a no-op when none is active.
func (d *Dialogs) Close() tea.Cmd {
	dl := d.active()
	if dl == nil {
		return nil
	}
	return d.CloseID(dl.id)
}

// CloseID starts closing the dialog with id. Removal happens after the close
// delay, and only then does the dialog's OnClose run. Closing twice is a
// no-op.
func (d *Dialogs) CloseID(id int) tea.Cmd {
	dl := d.find(id)
	if dl == nil || dl.closing {
		return nil
	}
	dl.closing = true
	dl.input.Blur()
	msg := dialogRemovedMsg{id: id}
	if d.delay <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d.delay, func(time.Time) tea.Msg { return msg })
}

// Update routes input to the active dialog and handles removal ticks. It
// reports whether msg was consumed; while a dialog is active every key and
// click is consumed.
func (d *Dialogs) Update(msg tea.Msg) (bool, tea.Cmd) {
	if removed, ok := msg.(dialogRemovedMsg); ok {
		return true, d.remove(removed.id)
	}
	dl := d.active()
	if dl == nil {
		return false, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return true, d.handleKey(dl, msg)
	case tea.MouseMsg:
		return true, d.handleMouse(dl, msg)
	}
	if dl.opts.prompt {
		var cmd tea.Cmd
		dl.input, cmd = dl.input.Update(msg)
		return false, cmd
	}
	return false, nil
}

var (
	dialogNext   = key.NewBinding(key.WithKeys("tab", "right"))
	dialogPrev   = key.NewBinding(key.WithKeys("shift+tab", "left"))
	dialogPress  = key.NewBinding(key.WithKeys("enter"))
	dialogCancel = key.NewBinding(key.WithKeys("esc"))
)

func (d *Dialogs) handleKey(dl *dialog, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, dialogCancel):
		return d.CloseID(dl.id)
	case key.Matches(msg, dialogPress):
		return d.press(dl, dl.focused)
	case key.Matches(msg, dialogNext) && !(dl.opts.prompt && msg.String() == "right"):
		dl.focused = (dl.focused + 1) % len(dl.opts.Buttons)
		return nil
	case key.Matches(msg, dialogPrev) && !(dl.opts.prompt && msg.String() == "left"):
		dl.focused = (dl.focused - 1 + len(dl.opts.Buttons)) % len(dl.opts.Buttons)
		return nil
	}
	if dl.opts.prompt {
		var cmd tea.Cmd
		dl.input, cmd = dl.input.Update(msg)
		return cmd
	}
	return nil
}

func (d *Dialogs) handleMouse(dl *dialog, msg tea.MouseMsg) tea.Cmd {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return nil
	}
	for i := range dl.opts.Buttons {
		if z := zone.Get(dialogButtonZoneID(dl.id, i)); z != nil && z.InBounds(msg) {
			dl.focused = i
			return d.press(dl, i)
		}
	}
	if z := zone.Get(dialogPanelZoneID(dl.id)); z != nil && z.InBounds(msg) {
		return nil
	}
	if dl.opts.KeepOnOutsideClick {
		return nil
	}
	return d.CloseID(dl.id)
}

// press runs a button's handler with the input value read now, then closes.
func (d *Dialogs) press(dl *dialog, index int) tea.Cmd {
	if index < 0 || index >= len(dl.opts.Buttons) {
		return nil
	}
	btn := dl.opts.Buttons[index]
	value := ""
	if dl.opts.prompt {
		value = dl.input.Value()
	}
	var cmds []tea.Cmd
	if btn.Handler != nil {
		cmds = append(cmds, btn.Handler(value))
	}
	if !btn.KeepOpen {
		cmds = append(cmds, d.CloseID(dl.id))
	}
	return tea.Batch(cmds...)
}

func (d *Dialogs) remove(id int) tea.Cmd {
	for i, dl := range d.stack {
		if dl.id != id {
			continue
		}
		d.stack = append(d.stack[:i], d.stack[i+1:]...)
		if dl.opts.OnClose != nil {
			return dl.opts.OnClose()
		}
		return nil
	}
	return nil
}

func (d *Dialogs) active() *dialog {
	for i := len(d.stack) - 1; i >= 0; i-- {
		if !d.stack[i].closing {
			return d.stack[i]
		}
	}
	return nil
}

func (d *Dialogs) find(id int) *dialog {
	for _, dl := range d.stack {
		if dl.id == id {
			return dl
		}
	}
	return nil
}

// View renders the active dialog panel, or "" when none is open.
func (d *Dialogs) View() string {
	dl := d.active()
	if dl == nil {
		return ""
	}
	bg := currentTheme().BackgroundSecondary

	title := styleDialogTitle().Background(bg).Render(dl.opts.Title)
	var body []string
	if content := strings.TrimSpace(dl.opts.Content); content != "" {
		body = append(body, lipgloss.NewStyle().Background(bg).
			Render(wordwrap.String(content, dialogContentWidth)))
	}
	if dl.opts.prompt {
		body = append(body, dl.input.View())
	}

	buttons := make([]string, len(dl.opts.Buttons))
	for i, btn := range dl.opts.Buttons {
		label := styleButton(btn.Role, i == dl.focused).Render(btn.Label)
		buttons[i] = zone.Mark(dialogButtonZoneID(dl.id, i), label)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(buttons, "  ")...)

	parts := []string{title, ""}
	parts = append(parts, body...)
	parts = append(parts, "", lipgloss.PlaceHorizontal(dialogContentWidth, lipgloss.Right, row))
	panel := styleDialog().Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return zone.Mark(dialogPanelZoneID(dl.id), panel)
}

func dialogPanelZoneID(id int) string { return fmt.Sprintf("dialog:%d", id) }

func dialogButtonZoneID(id, index int) string { return fmt.Sprintf("dialog:%d:button:%d", id, index) }

// defaultFocus picks the last primary button, falling back to the last one.
func defaultFocus(buttons []Button) int {
	for i := len(buttons) - 1; i >= 0; i-- {
		if buttons[i].Role == RolePrimary {
			return i
		}
	}
	return len(buttons) - 1
}

func ignoreValue(fn func() tea.Cmd) func(string) tea.Cmd {
	if fn == nil {
		return nil
	}
	return func(string) tea.Cmd { return fn() }
}

func joinWithGap(items []string, gap string) []string {
	if len(items) < 2 {
		return items
	}
	out := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, item)
	}
	return out
}
