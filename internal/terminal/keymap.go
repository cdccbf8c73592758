package terminal

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/bootmenu/internal/input"
)

// KeyMap binds terminal keys to menu keys. Printable characters are passed
// through unbound so shortcuts and the '+' details key keep working.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Home       key.Binding
	End        key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Enter      key.Binding
	Escape     key.Binding
	Details    key.Binding
	Insert     key.Binding
	Delete     key.Binding
	Backspace  key.Binding
	Help       key.Binding
	Screenshot key.Binding
	Eject      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous entry"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next entry"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←", "previous entry"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→", "next entry"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first entry"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last entry"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "page down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "boot"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "back"),
		),
		Details: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "details"),
		),
		Insert: key.NewBinding(
			key.WithKeys("insert"),
			key.WithHelp("insert", "details"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("delete", "delete right"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete left"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("f10"),
			key.WithHelp("f10", "screenshot"),
		),
		Eject: key.NewBinding(
			key.WithKeys("f12"),
			key.WithHelp("f12", "eject"),
		),
	}
}

// Translate maps a Bubble Tea key press to a menu key. ok is false for keys
// the menu ignores.
func (k KeyMap) Translate(msg tea.KeyMsg) (input.Key, bool) {
	scans := []struct {
		binding key.Binding
		code    input.ScanCode
	}{
		{k.Up, input.ScanUp},
		{k.Down, input.ScanDown},
		{k.Left, input.ScanLeft},
		{k.Right, input.ScanRight},
		{k.Home, input.ScanHome},
		{k.End, input.ScanEnd},
		{k.PageUp, input.ScanPageUp},
		{k.PageDown, input.ScanPageDown},
		{k.Escape, input.ScanEsc},
		{k.Details, input.ScanF2},
		{k.Insert, input.ScanInsert},
		{k.Delete, input.ScanDelete},
		{k.Help, input.ScanF1},
		{k.Screenshot, input.ScanF10},
		{k.Eject, input.ScanF12},
	}
	for _, s := range scans {
		if key.Matches(msg, s.binding) {
			return input.Scan(s.code), true
		}
	}
	switch {
	case key.Matches(msg, k.Enter):
		return input.Char('\r'), true
	case key.Matches(msg, k.Backspace):
		return input.Char('\b'), true
	case msg.Type == tea.KeySpace:
		return input.Char(' '), true
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt:
		return input.Char(msg.Runes[0]), true
	}
	return input.Key{}, false
}

// ShortHelp lists the bindings shown in hint lines.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Details, k.Escape}
}
