package ui

import (
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/bootmenu/internal/display"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/ui/state"
)

const (
	arrowUp   = "↑"
	arrowDown = "↓"

	textMenuTop     = 4
	textMinWidth    = 20
	textEntryColumn = 2
)

// TextStyle draws menus on a character console.
type TextStyle struct {
	console  display.Console
	settings *settings.Settings

	top     int
	strings []string
}

// NewTextStyle returns a text strategy drawing on c.
func NewTextStyle(c display.Console, s *settings.Settings) *TextStyle {
	return &TextStyle{console: c, settings: s}
}

func (t *TextStyle) Apply(screen *menu.Screen, scroll *state.Scroll, op Opcode, param string) {
	scroll.Mode = state.Text
	switch op {
	case OpInit:
		t.init(screen, scroll)
	case OpCleanup:
		t.strings = nil
	case OpPaintAll:
		t.paintAll(screen, scroll)
	case OpPaintSelection:
		t.paintEntry(scroll, scroll.Previous, false)
		t.paintEntry(scroll, scroll.Current, true)
	case OpPaintTimeout:
		t.paintTimeout(param)
	}
}

func (t *TextStyle) init(screen *menu.Screen, scroll *state.Scroll) {
	cols, rows := t.console.Size()
	t.top = textMenuTop
	if len(screen.InfoLines) > 0 {
		t.top += len(screen.InfoLines) + 1
	}
	height := rows - t.top - 3
	if screen.TimeoutSeconds > 0 {
		height -= 2
	}
	scroll.Init(len(screen.Entries), height, rows-4)

	width := textMinWidth
	for _, e := range screen.Entries {
		width = max(width, runewidth.StringWidth(e.Title))
	}
	width += 2
	if width > cols-3 {
		width = cols - 3
	}

	t.strings = make([]string, len(screen.Entries))
	for i, e := range screen.Entries {
		s := " " + e.Title
		if runewidth.StringWidth(s) > width {
			s = truncate.String(s, uint(max(width-1, 0)))
		}
		t.strings[i] = s
	}
}

func (t *TextStyle) paintAll(screen *menu.Screen, scroll *state.Scroll) {
	_, rows := t.console.Size()
	display.BeginTextScreen(t.console, screen.Title)
	t.console.SetAttr(display.AttrBasic)
	for i, line := range screen.InfoLines {
		t.console.MoveTo(3, textMenuTop+i)
		t.console.Print(line)
	}

	for i := scroll.FirstVisible; i <= scroll.LastVisible && i <= scroll.MaxIndex; i++ {
		t.paintEntry(scroll, i, i == scroll.Current)
	}

	t.console.SetAttr(display.AttrScrollArrow)
	t.console.MoveTo(0, t.top)
	if scroll.FirstVisible > 0 {
		t.console.Print(arrowUp)
	} else {
		t.console.Print(" ")
	}
	t.console.MoveTo(0, t.top+scroll.MaxVisible)
	if scroll.LastVisible < scroll.MaxIndex {
		t.console.Print(arrowDown)
	} else {
		t.console.Print(" ")
	}

	if t.settings.Hidden(settings.HideHints) {
		return
	}
	t.console.SetAttr(display.AttrBasic)
	if screen.Hint1 != "" {
		t.console.MoveTo(0, rows-2)
		t.console.Print(screen.Hint1)
	}
	if screen.Hint2 != "" {
		t.console.MoveTo(0, rows-1)
		t.console.Print(screen.Hint2)
	}
}

func (t *TextStyle) paintEntry(scroll *state.Scroll, index int, selected bool) {
	if index < 0 || index >= len(t.strings) {
		return
	}
	t.console.MoveTo(textEntryColumn, t.top+index-scroll.FirstVisible)
	if selected {
		t.console.SetAttr(display.AttrChoiceCurrent)
	} else {
		t.console.SetAttr(display.AttrChoiceBasic)
	}
	t.console.Print(t.strings[index])
}

func (t *TextStyle) paintTimeout(message string) {
	_, rows := t.console.Size()
	if message == "" {
		t.console.SetAttr(display.AttrBasic)
		t.console.MoveTo(0, rows-3)
		t.console.Print(display.BlankLine(t.console))
		return
	}
	t.console.SetAttr(display.AttrError)
	t.console.MoveTo(3, rows-3)
	t.console.Print(message + "  ")
}
