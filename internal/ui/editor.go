package ui

import (
	"context"
	"errors"

	"github.com/mattn/go-runewidth"

	"github.com/atomicstack/bootmenu/internal/display"
	"github.com/atomicstack/bootmenu/internal/input"
)

// Editor lets the operator change a loader's options before booting. ok is
// false when the edit was cancelled.
type Editor interface {
	Edit(ctx context.Context, options string) (edited string, ok bool, err error)
}

// LineEditor is an Editor driven by an input.Source. Render is called after
// every change with the line and the cursor position in runes.
type LineEditor struct {
	Input  input.Source
	Render func(line string, cursor int)
}

const keyBackspace = '\b'

// Edit reads keys until Enter accepts the line or Esc cancels it.
func (l *LineEditor) Edit(ctx context.Context, options string) (string, bool, error) {
	if l.Input == nil {
		return options, false, errors.New("line editor has no input")
	}
	line := []rune(options)
	cursor := len(line)
	for {
		if l.Render != nil {
			l.Render(string(line), cursor)
		}
		key, err := l.Input.WaitKey(ctx)
		if err != nil {
			return options, false, err
		}
		switch key.Scan {
		case input.ScanEsc:
			return options, false, nil
		case input.ScanLeft:
			cursor = max(cursor-1, 0)
			continue
		case input.ScanRight:
			cursor = min(cursor+1, len(line))
			continue
		case input.ScanHome:
			cursor = 0
			continue
		case input.ScanEnd:
			cursor = len(line)
			continue
		case input.ScanDelete:
			if cursor < len(line) {
				line = append(line[:cursor], line[cursor+1:]...)
			}
			continue
		}
		switch key.Char {
		case 0:
		case '\r', '\n':
			return string(line), true, nil
		case keyBackspace, 0x7f:
			if cursor > 0 {
				line = append(line[:cursor-1], line[cursor:]...)
				cursor--
			}
		default:
			line = append(line[:cursor], append([]rune{key.Char}, line[cursor:]...)...)
			cursor++
		}
	}
}

// ConsoleLine renders an edited line on the bottom row of a console,
// scrolling horizontally so the cursor stays in view.
func ConsoleLine(c display.Console, prompt string) func(string, int) {
	return func(line string, cursor int) {
		cols, rows := c.Size()
		c.MoveTo(0, rows-1)
		c.SetAttr(display.AttrBasic)
		c.Print(display.BlankLine(c))
		c.MoveTo(0, rows-1)
		c.SetAttr(display.AttrBanner)
		c.Print(prompt)
		c.SetAttr(display.AttrBasic)
		c.Print(" ")
		room := cols - runewidth.StringWidth(prompt) - 2
		c.Print(visibleSegment([]rune(line), cursor, room))
	}
}

// CanvasLine renders an edited line in a text field near the bottom of a
// canvas.
func CanvasLine(c display.Canvas, prompt string) func(string, int) {
	return func(line string, cursor int) {
		width, height := c.Size()
		cellW := max(c.FontCellWidth(), 1)
		y := height - display.LineHeight(c)*2
		room := width/cellW - runewidth.StringWidth(prompt) - 3
		c.DrawText(prompt+" "+visibleSegment([]rune(line), cursor, room), 0, y, width, true)
		flush(c)
	}
}

// visibleSegment returns the part of line that fits in room cells with the
// cursor inside it, marking the cursor with an underscore when it sits at
// the end.
func visibleSegment(line []rune, cursor, room int) string {
	if room <= 0 {
		return ""
	}
	start := 0
	if cursor >= room {
		start = cursor - room + 1
	}
	end := min(start+room, len(line))
	seg := string(line[start:end])
	if cursor == len(line) && runewidth.StringWidth(seg) < room {
		seg += "_"
	}
	return seg
}
