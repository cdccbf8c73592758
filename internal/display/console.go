// Package display provides the two drawing surfaces the menu renders to: a
// character console and a pixel canvas.
package display

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Attr is a console text attribute.
type Attr int

const (
	AttrBasic Attr = iota
	AttrBanner
	AttrChoiceBasic
	AttrChoiceCurrent
	AttrError
	AttrScrollArrow
)

func (a Attr) String() string {
	switch a {
	case AttrBanner:
		return "banner"
	case AttrChoiceBasic:
		return "choice"
	case AttrChoiceCurrent:
		return "current"
	case AttrError:
		return "error"
	case AttrScrollArrow:
		return "arrow"
	default:
		return "basic"
	}
}

// Console is a fixed-size character display with a cursor.
type Console interface {
	Size() (cols, rows int)
	SetAttr(a Attr)
	MoveTo(col, row int)
	Print(s string)
	Clear()
}

// BeginTextScreen clears the console and draws the title banner on the
// first row.
func BeginTextScreen(c Console, title string) {
	cols, _ := c.Size()
	c.Clear()
	c.SetAttr(AttrBanner)
	c.MoveTo(0, 0)
	line := strings.Repeat(" ", 3) + title
	if pad := cols - runewidth.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	c.Print(runewidth.Truncate(line, cols, ""))
	c.SetAttr(AttrBasic)
}

// BlankLine returns a row of spaces wide enough to erase a console line.
func BlankLine(c Console) string {
	cols, _ := c.Size()
	if cols <= 1 {
		return ""
	}
	return strings.Repeat(" ", cols-1)
}
