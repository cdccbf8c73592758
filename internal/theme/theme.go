package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/bootmenu/internal/display"
)

// Styles describes the Lip Gloss style for each console attribute.
type Styles struct {
	Basic         *lipgloss.Style
	Banner        *lipgloss.Style
	ChoiceBasic   *lipgloss.Style
	ChoiceCurrent *lipgloss.Style
	Error         *lipgloss.Style
	ScrollArrow   *lipgloss.Style
	EditorPrompt  *lipgloss.Style
	EditorText    *lipgloss.Style
}

var defaultStyles = Styles{
	Basic: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Banner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("24")).Bold(true),
	),
	ChoiceBasic: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ChoiceCurrent: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("250")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	ScrollArrow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	EditorPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	EditorText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// For returns the style of a console attribute.
func (s *Styles) For(a display.Attr) *lipgloss.Style {
	switch a {
	case display.AttrBanner:
		return s.Banner
	case display.AttrChoiceBasic:
		return s.ChoiceBasic
	case display.AttrChoiceCurrent:
		return s.ChoiceCurrent
	case display.AttrError:
		return s.Error
	case display.AttrScrollArrow:
		return s.ScrollArrow
	default:
		return s.Basic
	}
}

// Render styles one run of console text; it matches the callback of
// display.Grid.Render.
func (s *Styles) Render(a display.Attr, text string) string {
	style := s.For(a)
	if style == nil {
		return text
	}
	return style.Render(text)
}

// Palette returns the pixel colours for graphics mode.
func Palette() display.Palette {
	return display.Palette{
		Background:    color.RGBA{0x33, 0x33, 0x33, 0xff},
		Menu:          color.RGBA{0xbf, 0xbf, 0xbf, 0xff},
		Selection:     color.RGBA{0xff, 0xff, 0xff, 0xff},
		Text:          color.RGBA{0x00, 0x00, 0x00, 0xff},
		SelectionText: color.RGBA{0x00, 0x00, 0x00, 0xff},
		LightText:     color.RGBA{0xff, 0xff, 0xff, 0xff},
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
