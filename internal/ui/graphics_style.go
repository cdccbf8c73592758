package ui

import (
	"image"
	"image/color"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/bootmenu/internal/display"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/ui/state"
)

// GraphicsStyle draws sub-menus as a centered window of text lines on a
// pixel canvas.
type GraphicsStyle struct {
	canvas   display.Canvas
	settings *settings.Settings
	tiles    Tiles

	title     string
	titleX    int
	entriesX  int
	entriesY  int
	lineWidth int
	timeoutY  int
}

// NewGraphicsStyle returns the windowed sub-menu strategy.
func NewGraphicsStyle(c display.Canvas, s *settings.Settings, tiles Tiles) *GraphicsStyle {
	return &GraphicsStyle{canvas: c, settings: s, tiles: tiles}
}

// Window is the placement of a sub-menu window.
type Window struct {
	X, Y          int
	Width, Height int
	// LineWidth is the width of one entry field.
	LineWidth int
}

// ComputeSubScreenWindow sizes the window from its longest line and centers
// it, keeping it clear of the banner and the hint lines.
func ComputeSubScreenWindow(c display.Canvas, s *settings.Settings, screen *menu.Screen) Window {
	screenW, screenH := c.Size()
	cellW, fontH := c.FontCellWidth(), c.FontHeight()
	lineH := display.LineHeight(c)

	chars, lines := 20, 5
	for _, line := range screen.InfoLines {
		chars = max(chars, runewidth.StringWidth(line))
		lines++
	}
	for _, e := range screen.Entries {
		chars = max(chars, runewidth.StringWidth(e.Title))
		lines++
	}

	var w Window
	w.Width = (chars + 2) * cellW
	w.LineWidth = w.Width
	if screen.TitleImage != nil {
		w.Width += screen.TitleImage.Bounds().Dx() + TitleIconSpacing*2 + cellW
	} else {
		w.Width += cellW
	}
	if titleW := c.MeasureText(screen.Title); w.Width < titleW {
		w.Width = titleW + 2*cellW
	}
	w.Width = min(w.Width, screenW)
	w.X = (screenW - w.Width) / 2

	hintTop := screenH - fontH*3
	w.Height = lines * lineH
	if screen.TitleImage != nil {
		w.Height = max(w.Height, screen.TitleImage.Bounds().Dy()+lineH*4)
	}
	banner := 0
	if s != nil && s.BannerBottomEdge < hintTop {
		banner = s.BannerBottomEdge
	}
	if w.Height > hintTop-banner-fontH*2 {
		banner = 0
	}
	if w.Height > hintTop-banner-fontH*2 {
		w.Height = hintTop - banner - fontH*2
	}
	w.Y = (screenH - w.Height) / 2
	if w.Y < banner {
		w.Y = banner + fontH + (hintTop-banner-w.Height)/2
	}
	return w
}

func (g *GraphicsStyle) Apply(screen *menu.Screen, scroll *state.Scroll, op Opcode, param string) {
	scroll.Mode = state.Text
	switch op {
	case OpInit:
		g.init(screen, scroll)
	case OpCleanup:
	case OpPaintAll:
		g.paintAll(screen, scroll)
	case OpPaintSelection:
		lineH := display.LineHeight(g.canvas)
		prev, cur := screen.Entries[scroll.Previous], screen.Entries[scroll.Current]
		g.canvas.DrawText(prev.Title, g.entriesX, g.entriesY+scroll.Previous*lineH, g.lineWidth, false)
		g.canvas.DrawText(cur.Title, g.entriesX, g.entriesY+scroll.Current*lineH, g.lineWidth, true)
	case OpPaintTimeout:
		g.canvas.DrawText(param, g.entriesX, g.timeoutY, g.lineWidth, false)
	}
	flush(g.canvas)
}

func (g *GraphicsStyle) init(screen *menu.Screen, scroll *state.Scroll) {
	width, _ := g.canvas.Size()
	scroll.Init(len(screen.Entries), 0, graphicsCapacity(width, g.tiles))

	w := ComputeSubScreenWindow(g.canvas, g.settings, screen)
	lineH := display.LineHeight(g.canvas)
	g.entriesX, g.entriesY, g.lineWidth = w.X, w.Y, w.LineWidth
	g.timeoutY = w.Y + (len(screen.Entries)+1)*lineH

	clearToBackground(g.canvas)
	g.canvas.Fill(image.Rect(w.X, w.Y, w.X+w.Width, w.Y+w.Height), g.backgroundColor())

	cellW := g.canvas.FontCellWidth()
	g.title = screen.Title
	if titleW := g.canvas.MeasureText(screen.Title); w.Width > titleW {
		g.titleX = w.X + (w.Width-titleW)/2 - cellW
	} else {
		g.titleX = w.X
		if cellW > 0 && w.Width/cellW-2 > 0 {
			g.title = truncate.String(screen.Title, uint(w.Width/cellW-2))
		}
	}
}

func (g *GraphicsStyle) backgroundColor() color.Color {
	return g.canvas.Crop(image.Rect(0, 0, 1, 1)).At(0, 0)
}

func (g *GraphicsStyle) paintAll(screen *menu.Screen, scroll *state.Scroll) {
	w := ComputeSubScreenWindow(g.canvas, g.settings, screen)
	screenW, screenH := g.canvas.Size()
	cellW, fontH := g.canvas.FontCellWidth(), g.canvas.FontHeight()
	lineH := display.LineHeight(g.canvas)

	x, y := w.X, w.Y+lineH
	g.canvas.DrawText(g.title, g.titleX, y, (runewidth.StringWidth(g.title)+2)*cellW, false)
	if screen.TitleImage != nil {
		g.canvas.Draw(screen.TitleImage, x+TitleIconSpacing, y+lineH*2)
		x += screen.TitleImage.Bounds().Dx() + TitleIconSpacing*2
	}
	y += lineH * 2
	if len(screen.InfoLines) > 0 {
		for _, line := range screen.InfoLines {
			g.canvas.DrawText(line, x, y, w.LineWidth, false)
			y += lineH
		}
		y += lineH
	}

	g.entriesX, g.entriesY, g.lineWidth = x, y, w.LineWidth
	for i, e := range screen.Entries {
		g.canvas.DrawText(e.Title, x, y+i*lineH, w.LineWidth, i == scroll.Current)
	}
	g.timeoutY = y + (len(screen.Entries)+1)*lineH

	if g.settings.Hidden(settings.HideHints) {
		return
	}
	if screen.Hint1 != "" {
		g.canvas.DrawTextOver(screen.Hint1, (screenW-g.canvas.MeasureText(screen.Hint1))/2, screenH-fontH*3)
	}
	if screen.Hint2 != "" {
		g.canvas.DrawTextOver(screen.Hint2, (screenW-g.canvas.MeasureText(screen.Hint2))/2, screenH-fontH*2)
	}
}
