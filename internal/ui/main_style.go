package ui

import (
	"image"

	"github.com/atomicstack/bootmenu/internal/display"
	"github.com/atomicstack/bootmenu/internal/icons"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/ui/state"
)

// MainMenuStyle draws the graphical main menu: loader tiles in a scrolling
// row 0, tool tiles in a fixed row 1, and the label of the selection below.
type MainMenuStyle struct {
	d        Display
	settings *settings.Settings
	tiles    Tiles

	selection [2]image.Image
	arrows    [2]image.Image

	itemX       []int
	row0X       int
	row0Y       int
	row1Y       int
	textY       int
	row0Loaders int
}

// NewMainMenuStyle returns the icon main-menu strategy.
func NewMainMenuStyle(d Display, s *settings.Settings, tiles Tiles) *MainMenuStyle {
	if d.Icons == nil {
		d.Icons = icons.Default{}
	}
	return &MainMenuStyle{d: d, settings: s, tiles: tiles}
}

func (m *MainMenuStyle) Apply(screen *menu.Screen, scroll *state.Scroll, op Opcode, param string) {
	scroll.Mode = state.Icons
	switch op {
	case OpInit:
		m.init(screen, scroll)
	case OpCleanup:
		m.itemX = nil
	case OpPaintAll:
		m.paintAll(screen, scroll)
		m.paintArrows(scroll)
	case OpPaintSelection:
		m.paintSelection(screen, scroll)
	case OpPaintTimeout:
		if !m.settings.Hidden(settings.HideLabel) {
			y := m.textY + display.LineHeight(m.d.Canvas)
			m.centered("", y)
			m.centered(param, y)
		}
	}
	flush(m.d.Canvas)
}

func (m *MainMenuStyle) init(screen *menu.Screen, scroll *state.Scroll) {
	width, height := m.d.Canvas.Size()
	scroll.Init(len(screen.Entries), m.settings.MaxTags, graphicsCapacity(width, m.tiles))

	var row0Count, row1Count int
	m.row0Loaders = 0
	for _, e := range screen.Entries {
		if e.Row == 1 {
			row1Count++
			continue
		}
		m.row0Loaders++
		if row0Count < scroll.MaxVisible {
			row0Count++
		}
	}
	m.row0X = (width + TileXSpacing - (m.tiles[0]+TileXSpacing)*row0Count) / 2
	m.row0Y = height/2 - m.tiles[0]/2
	row1X := (width + TileXSpacing - (m.tiles[1]+TileXSpacing)*row1Count) / 2
	m.row1Y = m.row0Y + m.tiles[0] + TileYSpacing
	m.textY = m.row1Y
	if row1Count > 0 {
		m.textY = m.row1Y + m.tiles[1] + TileYSpacing
	}

	m.itemX = make([]int, len(screen.Entries))
	x0, x1 := m.row0X, row1X
	for i, e := range screen.Entries {
		if e.Row == 0 {
			m.itemX[i] = x0
			x0 += m.tiles[0] + TileXSpacing
		} else {
			m.itemX[i] = x1
			x1 += m.tiles[1] + TileXSpacing
		}
	}

	m.initSelection()
	clearToBackground(m.d.Canvas)
}

// initSelection loads the selection tiles once. A custom small image also
// stands in for a missing big one.
func (m *MainMenuStyle) initSelection() {
	if m.selection[0] != nil {
		return
	}
	p := m.d.Icons
	small := p.LoadIcon(m.d.Files, m.settings.SelectionSmall, m.tiles[1])
	var big image.Image
	if small != nil {
		big = p.LoadIcon(m.d.Files, m.settings.SelectionBig, m.tiles[0])
		if big == nil {
			big = p.LoadIcon(m.d.Files, m.settings.SelectionSmall, m.tiles[0])
		}
	} else {
		small = icons.Selection(m.tiles[1])
		big = p.LoadIcon(m.d.Files, m.settings.SelectionBig, m.tiles[0])
	}
	if big == nil {
		big = icons.Selection(m.tiles[0])
	}
	m.selection = [2]image.Image{big, small}
}

// tile composes one entry over the background: the selection highlight when
// selected, then the centered icon, then the badge in the lower left.
func (m *MainMenuStyle) tile(e *menu.Entry, selected bool, x, y int) image.Image {
	sel := m.selection[rowOf(e)]
	size := sel.Bounds().Dx()
	p := m.d.Icons
	out := m.d.Canvas.Crop(image.Rect(x, y, x+size, y+size))
	if selected {
		out = p.Compose(out, sel, 0, 0)
	}
	if e.Image != nil {
		b := e.Image.Bounds()
		out = p.Compose(out, e.Image, (size-b.Dx())/2, (size-b.Dy())/2)
	}
	if e.Badge != nil {
		b := e.Badge.Bounds()
		out = p.Compose(out, e.Badge, (size-b.Dx())/8, size-b.Dy()-(size-b.Dy())/8)
	}
	return out
}

func (m *MainMenuStyle) drawEntry(e *menu.Entry, selected bool, x, y int) {
	m.d.Canvas.Draw(m.tile(e, selected, x, y), x, y)
}

func rowOf(e *menu.Entry) int {
	if e.Row == 1 {
		return 1
	}
	return 0
}

func (m *MainMenuStyle) paintAll(screen *menu.Screen, scroll *state.Scroll) {
	if screen.Entries[scroll.Current].Row == 0 {
		scroll.Adjust()
	}
	for i := scroll.FirstVisible; i <= scroll.MaxIndex; i++ {
		e := screen.Entries[i]
		switch {
		case e.Row != 0:
			m.drawEntry(e, i == scroll.Current, m.itemX[i], m.row1Y)
		case i <= scroll.LastVisible:
			m.drawEntry(e, i == scroll.Current, m.itemX[i-scroll.FirstVisible], m.row0Y)
		}
	}
	m.paintLabel(screen, scroll)

	if m.settings.Hidden(settings.HideHints) {
		return
	}
	_, height := m.d.Canvas.Size()
	fontH := m.d.Canvas.FontHeight()
	m.centered(screen.Hint1, height-fontH*3)
	m.centered(screen.Hint2, height-fontH*2)
}

// paintSelection redraws only the previous and current tiles while the
// selection stays visible; anything else needs the whole menu.
func (m *MainMenuStyle) paintSelection(screen *menu.Screen, scroll *state.Scroll) {
	inRow1 := scroll.Current >= scroll.InitialRow1 && screen.Entries[scroll.Current].Row == 1
	if !scroll.Visible(scroll.Current) && !inRow1 {
		m.Apply(screen, scroll, OpPaintAll, "")
		return
	}
	m.drawIndex(screen, scroll, scroll.Previous, false)
	m.drawIndex(screen, scroll, scroll.Current, true)
	m.paintLabel(screen, scroll)
}

// drawIndex draws entry index in its slot; row-0 entries outside the
// window have none.
func (m *MainMenuStyle) drawIndex(screen *menu.Screen, scroll *state.Scroll, index int, selected bool) {
	e := screen.Entries[index]
	if e.Row != 0 {
		m.drawEntry(e, selected, m.itemX[index], m.row1Y)
		return
	}
	if !scroll.Visible(index) {
		return
	}
	m.drawEntry(e, selected, m.itemX[index-scroll.FirstVisible], m.row0Y)
}

func (m *MainMenuStyle) paintLabel(screen *menu.Screen, scroll *state.Scroll) {
	if m.settings.Hidden(settings.HideLabel) {
		return
	}
	m.centered("", m.textY)
	m.centered(screen.Entries[scroll.Current].Title, m.textY)
}

// centered draws text over the background, horizontally centered. Empty
// text erases the line.
func (m *MainMenuStyle) centered(text string, y int) {
	width, _ := m.d.Canvas.Size()
	m.d.Canvas.DrawTextOver(text, (width-m.d.Canvas.MeasureText(text))/2, y)
}

// paintArrows shows or erases the scroll indicators either side of row 0.
func (m *MainMenuStyle) paintArrows(scroll *state.Scroll) {
	width, _ := m.d.Canvas.Size()
	size := m.settings.SmallIconSize()
	left := m.arrow(0, "arrow_left", size)
	right := m.arrow(1, "arrow_right", size)

	posX := m.row0X - TileXSpacing
	midY := m.row0Y + m.tiles[0]/2
	rightX := (width+(m.tiles[0]+TileXSpacing)*scroll.MaxVisible)/2 + TileXSpacing
	hidden := m.settings.Hidden(settings.HideArrows)

	lb := left.Bounds()
	lx, ly := posX-lb.Dx(), midY-lb.Dy()/2
	if scroll.FirstVisible > 0 && !hidden {
		m.d.Canvas.Draw(left, lx, ly)
	} else {
		m.d.Canvas.Restore(image.Rect(lx, ly, lx+lb.Dx(), ly+lb.Dy()))
	}

	rb := right.Bounds()
	ry := midY - rb.Dy()/2
	if scroll.LastVisible < m.row0Loaders-1 && !hidden {
		m.d.Canvas.Draw(right, rightX, ry)
	} else {
		m.d.Canvas.Restore(image.Rect(rightX, ry, rightX+rb.Dx(), ry+rb.Dy()))
	}
}

func (m *MainMenuStyle) arrow(i int, name string, size int) image.Image {
	if m.arrows[i] == nil {
		m.arrows[i] = icons.Find(m.d.Icons, m.d.Files, m.d.IconsDir, name, size)
		if m.arrows[i] == nil {
			m.arrows[i] = icons.Arrow(size, i == 0)
		}
	}
	return m.arrows[i]
}

// ItemPositions returns the x coordinate of each tile slot, for tests and
// hit testing.
func (m *MainMenuStyle) ItemPositions() []int {
	return append([]int(nil), m.itemX...)
}
