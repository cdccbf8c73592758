package ui

import (
	"image"

	"github.com/atomicstack/bootmenu/internal/display"
	"github.com/atomicstack/bootmenu/internal/icons"
	"github.com/atomicstack/bootmenu/internal/logging"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/ui/state"
	"github.com/atomicstack/bootmenu/internal/volume"
)

// Opcode is one request the run loop makes of a render strategy.
type Opcode int

const (
	OpInit Opcode = iota
	OpCleanup
	OpPaintAll
	OpPaintSelection
	OpPaintTimeout
)

var opcodeNames = [...]string{"init", "cleanup", "paint_all", "paint_selection", "paint_timeout"}

func (o Opcode) String() string {
	if int(o) >= 0 && int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return "unknown"
}

// Style renders a screen. Init lays the screen out and initialises scroll;
// the paint opcodes draw from scroll; param carries the timeout message for
// OpPaintTimeout, where "" erases it.
type Style interface {
	Apply(screen *menu.Screen, scroll *state.Scroll, op Opcode, param string)
}

// Tile spacing on the graphical main menu.
const (
	TileXSpacing     = 8
	TileYSpacing     = 16
	TitleIconSpacing = 16
)

// Tiles holds the edge lengths of the row-0 and row-1 selection tiles.
type Tiles [2]int

// DefaultTiles are used until icon sizes are known.
var DefaultTiles = Tiles{144, 64}

// TileSizes derives the tiles from the configured icon sizes.
func TileSizes(s *settings.Settings) Tiles {
	if s == nil {
		return DefaultTiles
	}
	return Tiles{s.BigIconSize() * 9 / 8, s.SmallIconSize() * 4 / 3}
}

// graphicsCapacity is how many row-0 tiles fit across a canvas.
func graphicsCapacity(width int, tiles Tiles) int {
	return width/(tiles[0]+TileXSpacing) - 1
}

// Display bundles what the render strategies draw with. Console is used by
// the text strategy; the graphics strategies use Canvas, loading selection
// and arrow images from Files.
type Display struct {
	Console  display.Console
	Canvas   display.Canvas
	Icons    icons.Provider
	Files    volume.FileSource
	IconsDir string
}

// Styles pairs the main-menu strategy with the one used for sub-menus.
type Styles struct {
	Main Style
	Sub  Style
}

// SelectStyles picks the strategies once: graphics uses the icon main menu
// and windowed sub-menus, otherwise both are text.
func SelectStyles(graphics bool, d Display, s *settings.Settings) Styles {
	if s == nil {
		defaults := settings.Defaults()
		s = &defaults
	}
	if d.Icons == nil {
		d.Icons = icons.Default{}
	}
	if graphics && d.Canvas != nil {
		tiles := TileSizes(s)
		return Styles{
			Main: NewMainMenuStyle(d, s, tiles),
			Sub:  NewGraphicsStyle(d.Canvas, s, tiles),
		}
	}
	text := NewTextStyle(d.Console, s)
	return Styles{Main: text, Sub: text}
}

func clearToBackground(c display.Canvas) {
	w, h := c.Size()
	c.Restore(image.Rect(0, 0, w, h))
}

func flush(c display.Canvas) {
	if err := c.Flush(); err != nil {
		log := logging.Logger()
		log.Warn().Err(err).Msg("flush canvas")
	}
}
