package display

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

// Cell is one console position. Wide runes occupy two cells; the second
// holds a zero rune.
type Cell struct {
	R    rune
	Attr Attr
}

// Grid is an in-memory Console. Back-ends render it; tests inspect it.
type Grid struct {
	mu       sync.Mutex
	cols     int
	rows     int
	cells    [][]Cell
	attr     Attr
	col, row int
	onChange func()
}

// NewGrid returns a cleared grid.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{}
	g.resize(cols, rows)
	return g
}

// OnChange registers a callback run after every mutation, outside the lock.
func (g *Grid) OnChange(fn func()) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

func (g *Grid) changed() {
	g.mu.Lock()
	fn := g.onChange
	g.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (g *Grid) Size() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cols, g.rows
}

// Resize changes the dimensions, keeping the overlapping content.
func (g *Grid) Resize(cols, rows int) {
	g.mu.Lock()
	g.resize(cols, rows)
	g.mu.Unlock()
	g.changed()
}

func (g *Grid) resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
		for c := range cells[r] {
			cells[r][c] = Cell{R: ' '}
			if r < len(g.cells) && c < len(g.cells[r]) {
				cells[r][c] = g.cells[r][c]
			}
		}
	}
	g.cells, g.cols, g.rows = cells, cols, rows
	if g.col >= cols {
		g.col = cols - 1
	}
	if g.row >= rows {
		g.row = rows - 1
	}
}

func (g *Grid) SetAttr(a Attr) {
	g.mu.Lock()
	g.attr = a
	g.mu.Unlock()
}

func (g *Grid) MoveTo(col, row int) {
	g.mu.Lock()
	g.col, g.row = max(col, 0), max(row, 0)
	g.mu.Unlock()
}

// Print writes s at the cursor with the current attribute, clipping at the
// right edge.
func (g *Grid) Print(s string) {
	g.mu.Lock()
	if g.row < g.rows {
		line := g.cells[g.row]
		for _, r := range s {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if g.col+w > g.cols {
				break
			}
			line[g.col] = Cell{R: r, Attr: g.attr}
			if w == 2 {
				line[g.col+1] = Cell{R: 0, Attr: g.attr}
			}
			g.col += w
		}
	}
	g.mu.Unlock()
	g.changed()
}

func (g *Grid) Clear() {
	g.mu.Lock()
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = Cell{R: ' ', Attr: AttrBasic}
		}
	}
	g.col, g.row = 0, 0
	g.mu.Unlock()
	g.changed()
}

// CellAt returns the cell at col, row.
func (g *Grid) CellAt(col, row int) Cell {
	g.mu.Lock()
	defer g.mu.Unlock()
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return Cell{}
	}
	return g.cells[row][col]
}

// Lines returns the plain text of every row with trailing blanks removed.
func (g *Grid) Lines() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, g.rows)
	for r, line := range g.cells {
		var b strings.Builder
		for _, cell := range line {
			if cell.R != 0 {
				b.WriteRune(cell.R)
			}
		}
		out[r] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// Render joins the rows, passing each run of equally attributed cells
// through style.
func (g *Grid) Render(style func(Attr, string) string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out strings.Builder
	for r, line := range g.cells {
		if r > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		current := AttrBasic
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style != nil {
				out.WriteString(style(current, run.String()))
			} else {
				out.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cell := range line {
			if cell.Attr != current {
				flush()
				current = cell.Attr
			}
			if cell.R != 0 {
				run.WriteRune(cell.R)
			}
		}
		flush()
	}
	return out.String()
}
