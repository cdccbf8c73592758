package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column controls how one column is laid out. A positive Max truncates
// longer cells with an ellipsis.
type Column struct {
	Align Alignment
	Max   int
}

const tail = "…"

// Format returns the rows padded to the widest cell in each column, in
// terminal cells. Rows shorter than the first are padded with empty cells.
func Format(rows [][]string, columns []Column) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for i, row := range rows {
		cells[i] = make([]string, colCount)
		for c := 0; c < colCount && c < len(row); c++ {
			cell := row[c]
			if c < len(columns) && columns[c].Max > 0 && cellWidth(cell) > columns[c].Max {
				cell = truncate.StringWithTail(cell, uint(columns[c].Max), tail)
			}
			cells[i][c] = cell
			widths[c] = max(widths[c], cellWidth(cell))
		}
	}
	out := make([]string, len(cells))
	for i, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := strings.Repeat(" ", max(widths[c]-cellWidth(cell), 0))
			if c < len(columns) && columns[c].Align == AlignRight {
				b.WriteString(pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				b.WriteString(pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

func cellWidth(text string) int {
	return runewidth.StringWidth(text)
}
