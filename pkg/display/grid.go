package display

import (
	"strconv"
	"strings"
)

// Grid is an in-memory character display of fixed size. Characters written
// past the right edge, or while the cursor is outside the grid, are dropped.
type Grid struct {
	cols  int
	rows  int
	cells [][]rune
	col   int
	row   int
}

// NewGrid creates a blank grid. A negative size is treated as zero.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{cols: max(cols, 0), rows: max(rows, 0)}
	g.cells = make([][]rune, g.rows)
	for i := range g.cells {
		g.cells[i] = make([]rune, g.cols)
	}
	g.Clear()
	return g
}

func (g *Grid) Size() (int, int) {
	return g.cols, g.rows
}

func (g *Grid) SetCursor(col, row int) {
	g.col = col
	g.row = row
}

func (g *Grid) Cursor() (int, int) {
	return g.col, g.row
}

func (g *Grid) Print(s string) {
	for _, r := range s {
		g.put(r)
	}
}

func (g *Grid) PrintInt(n int) {
	g.Print(strconv.Itoa(n))
}

func (g *Grid) put(r rune) {
	if g.row >= 0 && g.row < g.rows && g.col >= 0 && g.col < g.cols {
		g.cells[g.row][g.col] = r
	}
	g.col++
}

// Clear blanks every cell and homes the cursor.
func (g *Grid) Clear() {
	for _, line := range g.cells {
		for i := range line {
			line[i] = ' '
		}
	}
	g.col, g.row = 0, 0
}

// Line returns row without trailing blanks, or "" when row is off the grid.
func (g *Grid) Line(row int) string {
	if row < 0 || row >= g.rows {
		return ""
	}
	return strings.TrimRight(string(g.cells[row]), " ")
}

func (g *Grid) String() string {
	lines := make([]string, g.rows)
	for i := range lines {
		lines[i] = g.Line(i)
	}
	return strings.Join(lines, "\n")
}
