package grid

import (
	"fmt"
	"strings"
)

// Grid is a dense row-major tile map, index = y*Width + x
// Not safe for concurrent use, the owning level instance serializes access
type Grid struct {
	Width  int
	Height int
	Cells  []Tile
}

// New creates an all-Empty grid
func New(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Tile, width*height),
	}
}

// FromRows builds a grid from numeric rows as written in the level tables
func FromRows(rows [][]Tile) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid has no cells")
	}
	g := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(row), g.Width)
		}
		for x, t := range row {
			if !t.Valid() {
				return nil, fmt.Errorf("row %d col %d: unknown tile %d", y, x, uint8(t))
			}
			g.Cells[y*g.Width+x] = t
		}
	}
	return g, nil
}

// Parse builds a grid from glyph rows (see Tile.Glyph)
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid has no cells")
	}
	width := len([]rune(rows[0]))
	g := New(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			t, ok := ParseTile(r)
			if !ok {
				return nil, fmt.Errorf("row %d col %d: unknown glyph %q", y, x, r)
			}
			g.Cells[y*width+x] = t
		}
	}
	return g, nil
}

// Rows renders the grid back to glyph rows
func (g *Grid) Rows() []string {
	rows := make([]string, g.Height)
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		sb.Reset()
		for x := 0; x < g.Width; x++ {
			sb.WriteRune(g.Cells[y*g.Width+x].Glyph())
		}
		rows[y] = sb.String()
	}
	return rows
}

// Clone returns a deep copy
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Cells: make([]Tile, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}

// InBounds reports whether (x, y) lies on the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Passable is false out of bounds and on walls, true otherwise
func (g *Grid) Passable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.Cells[y*g.Width+x] != Wall
}

// At returns the tile at (x, y)
// Callers bounds-check through Passable or InBounds first, out of bounds panics
func (g *Grid) At(x, y int) Tile {
	g.mustBeInBounds(x, y)
	return g.Cells[y*g.Width+x]
}

// AtPoint is At for a Point
func (g *Grid) AtPoint(p Point) Tile {
	return g.At(p.X, p.Y)
}

// Set writes a tile, out of bounds panics
func (g *Grid) Set(x, y int, t Tile) {
	g.mustBeInBounds(x, y)
	g.Cells[y*g.Width+x] = t
}

// Clear sets the cell to Empty, used when a conflict, powerup or bug is consumed
func (g *Grid) Clear(x, y int) {
	g.Set(x, y, Empty)
}

// Find returns the coordinates of every cell holding t, in row-major order
func (g *Grid) Find(t Tile) []Point {
	var pts []Point
	for i, c := range g.Cells {
		if c == t {
			pts = append(pts, Point{X: i % g.Width, Y: i / g.Width})
		}
	}
	return pts
}

// Count returns the number of cells holding t
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, c := range g.Cells {
		if c == t {
			n++
		}
	}
	return n
}

// ClearAll empties every cell holding t and returns the cleared coordinates
func (g *Grid) ClearAll(t Tile) []Point {
	pts := g.Find(t)
	for _, p := range pts {
		g.Cells[p.Y*g.Width+p.X] = Empty
	}
	return pts
}

func (g *Grid) mustBeInBounds(x, y int) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: cell (%d,%d) out of bounds %dx%d", x, y, g.Width, g.Height))
	}
}
