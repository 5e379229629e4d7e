package render

import (
	"github.com/gdamore/tcell/v2"
)

// Attr is a subset of text attributes carried by a cell
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << iota
	AttrReverse
	AttrUnderline
)

// Cell is one terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// RenderBuffer is a compositor cell array flushed to the screen once per frame
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
	blank  Cell
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int, bg RGB) *RenderBuffer {
	b := &RenderBuffer{blank: Cell{Rune: ' ', Fg: RGBWhite, Bg: bg}}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to the blank cell using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = b.blank
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Size returns the buffer dimensions
func (b *RenderBuffer) Size() (int, int) {
	return b.width, b.height
}

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a cell, out of bounds writes are dropped
func (b *RenderBuffer) Set(x, y int, r rune, fg, bg RGB, attrs Attr) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Fg: fg, Bg: bg, Attrs: attrs}
}

// Get returns the cell at (x, y), the blank cell when out of bounds
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return b.blank
	}
	return b.cells[y*b.width+x]
}

// SetFg recolors the rune at (x, y) keeping its background
func (b *RenderBuffer) SetFg(x, y int, r rune, fg RGB, attrs Attr) {
	if !b.inBounds(x, y) {
		return
	}
	c := &b.cells[y*b.width+x]
	c.Rune, c.Fg, c.Attrs = r, fg, attrs
}

// Text writes s starting at (x, y) keeping existing backgrounds, returns the column after the text
func (b *RenderBuffer) Text(x, y int, s string, fg RGB, attrs Attr) int {
	for _, r := range s {
		b.SetFg(x, y, r, fg, attrs)
		x++
	}
	return x
}

// Fill paints a rectangle with bg
func (b *RenderBuffer) Fill(x, y, w, h int, bg RGB) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.Set(col, row, ' ', b.blank.Fg, bg, AttrNone)
		}
	}
}

// Box paints a filled rectangle with a single-line border
func (b *RenderBuffer) Box(x, y, w, h int, border, bg RGB) {
	if w < 2 || h < 2 {
		return
	}
	b.Fill(x, y, w, h, bg)
	for col := x + 1; col < x+w-1; col++ {
		b.Set(col, y, '─', border, bg, AttrNone)
		b.Set(col, y+h-1, '─', border, bg, AttrNone)
	}
	for row := y + 1; row < y+h-1; row++ {
		b.Set(x, row, '│', border, bg, AttrNone)
		b.Set(x+w-1, row, '│', border, bg, AttrNone)
	}
	b.Set(x, y, '┌', border, bg, AttrNone)
	b.Set(x+w-1, y, '┐', border, bg, AttrNone)
	b.Set(x, y+h-1, '└', border, bg, AttrNone)
	b.Set(x+w-1, y+h-1, '┘', border, bg, AttrNone)
}

// Dim darkens every cell, used behind modals
func (b *RenderBuffer) Dim(factor float64) {
	for i := range b.cells {
		b.cells[i].Fg = b.cells[i].Fg.Scale(factor)
		b.cells[i].Bg = b.cells[i].Bg.Scale(factor)
	}
}

// FlushToScreen copies the buffer to the screen
func (b *RenderBuffer) FlushToScreen(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			style := tcell.StyleDefault.Foreground(c.Fg.Tcell()).Background(c.Bg.Tcell())
			if c.Attrs&AttrBold != 0 {
				style = style.Bold(true)
			}
			if c.Attrs&AttrReverse != 0 {
				style = style.Reverse(true)
			}
			if c.Attrs&AttrUnderline != 0 {
				style = style.Underline(true)
			}
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}
