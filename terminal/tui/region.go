package tui

import "github.com/lixenwraith/termsight/terminal"

// Rect is an absolute rectangle in cell coordinates
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether (x, y) lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of two rectangles, zero-sized if disjoint
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Region represents a rectangular area within a cell buffer
// All coordinates are relative to the region's origin
type Region struct {
	Cells  []terminal.Cell
	TotalW int // Total width of the underlying cell buffer
	X, Y   int // Absolute position in cell buffer
	W, H   int // Region dimensions
}

// NewRegion creates a region referencing a cell slice, clipped to the buffer
func NewRegion(cells []terminal.Cell, totalW int, rect Rect) Region {
	totalH := 0
	if totalW > 0 {
		totalH = len(cells) / totalW
	}
	rect = rect.Intersect(Rect{W: totalW, H: totalH})
	return Region{
		Cells:  cells,
		TotalW: totalW,
		X:      rect.X,
		Y:      rect.Y,
		W:      max(rect.W, 0),
		H:      max(rect.H, 0),
	}
}

// Rect returns the absolute rectangle covered by the region
func (r Region) Rect() Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// Sub returns a nested region with coordinates relative to parent, clipped to parent bounds
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}

	return Region{
		Cells:  r.Cells,
		TotalW: r.TotalW,
		X:      r.X + x,
		Y:      r.Y + y,
		W:      max(w, 0),
		H:      max(h, 0),
	}
}

// Inset returns a region shrunk by n cells on all sides
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Cell sets a single cell with bounds checking
func (r Region) Cell(x, y int, ch rune, style Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	absX := r.X + x
	if uint(absX) >= uint(r.TotalW) {
		return
	}
	idx := (r.Y+y)*r.TotalW + absX
	if uint(idx) < uint(len(r.Cells)) {
		r.Cells[idx] = style.Cell(ch)
	}
}

// At returns the cell at region-relative (x, y), zero cell if out of bounds
func (r Region) At(x, y int) terminal.Cell {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return terminal.Cell{}
	}
	idx := (r.Y+y)*r.TotalW + r.X + x
	if uint(idx) >= uint(len(r.Cells)) {
		return terminal.Cell{}
	}
	return r.Cells[idx]
}

// Fill overwrites every cell of the region with spaces in style
func (r Region) Fill(style Style) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.Cell(x, y, ' ', style)
		}
	}
}

// Clear fills region with spaces in terminal default colors
func (r Region) Clear() {
	r.Fill(DefaultStyle)
}
