package render

import (
	"github.com/lixenwraith/termsight/terminal"
	"github.com/lixenwraith/termsight/terminal/tui"
)

// blankCell is the cleared state: no glyph, terminal default colors
var blankCell = terminal.Cell{Attrs: terminal.AttrFgDefault | terminal.AttrBgDefault}

// FrameBuffer is a row-major cell grid rebuilt every cycle
// Uses []terminal.Cell directly to allow zero-copy export to the terminal
type FrameBuffer struct {
	cells  []terminal.Cell
	width  int
	height int
}

// NewFrameBuffer creates a cleared buffer with the specified dimensions
// Non-positive dimensions yield an empty buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	b := &FrameBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *FrameBuffer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]terminal.Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to blank using exponential copy
func (b *FrameBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = blankCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Width returns buffer width in cells
func (b *FrameBuffer) Width() int { return b.width }

// Height returns buffer height in cells
func (b *FrameBuffer) Height() int { return b.height }

// Empty reports whether the buffer holds no cells
func (b *FrameBuffer) Empty() bool { return len(b.cells) == 0 }

func (b *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set overwrites a cell, out of bounds writes are dropped
func (b *FrameBuffer) Set(x, y int, c terminal.Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
}

// Get returns the cell at (x, y), blank if out of bounds
func (b *FrameBuffer) Get(x, y int) terminal.Cell {
	if !b.inBounds(x, y) {
		return blankCell
	}
	return b.cells[y*b.width+x]
}

// Cells exposes the backing slice for flushing
func (b *FrameBuffer) Cells() []terminal.Cell {
	return b.cells
}

// Region returns a drawing region covering the whole buffer
func (b *FrameBuffer) Region() tui.Region {
	return tui.NewRegion(b.cells, b.width, tui.Rect{W: b.width, H: b.height})
}

// Blit copies src into the buffer at the origin, clipped to both
func (b *FrameBuffer) Blit(src *FrameBuffer) {
	if src == nil {
		return
	}
	w := min(b.width, src.width)
	h := min(b.height, src.height)
	for y := 0; y < h; y++ {
		copy(b.cells[y*b.width:y*b.width+w], src.cells[y*src.width:y*src.width+w])
	}
}

// FlushToTerminal hands the buffer to the terminal, which diffs and paints changed cells
func (b *FrameBuffer) FlushToTerminal(term terminal.Terminal) {
	term.Flush(b.cells, b.width, b.height)
}
