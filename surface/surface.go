// Package surface defines the offscreen luminance target a scene renders into.
//
// A surface of C x R terminal cells is backed by a (C*CellWidth) x (R*CellHeight)
// 8-bit image so that every cell maps onto one braille glyph of 2x4 dots.
package surface

import (
	"errors"
	"fmt"
	"image"
)

// Pixel block covered by one terminal cell
const (
	CellWidth  = 2
	CellHeight = 4
)

// ErrInvalidSize is returned for non-positive cell dimensions
var ErrInvalidSize = errors.New("invalid surface size")

// Handle identifies a surface owned by a renderer, zero is never issued
type Handle uint64

// Surface is a render target sized in terminal cells
type Surface struct {
	Handle Handle
	Cols   int
	Rows   int
	Pix    *image.Gray
}

// PixelSize returns the pixel dimensions of a cols x rows cell grid
func PixelSize(cols, rows int) (width, height int, err error) {
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d cells", ErrInvalidSize, cols, rows)
	}
	return cols * CellWidth, rows * CellHeight, nil
}

// New allocates a zeroed surface for the cell grid
func New(h Handle, cols, rows int) (*Surface, error) {
	w, hgt, err := PixelSize(cols, rows)
	if err != nil {
		return nil, err
	}
	return &Surface{
		Handle: h,
		Cols:   cols,
		Rows:   rows,
		Pix:    image.NewGray(image.Rect(0, 0, w, hgt)),
	}, nil
}

// Width returns pixel width
func (s *Surface) Width() int { return s.Cols * CellWidth }

// Height returns pixel height
func (s *Surface) Height() int { return s.Rows * CellHeight }

// Matches reports whether the surface already covers cols x rows cells
func (s *Surface) Matches(cols, rows int) bool {
	return s != nil && s.Cols == cols && s.Rows == rows
}
