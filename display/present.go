package display

import (
	"image"

	"github.com/lixenwraith/termsight/render"
	"github.com/lixenwraith/termsight/surface"
	"github.com/lixenwraith/termsight/terminal/tui"
)

// BrailleBase is the blank braille pattern, dots are added as bits
const BrailleBase = 0x2800

// LitThreshold is the luminance at which a pixel sets its dot
const LitThreshold = 128

// brailleBits maps (x, y) inside a 2x4 block to its dot bit
// Dots 1,2,3,7 run down the left column, 4,5,6,8 down the right
var brailleBits = [surface.CellHeight][surface.CellWidth]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// ramp orders glyphs by visual density for non-braille block sizes
var ramp = []rune(" .:-=+*#%@")

// Present converts a luminance image into cells, one cell per cellW x cellH block
// Trailing pixels that do not fill a whole block are ignored
func Present(pix *image.Gray, cellW, cellH int, style tui.Style) *render.FrameBuffer {
	if pix == nil || cellW <= 0 || cellH <= 0 {
		return render.NewFrameBuffer(0, 0)
	}
	cols := pix.Rect.Dx() / cellW
	rows := pix.Rect.Dy() / cellH
	fb := render.NewFrameBuffer(cols, rows)
	if fb.Empty() {
		return fb
	}

	braille := cellW == surface.CellWidth && cellH == surface.CellHeight
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			var ch rune
			if braille {
				ch = brailleGlyph(pix, cx*cellW, cy*cellH)
			} else {
				ch = rampGlyph(pix, cx*cellW, cy*cellH, cellW, cellH)
			}
			fb.Set(cx, cy, style.Cell(ch))
		}
	}
	return fb
}

// brailleGlyph encodes the 2x4 block at pixel offset (px, py)
func brailleGlyph(pix *image.Gray, px, py int) rune {
	var bits uint8
	for y := 0; y < surface.CellHeight; y++ {
		row := pix.Pix[(py+y)*pix.Stride+px:]
		for x := 0; x < surface.CellWidth; x++ {
			if row[x] >= LitThreshold {
				bits |= brailleBits[y][x]
			}
		}
	}
	return rune(BrailleBase + int(bits))
}

// rampGlyph picks a density glyph by mean intensity of the block
func rampGlyph(pix *image.Gray, px, py, w, h int) rune {
	sum := 0
	for y := 0; y < h; y++ {
		row := pix.Pix[(py+y)*pix.Stride+px:]
		for x := 0; x < w; x++ {
			sum += int(row[x])
		}
	}
	mean := sum / (w * h)
	return ramp[mean*len(ramp)/256]
}
