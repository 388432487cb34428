package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
	ColorModeMono                       // attributes only
)

// String returns the flag spelling of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorModeTrueColor:
		return "truecolor"
	case ColorModeMono:
		return "mono"
	default:
		return "256"
	}
}

// ParseColorMode resolves a flag value; "auto" and empty detect from the environment
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	case "256":
		return ColorMode256, nil
	case "mono", "none":
		return ColorModeMono, nil
	}
	return ColorMode256, fmt.Errorf("unknown color mode %q", s)
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	switch termenv.EnvColorProfile() {
	case termenv.TrueColor:
		return ColorModeTrueColor
	case termenv.Ascii:
		return ColorModeMono
	default:
		// ANSI terminals are painted through the 256 palette, tcell downsamples further
		return ColorMode256
	}
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// ParseHex parses "#rrggbb" or "rrggbb"
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex formats color as "#rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Color cube values for 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

func cubeIndex(v uint8) int {
	best, bestDist := 0, 256
	for i, c := range cubeValues {
		if d := absInt(int(v) - int(c)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 converts RGB to nearest 256-color palette index
func RGBTo256(c RGB) uint8 {
	ri, gi, bi := cubeIndex(c.R), cubeIndex(c.G), cubeIndex(c.B)
	cubeDist := absInt(int(c.R)-int(cubeValues[ri])) +
		absInt(int(c.G)-int(cubeValues[gi])) +
		absInt(int(c.B)-int(cubeValues[bi]))
	cube := uint8(16 + 36*ri + 6*gi + bi)

	// Grayscale ramp 232-255 covers luminance 8..238 in steps of 10
	gray := (int(c.R) + int(c.G) + int(c.B)) / 3
	if gray < 4 || gray > 243 {
		return cube
	}
	grayIdx := (gray - 8 + 5) / 10
	if grayIdx < 0 {
		grayIdx = 0
	}
	if grayIdx > 23 {
		grayIdx = 23
	}
	level := 8 + grayIdx*10
	grayDist := absInt(int(c.R)-level) + absInt(int(c.G)-level) + absInt(int(c.B)-level)
	if grayDist < cubeDist {
		return uint8(232 + grayIdx)
	}
	return cube
}

// tcellColor converts RGB to a tcell color for the given mode
func tcellColor(c RGB, mode ColorMode) tcell.Color {
	if mode == ColorMode256 {
		return tcell.PaletteColor(int(RGBTo256(c)))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cellStyle converts cell colors and attributes to a tcell style
func cellStyle(c Cell, mode ColorMode) tcell.Style {
	st := tcell.StyleDefault
	if mode != ColorModeMono {
		if c.Attrs&AttrFgDefault == 0 {
			st = st.Foreground(tcellColor(c.Fg, mode))
		}
		if c.Attrs&AttrBgDefault == 0 {
			st = st.Background(tcellColor(c.Bg, mode))
		}
	}
	if c.Attrs&AttrStyle == 0 {
		return st
	}
	return st.
		Bold(c.Attrs&AttrBold != 0).
		Dim(c.Attrs&AttrDim != 0).
		Italic(c.Attrs&AttrItalic != 0).
		Underline(c.Attrs&AttrUnderline != 0).
		Blink(c.Attrs&AttrBlink != 0).
		Reverse(c.Attrs&AttrReverse != 0)
}
