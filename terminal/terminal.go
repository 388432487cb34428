package terminal

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

var (
	// ErrNotTerminal is returned when stdin or stdout is not attached to a TTY
	ErrNotTerminal = errors.New("not a terminal")

	// ErrQuery is returned when the terminal dimensions cannot be determined
	ErrQuery = errors.New("terminal size query failed")
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrFgDefault Attr = 1 << 6 // Fg is ignored, terminal default foreground
	AttrBgDefault Attr = 1 << 7 // Bg is ignored, terminal default background
)

// AttrStyle masks only the style bits (excludes color flags)
const AttrStyle Attr = AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Sizer reports terminal dimensions in cells
type Sizer interface {
	// QuerySize returns columns and rows, or an error wrapping ErrQuery
	QuerySize() (cols, rows int, err error)
}

// Terminal provides low-level terminal access
type Terminal interface {
	Sizer

	// Init enters raw mode and alternate screen, enables mouse capture and keyboard enhancement
	Init() error

	// Fini restores terminal state in reverse order. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// ColorMode returns the color capability used for painting
	ColorMode() ColorMode

	// Flush paints the cell buffer, only cells changed since the previous flush are written
	// Cells are row-major: cells[y*width + x]
	Flush(cells []Cell, width, height int)

	// Sync forces a full redraw on the next flush
	Sync()

	// PollEvent blocks until the next input event, returns nil once finalized
	PollEvent() tcell.Event

	// PostEvent injects a synthetic event
	PostEvent(ev tcell.Event) error
}
