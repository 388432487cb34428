// Package widget manages overlay widgets drawn above the scene.
//
// Widgets are registered in order and composited last-writer-wins. At most
// one widget holds focus and receives input. Callbacks never mutate registry
// state directly: they queue Commands that the engine applies at the frame's
// sync point. A widget whose callback panics is disabled and never called again.
package widget

import (
	"time"

	"github.com/lixenwraith/termsight/input"
	"github.com/lixenwraith/termsight/terminal/tui"
)

// ID identifies a registered widget, zero is never issued
type ID uint64

// Time is passed to Update once per frame
type Time struct {
	Now   time.Time
	Delta time.Duration
	Frame uint64
}

// Widget is an overlay element
type Widget interface {
	// Render draws into r, which has already been cleared
	Render(r tui.Region)
	// HandleEvent receives input while the widget is focused and enabled
	HandleEvent(ev input.Event, cmds *Commands)
	// Update runs every frame regardless of focus
	Update(t Time, cmds *Commands)
}

// Visibility is implemented by widgets that can hide without being removed
// A hidden widget neither clears nor paints its area
type Visibility interface {
	Visible() bool
}

// FocusListener is notified when the widget gains or loses focus
type FocusListener interface {
	FocusChanged(focused bool)
}

// Area resolves a widget's rectangle for the current screen size
type Area func(screenW, screenH int) tui.Rect

// Full covers the whole screen
func Full() Area {
	return func(w, h int) tui.Rect { return tui.Rect{W: w, H: h} }
}

// Fixed always returns r, clipping happens at render time
func Fixed(r tui.Rect) Area {
	return func(int, int) tui.Rect { return r }
}

// BottomRows covers the last n rows
func BottomRows(n int) Area {
	return func(w, h int) tui.Rect {
		n := min(n, h)
		return tui.Rect{Y: h - n, W: w, H: n}
	}
}

// Centered is a w x h box in the middle of the screen, shrunk to fit
func Centered(bw, bh int) Area {
	return func(w, h int) tui.Rect {
		bw, bh := min(bw, w), min(bh, h)
		return tui.Rect{X: (w - bw) / 2, Y: (h - bh) / 2, W: bw, H: bh}
	}
}

// Corner is a w x h box at anchor a with margin cells of padding
func Corner(a tui.Anchor, bw, bh, margin int) Area {
	return func(w, h int) tui.Rect {
		bw, bh := min(bw, w), min(bh, h)
		x, y := margin, margin
		if a == tui.AnchorTopRight || a == tui.AnchorBottomRight {
			x = w - bw - margin
		}
		if a == tui.AnchorBottomLeft || a == tui.AnchorBottomRight {
			y = h - bh - margin
		}
		return tui.Rect{X: max(x, 0), Y: max(y, 0), W: bw, H: bh}
	}
}
