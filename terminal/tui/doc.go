// Package tui provides immediate-mode drawing primitives for overlay widgets.
//
// Core abstraction is Region, a rectangular window into a row-major cell buffer.
// All drawing is relative to the region origin and clipped to its bounds, so a
// widget can never paint outside the area it was handed.
//
//	fb := render.NewFrameBuffer(w, h)
//	root := fb.Region()
//	panel := tui.Center(root, 30, 5)
//	inner := panel.Pane(tui.PaneOpts{Title: "Help", Border: tui.LineRounded, Style: style})
//	inner.Text(0, 0, "q: quit", style)
package tui
