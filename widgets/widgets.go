// Package widgets provides the overlay widgets bundled with termsight:
// a status bar, a key help panel, a dither control, a metrics panel, and toasts.
package widgets

import (
	"github.com/lixenwraith/termsight/input"
	"github.com/lixenwraith/termsight/terminal/tui"
	"github.com/lixenwraith/termsight/widget"
)

// passive provides no-op input and update callbacks
type passive struct{}

func (passive) HandleEvent(input.Event, *widget.Commands) {}
func (passive) Update(widget.Time, *widget.Commands)      {}

// toggle is embedded by widgets that can be shown and hidden
type toggle struct {
	visible bool
}

func (t *toggle) Visible() bool      { return t.visible }
func (t *toggle) SetVisible(on bool) { t.visible = on }
func (t *toggle) Toggle()            { t.visible = !t.visible }

// paneStyles returns body and border styles, the border is highlighted when focused
func paneStyles(th tui.Theme, focused bool) (body, border tui.Style) {
	body = th.Text()
	border = tui.NewStyle(th.Border, th.Bg)
	if focused {
		body = tui.NewStyle(th.Fg, th.FocusBg)
		border = tui.NewStyle(th.Focus, th.FocusBg)
	}
	return body, border
}
