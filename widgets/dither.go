package widgets

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/termsight/dither"
	"github.com/lixenwraith/termsight/input"
	"github.com/lixenwraith/termsight/terminal/tui"
	"github.com/lixenwraith/termsight/widget"
)

// DitherControl adjusts dither level and method while focused
//
// Keys: + = up right raise, - down left lower, m tab switch method,
// esc enter release focus. Changes reach the display through onChange,
// which runs at the next command sync point.
type DitherControl struct {
	Theme    tui.Theme
	level    uint32
	method   dither.Method
	focused  bool
	onChange func(level uint32, method dither.Method)
}

// DitherControl pane size in cells
const (
	DitherControlW = 26
	DitherControlH = 4
)

func NewDitherControl(level uint32, method dither.Method, onChange func(uint32, dither.Method)) *DitherControl {
	return &DitherControl{
		Theme:    tui.DefaultTheme,
		level:    dither.ClampLevel(level),
		method:   method,
		onChange: onChange,
	}
}

// Area places the control in the top right corner
func (d *DitherControl) Area() widget.Area {
	return widget.Corner(tui.AnchorTopRight, DitherControlW, DitherControlH, 1)
}

// Sync updates the shown values after an external reconfigure
func (d *DitherControl) Sync(level uint32, method dither.Method) {
	d.level = dither.ClampLevel(level)
	d.method = method
}

func (d *DitherControl) Level() uint32         { return d.level }
func (d *DitherControl) Method() dither.Method { return d.method }
func (d *DitherControl) Focused() bool         { return d.focused }
func (d *DitherControl) Name() string          { return "dither" }

func (d *DitherControl) FocusChanged(focused bool) { d.focused = focused }

func (d *DitherControl) HandleEvent(ev input.Event, cmds *widget.Commands) {
	if ev.Kind != input.KindKey {
		return
	}
	level, method := d.level, d.method
	switch {
	case ev.IsRune('+'), ev.IsRune('='), ev.IsKey(input.KeyUp), ev.IsKey(input.KeyRight):
		if level < dither.MaxLevel {
			level++
		}
	case ev.IsRune('-'), ev.IsKey(input.KeyDown), ev.IsKey(input.KeyLeft):
		if level > 0 {
			level--
		}
	case ev.IsRune('m'), ev.IsKey(input.KeyTab):
		if method == dither.MethodBayer {
			method = dither.MethodFloydSteinberg
		} else {
			method = dither.MethodBayer
		}
	case ev.IsKey(input.KeyEscape), ev.IsKey(input.KeyEnter):
		cmds.Unfocus()
		return
	default:
		return
	}
	if level == d.level && method == d.method {
		return
	}
	d.level, d.method = level, method
	if d.onChange != nil {
		cmds.Do(func() { d.onChange(level, method) })
	}
}

func (d *DitherControl) Update(widget.Time, *widget.Commands) {}

// Bar draws the level as filled and empty blocks
func (d *DitherControl) Bar() string {
	return strings.Repeat("■", int(d.level)) + strings.Repeat("□", int(dither.MaxLevel-d.level))
}

func (d *DitherControl) Render(r tui.Region) {
	body, border := paneStyles(d.Theme, d.focused)
	inner := r.Pane(tui.PaneOpts{Title: "Dither", Border: tui.LineRounded, Style: body, BorderStyle: &border})
	inner = inner.Sub(1, 0, inner.W-1, inner.H)
	label := body.WithFg(d.Theme.HintFg)
	inner.Text(0, 0, "method", label)
	inner.Text(7, 0, d.method.String(), body)
	inner.Text(0, 1, "level", label)
	n := inner.Text(7, 1, d.Bar(), body.WithFg(d.Theme.Focus))
	inner.Text(8+n, 1, fmt.Sprintf("%d/%d", d.level, dither.MaxLevel), body)
}
