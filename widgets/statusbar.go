package widgets

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/termsight/status"
	"github.com/lixenwraith/termsight/terminal/tui"
)

// StatusBar is a one-row summary of the engine metrics
type StatusBar struct {
	passive
	Theme tui.Theme

	fps    *status.AtomicFloat
	frame  *atomic.Int64
	paused *atomic.Bool
	cols   *atomic.Int64
	rows   *atomic.Int64
	level  *atomic.Int64
	method *status.AtomicString
	scene  *status.AtomicString
	focus  *status.AtomicString
	faults *atomic.Int64
}

// NewStatusBar caches metric pointers from stats
func NewStatusBar(stats *status.Registry) *StatusBar {
	return &StatusBar{
		Theme:  tui.DefaultTheme,
		fps:    stats.Floats.Get(status.KeyFPS),
		frame:  stats.Ints.Get(status.KeyFrame),
		paused: stats.Bools.Get(status.KeyPaused),
		cols:   stats.Ints.Get(status.KeyCols),
		rows:   stats.Ints.Get(status.KeyRows),
		level:  stats.Ints.Get(status.KeyDitherLevel),
		method: stats.Strings.Get(status.KeyDitherMethod),
		scene:  stats.Strings.Get(status.KeyScene),
		focus:  stats.Strings.Get(status.KeyFocus),
		faults: stats.Ints.Get(status.KeyFaults),
	}
}

// Left returns the metrics part of the bar
func (s *StatusBar) Left() string {
	return fmt.Sprintf(" %s │ %.0f fps │ %s L%d │ %dx%d",
		s.scene.Load(), s.fps.Get(), s.method.Load(), s.level.Load(), s.cols.Load(), s.rows.Load())
}

// Right returns the state flags and help hint
func (s *StatusBar) Right() string {
	out := ""
	if f := s.focus.Load(); f != "" {
		out += "[" + f + "] "
	}
	if n := s.faults.Load(); n > 0 {
		out += fmt.Sprintf("faults:%d ", n)
	}
	if s.paused.Load() {
		out += "PAUSED "
	}
	return out + "? help "
}

func (s *StatusBar) Render(r tui.Region) {
	style := s.Theme.Status()
	r.Fill(style)
	left := s.Left()
	n := r.Text(0, 0, tui.Truncate(left, r.W), style)

	right := s.Right()
	if n+tui.RuneLen(right) < r.W {
		hint := style.WithFg(s.Theme.HintFg)
		if s.paused.Load() {
			hint = style.WithFg(s.Theme.Warning)
		}
		r.TextRight(0, right, hint)
	}
}
