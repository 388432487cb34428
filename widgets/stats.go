package widgets

import (
	"github.com/lixenwraith/termsight/status"
	"github.com/lixenwraith/termsight/terminal/tui"
	"github.com/lixenwraith/termsight/widget"
)

// Stats shows every registered metric in a top left pane
type Stats struct {
	passive
	toggle
	Theme tui.Theme
	stats *status.Registry
}

func NewStats(stats *status.Registry) *Stats {
	return &Stats{Theme: tui.DefaultTheme, stats: stats}
}

func (s *Stats) Area() widget.Area {
	return func(w, h int) tui.Rect {
		lines := s.stats.Lines()
		bw := len(" Metrics ") + 2
		for _, l := range lines {
			bw = max(bw, tui.RuneLen(l)+4)
		}
		return widget.Corner(tui.AnchorTopLeft, bw, len(lines)+2, 1)(w, h)
	}
}

func (s *Stats) Render(r tui.Region) {
	body, border := paneStyles(s.Theme, false)
	inner := r.Pane(tui.PaneOpts{Title: "Metrics", Border: tui.LineSingle, Style: body, BorderStyle: &border})
	for i, l := range s.stats.Lines() {
		if i >= inner.H {
			break
		}
		inner.Text(1, i, tui.Truncate(l, inner.W-1), body)
	}
}
