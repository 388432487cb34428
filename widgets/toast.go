package widgets

import (
	"time"

	"github.com/lixenwraith/termsight/terminal/tui"
	"github.com/lixenwraith/termsight/widget"
)

// DefaultToastTTL is used when Show receives a non-positive ttl
const DefaultToastTTL = 3 * time.Second

// Toast shows a transient notification above the status bar
// A newer message replaces the current one
type Toast struct {
	passive
	message  string
	severity tui.ToastSeverity
	ttl      time.Duration
	expires  time.Time
}

func NewToast() *Toast { return &Toast{} }

// Show displays msg, the expiry clock starts at the next Update
func (t *Toast) Show(msg string, sev tui.ToastSeverity, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	t.message, t.severity, t.ttl = msg, sev, ttl
	t.expires = time.Time{}
}

// Message returns the current message, empty when nothing is shown
func (t *Toast) Message() string { return t.message }

func (t *Toast) Visible() bool { return t.message != "" }

func (t *Toast) Update(now widget.Time, _ *widget.Commands) {
	if t.message == "" {
		return
	}
	if t.expires.IsZero() {
		t.expires = now.Now.Add(t.ttl)
		return
	}
	if !now.Now.Before(t.expires) {
		t.message = ""
	}
}

// Area hugs the message in the bottom right, one row above the status bar
func (t *Toast) Area() widget.Area {
	return func(w, h int) tui.Rect {
		bw := tui.RuneLen(t.message) + 6
		return widget.Corner(tui.AnchorBottomRight, bw, 3, 1)(w, h)
	}
}

func (t *Toast) Render(r tui.Region) {
	r.Toast(tui.ToastOpts{
		Message:  t.message,
		Severity: t.severity,
		Anchor:   tui.AnchorTopLeft,
		Border:   true,
	})
}
