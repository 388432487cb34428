package tui

import "github.com/lixenwraith/termsight/terminal"

// ToastSeverity defines message type for styling
type ToastSeverity uint8

const (
	ToastInfo ToastSeverity = iota
	ToastSuccess
	ToastWarning
	ToastError
)

var toastIcons = [...]rune{'ℹ', '✓', '⚠', '✗'}

// toastColors per severity: fg, bg, icon
var toastColors = [...][3]terminal.RGB{
	{{R: 200, G: 200, B: 200}, {R: 40, G: 40, B: 50}, {R: 100, G: 150, B: 255}},
	{{R: 220, G: 255, B: 220}, {R: 30, G: 60, B: 30}, {R: 80, G: 220, B: 80}},
	{{R: 255, G: 240, B: 200}, {R: 60, G: 50, B: 20}, {R: 255, G: 200, B: 60}},
	{{R: 255, G: 220, B: 220}, {R: 60, G: 25, B: 25}, {R: 255, G: 80, B: 80}},
}

// ToastOpts configures toast rendering
type ToastOpts struct {
	Message  string
	Severity ToastSeverity
	Anchor   Anchor
	Border   bool
	Margin   int
}

// Toast renders a floating notification box and returns the occupied region
func (r Region) Toast(opts ToastOpts) Region {
	if r.W < 5 || r.H < 1 || opts.Message == "" {
		return Region{}
	}
	sev := opts.Severity
	if int(sev) >= len(toastColors) {
		sev = ToastInfo
	}
	colors := toastColors[sev]
	style := NewStyle(colors[0], colors[1])

	border := 0
	if opts.Border {
		border = 2
	}
	w := RuneLen(opts.Message) + 4 + border // icon, space, 1 padding each side
	h := 1 + border
	box := Anchored(r, opts.Anchor, w, h, opts.Margin)

	content := box
	if opts.Border {
		box.BoxFilled(LineRounded, style)
		content = box.Inset(1)
	} else {
		box.Fill(style)
	}
	if content.W < 3 || content.H < 1 {
		return box
	}
	content.Cell(1, 0, toastIcons[sev], style.WithFg(colors[2]))
	msg := Truncate(opts.Message, content.W-4)
	content.Text(3, 0, msg, style)
	return box
}
