package widgets

import (
	"github.com/lixenwraith/termsight/input"
	"github.com/lixenwraith/termsight/terminal"
	"github.com/lixenwraith/termsight/terminal/tui"
	"github.com/lixenwraith/termsight/widget"
)

var actionText = map[string]string{
	"quit":         "quit",
	"help":         "toggle this help",
	"dither_up":    "raise dither level",
	"dither_down":  "lower dither level",
	"focus_dither": "focus dither control",
	"unfocus":      "release focus",
	"pause":        "pause animation",
	"stats":        "toggle metrics panel",
}

// Help lists the active key bindings in a centered pane
type Help struct {
	passive
	toggle
	Theme tui.Theme
	items []tui.ListItem
}

// NewHelp builds a hidden help panel for kt
func NewHelp(kt *input.KeyTable) *Help {
	h := &Help{Theme: tui.DefaultTheme}
	h.SetKeys(kt)
	return h
}

// SetKeys rebuilds the listing after a key table change
func (h *Help) SetKeys(kt *input.KeyTable) {
	h.items = h.items[:0]
	for _, b := range kt.Bindings() {
		text, ok := actionText[b[1]]
		if !ok {
			text = b[1]
		}
		h.items = append(h.items, tui.ListItem{Key: b[0], Text: text})
	}
}

// Items returns the rows shown by the panel
func (h *Help) Items() []tui.ListItem { return h.items }

// Size is the pane size in cells including the border
func (h *Help) Size() (w, ht int) {
	keyW, textW := 0, len(" Keys ")
	for _, it := range h.items {
		keyW = max(keyW, tui.RuneLen(it.Key))
		textW = max(textW, tui.RuneLen(it.Text))
	}
	return keyW + 1 + textW + 4, len(h.items) + 2
}

// Area centers the pane on screen
func (h *Help) Area() widget.Area {
	return func(w, ht int) tui.Rect {
		bw, bh := h.Size()
		return widget.Centered(bw, bh)(w, ht)
	}
}

func (h *Help) Render(r tui.Region) {
	body, border := paneStyles(h.Theme, false)
	inner := r.Pane(tui.PaneOpts{Title: "Keys", Border: tui.LineRounded, Style: body, BorderStyle: &border})
	inner = inner.Sub(1, 0, inner.W-1, inner.H)
	inner.List(h.items, 0, tui.ListOpts{
		Style:    body,
		KeyStyle: body.WithFg(h.Theme.HintFg).WithAttr(terminal.AttrBold),
	})
}
