package tui

import "github.com/lixenwraith/termsight/terminal"

// Style bundles foreground, background, and attributes for text rendering
type Style struct {
	Fg   terminal.RGB
	Bg   terminal.RGB
	Attr terminal.Attr
}

// DefaultStyle uses terminal default colors
var DefaultStyle = Style{Attr: terminal.AttrFgDefault | terminal.AttrBgDefault}

// NewStyle returns an opaque style with explicit colors
func NewStyle(fg, bg terminal.RGB) Style {
	return Style{Fg: fg, Bg: bg}
}

// WithAttr returns a copy with additional attributes
func (s Style) WithAttr(a terminal.Attr) Style {
	s.Attr |= a
	return s
}

// WithFg returns a copy with explicit foreground
func (s Style) WithFg(fg terminal.RGB) Style {
	s.Fg = fg
	s.Attr &^= terminal.AttrFgDefault
	return s
}

// WithBg returns a copy with explicit background
func (s Style) WithBg(bg terminal.RGB) Style {
	s.Bg = bg
	s.Attr &^= terminal.AttrBgDefault
	return s
}

// Cell builds a terminal cell carrying this style
func (s Style) Cell(ch rune) terminal.Cell {
	return terminal.Cell{Rune: ch, Fg: s.Fg, Bg: s.Bg, Attrs: s.Attr}
}
