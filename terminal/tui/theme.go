package tui

import "github.com/lixenwraith/termsight/terminal"

// Theme defines semantic colors for overlay widgets
type Theme struct {
	Bg       terminal.RGB
	Fg       terminal.RGB
	FocusBg  terminal.RGB
	Border   terminal.RGB
	Focus    terminal.RGB
	HeaderFg terminal.RGB
	StatusBg terminal.RGB
	StatusFg terminal.RGB
	HintFg   terminal.RGB
	Error    terminal.RGB
	Warning  terminal.RGB
	Success  terminal.RGB
}

// DefaultTheme provides reasonable defaults
var DefaultTheme = Theme{
	Bg:       terminal.RGB{R: 20, G: 20, B: 30},
	Fg:       terminal.RGB{R: 200, G: 200, B: 200},
	FocusBg:  terminal.RGB{R: 30, G: 35, B: 45},
	Border:   terminal.RGB{R: 60, G: 80, B: 100},
	Focus:    terminal.RGB{R: 100, G: 180, B: 255},
	HeaderFg: terminal.RGB{R: 255, G: 255, B: 255},
	StatusBg: terminal.RGB{R: 40, G: 40, B: 50},
	StatusFg: terminal.RGB{R: 200, G: 200, B: 200},
	HintFg:   terminal.RGB{R: 100, G: 180, B: 200},
	Error:    terminal.RGB{R: 255, G: 80, B: 80},
	Warning:  terminal.RGB{R: 255, G: 200, B: 60},
	Success:  terminal.RGB{R: 80, G: 220, B: 80},
}

// Text returns the body style of the theme
func (t Theme) Text() Style {
	return NewStyle(t.Fg, t.Bg)
}

// Status returns the status bar style of the theme
func (t Theme) Status() Style {
	return NewStyle(t.StatusFg, t.StatusBg)
}
