package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RuneLen returns the display width of s in terminal columns
func RuneLen(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate truncates string with … suffix if it exceeds maxW columns
func Truncate(s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxW {
		return s
	}
	if maxW <= 1 {
		return "…"
	}
	return runewidth.Truncate(s, maxW, "…")
}

// PadRight pads string with spaces to width columns
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// WrapText splits text into lines no wider than width, breaking at spaces
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			switch {
			case line == "":
				line = w
			case RuneLen(line)+1+RuneLen(w) <= width:
				line += " " + w
			default:
				lines = append(lines, Truncate(line, width))
				line = w
			}
		}
		lines = append(lines, Truncate(line, width))
	}
	return lines
}

// Text renders a string at (x, y), clipped to region width
// Wide runes occupy two columns, the second filled with a zero rune
// Returns the number of columns written
func (r Region) Text(x, y int, s string, style Style) int {
	if y < 0 || y >= r.H {
		return 0
	}
	col := x
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > r.W {
			break
		}
		r.Cell(col, y, ch, style)
		if w == 2 {
			r.Cell(col+1, y, 0, style)
		}
		col += w
	}
	return max(col-x, 0)
}

// TextCenter renders a string horizontally centered on row y, truncated to fit
func (r Region) TextCenter(y int, s string, style Style) {
	s = Truncate(s, r.W)
	x := (r.W - RuneLen(s)) / 2
	r.Text(x, y, s, style)
}

// TextRight renders a string right-aligned on row y, truncated to fit
func (r Region) TextRight(y int, s string, style Style) {
	s = Truncate(s, r.W)
	r.Text(r.W-RuneLen(s), y, s, style)
}

// TextBlock renders wrapped lines starting at row y, returns rows used
func (r Region) TextBlock(y int, text string, style Style) int {
	lines := WrapText(text, r.W)
	for i, line := range lines {
		if y+i >= r.H {
			return i
		}
		r.Text(0, y+i, line, style)
	}
	return len(lines)
}
