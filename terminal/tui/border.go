package tui

// LineType selects the glyph set used for borders
type LineType uint8

const (
	LineSingle LineType = iota
	LineDouble
	LineRounded
	LineHeavy
	LineNone
)

// boxChars indexed by LineType: TL, TR, BL, BR, H, V
var boxChars = [5][6]rune{
	{'┌', '┐', '└', '┘', '─', '│'},
	{'╔', '╗', '╚', '╝', '═', '║'},
	{'╭', '╮', '╰', '╯', '─', '│'},
	{'┏', '┓', '┗', '┛', '━', '┃'},
	{' ', ' ', ' ', ' ', ' ', ' '},
}

// Box draws a border around the region edge
func (r Region) Box(line LineType, style Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	if int(line) >= len(boxChars) {
		line = LineSingle
	}
	chars := boxChars[line]

	r.Cell(0, 0, chars[0], style)
	r.Cell(r.W-1, 0, chars[1], style)
	r.Cell(0, r.H-1, chars[2], style)
	r.Cell(r.W-1, r.H-1, chars[3], style)

	for x := 1; x < r.W-1; x++ {
		r.Cell(x, 0, chars[4], style)
		r.Cell(x, r.H-1, chars[4], style)
	}
	for y := 1; y < r.H-1; y++ {
		r.Cell(0, y, chars[5], style)
		r.Cell(r.W-1, y, chars[5], style)
	}
}

// BoxFilled fills the region and draws a border around it
func (r Region) BoxFilled(line LineType, style Style) {
	r.Fill(style)
	r.Box(line, style)
}

// PaneOpts configures a bordered panel
type PaneOpts struct {
	Title  string
	Border LineType
	Style  Style
	// BorderStyle overrides Style for the frame when non-zero
	BorderStyle *Style
}

// Pane fills the region, draws a titled border, returns the inner content region
func (r Region) Pane(opts PaneOpts) Region {
	r.Fill(opts.Style)
	bs := opts.Style
	if opts.BorderStyle != nil {
		bs = *opts.BorderStyle
	}
	r.Box(opts.Border, bs)

	if opts.Title != "" && r.W > 4 {
		title := " " + Truncate(opts.Title, r.W-4) + " "
		x := (r.W - RuneLen(title)) / 2
		r.Text(x, 0, title, bs)
	}
	return r.Inset(1)
}
