package tui

// ListItem represents a single row of a key hint list
type ListItem struct {
	Key  string
	Text string
}

// ListOpts configures list rendering
type ListOpts struct {
	Style    Style
	KeyStyle Style
	KeyWidth int // Column reserved for keys, 0 = widest key + 1
}

// List renders items from scroll offset within region, returns number of rows rendered
func (r Region) List(items []ListItem, scroll int, opts ListOpts) int {
	if r.H < 1 || len(items) == 0 {
		return 0
	}
	keyW := opts.KeyWidth
	if keyW == 0 {
		for _, it := range items {
			keyW = max(keyW, RuneLen(it.Key))
		}
		keyW++
	}

	rendered := 0
	for y := 0; y < r.H; y++ {
		idx := scroll + y
		if idx < 0 || idx >= len(items) {
			break
		}
		item := items[idx]
		r.Sub(0, y, r.W, 1).Fill(opts.Style)
		r.Text(0, y, Truncate(item.Key, keyW), opts.KeyStyle)
		if keyW < r.W {
			r.Text(keyW, y, Truncate(item.Text, r.W-keyW), opts.Style)
		}
		rendered++
	}
	return rendered
}
