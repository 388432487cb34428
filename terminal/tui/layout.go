package tui

// Center returns a w x h region centered in r, clipped to r
func Center(r Region, w, h int) Region {
	w, h = min(w, r.W), min(h, r.H)
	return r.Sub((r.W-w)/2, (r.H-h)/2, w, h)
}

// SplitVFixed splits vertically with a fixed height top section
func SplitVFixed(r Region, topH int) (top, bottom Region) {
	topH = min(max(topH, 0), r.H)
	return r.Sub(0, 0, r.W, topH), r.Sub(0, topH, r.W, r.H-topH)
}

// SplitHFixed splits horizontally with a fixed width left section
func SplitHFixed(r Region, leftW int) (left, right Region) {
	leftW = min(max(leftW, 0), r.W)
	return r.Sub(0, 0, leftW, r.H), r.Sub(leftW, 0, r.W-leftW, r.H)
}

// BottomRow returns the last row of the region
func BottomRow(r Region) Region {
	if r.H == 0 {
		return r
	}
	return r.Sub(0, r.H-1, r.W, 1)
}

// TopRow returns the first row of the region
func TopRow(r Region) Region {
	return r.Sub(0, 0, r.W, min(1, r.H))
}

// Anchor positions a w x h box at a corner of r with a margin
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Anchored returns a w x h region placed at the anchor with margin cells of padding
func Anchored(r Region, a Anchor, w, h, margin int) Region {
	w, h = min(w, r.W), min(h, r.H)
	x, y := margin, margin
	if a == AnchorTopRight || a == AnchorBottomRight {
		x = r.W - w - margin
	}
	if a == AnchorBottomLeft || a == AnchorBottomRight {
		y = r.H - h - margin
	}
	return r.Sub(max(x, 0), max(y, 0), w, h)
}
