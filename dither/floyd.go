package dither

import "image"

// FloydSteinberg diffuses quantization error to unvisited neighbours
// Error is truncated to a 256>>level grid before spreading, so level 0 is a plain threshold
type FloydSteinberg struct {
	level uint32
	step  int
}

func newFloydSteinberg(level uint32) *FloydSteinberg {
	return &FloydSteinberg{level: level, step: 256 >> level}
}

func (f *FloydSteinberg) Level() uint32  { return f.level }
func (f *FloydSteinberg) Method() Method { return MethodFloydSteinberg }

func (f *FloydSteinberg) Apply(dst, src *image.Gray) {
	w, h := span(dst, src)
	if w == 0 || h == 0 {
		return
	}
	// Two rolling rows of accumulated error, padded by one on each side
	cur := make([]int, w+2)
	next := make([]int, w+2)

	for y := 0; y < h; y++ {
		srow := src.Pix[y*src.Stride : y*src.Stride+w]
		vals := make([]int, w)
		for x, v := range srow {
			vals[x] = int(v)
		}
		drow := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := 0; x < w; x++ {
			v := vals[x] + cur[x+1]
			on := v >= Threshold
			drow[x] = binary(on)

			e := v
			if on {
				e = v - 255
			}
			e = (e / f.step) * f.step
			if e == 0 {
				continue
			}
			cur[x+2] += e * 7 / 16
			next[x] += e * 3 / 16
			next[x+1] += e * 5 / 16
			next[x+2] += e * 1 / 16
		}
		cur, next = next, cur
		clear(next)
	}
}
