package dither

import "image"

// Bayer is an ordered dither over a 2^level square threshold map
type Bayer struct {
	level uint32
	n     int
	// thresholds holds per-position cutoffs scaled to 0..255
	thresholds []int
}

func newBayer(level uint32) *Bayer {
	n := 1 << level
	m := bayerMatrix(n)
	t := make([]int, n*n)
	cells := n * n
	for i, v := range m {
		// Cutoffs stay in 1..255 so black never lights and white always does
		t[i] = min(max(((2*v+1)*256)/(2*cells), 1), 255)
	}
	return &Bayer{level: level, n: n, thresholds: t}
}

// bayerMatrix builds the n x n index matrix recursively, n a power of two
func bayerMatrix(n int) []int {
	m := []int{0}
	for size := 1; size < n; size *= 2 {
		next := make([]int, 4*size*size)
		ns := size * 2
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				v := 4 * m[y*size+x]
				next[y*ns+x] = v
				next[y*ns+x+size] = v + 2
				next[(y+size)*ns+x] = v + 3
				next[(y+size)*ns+x+size] = v + 1
			}
		}
		m = next
	}
	return m
}

func (b *Bayer) Level() uint32  { return b.level }
func (b *Bayer) Method() Method { return MethodBayer }

func (b *Bayer) Apply(dst, src *image.Gray) {
	w, h := span(dst, src)
	mask := b.n - 1
	for y := 0; y < h; y++ {
		srow := src.Pix[y*src.Stride : y*src.Stride+w]
		drow := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		trow := b.thresholds[(y&mask)*b.n:]
		for x, v := range srow {
			drow[x] = binary(int(v) >= trow[x&mask])
		}
	}
}
