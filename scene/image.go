package scene

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/gogpu/gg"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageScene shows a still image scaled to fit the target, letterboxed in black
type ImageScene struct {
	src image.Image

	// cache of the scaled image for the last target size
	cacheW, cacheH int
	scaled         *gg.ImageBuf
	offX, offY     float64
}

// NewImageScene wraps an already decoded image
func NewImageScene(img image.Image) *ImageScene {
	return &ImageScene{src: img}
}

// LoadImage decodes png, jpeg, gif, bmp, or webp from path
func LoadImage(path string) (*ImageScene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return NewImageScene(img), nil
}

func (s *ImageScene) Update(time.Duration) {}

// FitRect returns the largest rectangle with the source aspect ratio centered in w x h
func FitRect(srcW, srcH, w, h int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	fw, fh := w, srcH*w/srcW
	if fh > h {
		fw, fh = srcW*h/srcH, h
	}
	fw, fh = max(fw, 1), max(fh, 1)
	x, y := (w-fw)/2, (h-fh)/2
	return image.Rect(x, y, x+fw, y+fh)
}

func (s *ImageScene) Draw(dc *gg.Context, _ *Camera) error {
	if s.src == nil {
		return nil
	}
	w, h := dc.Width(), dc.Height()
	if s.scaled == nil || s.cacheW != w || s.cacheH != h {
		b := s.src.Bounds()
		fit := FitRect(b.Dx(), b.Dy(), w, h)
		if fit.Empty() {
			return nil
		}
		dst := image.NewRGBA(image.Rect(0, 0, fit.Dx(), fit.Dy()))
		xdraw.BiLinear.Scale(dst, dst.Bounds(), s.src, b, xdraw.Src, nil)
		s.scaled = gg.ImageBufFromImage(dst)
		s.cacheW, s.cacheH = w, h
		s.offX, s.offY = float64(fit.Min.X), float64(fit.Min.Y)
	}
	dc.DrawImage(s.scaled, s.offX, s.offY)
	return nil
}
