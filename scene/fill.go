package scene

import (
	"time"

	"github.com/gogpu/gg"
)

// Fill paints the whole target with one luminance value
type Fill struct {
	Luma uint8
}

func (f *Fill) Update(time.Duration) {}

func (f *Fill) Draw(dc *gg.Context, _ *Camera) error {
	dc.ClearWithColor(gray(f.Luma))
	return nil
}
