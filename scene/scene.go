// Package scene renders 3D content into luminance surfaces.
//
// Scenes draw with the gg software rasterizer into an RGBA context per
// surface. The Renderer converts every target to 8-bit luminance, runs the
// attached post-process stage, and publishes the result as the latest frame
// for readback.
package scene

import (
	"time"

	"github.com/gogpu/gg"
)

// Scene is drawable content advanced by the frame loop
type Scene interface {
	// Update advances simulation state by dt
	Update(dt time.Duration)
	// Draw paints the scene onto dc as seen through cam
	Draw(dc *gg.Context, cam *Camera) error
}

// gray returns an opaque gg color of luminance v
func gray(v uint8) gg.RGBA {
	f := float64(v) / 255
	return gg.RGB(f, f, f)
}
