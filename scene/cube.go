package scene

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/gogpu/gg"
)

var cubeVertices = [8]Vec3{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Cube is a rotating wireframe cube in front of the camera
type Cube struct {
	Center Vec3
	Size   float32 // Half edge length
	Speed  float32 // Radians per second around Y, X turns at half rate
	Angle  float32
	Line   float64 // Stroke width in pixels
}

// NewCube returns a unit cube five units in front of the origin
func NewCube() *Cube {
	return &Cube{Center: Vec3{Z: 5}, Size: 1, Speed: 0.9, Line: 1.5}
}

func (c *Cube) Update(dt time.Duration) {
	c.Angle = math32.Mod(c.Angle+c.Speed*float32(dt.Seconds()), 4*math32.Pi)
}

// Vertices returns the transformed corners in world space
func (c *Cube) Vertices() [8]Vec3 {
	var out [8]Vec3
	for i, v := range cubeVertices {
		out[i] = v.Scale(c.Size).RotateY(c.Angle).RotateX(c.Angle / 2).Add(c.Center)
	}
	return out
}

// Draw strokes every edge whose ends are both in front of the camera
func (c *Cube) Draw(dc *gg.Context, cam *Camera) error {
	w, h := dc.Width(), dc.Height()
	verts := c.Vertices()

	type pt struct {
		x, y float64
		ok   bool
	}
	var pts [8]pt
	for i, v := range verts {
		x, y, _, ok := cam.Project(v, w, h)
		pts[i] = pt{float64(x), float64(y), ok}
	}

	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(c.Line)
	drawn := false
	for _, e := range cubeEdges {
		a, b := pts[e[0]], pts[e[1]]
		if !a.ok || !b.ok {
			continue
		}
		dc.MoveTo(a.x, a.y)
		dc.LineTo(b.x, b.y)
		drawn = true
	}
	if !drawn {
		return nil
	}
	return dc.Stroke()
}
