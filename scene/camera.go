package scene

import "github.com/chewxy/math32"

// Near clip distance in world units
const Near float32 = 0.1

// Camera is a pinhole camera looking down +Z in its own frame, Y grows downward
type Camera struct {
	Position Vec3
	Yaw      float32 // radians around Y
	Pitch    float32 // radians around X
	FOV      float32 // vertical field of view in radians
	// ClearLuma is the luminance the target is cleared to before drawing
	ClearLuma uint8
}

// NewCamera returns a camera at pos with a 60 degree field of view and black clear color
func NewCamera(pos Vec3) *Camera {
	return &Camera{Position: pos, FOV: math32.Pi / 3}
}

// Focal returns the normalized focal length for the field of view
func (c *Camera) Focal() float32 {
	fov := c.FOV
	if fov <= 0 || fov >= math32.Pi {
		fov = math32.Pi / 3
	}
	return 1 / math32.Tan(fov/2)
}

// ToView transforms a world point into camera space
func (c *Camera) ToView(p Vec3) Vec3 {
	return p.Sub(c.Position).RotateY(-c.Yaw).RotateX(-c.Pitch)
}

// Project maps a world point to pixel coordinates on a w x h target
// scale is pixels per world unit at the point's depth, ok is false behind the near plane
func (c *Camera) Project(p Vec3, w, h int) (x, y, scale float32, ok bool) {
	v := c.ToView(p)
	if v.Z < Near {
		return 0, 0, 0, false
	}
	scale = c.Focal() * float32(h) / 2 / v.Z
	x = float32(w)/2 + v.X*scale
	y = float32(h)/2 + v.Y*scale
	return x, y, scale, true
}
