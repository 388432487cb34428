package scene

import "github.com/chewxy/math32"

// Vec3 is a 3D vector in world units
type Vec3 struct {
	X, Y, Z float32
}

func (a Vec3) Add(b Vec3) Vec3             { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3             { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float32) Vec3        { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float32          { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len() float32                { return math32.Sqrt(a.Dot(a)) }
func (a Vec3) Lerp(b Vec3, t float32) Vec3 { return a.Add(b.Sub(a).Scale(t)) }

// Normalize returns a unit vector, zero vector stays zero
func (a Vec3) Normalize() Vec3 {
	m := a.Len()
	if m == 0 {
		return Vec3{}
	}
	return a.Scale(1 / m)
}

// RotateY rotates around the vertical axis by angle radians
func (a Vec3) RotateY(angle float32) Vec3 {
	s, c := math32.Sincos(angle)
	return Vec3{a.X*c + a.Z*s, a.Y, -a.X*s + a.Z*c}
}

// RotateX rotates around the horizontal axis by angle radians
func (a Vec3) RotateX(angle float32) Vec3 {
	s, c := math32.Sincos(angle)
	return Vec3{a.X, a.Y*c - a.Z*s, a.Y*s + a.Z*c}
}
