package scene

import (
	"sort"
	"time"

	"github.com/chewxy/math32"
	"github.com/gogpu/gg"
)

// Sphere is one body of the bouncing spheres demo
type Sphere struct {
	Pos, Vel Vec3
	Mass     float32
	Radius   float32
	Albedo   float32 // Base luminance 0..1
	Frozen   bool
	Flash    float32 // Remaining flash seconds after a collision
}

const (
	flashSeconds = 0.2
	restitution  = 0.8
	maxStep      = 100 * time.Millisecond
)

// Box the spheres bounce inside, camera at origin looking down +Z
var (
	boundsMin = Vec3{X: -16, Y: -8, Z: 17}
	boundsMax = Vec3{X: 16, Y: 8, Z: 46}

	lightDir = Vec3{X: -0.35, Y: -0.55, Z: -0.75}.Normalize()
)

// Spheres simulates elastic spheres in a box, shaded with radial gradients
type Spheres struct {
	Parts []Sphere
}

// NewSpheres returns the demo in its initial state
func NewSpheres() *Spheres {
	s := &Spheres{}
	s.Reset()
	return s
}

// Reset restores initial positions and velocities
func (s *Spheres) Reset() {
	s.Parts = []Sphere{
		{Pos: Vec3{-4, -2, 24}, Vel: Vec3{5, 2, -3}, Mass: 5, Radius: 2.8, Albedo: 0.55},
		{Pos: Vec3{3, 1.5, 32}, Vel: Vec3{-3, -4, 4}, Mass: 5, Radius: 2.8, Albedo: 0.75},
		{Pos: Vec3{0, 0, 38}, Vel: Vec3{2, 3.5, -6}, Mass: 5, Radius: 2.8, Albedo: 0.95},
	}
}

// Update integrates positions, reflects on walls, and resolves collisions
func (s *Spheres) Update(dt time.Duration) {
	dt = min(dt, maxStep)
	sec := float32(dt.Seconds())
	if sec <= 0 {
		return
	}

	for i := range s.Parts {
		p := &s.Parts[i]
		if p.Frozen {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(sec))
		reflectAxis(&p.Pos.X, &p.Vel.X, boundsMin.X+p.Radius, boundsMax.X-p.Radius)
		reflectAxis(&p.Pos.Y, &p.Vel.Y, boundsMin.Y+p.Radius, boundsMax.Y-p.Radius)
		reflectAxis(&p.Pos.Z, &p.Vel.Z, boundsMin.Z, boundsMax.Z)
	}

	for i := 0; i < len(s.Parts); i++ {
		for j := i + 1; j < len(s.Parts); j++ {
			resolveCollision(&s.Parts[i], &s.Parts[j])
		}
	}

	for i := range s.Parts {
		s.Parts[i].Flash = max(s.Parts[i].Flash-sec, 0)
	}
}

// reflectAxis clamps position and reflects velocity on boundary contact
func reflectAxis(pos, vel *float32, lo, hi float32) {
	switch {
	case *pos < lo:
		*pos = lo
		if *vel < 0 {
			*vel = -*vel * restitution
		}
	case *pos > hi:
		*pos = hi
		if *vel > 0 {
			*vel = -*vel * restitution
		}
	}
}

// resolveCollision performs 3D elastic sphere-sphere collision
func resolveCollision(a, b *Sphere) {
	if a.Frozen && b.Frozen {
		return
	}
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Len()
	minDist := a.Radius + b.Radius
	if dist >= minDist || dist == 0 {
		return
	}
	n := delta.Scale(1 / dist)

	// Separate overlap unconditionally
	overlap := minDist - dist + 1.0/16
	switch {
	case a.Frozen:
		b.Pos = b.Pos.Add(n.Scale(overlap))
	case b.Frozen:
		a.Pos = a.Pos.Sub(n.Scale(overlap))
	default:
		a.Pos = a.Pos.Sub(n.Scale(overlap / 2))
		b.Pos = b.Pos.Add(n.Scale(overlap / 2))
	}

	// Impulse only if approaching
	vn := a.Vel.Sub(b.Vel).Dot(n)
	if vn <= 0 {
		return
	}

	// Frozen = infinite mass, zero inverse
	var invA, invB float32
	if !a.Frozen {
		invA = 1 / a.Mass
	}
	if !b.Frozen {
		invB = 1 / b.Mass
	}
	j := (1 + restitution) * vn / (invA + invB)
	a.Vel = a.Vel.Sub(n.Scale(j * invA))
	b.Vel = b.Vel.Add(n.Scale(j * invB))

	a.Flash = flashSeconds
	b.Flash = flashSeconds
}

type projected struct {
	x, y, radius, depth float32
	index               int
}

// Draw paints spheres far to near, each lit by a radial gradient offset toward the light
func (s *Spheres) Draw(dc *gg.Context, cam *Camera) error {
	w, h := dc.Width(), dc.Height()

	projs := make([]projected, 0, len(s.Parts))
	for i := range s.Parts {
		p := &s.Parts[i]
		x, y, scale, ok := cam.Project(p.Pos, w, h)
		if !ok {
			continue
		}
		projs = append(projs, projected{
			x: x, y: y,
			radius: p.Radius * scale,
			depth:  cam.ToView(p.Pos).Z,
			index:  i,
		})
	}

	// Painter's algorithm: sort far to near
	sort.Slice(projs, func(i, j int) bool { return projs[i].depth > projs[j].depth })

	for _, pr := range projs {
		if pr.radius < 0.5 {
			continue
		}
		if err := s.drawSphere(dc, &s.Parts[pr.index], pr); err != nil {
			return err
		}
	}
	return nil
}

func (s *Spheres) drawSphere(dc *gg.Context, p *Sphere, pr projected) error {
	// Depth dims distant spheres
	depthT := (pr.depth - boundsMin.Z) / (boundsMax.Z - boundsMin.Z)
	depthT = min(max(depthT, 0), 1)
	bright := 1 - depthT*0.4

	base := p.Albedo * bright
	if p.Flash > 0 {
		f := p.Flash / flashSeconds * 0.8
		base = base*(1-f) + f
	}
	if p.Frozen {
		base *= 0.5
	}

	// Specular hotspot sits where the surface normal faces the light
	hx := pr.x - lightDir.X*pr.radius*0.45
	hy := pr.y - lightDir.Y*pr.radius*0.45
	spec := min(base+0.45, 1)
	rim := base * 0.25

	cx, cy, r := float64(pr.x), float64(pr.y), float64(pr.radius)
	brush := gg.NewRadialGradientBrush(cx, cy, 0, r).
		SetFocus(float64(hx), float64(hy)).
		AddColorStop(0, lumaRGBA(spec)).
		AddColorStop(0.55, lumaRGBA(base)).
		AddColorStop(1, lumaRGBA(rim))
	dc.SetFillBrush(brush)
	dc.DrawCircle(cx, cy, r)
	return dc.Fill()
}

// lumaRGBA returns an opaque gray for luminance v in 0..1
func lumaRGBA(v float32) gg.RGBA {
	f := float64(math32.Min(math32.Max(v, 0), 1))
	return gg.RGB(f, f, f)
}
