// Package dither reduces 8-bit luminance images to two-level images.
//
// Every stage writes only 0 or 255, keeps the input dimensions, and is
// deterministic: no state survives between calls to Apply.
package dither

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// MaxLevel is the highest supported level, a 16x16 ordered map resolves all 256 luminance values
const MaxLevel uint32 = 4

// Threshold separates dark from lit pixels when no dithering is applied
const Threshold = 128

// ErrUnknownMethod is returned by ParseMethod for unrecognized names
var ErrUnknownMethod = errors.New("unknown dither method")

// Method selects the dithering algorithm
type Method uint8

const (
	MethodBayer Method = iota
	MethodFloydSteinberg
)

var methodNames = [...]string{"bayer", "floyd-steinberg"}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("method(%d)", m)
}

// ParseMethod resolves a method name, empty selects bayer
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bayer", "ordered":
		return MethodBayer, nil
	case "floyd-steinberg", "floydsteinberg", "fs":
		return MethodFloydSteinberg, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// MarshalText implements encoding.TextMarshaler for config files
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for config files
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Stage is a post-process pass over a rendered luminance image
// dst and src must have the same dimensions, dst may alias src
type Stage interface {
	Apply(dst, src *image.Gray)
	Level() uint32
	Method() Method
}

// New returns a stage for method at level, levels above MaxLevel clamp
func New(method Method, level uint32) Stage {
	level = ClampLevel(level)
	if method == MethodFloydSteinberg {
		return newFloydSteinberg(level)
	}
	return newBayer(level)
}

// ClampLevel limits level to [0, MaxLevel]
func ClampLevel(level uint32) uint32 {
	return min(level, MaxLevel)
}

// Process applies s to a copy of src
func Process(s Stage, src *image.Gray) *image.Gray {
	dst := image.NewGray(src.Rect)
	s.Apply(dst, src)
	return dst
}

// span returns the shared pixel extent of two images
func span(dst, src *image.Gray) (w, h int) {
	w = min(dst.Rect.Dx(), src.Rect.Dx())
	h = min(dst.Rect.Dy(), src.Rect.Dy())
	return max(w, 0), max(h, 0)
}

func binary(on bool) uint8 {
	if on {
		return 255
	}
	return 0
}
