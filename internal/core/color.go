package core

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Mixing bounds. Saturation never drops below the floor so mixed marbles
// stay vivid, and value is capped to avoid blowing out to white.
const (
	MixSaturationFloor = 0.35
	MixValueCap        = 0.92
)

// RGB is a linear colour with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// Clamp returns c with every channel clamped to [0, 1].
func (c RGB) Clamp() RGB {
	return RGB{
		R: ClampF(c.R, 0, 1),
		G: ClampF(c.G, 0, 1),
		B: ClampF(c.B, 0, 1),
	}
}

// IsFinite reports whether every channel is a finite number.
func (c RGB) IsFinite() bool {
	return IsFinite(c.R) && IsFinite(c.G) && IsFinite(c.B)
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return c.colorful().Clamped().Hex()
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%.3f, %.3f, %.3f)", c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// ParseHex parses "#rrggbb" (or "#rgb") into an RGB.
func ParseHex(s string) (RGB, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("core: invalid colour %q: %w", s, err)
	}
	return RGB{R: col.R, G: col.G, B: col.B}, nil
}

// MixTowards blends src toward dst by t in hue/saturation/value space.
//
// Hue follows the shortest arc around the colour wheel. Saturation is
// pulled toward the stronger of the two and floored at MixSaturationFloor;
// value is a plain lerp capped at MixValueCap. The result is clamped to [0, 1].
func MixTowards(src, dst RGB, t float64) RGB {
	sh, ss, sv := src.Clamp().colorful().Hsv()
	dh, ds, dv := dst.Clamp().colorful().Hsv()

	h := lerpHue(sh/360.0, dh/360.0, t)

	sTarget := math.Max(ss, ds)
	s := ClampF((1.0-t)*ss+t*sTarget, MixSaturationFloor, 1.0)
	v := ClampF((1.0-t)*sv+t*dv, 0.0, MixValueCap)

	out := colorful.Hsv(h*360.0, s, v)
	return RGB{R: out.R, G: out.G, B: out.B}.Clamp()
}

// lerpHue interpolates two hues given in turns ([0, 1) = [0°, 360°))
// along the shorter arc. The result is in [0, 1).
func lerpHue(a, b, t float64) float64 {
	delta := wrapUnit(b-a+0.5) - 0.5
	h := wrapUnit(a + delta*ClampF(t, 0, 1))
	if h >= 1.0 {
		h = 0
	}
	return h
}

// wrapUnit maps x into [0, 1) using floored modulo.
func wrapUnit(x float64) float64 {
	return x - math.Floor(x)
}
