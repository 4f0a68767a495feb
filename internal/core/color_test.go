package core

import (
	"math"
	"math/rand"
	"testing"
)

func inUnit(c RGB) bool {
	return c.R >= 0 && c.R <= 1 && c.G >= 0 && c.G <= 1 && c.B >= 0 && c.B <= 1
}

func TestMixTowardsBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		src := RGB{rng.Float64(), rng.Float64(), rng.Float64()}
		dst := RGB{rng.Float64(), rng.Float64(), rng.Float64()}
		tt := rng.Float64() * 0.75

		got := MixTowards(src, dst, tt)
		if !inUnit(got) {
			t.Fatalf("MixTowards(%v, %v, %f) = %v, out of [0,1]", src, dst, tt, got)
		}
	}
}

func TestMixTowardsValueCap(t *testing.T) {
	white := RGB{1, 1, 1}
	got := MixTowards(white, white, 0.5)

	maxC := math.Max(got.R, math.Max(got.G, got.B))
	if maxC > MixValueCap+1e-9 {
		t.Errorf("value should be capped at %f, got %f (%v)", MixValueCap, maxC, got)
	}
}

func TestMixTowardsSaturationFloor(t *testing.T) {
	gray := RGB{0.5, 0.5, 0.5}
	got := MixTowards(gray, gray, 0.1)

	maxC := math.Max(got.R, math.Max(got.G, got.B))
	minC := math.Min(got.R, math.Min(got.G, got.B))
	sat := (maxC - minC) / maxC
	if sat < MixSaturationFloor-1e-9 {
		t.Errorf("saturation should be floored at %f, got %f", MixSaturationFloor, sat)
	}
}

func TestMixTowardsShortestHueArc(t *testing.T) {
	// Hue 350° toward hue 10°: the short way crosses 0°, not 180°.
	src, _ := ParseHex("#ff002b") // ~350°
	dst, _ := ParseHex("#ff2b00") // ~10°

	got := MixTowards(src, dst, 0.5)
	// Near pure red: red dominant, green and blue both small.
	if got.R < 0.8 || got.G > 0.2 || got.B > 0.2 {
		t.Errorf("mid-point should stay red, got %v (%s)", got, got.Hex())
	}
}

func TestMixTowardsZeroT(t *testing.T) {
	src := RGB{0.8, 0.2, 0.1}
	got := MixTowards(src, RGB{0, 0, 1}, 0)

	const eps = 1e-9
	if math.Abs(got.R-src.R) > eps || math.Abs(got.G-src.G) > eps || math.Abs(got.B-src.B) > eps {
		t.Errorf("t=0 on a vivid colour should be identity, got %v", got)
	}
}

func TestLerpHue(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"forward", 0.1, 0.3, 0.5, 0.2},
		{"wraps through zero", 0.9, 0.1, 0.5, 0.0},
		{"backward short arc", 0.3, 0.1, 0.5, 0.2},
		{"t clamped high", 0.1, 0.3, 2, 0.3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := lerpHue(tc.a, tc.b, tc.t)
			diff := math.Abs(got - tc.expected)
			if diff > 0.5 {
				diff = 1 - diff
			}
			if diff > 1e-9 {
				t.Errorf("lerpHue(%f, %f, %f) = %f, expected %f", tc.a, tc.b, tc.t, got, tc.expected)
			}
			if got < 0 || got >= 1 {
				t.Errorf("lerpHue result %f out of [0, 1)", got)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	if err != nil {
		t.Fatalf("ParseHex() failed: %v", err)
	}
	if c.Hex() != "#ff8000" {
		t.Errorf("round trip = %s, expected #ff8000", c.Hex())
	}

	if _, err := ParseHex("orange"); err == nil {
		t.Error("ParseHex should reject non-hex input")
	}
}
