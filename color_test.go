package valence_test

import (
	"testing"

	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"

	valence "github.com/RonDeBen/valence-sdf"
)

// TestHSVAgainstReference cross-checks the float32 HSV conversions against
// the go-colorful implementation over a hue/saturation/value grid.
func TestHSVAgainstReference(t *testing.T) {
	const tol = 2e-3
	for hi := 0; hi < 20; hi++ {
		h := float32(hi) / 20
		for _, s := range []float32{0.25, 0.6, 1} {
			for _, v := range []float32{0.3, 0.75, 1} {
				r, g, b := valence.HSVToRGB(h, s, v)
				ref := colorful.Hsv(float64(h)*360, float64(s), float64(v))
				if math32.Abs(r-float32(ref.R)) > tol ||
					math32.Abs(g-float32(ref.G)) > tol ||
					math32.Abs(b-float32(ref.B)) > tol {
					t.Errorf("HSVToRGB(%v,%v,%v) = (%v,%v,%v), reference (%v,%v,%v)",
						h, s, v, r, g, b, ref.R, ref.G, ref.B)
				}
				// Round trip back through RGBToHSV.
				h2, s2, v2 := valence.RGBToHSV(r, g, b)
				if hueDist(h, h2) > tol || math32.Abs(s-s2) > tol || math32.Abs(v-v2) > tol {
					t.Errorf("round trip (%v,%v,%v) -> (%v,%v,%v)", h, s, v, h2, s2, v2)
				}
			}
		}
	}
}

func hueDist(a, b float32) float32 {
	d := math32.Abs(a - b)
	return math32.Min(d, 1-d)
}

func TestLerpHSVShortestPath(t *testing.T) {
	// Red sits at hue 0, magenta-ish at hue 0.9; the shortest path crosses
	// the wrap boundary rather than sweeping through green.
	a := valence.Color{R: 1, A: 1}                 // hue 0
	b := valence.Color{R: 1, B: 0.8, A: 1}         // hue just below 1
	mid := valence.LerpHSV(a, b, 0.5)
	h, _, _ := valence.RGBToHSV(mid.R, mid.G, mid.B)
	if hueDist(h, 0) > 0.1 && hueDist(h, 0.95) > 0.1 {
		t.Errorf("midpoint hue %v should stay near the wrap boundary", h)
	}
	if mid.G > 0.5 {
		t.Errorf("shortest-path lerp must not pass through green, got G=%v", mid.G)
	}
}

func TestLerpHSVEndpoints(t *testing.T) {
	a := valence.Color{R: 0.2, G: 0.7, B: 0.4, A: 1}
	b := valence.Color{R: 0.9, G: 0.1, B: 0.6, A: 0.5}
	const tol = 1e-3
	got := valence.LerpHSV(a, b, 0)
	if math32.Abs(got.R-a.R) > tol || math32.Abs(got.G-a.G) > tol || math32.Abs(got.B-a.B) > tol {
		t.Errorf("t=0 should return the first color, got %+v", got)
	}
	got = valence.LerpHSV(a, b, 1)
	if math32.Abs(got.R-b.R) > tol || math32.Abs(got.G-b.G) > tol || math32.Abs(got.B-b.B) > tol {
		t.Errorf("t=1 should return the second color, got %+v", got)
	}
	if got.A != b.A {
		t.Errorf("alpha should lerp, got %v", got.A)
	}
}

func TestMeanColor(t *testing.T) {
	a := valence.Color{R: 1, G: 0, B: 0.5, A: 1}
	b := valence.Color{R: 0, G: 1, B: 0.5, A: 0}
	m := valence.MeanColor(a, b)
	want := valence.Color{R: 0.5, G: 0.5, B: 0.5, A: 0.5}
	if m != want {
		t.Errorf("mean: got %+v, want %+v", m, want)
	}
}

func TestRGBA8Clamps(t *testing.T) {
	c := valence.Color{R: 1.5, G: -0.2, B: 0.5, A: 1}
	got := c.RGBA8()
	if got.R != 255 || got.G != 0 || got.A != 255 {
		t.Errorf("clamped conversion: got %+v", got)
	}
	if got.B < 127 || got.B > 128 {
		t.Errorf("B channel: got %d", got.B)
	}
}
