package sevenseg

import (
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"

	valence "github.com/RonDeBen/valence-sdf"
)

// AnimConfig gathers the digit cell geometry and animation tuning. Digits
// live in a local space of x in [-HalfWidth, HalfWidth] and y in
// [-HalfHeight, HalfHeight], y up.
type AnimConfig struct {
	// HalfWidth and HalfHeight bound the digit cell.
	HalfWidth  float32
	HalfHeight float32
	// SegmentRadius is the capsule half-thickness of a lit segment.
	SegmentRadius float32
	// BlendRadius is the smooth-minimum band folding segment shapes.
	BlendRadius float32
	// BlobRadius is the base radius of a traveling unit-mass blob.
	BlobRadius float32
	// JitterAmplitude displaces anticipating segments and blob endpoints.
	JitterAmplitude float32
	// ImpactOvershoot is the radius multiplier a landing blob squashes from.
	ImpactOvershoot float32
	// StaggerSpan is the fraction of the jump phase across which blob
	// launches are spread so they do not all fire at once.
	StaggerSpan float32
}

// DefaultAnimConfig returns the stock digit tuning.
func DefaultAnimConfig() AnimConfig {
	return AnimConfig{
		HalfWidth:       0.25,
		HalfHeight:      0.5,
		SegmentRadius:   0.055,
		BlendRadius:     0.045,
		BlobRadius:      0.09,
		JitterAmplitude: 0.02,
		ImpactOvershoot: 1.35,
		StaggerSpan:     0.35,
	}
}

// segmentEndpoints returns the axis endpoints of segment s in local space.
func (cfg AnimConfig) segmentEndpoints(s Segment) (a, b ms2.Vec) {
	w, h := cfg.HalfWidth, cfg.HalfHeight
	switch s {
	case SegTop:
		return ms2.Vec{X: -w, Y: h}, ms2.Vec{X: w, Y: h}
	case SegTopRight:
		return ms2.Vec{X: w, Y: h}, ms2.Vec{X: w, Y: 0}
	case SegBottomRight:
		return ms2.Vec{X: w, Y: 0}, ms2.Vec{X: w, Y: -h}
	case SegBottom:
		return ms2.Vec{X: -w, Y: -h}, ms2.Vec{X: w, Y: -h}
	case SegBottomLeft:
		return ms2.Vec{X: -w, Y: 0}, ms2.Vec{X: -w, Y: -h}
	case SegTopLeft:
		return ms2.Vec{X: -w, Y: h}, ms2.Vec{X: -w, Y: 0}
	default:
		return ms2.Vec{X: -w, Y: 0}, ms2.Vec{X: w, Y: 0}
	}
}

// pointOn returns the point at normalized parameter t along segment s.
func (cfg AnimConfig) pointOn(s Segment, t float32) ms2.Vec {
	a, b := cfg.segmentEndpoints(s)
	return ms2.Add(a, ms2.Scale(t, ms2.Sub(b, a)))
}

const largenum = 1e20

// capsuleDist is the distance from p to the segment a-b inflated by radius r.
func capsuleDist(p, a, b ms2.Vec, r float32) float32 {
	pa := ms2.Sub(p, a)
	ba := ms2.Sub(b, a)
	bb := ms2.Dot(ba, ba)
	if bb < 1e-12 {
		return ms2.Norm(pa) - r
	}
	h := ms1.Clamp(ms2.Dot(pa, ba)/bb, 0, 1)
	return ms2.Norm(ms2.Sub(pa, ms2.Scale(h, ba))) - r
}

func circleDist(p, c ms2.Vec, r float32) float32 {
	return ms2.Norm(ms2.Sub(p, c)) - r
}

// segmentDist is the distance to segment s drawn at a mass factor scaling
// its thickness, optionally displaced by a jitter offset.
func (cfg AnimConfig) segmentDist(p ms2.Vec, s Segment, mass float32, jitter ms2.Vec) float32 {
	a, b := cfg.segmentEndpoints(s)
	a = ms2.Add(a, jitter)
	b = ms2.Add(b, jitter)
	return capsuleDist(p, a, b, cfg.SegmentRadius*mass)
}

// DistanceStatic evaluates the 2-D signed distance of a static digit mask at
// local point p. Lit segments fold together with the shared smooth minimum.
func DistanceStatic(p ms2.Vec, mask uint8, cfg AnimConfig) float32 {
	d := float32(largenum)
	for s := Segment(0); s < numSegments; s++ {
		if !Active(mask, s) {
			continue
		}
		d = valence.SmoothMin(d, cfg.segmentDist(p, s, 1, ms2.Vec{}), cfg.BlendRadius)
	}
	return d
}

// DistanceSeparator evaluates the slash glyph used between digit groups.
func DistanceSeparator(p ms2.Vec, cfg AnimConfig) float32 {
	a := ms2.Vec{X: -0.6 * cfg.HalfWidth, Y: -0.8 * cfg.HalfHeight}
	b := ms2.Vec{X: 0.6 * cfg.HalfWidth, Y: 0.8 * cfg.HalfHeight}
	return capsuleDist(p, a, b, cfg.SegmentRadius)
}

// Coverage returns an antialiased coverage value in [0,1] for digit d at a
// uv coordinate in [0,1]², suitable as a glyph lookup for overlaying digits
// on 3-D surfaces. uv follows the image convention with Y growing downward;
// aa is the antialias half-width in local units.
func Coverage(d Digit, uv ms2.Vec, aa float32, cfg AnimConfig) float32 {
	p := ms2.Vec{
		X: (uv.X - 0.5) * 2 * cfg.HalfWidth * 1.4,
		Y: (0.5 - uv.Y) * 2 * cfg.HalfHeight * 1.15,
	}
	dist := DistanceStatic(p, d.Mask(), cfg)
	return 1 - ms1.SmoothStep(-aa, aa, dist)
}
