package valence

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// SmoothMin is the polynomial smooth minimum folding two distance fields
// without a hard seam. It returns min(a,b) once |a-b| >= k and blends C¹
// continuously inside the band. The result is commutative and never exceeds
// min(a,b). k <= 0 degenerates to the ordinary minimum.
func SmoothMin(a, b, k float32) float32 {
	if k <= 0 {
		return minf(a, b)
	}
	h := clampf(0.5+0.5*(b-a)/k, 0, 1)
	return mixf(b, a, h) - k*h*(1-h)
}

// EllipsoidDistance is the distance to a volume-preserving squash/stretch
// sphere. The component of p-center parallel to stretchDir is scaled by
// stretch and the perpendicular component by 1/sqrt(stretch), so to first
// order the enclosed volume does not change with the stretch factor.
// stretch == 1 or a degenerate direction yields the plain sphere distance.
func EllipsoidDistance(p, center ms3.Vec, radius float32, stretchDir ms3.Vec, stretch float32) float32 {
	q := ms3.Sub(p, center)
	n := ms3.Norm(stretchDir)
	if n < epstol || absf(stretch-1) < epstol || stretch < epstol {
		return ms3.Norm(q) - radius
	}
	dir := ms3.Scale(1/n, stretchDir)
	par := ms3.Dot(q, dir)
	perp := ms3.Sub(q, ms3.Scale(par, dir))
	scaled := ms3.Add(ms3.Scale(par*stretch, dir), ms3.Scale(1/math32.Sqrt(stretch), perp))
	return ms3.Norm(scaled) - radius
}

// CylinderDistance is the capped-capsule distance from p to the segment a-b
// inflated by radius. Degenerate zero-length segments are floored to epstol
// and collapse to a sphere around a.
func CylinderDistance(p, a, b ms3.Vec, radius float32) float32 {
	pa := ms3.Sub(p, a)
	ba := ms3.Sub(b, a)
	h := clampf(ms3.Dot(pa, ba)/maxf(ms3.Dot(ba, ba), epstol), 0, 1)
	return ms3.Norm(ms3.Sub(pa, ms3.Scale(h, ba))) - radius
}

// BandProfile parameterizes the rubber-band radius curve of an edge cylinder.
type BandProfile struct {
	// MinThickness multiplies the base radius at the segment midpoint.
	MinThickness float32
	// MaxThickness multiplies the base radius at the endpoints.
	MaxThickness float32
	// WaveSigma is the gaussian squeeze half-width in normalized position.
	WaveSigma float32
	// WaveMinFactor is the thickness floor a full-amplitude squeeze reaches.
	WaveMinFactor float32
}

// DefaultBandProfile returns the stock band tuning.
func DefaultBandProfile() BandProfile {
	return BandProfile{
		MinThickness:  0.55,
		MaxThickness:  1.0,
		WaveSigma:     0.08,
		WaveMinFactor: 0.35,
	}
}

// thickness evaluates the symmetric parabola radius multiplier at normalized
// position h in [0,1] along the segment, thick at endpoints and thin at the
// midpoint, with an optional traveling gaussian squeeze centered at wavePhase.
func (bp BandProfile) thickness(h, wavePhase, waveAmplitude float32) float32 {
	q := 2 * absf(h-0.5)
	thick := bp.MinThickness + (bp.MaxThickness-bp.MinThickness)*q*q
	if wavePhase >= 0 && waveAmplitude > epstol {
		x := (h - wavePhase) / maxf(bp.WaveSigma, epstol)
		squeeze := 1 - (1-bp.WaveMinFactor)*clampf(waveAmplitude, 0, 1)*math32.Exp(-0.5*x*x)
		thick *= maxf(squeeze, bp.WaveMinFactor)
	}
	return thick
}

// RubberBandDistance is the variable-radius cylinder distance used for graph
// edges: a capsule whose radius follows the BandProfile parabola along the
// segment, squeezed by a traveling tension wave when wavePhase is in [0,1].
// A negative wavePhase disables the wave.
func RubberBandDistance(p, a, b ms3.Vec, baseRadius float32, wavePhase, waveAmplitude float32, prof BandProfile) float32 {
	pa := ms3.Sub(p, a)
	ba := ms3.Sub(b, a)
	h := clampf(ms3.Dot(pa, ba)/maxf(ms3.Dot(ba, ba), epstol), 0, 1)
	r := baseRadius * prof.thickness(h, wavePhase, waveAmplitude)
	return ms3.Norm(ms3.Sub(pa, ms3.Scale(h, ba))) - r
}
