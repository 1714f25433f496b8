// Package valence implements the signed distance field scene model used to
// render a graph of spherical nodes joined by rubber-band edges. The package
// holds the per-frame scene description, the closed-form distance functions
// for its primitives, the smooth-minimum composer that folds them into one
// field, and the per-node animation modulators (ripple/pop and the infection
// color front). Evaluation is pure: a Scene is built once per frame and then
// only read, so samples may be taken concurrently without locking.
package valence

import (
	"github.com/chewxy/math32"
)

const (
	// largenum stands in for an unbounded distance before any primitive
	// has been folded into the running minimum.
	largenum = 1e20
	// epstol is used to check for badly conditioned denominators
	// such as lengths used for normalization or segment projections.
	epstol = 6e-7
)

func minf(a, b float32) float32 {
	return math32.Min(a, b)
}

func maxf(a, b float32) float32 {
	return math32.Max(a, b)
}

func absf(a float32) float32 {
	return math32.Abs(a)
}

func clampf(v, Min, Max float32) float32 {
	if v < Min {
		return Min
	} else if v > Max {
		return Max
	}
	return v
}

func mixf(x, y, a float32) float32 {
	return x*(1-a) + y*a
}

// EaseInOutCubic is slow at both ends and fast in the middle. Used for the
// infection color transition's overall progress.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	x := -2*t + 2
	return 1 - x*x*x/2
}

// EaseOutCubic starts fast and decelerates. Drives the infection front reach.
func EaseOutCubic(t float32) float32 {
	x := 1 - t
	return 1 - x*x*x
}

// EaseInCubic starts slow and accelerates.
func EaseInCubic(t float32) float32 {
	return t * t * t
}

// EaseOutQuad starts fast and decelerates, gentler than cubic.
func EaseOutQuad(t float32) float32 {
	return 1 - (1-t)*(1-t)
}

// Hash01 deterministically hashes the argument floats to [0.0, 1.0).
// Animation code uses it wherever a stable pseudo-random value is needed so
// that every sample of a frame sees the same jitter.
func Hash01(values ...float32) float32 {
	var hashA float32 = 0.0
	var hashB float32 = 1.0
	for _, num := range values {
		hashA, hashB = hashAdd(hashA, hashB, num)
	}
	return hashfint(hashA + hashB)
}

func hashAdd(a, b, num float32) (aNew, bNew float32) {
	const prime = 31.0
	a += num
	b *= (prime + num)
	a = hashfint(a)
	b = hashfint(b)
	return a, b
}

func hashfint(f float32) float32 {
	return float32(int(f*1000000)%1000000) / 1000000 // Keep within [0.0, 1.0)
}
