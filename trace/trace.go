// Package trace implements sphere tracing over a signed distance function:
// root finding along a ray by repeatedly stepping by the current distance
// value, plus central-difference surface normal estimation. The package is
// deliberately ignorant of what produced the field; any func(p) distance
// works, which keeps tracing testable against closed-form shapes.
package trace

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// DistanceFunc evaluates a signed distance field at a point.
type DistanceFunc func(p ms3.Vec) float32

// Ray is a marching ray. Dir should be unit length; March normalizes it
// when it is not.
type Ray struct {
	Origin ms3.Vec
	Dir    ms3.Vec
}

// Config bounds the work a single march may perform. Caps are iteration and
// distance budgets, not wall-clock timeouts.
type Config struct {
	// MaxSteps caps marcher iterations. Exhausting it is a miss, not an error.
	MaxSteps int
	// HitEps is the surface proximity below which a step counts as a hit.
	HitEps float32
	// MaxDistance is the far plane; rays past it report a miss.
	MaxDistance float32
	// StepFactor under-relaxes each advance to reduce overshoot through
	// thin features such as rubber-band necks. 1 is a full step.
	StepFactor float32
	// NormalStep is the half-width of the central difference used by Normal.
	NormalStep float32
}

// DefaultConfig returns the standard marching budget.
func DefaultConfig() Config {
	return Config{
		MaxSteps:    128,
		HitEps:      1e-3,
		MaxDistance: 200,
		StepFactor:  0.9,
		NormalStep:  1e-3,
	}
}

func (c Config) validate() error {
	switch {
	case c.MaxSteps <= 0:
		return errors.New("nonpositive MaxSteps")
	case c.HitEps <= 0 || math32.IsNaN(c.HitEps):
		return errors.New("invalid HitEps")
	case c.MaxDistance <= 0:
		return errors.New("nonpositive MaxDistance")
	case c.StepFactor <= 0 || c.StepFactor > 1:
		return errors.New("StepFactor must be in (0, 1]")
	case c.NormalStep <= 0:
		return errors.New("nonpositive NormalStep")
	}
	return nil
}

// Result is the outcome of a march. When Hit is false T holds the distance
// at which the march gave up and Point is meaningless.
type Result struct {
	// T is the ray parameter of the hit.
	T float32
	// Point is Origin + T*Dir.
	Point ms3.Vec
	// Steps is how many field evaluations the march spent.
	Steps int
	// Hit reports whether a surface was found within budget.
	Hit bool
}

// March sphere-traces f along r. A miss (budget exhausted or the ray leaving
// the far plane) is a normal outcome reported through Result.Hit; an error is
// returned only for invalid arguments.
func March(f DistanceFunc, r Ray, cfg Config) (Result, error) {
	if f == nil {
		return Result{}, errors.New("nil distance function")
	}
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	n := ms3.Norm(r.Dir)
	if n == 0 || math32.IsNaN(n) {
		return Result{}, errors.New("degenerate ray direction")
	}
	dir := ms3.Scale(1/n, r.Dir)

	var t float32
	for i := 0; i < cfg.MaxSteps; i++ {
		p := ms3.Add(r.Origin, ms3.Scale(t, dir))
		d := f(p)
		if d < cfg.HitEps {
			return Result{T: t, Point: p, Steps: i + 1, Hit: true}, nil
		}
		t += d * cfg.StepFactor
		if t > cfg.MaxDistance {
			return Result{T: t, Steps: i + 1}, nil
		}
	}
	return Result{T: t, Steps: cfg.MaxSteps}, nil
}

// Normal estimates the unit surface normal of f at p by central finite
// differences with half-width step. Where the field is locally constant the
// zero vector is returned and the caller must guard against it.
func Normal(f DistanceFunc, p ms3.Vec, step float32) ms3.Vec {
	h := ms3.Vec{X: step}
	g := ms3.Vec{
		X: f(ms3.Add(p, h)) - f(ms3.Sub(p, h)),
	}
	h = ms3.Vec{Y: step}
	g.Y = f(ms3.Add(p, h)) - f(ms3.Sub(p, h))
	h = ms3.Vec{Z: step}
	g.Z = f(ms3.Add(p, h)) - f(ms3.Sub(p, h))
	n := ms3.Norm(g)
	if n < 1e-12 || math32.IsNaN(n) {
		return ms3.Vec{}
	}
	return ms3.Scale(1/n, g)
}
