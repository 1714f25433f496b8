package trace_test

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"

	"github.com/RonDeBen/valence-sdf/trace"
)

func unitSphere(p ms3.Vec) float32 {
	return ms3.Norm(p) - 1
}

func TestMarchHitsSphere(t *testing.T) {
	r := trace.Ray{Origin: ms3.Vec{Z: 5}, Dir: ms3.Vec{Z: -1}}
	res, err := trace.March(unitSphere, r, trace.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Hit {
		t.Fatal("ray through the sphere center should hit")
	}
	if math32.Abs(res.T-4) > 5e-3 {
		t.Errorf("hit parameter: got %v, want 4", res.T)
	}
	want := ms3.Vec{Z: 1}
	if ms3.Norm(ms3.Sub(res.Point, want)) > 5e-3 {
		t.Errorf("hit point: got %+v, want %+v", res.Point, want)
	}
	if res.Steps <= 0 || res.Steps > 128 {
		t.Errorf("step count out of budget: %d", res.Steps)
	}
}

func TestMarchNormalizesDirection(t *testing.T) {
	r := trace.Ray{Origin: ms3.Vec{Z: 5}, Dir: ms3.Vec{Z: -3}}
	res, err := trace.March(unitSphere, r, trace.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Hit || math32.Abs(res.T-4) > 5e-3 {
		t.Errorf("non-unit direction should march identically: hit=%v t=%v", res.Hit, res.T)
	}
}

func TestMarchMiss(t *testing.T) {
	r := trace.Ray{Origin: ms3.Vec{Z: 5}, Dir: ms3.Vec{Z: 1}}
	res, err := trace.March(unitSphere, r, trace.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res.Hit {
		t.Error("ray pointing away should miss")
	}
	// A grazing ray outside the surface also misses.
	r = trace.Ray{Origin: ms3.Vec{X: 2, Z: 5}, Dir: ms3.Vec{Z: -1}}
	res, err = trace.March(unitSphere, r, trace.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res.Hit {
		t.Error("ray passing beside the sphere should miss")
	}
}

func TestMarchArgumentErrors(t *testing.T) {
	cfg := trace.DefaultConfig()
	r := trace.Ray{Origin: ms3.Vec{Z: 5}, Dir: ms3.Vec{Z: -1}}
	if _, err := trace.March(nil, r, cfg); err == nil {
		t.Error("nil field should error")
	}
	if _, err := trace.March(unitSphere, trace.Ray{Origin: r.Origin}, cfg); err == nil {
		t.Error("zero direction should error")
	}
	bad := cfg
	bad.MaxSteps = 0
	if _, err := trace.March(unitSphere, r, bad); err == nil {
		t.Error("zero MaxSteps should error")
	}
	bad = cfg
	bad.StepFactor = 1.5
	if _, err := trace.March(unitSphere, r, bad); err == nil {
		t.Error("StepFactor above 1 should error")
	}
	bad = cfg
	bad.HitEps = 0
	if _, err := trace.March(unitSphere, r, bad); err == nil {
		t.Error("zero HitEps should error")
	}
	bad = cfg
	bad.MaxDistance = -1
	if _, err := trace.March(unitSphere, r, bad); err == nil {
		t.Error("negative MaxDistance should error")
	}
	bad = cfg
	bad.NormalStep = 0
	if _, err := trace.March(unitSphere, r, bad); err == nil {
		t.Error("zero NormalStep should error")
	}
}

func TestNormal(t *testing.T) {
	n := trace.Normal(unitSphere, ms3.Vec{Z: 1}, 1e-3)
	if ms3.Norm(ms3.Sub(n, ms3.Vec{Z: 1})) > 1e-2 {
		t.Errorf("sphere normal at +Z pole: got %+v", n)
	}
	p := ms3.Unit(ms3.Vec{X: 1, Y: 1, Z: 1})
	n = trace.Normal(unitSphere, p, 1e-3)
	if ms3.Norm(ms3.Sub(n, p)) > 1e-2 {
		t.Errorf("sphere normal should point radially: got %+v at %+v", n, p)
	}
	// Locally constant field yields the zero vector sentinel.
	flat := func(ms3.Vec) float32 { return 1 }
	if n = trace.Normal(flat, ms3.Vec{}, 1e-3); n != (ms3.Vec{}) {
		t.Errorf("constant field normal should be zero, got %+v", n)
	}
}
