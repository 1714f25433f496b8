package valence_test

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"

	valence "github.com/RonDeBen/valence-sdf"
)

func infectedNode() valence.Node {
	return valence.Node{
		Center:      ms3.Vec{},
		Radius:      1,
		BaseColor:   valence.Color{R: 0.1, G: 0.3, B: 0.9, A: 1},
		TargetColor: valence.Color{R: 0.9, G: 0.2, B: 0.1, A: 1},
		Digit:       valence.NoDigit,
	}
}

func TestInfectedColorEndpointsExact(t *testing.T) {
	n := infectedNode()
	edges := []valence.Edge{{Start: ms3.Vec{}, End: ms3.Vec{X: 3}, NodeA: 0, NodeB: 1}}
	surface := ms3.Vec{Y: 1}

	n.InfectionProgress = 0
	if got := valence.InfectedColor(n, 0, edges, surface); got != n.BaseColor {
		t.Errorf("progress 0 must return base color exactly, got %+v", got)
	}
	n.InfectionProgress = 0.005
	if got := valence.InfectedColor(n, 0, edges, surface); got != n.BaseColor {
		t.Errorf("negligible progress must return base color exactly, got %+v", got)
	}
	n.InfectionProgress = 1
	if got := valence.InfectedColor(n, 0, edges, surface); got != n.TargetColor {
		t.Errorf("progress 1 must return target color exactly, got %+v", got)
	}
	n.InfectionProgress = 0.995
	if got := valence.InfectedColor(n, 0, edges, surface); got != n.TargetColor {
		t.Errorf("near-complete progress must return target color exactly, got %+v", got)
	}
}

func TestInfectedColorSpreadsFromContact(t *testing.T) {
	n := infectedNode()
	n.InfectionProgress = 0.5
	// The edge leaves toward +X, so the contact point is (1,0,0).
	edges := []valence.Edge{{Start: ms3.Vec{}, End: ms3.Vec{X: 3}, NodeA: 0, NodeB: 1}}

	atContact := valence.InfectedColor(n, 0, edges, ms3.Vec{X: 1})
	antipode := valence.InfectedColor(n, 0, edges, ms3.Vec{X: -1})

	// The contact point converted first; it should be far redder than the
	// antipode, which the front reaches last.
	if atContact.R <= antipode.R {
		t.Errorf("contact point should lead the front: contact R=%v, antipode R=%v",
			atContact.R, antipode.R)
	}
	dc := math32.Abs(atContact.R-n.TargetColor.R) + math32.Abs(atContact.B-n.TargetColor.B)
	if dc > 1e-2 {
		t.Errorf("contact point should be fully converted at mid progress, got %+v", atContact)
	}
}

func TestInfectedColorIgnoresPreviewEdges(t *testing.T) {
	n := infectedNode()
	n.InfectionProgress = 0.5
	preview := []valence.Edge{{Start: ms3.Vec{}, End: ms3.Vec{X: 3}, NodeA: 0, NodeB: 0}}
	none := []valence.Edge{}
	surface := ms3.Vec{X: 1}
	got := valence.InfectedColor(n, 0, preview, surface)
	want := valence.InfectedColor(n, 0, none, surface)
	if got != want {
		t.Errorf("preview edges must not seed the front: got %+v, want %+v", got, want)
	}
}

func TestInfectedColorIsolatedNodeBlendsUniformly(t *testing.T) {
	n := infectedNode()
	n.InfectionProgress = 0.5
	a := valence.InfectedColor(n, 0, nil, ms3.Vec{X: 1})
	b := valence.InfectedColor(n, 0, nil, ms3.Vec{Y: -1})
	if a != b {
		t.Errorf("isolated node should blend uniformly: %+v vs %+v", a, b)
	}
	if a == n.BaseColor || a == n.TargetColor {
		t.Errorf("mid-progress blend should be partial, got %+v", a)
	}
}

func TestNodeColorFromScene(t *testing.T) {
	s := valence.NewScene(valence.DefaultBlendConfig())
	n := infectedNode()
	n.InfectionProgress = 1
	i, err := s.AddNode(n)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.NodeColor(i, ms3.Vec{Y: 1}); got != n.TargetColor {
		t.Errorf("scene node color: got %+v, want %+v", got, n.TargetColor)
	}
	// Out-of-range indices clamp instead of faulting.
	if got := s.NodeColor(99, ms3.Vec{Y: 1}); got != n.TargetColor {
		t.Errorf("clamped index color: got %+v", got)
	}
	empty := valence.NewScene(valence.DefaultBlendConfig())
	if got := empty.NodeColor(0, ms3.Vec{}); got != (valence.Color{}) {
		t.Errorf("empty scene color should be zero, got %+v", got)
	}
}
