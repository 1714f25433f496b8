package valence

import (
	"errors"

	"github.com/soypat/glgl/math/ms3"
)

// HitKind tags which family of primitive is nearest to a sample point.
type HitKind uint8

const (
	// HitNone means no primitive: the scene is empty or the tracer missed.
	HitNone HitKind = iota
	// HitNode attributes the sample to a node sphere.
	HitNode
	// HitEdge attributes the sample to an edge cylinder.
	HitEdge
)

func (k HitKind) String() string {
	switch k {
	case HitNode:
		return "node"
	case HitEdge:
		return "edge"
	default:
		return "none"
	}
}

// Hit identifies the nearest primitive at a sample point.
type Hit struct {
	Kind  HitKind
	Index int
}

var (
	errEmptyBuffers         = errors.New("empty buffers")
	errMismatchBufferLength = errors.New("position and distance buffer length mismatch")
)

// Sample evaluates the composed scene distance field at p and reports which
// primitive is nearest. Nodes are folded with a hard minimum among
// themselves; edges fold into the running minimum with SmoothMin. An edge
// claims attribution only when its raw pre-blend distance undercuts the
// running minimum by more than EdgeMargin, which keeps attribution stable
// right at blend boundaries. Iteration is in index order so results are
// deterministic for a given scene.
func (s *Scene) Sample(p ms3.Vec) (float32, Hit) {
	d := float32(largenum)
	hit := Hit{Kind: HitNone, Index: -1}
	for i := 0; i < s.nnodes; i++ {
		n := &s.nodes[i]
		nd := EllipsoidDistance(p, n.Center, n.Radius, n.StretchDir, n.Stretch)
		nd = RippleModulate(nd, p, n.Center, n.RipplePhase, n.RippleAmplitude, s.cfg.Ripple)
		if nd < d {
			d = nd
			hit = Hit{Kind: HitNode, Index: i}
		}
	}
	for i := 0; i < s.nedges; i++ {
		e := &s.edges[i]
		var ed float32
		if e.Preview() {
			// Constant radius for the transient cursor edge; the parabola
			// profile reads bulbous on a segment chasing the pointer.
			ed = CylinderDistance(p, e.Start, e.End, e.Radius)
		} else {
			ed = RubberBandDistance(p, e.Start, e.End, e.Radius, e.WavePhase, e.WaveAmplitude, s.cfg.Band)
		}
		if ed < d-s.cfg.EdgeMargin {
			hit = Hit{Kind: HitEdge, Index: i}
		}
		d = SmoothMin(d, ed, s.cfg.SmoothRadius)
	}
	if hit.Kind == HitNone {
		return largenum, hit
	}
	return d, hit
}

// Distance evaluates only the scene's signed distance at p.
func (s *Scene) Distance(p ms3.Vec) float32 {
	d, _ := s.Sample(p)
	return d
}

// Evaluate evaluates the scene distance field over pos positions, storing
// results in dist. It satisfies the vectorized SDF evaluation signature so a
// Scene can be plugged into batch renderers directly.
func (s *Scene) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	for i, p := range pos {
		dist[i] = s.Distance(p)
	}
	return nil
}
