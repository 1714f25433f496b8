package valence

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Scene capacities. The render uniform layout packs fixed-size arrays, so
// a Scene refuses additions past these limits instead of silently truncating.
const (
	MaxNodes = 9
	MaxEdges = 17
)

var (
	ErrTooManyNodes = errors.New("scene node capacity exceeded")
	ErrTooManyEdges = errors.New("scene edge capacity exceeded")
	errBadNodeIndex = errors.New("edge references node out of range")
)

// NoDigit marks a node without a digit overlay.
const NoDigit = -1

// Node is one graph node rendered as a squash/stretch sphere.
type Node struct {
	Center ms3.Vec
	Radius float32

	// BaseColor and TargetColor bound the infection color transition.
	// InfectionProgress in [0,1] moves the spreading front between them.
	BaseColor         Color
	TargetColor       Color
	InfectionProgress float32

	// StretchDir with Stretch define the volume-preserving deformation.
	// Stretch 1 means an undeformed sphere.
	StretchDir ms3.Vec
	Stretch    float32

	// RipplePhase is time since the ripple trigger. Negative or beyond the
	// cutoff means inert. RippleAmplitude scales both pop and wave terms.
	RipplePhase     float32
	RippleAmplitude float32

	// Glow is a transient highlight amount decayed by the frame ticker.
	Glow float32

	// Digit selects the glyph overlaid on the top face, NoDigit for none.
	Digit int
}

// StretchToward points the squash/stretch deformation along dir at the given
// stretch factor, clamped to [1, 1.8]. Amounts at or below 1 reset the node
// to an undeformed sphere.
func (n *Node) StretchToward(dir ms3.Vec, amount float32) {
	n.Stretch = clampf(amount, 1, 1.8)
	if n.Stretch == 1 {
		n.StretchDir = ms3.Vec{}
		return
	}
	n.StretchDir = dir
}

// Squeeze flattens the node along the vertical axis at the given squeeze
// amount in [0,1], mapped at half strength so a full squeeze reaches stretch
// 0.5. Stretch and squeeze never stack; amounts at or below 0.01 reset the
// node to an undeformed sphere.
func (n *Node) Squeeze(amount float32) {
	if amount <= 0.01 {
		n.Stretch = 1
		n.StretchDir = ms3.Vec{}
		return
	}
	n.Stretch = 1 - clampf(amount, 0, 1)*0.5
	n.StretchDir = ms3.Vec{Y: 1}
}

// TriggerRipple resets the ripple clock at full requested amplitude.
func (n *Node) TriggerRipple(amplitude float32) {
	n.RipplePhase = 0
	n.RippleAmplitude = amplitude
}

// RippleTick advances the ripple clock by dt seconds and decays its
// amplitude, clamping to inert once negligible.
func (n *Node) RippleTick(dt float32) {
	if n.RippleAmplitude <= 0.01 {
		n.RippleAmplitude = 0
		return
	}
	n.RipplePhase += dt * 9.0
	n.RippleAmplitude *= 0.96
}

// GlowTick exponentially decays the transient glow highlight.
func (n *Node) GlowTick(dt float32) {
	if n.Glow <= 0 {
		return
	}
	n.Glow *= math32.Pow(0.95, dt*60)
	if n.Glow < 0.01 {
		n.Glow = 0
	}
}

// InfectionTick advances the color front progress toward completion.
func (n *Node) InfectionTick(dt float32) {
	if n.InfectionProgress < 1 {
		n.InfectionProgress = minf(1, n.InfectionProgress+dt*2.5)
	}
}

// Edge is one graph edge rendered as a rubber-band cylinder between two node
// centers. An edge whose NodeA equals NodeB is a transient cursor-preview
// edge and renders as a constant-radius capsule instead.
type Edge struct {
	Start, End ms3.Vec
	Radius     float32
	Color      Color

	// NodeA and NodeB index the connected nodes in the owning Scene.
	NodeA, NodeB int

	// WavePhase is the normalized position of the traveling squeeze along
	// the edge, negative when no wave is active. WaveAmplitude in [0,1].
	WavePhase     float32
	WaveAmplitude float32
}

// Preview reports whether the edge is a cursor-drag preview (self loop).
func (e Edge) Preview() bool { return e.NodeA == e.NodeB }

// WaveTick advances the traveling squeeze and reports whether the wave is
// still alive. Retired waves reset WavePhase to the inactive sentinel.
func (e *Edge) WaveTick(dt float32) bool {
	if e.WavePhase < 0 {
		return false
	}
	e.WavePhase += dt * 2.0
	e.WaveAmplitude *= math32.Pow(0.95, dt*60)
	if e.WavePhase >= 1 || e.WaveAmplitude <= 0.01 {
		e.WavePhase = -1
		e.WaveAmplitude = 0
		return false
	}
	return true
}

// Touches reports whether the edge connects to node index i.
func (e Edge) Touches(i int) bool { return e.NodeA == i || e.NodeB == i }

// BlendConfig gathers the per-scene constants of the composer. The zero
// value is unusable; start from DefaultBlendConfig.
type BlendConfig struct {
	// SmoothRadius is the smooth-minimum blend band between primitives.
	SmoothRadius float32
	// EdgeMargin is how much closer an edge's raw distance must be than the
	// running minimum before the edge claims nearest-primitive attribution.
	// Avoids index flicker exactly at blend boundaries.
	EdgeMargin float32
	// Band shapes the rubber-band edge radius profile.
	Band BandProfile
	// Ripple holds the pop/wave modulator tuning.
	Ripple RippleConfig
}

// DefaultBlendConfig returns the stock blending tuning.
func DefaultBlendConfig() BlendConfig {
	return BlendConfig{
		SmoothRadius: 0.25,
		EdgeMargin:   0.01,
		Band:         DefaultBandProfile(),
		Ripple:       DefaultRippleConfig(),
	}
}

// Scene is the per-frame description of the node/edge graph. It is built by
// the integration layer once per frame and only read during evaluation, so
// concurrent sampling needs no synchronization. The zero Scene with a config
// set via NewScene is empty and evaluates to no surface anywhere.
type Scene struct {
	nodes  [MaxNodes]Node
	edges  [MaxEdges]Edge
	nnodes int
	nedges int
	cfg    BlendConfig
}

// NewScene returns an empty scene with the given blending configuration.
func NewScene(cfg BlendConfig) *Scene {
	return &Scene{cfg: cfg}
}

// Config returns the scene's immutable blending configuration.
func (s *Scene) Config() BlendConfig { return s.cfg }

// Reset clears all nodes and edges while keeping the configuration, for
// rebuilding the scene at a frame boundary without reallocating.
func (s *Scene) Reset() {
	s.nnodes = 0
	s.nedges = 0
}

// AddNode appends a node and returns its index.
func (s *Scene) AddNode(n Node) (int, error) {
	if s.nnodes >= MaxNodes {
		return -1, ErrTooManyNodes
	}
	if n.Stretch <= 0 {
		n.Stretch = 1
	}
	s.nodes[s.nnodes] = n
	s.nnodes++
	return s.nnodes - 1, nil
}

// AddEdge appends an edge and returns its index. Node indices must reference
// nodes already added to the scene.
func (s *Scene) AddEdge(e Edge) (int, error) {
	if s.nedges >= MaxEdges {
		return -1, ErrTooManyEdges
	}
	if e.NodeA < 0 || e.NodeA >= s.nnodes || e.NodeB < 0 || e.NodeB >= s.nnodes {
		return -1, errBadNodeIndex
	}
	s.edges[s.nedges] = e
	s.nedges++
	return s.nedges - 1, nil
}

// ConnectNodes appends an edge between two existing nodes, anchored at their
// centers and colored with the mean of their base colors. The edge starts
// with no tension wave.
func (s *Scene) ConnectNodes(a, b int, radius float32) (int, error) {
	if a < 0 || a >= s.nnodes || b < 0 || b >= s.nnodes {
		return -1, errBadNodeIndex
	}
	na, nb := &s.nodes[a], &s.nodes[b]
	return s.AddEdge(Edge{
		Start:     na.Center,
		End:       nb.Center,
		Radius:    radius,
		Color:     MeanColor(na.BaseColor, nb.BaseColor),
		NodeA:     a,
		NodeB:     b,
		WavePhase: -1,
	})
}

// PreviewEdge appends the transient cursor-drag edge from a node toward a
// free point. It renders at half the node's alpha so the unconfirmed link
// reads as tentative.
func (s *Scene) PreviewEdge(from int, cursor ms3.Vec, radius float32) (int, error) {
	if from < 0 || from >= s.nnodes {
		return -1, errBadNodeIndex
	}
	n := &s.nodes[from]
	return s.AddEdge(Edge{
		Start:     n.Center,
		End:       cursor,
		Radius:    radius,
		Color:     n.BaseColor.WithAlpha(n.BaseColor.A * 0.5),
		NodeA:     from,
		NodeB:     from,
		WavePhase: -1,
	})
}

// Nodes returns a read-only view of the scene's nodes.
func (s *Scene) Nodes() []Node { return s.nodes[:s.nnodes] }

// Edges returns a read-only view of the scene's edges.
func (s *Scene) Edges() []Edge { return s.edges[:s.nedges] }

// Node returns the node at index i, clamped into the valid range so that
// malformed external indices degrade instead of faulting.
func (s *Scene) Node(i int) Node {
	if s.nnodes == 0 {
		return Node{Stretch: 1, Digit: NoDigit}
	}
	return s.nodes[clampi(i, 0, s.nnodes-1)]
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}

// Bounds returns a box containing every primitive of the scene including the
// smooth blend band. An empty scene returns the zero box.
func (s *Scene) Bounds() ms3.Box {
	if s.nnodes == 0 && s.nedges == 0 {
		return ms3.Box{}
	}
	var bb ms3.Box
	first := true
	include := func(p ms3.Vec, r float32) {
		lo := ms3.AddScalar(-r, p)
		hi := ms3.AddScalar(r, p)
		if first {
			bb = ms3.Box{Min: lo, Max: hi}
			first = false
			return
		}
		bb.Min = ms3.MinElem(bb.Min, lo)
		bb.Max = ms3.MaxElem(bb.Max, hi)
	}
	for _, n := range s.Nodes() {
		// Stretch can at most scale the radius by 1/sqrt(stretch) or
		// stretch; cover both with the larger.
		r := n.Radius * maxf(1/math32.Sqrt(maxf(n.Stretch, epstol)), 1)
		include(n.Center, r+n.RippleAmplitude)
	}
	for _, e := range s.Edges() {
		include(e.Start, e.Radius)
		include(e.End, e.Radius)
	}
	bb.Min = ms3.AddScalar(-s.cfg.SmoothRadius, bb.Min)
	bb.Max = ms3.AddScalar(s.cfg.SmoothRadius, bb.Max)
	return bb
}
