package sevenseg

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"

	valence "github.com/RonDeBen/valence-sdf"
)

// Phase is one of the five time-ordered stages of a digit transition.
type Phase uint8

const (
	// PhaseSplit shrinks disappearing segments in place.
	PhaseSplit Phase = iota
	// PhaseAnticipation keeps shrinking them while they jitter.
	PhaseAnticipation
	// PhaseJump sends mass blobs traveling to their destinations.
	PhaseJump
	// PhaseImpact squashes landed blobs from overshoot back to baseline.
	PhaseImpact
	// PhaseSettle morphs blobs into full capsules spanning their segments.
	PhaseSettle
	// PhaseDone shows the static target mask.
	PhaseDone
)

func (ph Phase) String() string {
	switch ph {
	case PhaseSplit:
		return "split"
	case PhaseAnticipation:
		return "anticipation"
	case PhaseJump:
		return "jump"
	case PhaseImpact:
		return "impact"
	case PhaseSettle:
		return "settle"
	default:
		return "done"
	}
}

// Phase span boundaries over the transition progress t.
var phaseEnds = [5]float32{0.15, 0.25, 0.70, 0.80, 1.0}

// PhaseAt maps transition progress t in [0,1] to the active phase and the
// progress renormalized to [0,1] within that phase's span. t at or past 1
// is PhaseDone with local progress 1; negative t clamps to the start.
func PhaseAt(t float32) (Phase, float32) {
	if t >= 1 {
		return PhaseDone, 1
	}
	if t < 0 {
		t = 0
	}
	start := float32(0)
	for i, end := range phaseEnds {
		if t < end {
			return Phase(i), (t - start) / (end - start)
		}
		start = end
	}
	return PhaseDone, 1
}

// Transition is the precomputed plan for morphing one digit mask into
// another. Flows are computed once at construction; evaluation is pure and
// may run concurrently for many sample points.
type Transition struct {
	FromMask uint8
	ToMask   uint8
	flows    []Flow
	cfg      AnimConfig
}

// NewTransition computes the flow routing for a fromMask→toMask morph.
func NewTransition(fromMask, toMask uint8, cfg AnimConfig) *Transition {
	return &Transition{
		FromMask: fromMask,
		ToMask:   toMask,
		flows:    ComputeFlows(fromMask, toMask),
		cfg:      cfg,
	}
}

// Flows exposes the routing plan, mostly for inspection and tests.
func (tr *Transition) Flows() []Flow { return tr.flows }

// Distance evaluates the transition's 2-D signed distance at local point p
// and progress t. t at or below 0 renders the static source mask, t at or
// past 1 the static target mask. A transition between identical masks is a
// no-op: every phase renders exactly the static digit.
func (tr *Transition) Distance(p ms2.Vec, t float32) float32 {
	if t <= 0 {
		return DistanceStatic(p, tr.FromMask, tr.cfg)
	}
	if t >= 1 {
		return DistanceStatic(p, tr.ToMask, tr.cfg)
	}
	phase, lt := PhaseAt(t)
	cfg := tr.cfg
	k := cfg.BlendRadius

	// Stable segments render untouched through every phase.
	d := float32(largenum)
	stable := tr.FromMask & tr.ToMask
	for s := Segment(0); s < numSegments; s++ {
		if Active(stable, s) {
			d = valence.SmoothMin(d, cfg.segmentDist(p, s, 1, ms2.Vec{}), k)
		}
	}

	disappearing := tr.FromMask &^ tr.ToMask
	switch phase {
	case PhaseSplit:
		mass := mixf(1, 0.3, lt)
		for s := Segment(0); s < numSegments; s++ {
			if Active(disappearing, s) {
				d = valence.SmoothMin(d, cfg.segmentDist(p, s, mass, ms2.Vec{}), k)
			}
		}
	case PhaseAnticipation:
		mass := mixf(0.3, 0.1, lt)
		for s := Segment(0); s < numSegments; s++ {
			if Active(disappearing, s) {
				d = valence.SmoothMin(d, cfg.segmentDist(p, s, mass, cfg.jitter(s, lt)), k)
			}
		}
	case PhaseJump:
		for i, fl := range tr.flows {
			src := tr.flowSource(i, fl)
			dst := tr.flowDest(i, fl)
			u := tr.flowTravel(i, fl, lt)
			pos := ms2.Add(src, ms2.Scale(u, ms2.Sub(dst, src)))
			d = valence.SmoothMin(d, circleDist(p, pos, tr.blobRadius(fl)), k)
		}
	case PhaseImpact:
		for i, fl := range tr.flows {
			dst := tr.flowDest(i, fl)
			r := tr.blobRadius(fl) * mixf(cfg.ImpactOvershoot, 1, valence.EaseOutQuad(lt))
			d = valence.SmoothMin(d, circleDist(p, dst, r), k)
		}
	case PhaseSettle:
		u := lt * lt // quadratic ease-in toward the full capsule
		for i, fl := range tr.flows {
			dst := tr.flowDest(i, fl)
			a, b := cfg.segmentEndpoints(fl.To)
			ea := ms2.Add(dst, ms2.Scale(u, ms2.Sub(a, dst)))
			eb := ms2.Add(dst, ms2.Scale(u, ms2.Sub(b, dst)))
			r := mixf(tr.blobRadius(fl), cfg.SegmentRadius, u)
			d = valence.SmoothMin(d, capsuleDist(p, ea, eb, r), k)
		}
	}
	return d
}

func mixf(x, y, a float32) float32 { return x*(1-a) + y*a }

// jitter is the small per-segment oscillation applied while a segment
// anticipates its jump, deterministic in (segment, local time).
func (cfg AnimConfig) jitter(s Segment, lt float32) ms2.Vec {
	h1 := valence.Hash01(0.137 * (float32(s) + 1.3))
	h2 := valence.Hash01(0.719 * (float32(s) + 2.7))
	w := lt * (8 + 4*h2) * 2 * math32.Pi
	return ms2.Vec{
		X: cfg.JitterAmplitude * math32.Sin(w+h1*2*math32.Pi),
		Y: cfg.JitterAmplitude * math32.Cos(w*1.3+h2*2*math32.Pi),
	}
}

// flowSource is the jittered launch point on the flow's source segment.
func (tr *Transition) flowSource(i int, fl Flow) ms2.Vec {
	h := valence.Hash01(0.317*(float32(i)+1.1), 0.611*(float32(fl.From)+1.7))
	return tr.cfg.pointOn(fl.From, 0.25+0.5*h)
}

// flowDest is the jittered landing point on the flow's destination segment.
func (tr *Transition) flowDest(i int, fl Flow) ms2.Vec {
	h := valence.Hash01(0.823*(float32(i)+2.3), 0.271*(float32(fl.To)+1.9))
	return tr.cfg.pointOn(fl.To, 0.25+0.5*h)
}

// flowTravel maps jump-phase progress to the blob's travel parameter,
// applying a per-flow launch stagger and one of three easing curves chosen
// deterministically per flow.
func (tr *Transition) flowTravel(i int, fl Flow, lt float32) float32 {
	h := valence.Hash01(0.433*(float32(i)+1.9), 0.871*(float32(fl.From)+0.6), 0.529*(float32(fl.To)+1.2))
	start := tr.cfg.StaggerSpan * h
	u := ms1.Clamp((lt-start)/(1-start), 0, 1)
	switch int(valence.Hash01(h+0.37, 0.913) * 3) {
	case 0:
		return valence.EaseInOutCubic(u)
	case 1:
		return valence.EaseOutCubic(u)
	default:
		return valence.EaseOutQuad(u)
	}
}

// blobRadius scales blob area with the mass share it carries.
func (tr *Transition) blobRadius(fl Flow) float32 {
	return tr.cfg.BlobRadius * math32.Sqrt(fl.Share)
}
