package sevenseg

import (
	"errors"

	"github.com/soypat/glgl/math/ms2"
)

// MaxHUDInstances caps the digit/separator cells one HUD frame may carry.
const MaxHUDInstances = 12

// ErrTooManyInstances reports an attempt to add past the HUD capacity.
var ErrTooManyInstances = errors.New("hud instance capacity exceeded")

// Kind distinguishes HUD cell types.
type Kind uint8

const (
	// KindDigit renders a (possibly transitioning) seven-segment digit.
	KindDigit Kind = iota
	// KindSeparator renders a static slash between digit groups.
	KindSeparator
)

// Instance is one HUD cell: a digit morphing FromMask→Mask at Progress, or
// a separator. Pos locates the cell center; Scale multiplies the local
// digit space into HUD space.
type Instance struct {
	Kind     Kind
	Mask     uint8
	FromMask uint8
	Progress float32
	Pos      ms2.Vec
	Scale    float32
}

// HUD is the per-frame collection of digit display cells. Like the 3-D
// scene it is built once per frame and then only read, so samples may be
// evaluated concurrently. Flow plans are computed once per added instance.
type HUD struct {
	instances   [MaxHUDInstances]Instance
	transitions [MaxHUDInstances]*Transition
	count       int
	cfg         AnimConfig
}

// NewHUD returns an empty HUD with the given digit tuning.
func NewHUD(cfg AnimConfig) *HUD {
	return &HUD{cfg: cfg}
}

// Config returns the HUD's digit tuning.
func (h *HUD) Config() AnimConfig { return h.cfg }

// Reset clears all instances for rebuilding at a frame boundary.
func (h *HUD) Reset() { h.count = 0 }

// Len returns the number of live instances.
func (h *HUD) Len() int { return h.count }

// Instances returns a read-only view of the live instances.
func (h *HUD) Instances() []Instance { return h.instances[:h.count] }

// Add appends a HUD cell and returns its index. Digit cells get their
// transition flow plan computed here, once, rather than per sample.
func (h *HUD) Add(inst Instance) (int, error) {
	if h.count >= MaxHUDInstances {
		return -1, ErrTooManyInstances
	}
	if inst.Scale <= 0 {
		inst.Scale = 1
	}
	i := h.count
	h.instances[i] = inst
	if inst.Kind == KindDigit {
		h.transitions[i] = NewTransition(inst.FromMask, inst.Mask, h.cfg)
	} else {
		h.transitions[i] = nil
	}
	h.count++
	return i, nil
}

// Distance evaluates the HUD's combined 2-D signed distance at p and
// reports the index of the nearest instance, or -1 when the HUD is empty.
// Each instance is evaluated in its own local space and the result scaled
// back so the field stays a true distance in HUD space.
func (h *HUD) Distance(p ms2.Vec) (float32, int) {
	d := float32(largenum)
	nearest := -1
	for i := 0; i < h.count; i++ {
		inst := &h.instances[i]
		local := ms2.Scale(1/inst.Scale, ms2.Sub(p, inst.Pos))
		var di float32
		if inst.Kind == KindSeparator {
			di = DistanceSeparator(local, h.cfg)
		} else {
			di = h.transitions[i].Distance(local, inst.Progress)
		}
		di *= inst.Scale
		if di < d {
			d = di
			nearest = i
		}
	}
	return d, nearest
}
