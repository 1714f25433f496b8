package valence

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// RippleConfig tunes the transient pop/ripple deformation a node receives
// when a game event fires on it. Both terms decay to negligible magnitude
// well before CutoffPhase; the cutoff only short-circuits the math.
type RippleConfig struct {
	// Pop: a damped whole-primitive oscillation, like a heartbeat.
	PopFrequency float32
	PopDamping   float32
	PopScale     float32
	// Wave: a traveling surface ripple decaying in both time and space.
	WaveFrequency float32
	WaveSpeed     float32
	TimeDecay     float32
	SpaceDecay    float32
	WaveScale     float32
	// CutoffPhase disables the modulator once the phase clock passes it.
	CutoffPhase float32
	// MinAmplitude disables the modulator below this trigger amplitude.
	MinAmplitude float32
}

// DefaultRippleConfig returns the stock ripple tuning.
func DefaultRippleConfig() RippleConfig {
	return RippleConfig{
		PopFrequency:  1.2,
		PopDamping:    0.9,
		PopScale:      0.12,
		WaveFrequency: 9.0,
		WaveSpeed:     6.0,
		TimeDecay:     0.8,
		SpaceDecay:    0.7,
		WaveScale:     0.06,
		CutoffPhase:   10,
		MinAmplitude:  0.01,
	}
}

// RippleModulate applies the pop and traveling-wave deformation to a node's
// base distance value. phase is time since the trigger; a negative phase or
// one beyond the cutoff leaves dist unchanged, as does a negligible
// amplitude. The pop term is subtracted so positive pops inflate the
// primitive, the wave term is added as a surface displacement.
func RippleModulate(dist float32, p, center ms3.Vec, phase, amplitude float32, cfg RippleConfig) float32 {
	if amplitude < cfg.MinAmplitude || phase < 0 || phase > cfg.CutoffPhase {
		return dist
	}
	pop := math32.Sin(phase*cfg.PopFrequency*2*math32.Pi) *
		math32.Exp(-phase*cfg.PopDamping) * amplitude * cfg.PopScale
	r := ms3.Norm(ms3.Sub(p, center))
	wave := math32.Sin(r*cfg.WaveFrequency-phase*cfg.WaveSpeed) *
		math32.Exp(-phase*cfg.TimeDecay) * math32.Exp(-r*cfg.SpaceDecay) *
		amplitude * cfg.WaveScale
	return dist - pop + wave
}
