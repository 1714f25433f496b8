// Package shade turns raw distance-field hits into colors: lambert and
// fresnel-rim lighting with Beer-Lambert opacity for the 3-D graph scene,
// edge-antialiased bevel shading for the 2-D seven-segment HUD, and a frame
// renderer that evaluates samples in parallel. All evaluation is pure per
// sample over an immutable frame description.
package shade

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"

	valence "github.com/RonDeBen/valence-sdf"
	"github.com/RonDeBen/valence-sdf/sevenseg"
	"github.com/RonDeBen/valence-sdf/trace"
)

// Sample is one shaded output sample. When Hit is false the sample is
// transparent and Color/Depth are meaningless.
type Sample struct {
	Color valence.Color
	// Depth is the hit distance normalized by the tracer far plane, in [0,1].
	Depth float32
	Hit   bool
}

// GlyphSource supplies antialiased digit glyph coverage for overlaying a
// node's digit on its top face. Implementations must be safe for concurrent
// use; uv is in [0,1]² and the result in [0,1].
type GlyphSource interface {
	Coverage(digit int, uv ms2.Vec) float32
}

// SegmentGlyphs is a GlyphSource drawing digits as static seven-segment
// glyphs, useful when no font atlas is available.
type SegmentGlyphs struct {
	AA  float32
	Cfg sevenseg.AnimConfig
}

// Coverage implements [GlyphSource].
func (sg SegmentGlyphs) Coverage(digit int, uv ms2.Vec) float32 {
	if digit < 0 {
		return 0
	}
	if digit > 9 {
		digit = 9
	}
	aa := sg.AA
	if aa <= 0 {
		aa = 0.04
	}
	return sevenseg.Coverage(sevenseg.Digit(digit), uv, aa, sg.Cfg)
}

// Config tunes the 3-D shading pipeline.
type Config struct {
	// LightDir points from the surface toward the light.
	LightDir ms3.Vec
	// Ambient is the luminance floor for unlit faces.
	Ambient float32
	// FresnelPower and FresnelStrength shape the rim highlight.
	FresnelPower    float32
	FresnelStrength float32
	// Absorption is the Beer-Lambert extinction coefficient mapping
	// interior thickness to opacity.
	Absorption float32
	// ThicknessStep and ThicknessSteps bound the interior probe that
	// estimates how much material a ray passes through.
	ThicknessStep  float32
	ThicknessSteps int
	// GlowBoost scales the additive contribution of a node's glow amount.
	GlowBoost float32
	// DigitColor is the ink of the glyph overlaid on node top faces and
	// DigitOpacity its blend strength.
	DigitColor   valence.Color
	DigitOpacity float32
	// DigitFaceMin is the minimum upward component of the surface direction
	// for the digit overlay to apply (restricts it to the top face).
	DigitFaceMin float32
}

// DefaultConfig returns the stock shading tuning.
func DefaultConfig() Config {
	return Config{
		LightDir:        ms3.Vec{X: 0.4, Y: 0.8, Z: 0.45},
		Ambient:         0.22,
		FresnelPower:    3,
		FresnelStrength: 0.35,
		Absorption:      2.2,
		ThicknessStep:   0.06,
		ThicknessSteps:  16,
		GlowBoost:       0.6,
		DigitColor:      valence.Color{R: 0.08, G: 0.08, B: 0.1, A: 1},
		DigitOpacity:    0.85,
		DigitFaceMin:    0.25,
	}
}

// Pipeline shades rays against one frame's scene snapshot. Glyphs may be nil
// to skip digit overlays.
type Pipeline struct {
	Scene  *valence.Scene
	Tracer trace.Config
	Cfg    Config
	Glyphs GlyphSource
}

// NewPipeline assembles a shading pipeline over a frame scene.
func NewPipeline(scene *valence.Scene, tracer trace.Config, cfg Config, glyphs GlyphSource) *Pipeline {
	return &Pipeline{Scene: scene, Tracer: tracer, Cfg: cfg, Glyphs: glyphs}
}

// Shade traces ray into the scene and shades the hit, if any. A miss is a
// normal transparent sample, not an error.
func (pl *Pipeline) Shade(ray trace.Ray) (Sample, error) {
	res, err := trace.March(pl.Scene.Distance, ray, pl.Tracer)
	if err != nil {
		return Sample{}, err
	}
	if !res.Hit {
		return Sample{}, nil
	}
	_, hit := pl.Scene.Sample(res.Point)
	n := trace.Normal(pl.Scene.Distance, res.Point, pl.Tracer.NormalStep)
	dir := ms3.Unit(ray.Dir)
	if ms3.Norm(n) == 0 {
		// Locally constant field; face the viewer rather than going dark.
		n = ms3.Scale(-1, dir)
	}

	base := pl.surfaceColor(hit, res.Point)
	cfg := pl.Cfg
	l := ms3.Unit(cfg.LightDir)
	diffuse := maxf(ms3.Dot(n, l), 0)
	lum := cfg.Ambient + (1-cfg.Ambient)*diffuse
	c := base.Scale(lum)

	fres := cfg.FresnelStrength * math32.Pow(1-maxf(ms3.Dot(n, ms3.Scale(-1, dir)), 0), cfg.FresnelPower)
	c.R += fres
	c.G += fres
	c.B += fres

	alpha := base.A * (1 - math32.Exp(-cfg.Absorption*pl.thickness(res.Point, dir)))
	c = clamp01(c.WithAlpha(alpha))
	return Sample{
		Color: c,
		Depth: ms1.Clamp(res.T/pl.Tracer.MaxDistance, 0, 1),
		Hit:   true,
	}, nil
}

// surfaceColor resolves the hit primitive's display color, including the
// infection front, glow boost and digit overlay for nodes.
func (pl *Pipeline) surfaceColor(hit valence.Hit, p ms3.Vec) valence.Color {
	switch hit.Kind {
	case valence.HitEdge:
		edges := pl.Scene.Edges()
		if hit.Index >= 0 && hit.Index < len(edges) {
			return edges[hit.Index].Color
		}
		return valence.Color{A: 1}
	case valence.HitNode:
		n := pl.Scene.Node(hit.Index)
		c := pl.Scene.NodeColor(hit.Index, p)
		if n.Glow > 0 {
			g := n.Glow * pl.Cfg.GlowBoost
			c.R += g
			c.G += g
			c.B += g
		}
		if n.Digit != valence.NoDigit && pl.Glyphs != nil && n.Radius > 0 {
			c = pl.overlayDigit(c, n, p)
		}
		return c
	default:
		return valence.Color{}
	}
}

// overlayDigit blends the node's digit glyph onto its top face. The local
// up direction selects the face; the horizontal components map to glyph UV.
func (pl *Pipeline) overlayDigit(c valence.Color, n valence.Node, p ms3.Vec) valence.Color {
	local := ms3.Scale(1/n.Radius, ms3.Sub(p, n.Center))
	if local.Y < pl.Cfg.DigitFaceMin {
		return c
	}
	uv := ms2.Vec{
		X: ms1.Clamp(0.5+local.X/1.5, 0, 1),
		Y: ms1.Clamp(0.5-local.Z/1.5, 0, 1),
	}
	digit := n.Digit
	if digit > 9 {
		digit = 9
	}
	cov := ms1.Clamp(pl.Glyphs.Coverage(digit, uv), 0, 1)
	return valence.LerpRGB(c, pl.Cfg.DigitColor, cov*pl.Cfg.DigitOpacity)
}

// thickness probes how far the ray continues inside the surface, bounded by
// ThicknessSteps, for Beer-Lambert opacity.
func (pl *Pipeline) thickness(p, dir ms3.Vec) float32 {
	cfg := pl.Cfg
	var t float32
	for i := 0; i < cfg.ThicknessSteps; i++ {
		t += cfg.ThicknessStep
		q := ms3.Add(p, ms3.Scale(t, dir))
		if pl.Scene.Distance(q) > 0 {
			break
		}
	}
	return t
}

func maxf(a, b float32) float32 { return math32.Max(a, b) }

func clamp01(c valence.Color) valence.Color {
	return valence.Color{
		R: ms1.Clamp(c.R, 0, 1),
		G: ms1.Clamp(c.G, 0, 1),
		B: ms1.Clamp(c.B, 0, 1),
		A: ms1.Clamp(c.A, 0, 1),
	}
}
