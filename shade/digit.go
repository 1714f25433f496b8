package shade

import (
	"image/color"

	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
	"golang.org/x/sync/errgroup"

	valence "github.com/RonDeBen/valence-sdf"
	"github.com/RonDeBen/valence-sdf/sevenseg"
)

// DigitStyle tunes the 2-D seven-segment HUD shading. The HUD has no depth,
// only edge antialiasing and a bevel highlight along the glyph rim.
type DigitStyle struct {
	FillColor valence.Color
	// AAWidth is the antialias half-width around the zero isoline, in HUD
	// space units.
	AAWidth float32
	// BevelWidth is the rim band inside the glyph that picks up the bevel
	// highlight and BevelStrength its luminance swing.
	BevelWidth    float32
	BevelStrength float32
	// LightDir is the 2-D light direction for the bevel, pointing toward
	// the light.
	LightDir ms2.Vec
	// GradStep is the finite-difference step for the distance gradient. If
	// zero a reasonable value is chosen.
	GradStep float32
}

// DefaultDigitStyle returns the stock HUD shading tuning.
func DefaultDigitStyle() DigitStyle {
	return DigitStyle{
		FillColor:     valence.Color{R: 0.92, G: 0.95, B: 1, A: 1},
		AAWidth:       0.01,
		BevelWidth:    0.04,
		BevelStrength: 0.35,
		LightDir:      ms2.Vec{X: -0.5, Y: 0.8},
		GradStep:      2e-3,
	}
}

// ShadeHUD evaluates the HUD field at p and shades it: coverage from edge
// antialiasing, luminance from a bevel term that brightens rim points facing
// the light and darkens those facing away. Points outside every glyph return
// a transparent non-hit sample. HUD samples carry zero depth since the HUD
// composites over the 3-D scene.
func ShadeHUD(h *sevenseg.HUD, p ms2.Vec, style DigitStyle) Sample {
	d, idx := h.Distance(p)
	if idx < 0 || d > style.AAWidth {
		return Sample{}
	}
	alpha := 1 - ms1.SmoothStep(-style.AAWidth, style.AAWidth, d)
	step := style.GradStep
	if step <= 0 {
		step = 2e-3
	}
	g := hudGradient(h, p, step)
	rim := ms1.SmoothStep(-style.BevelWidth, 0, d)
	lum := 1 + style.BevelStrength*rim*ms2.Dot(g, unit2(style.LightDir))
	c := clamp01(style.FillColor.Scale(lum))
	return Sample{
		Color: c.WithAlpha(alpha * style.FillColor.A),
		Hit:   true,
	}
}

// hudGradient central-differences the HUD distance field. Returns the zero
// vector where the field is locally constant.
func hudGradient(h *sevenseg.HUD, p ms2.Vec, step float32) ms2.Vec {
	dx1, _ := h.Distance(ms2.Add(p, ms2.Vec{X: step}))
	dx0, _ := h.Distance(ms2.Add(p, ms2.Vec{X: -step}))
	dy1, _ := h.Distance(ms2.Add(p, ms2.Vec{Y: step}))
	dy0, _ := h.Distance(ms2.Add(p, ms2.Vec{Y: -step}))
	g := ms2.Vec{X: dx1 - dx0, Y: dy1 - dy0}
	return unit2(g)
}

// unit2 normalizes v, returning the zero vector for degenerate input.
func unit2(v ms2.Vec) ms2.Vec {
	n := ms2.Norm(v)
	if n == 0 {
		return ms2.Vec{}
	}
	return ms2.Scale(1/n, v)
}

// RenderHUD rasterizes the HUD over the view box into img, compositing each
// shaded sample over whatever the image already holds. The Y axis flips so
// view.Max.Y maps to the top image row. Rows render concurrently.
func RenderHUD(img setImage, h *sevenseg.HUD, view ms2.Box, style DigitStyle, workers int) error {
	bb := img.Bounds()
	w, hh := bb.Dx(), bb.Dy()
	if w <= 0 || hh <= 0 {
		return errBadImage
	}
	if workers <= 0 {
		workers = 1
	}
	sz := view.Size()
	var g errgroup.Group
	g.SetLimit(workers)
	for j := 0; j < hh; j++ {
		j := j
		g.Go(func() error {
			y := view.Max.Y - (float32(j)+0.5)/float32(hh)*sz.Y
			for i := 0; i < w; i++ {
				x := view.Min.X + (float32(i)+0.5)/float32(w)*sz.X
				s := ShadeHUD(h, ms2.Vec{X: x, Y: y}, style)
				if !s.Hit || s.Color.A <= 0 {
					continue
				}
				xi, yi := bb.Min.X+i, bb.Min.Y+j
				under := img.At(xi, yi)
				img.Set(xi, yi, compositeOver(s.Color, under))
			}
			return nil
		})
	}
	return g.Wait()
}

// compositeOver source-over blends the shaded sample onto an existing pixel,
// working in premultiplied alpha like the image/color RGBA convention.
func compositeOver(src valence.Color, under color.Color) color.Color {
	r, g, b, a := under.RGBA()
	inv := 1 - src.A
	to8 := func(f float32) uint8 {
		return uint8(ms1.Clamp(f, 0, 1)*255 + 0.5)
	}
	return color.RGBA{
		R: to8(src.R*src.A + float32(r)/0xffff*inv),
		G: to8(src.G*src.A + float32(g)/0xffff*inv),
		B: to8(src.B*src.A + float32(b)/0xffff*inv),
		A: to8(src.A + float32(a)/0xffff*inv),
	}
}
