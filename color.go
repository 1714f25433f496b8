package valence

import (
	"image/color"

	math "github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
)

// Color is a premultiplied-nothing linear RGBA color with components
// nominally in [0, 1]. Alpha rides along untouched by the HSV helpers.
type Color struct {
	R, G, B, A float32
}

// Scale returns c with RGB scaled by k. Alpha is preserved.
func (c Color) Scale(k float32) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// RGBA8 converts c to an 8-bit non-premultiplied image color, clamping each
// component to [0,1].
func (c Color) RGBA8() color.NRGBA {
	to8 := func(f float32) uint8 {
		return uint8(ms1.Clamp(f, 0, 1)*255 + 0.5)
	}
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// MeanColor averages two colors component-wise. Edge colors are the mean of
// their endpoint node colors.
func MeanColor(a, b Color) Color {
	return Color{
		R: 0.5 * (a.R + b.R),
		G: 0.5 * (a.G + b.G),
		B: 0.5 * (a.B + b.B),
		A: 0.5 * (a.A + b.A),
	}
}

// LerpRGB interpolates a toward b component-wise in RGB space.
func LerpRGB(a, b Color, t float32) Color {
	return Color{
		R: ms1.Interp(a.R, b.R, t),
		G: ms1.Interp(a.G, b.G, t),
		B: ms1.Interp(a.B, b.B, t),
		A: ms1.Interp(a.A, b.A, t),
	}
}

// LerpHSV interpolates a toward b through HSV space taking the shortest path
// around the hue wheel, which avoids the visible color reversal a naive hue
// lerp produces near the 0/1 wrap boundary.
func LerpHSV(a, b Color, t float32) Color {
	h0, s0, v0 := RGBToHSV(a.R, a.G, a.B)
	h1, s1, v1 := RGBToHSV(b.R, b.G, b.B)
	h, s, v := interpHSV(h0, s0, v0, h1, s1, v1, t)
	r, g, bb := HSVToRGB(h, s, v)
	return Color{R: r, G: g, B: bb, A: ms1.Interp(a.A, b.A, t)}
}

func interpHSV(h0, s0, v0, h1, s1, v1, t float32) (h, s, v float32) {
	switch {
	case h1-h0 > 0.5:
		h0 += 1.0
	case h1-h0 < -0.5:
		h1 += 1.0
	}
	h = ms1.Interp(h0, h1, t)
	if h >= 1 {
		h -= 1
	}
	s = ms1.Interp(s0, s1, t)
	v = ms1.Interp(v0, v1, t)
	return h, s, v
}

// HSVToRGB converts hue, saturation and brightness values on the range of 0.0
// to 1.0 to RGB floating point values on the range of 0.0 to 1.0
func HSVToRGB(h, s, v float32) (r, g, b float32) {
	var (
		c = s * v
		x = c * (1 - math.Abs(math.Mod(h*6, 2)-1))
		m = v - c
	)

	switch {
	case h >= 0 && h <= 1.0/6:
		r, g, b = c, x, 0
	case h > 1.0/6 && h <= 2.0/6:
		r, g, b = x, c, 0
	case h > 2.0/6 && h <= 3.0/6:
		r, g, b = 0, c, x
	case h > 3.0/6 && h <= 4.0/6:
		r, g, b = 0, x, c
	case h > 4.0/6 && h <= 5.0/6:
		r, g, b = x, 0, c
	case h > 5.0/6 && h <= 1.0:
		r, g, b = c, 0, x
	}

	r, g, b = r+m, g+m, b+m
	return r, g, b
}

// RGBToHSV converts red, green, and blue floating point values on the range
// 0.0 to 1.0 to hue, saturation and brightness values on the range 0.0 to 1.0
func RGBToHSV(r, g, b float32) (h, s, v float32) {
	var (
		xmax = max(r, g, b)
		xmin = min(r, g, b)
		c    = xmax - xmin
	)
	v = xmax
	switch {
	case c == 0:
		h = 0
	case v == r:
		h = (g - b) / (c * 6)
	case v == g:
		h = 1.0/3 + (b-r)/(c*6)
	case v == b:
		h = 2.0/3 + (r-g)/(c*6)
	}
	if h < 0 {
		h += 1
	}
	if xmax > 0 {
		s = c / xmax
	}
	return h, s, v
}
