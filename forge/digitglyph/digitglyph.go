// Package digitglyph rasterizes the digits 0 through 9 from a TTF font into
// a small alpha atlas and serves antialiased coverage lookups from it. The
// atlas is built once and is read-only afterwards, so lookups are safe for
// concurrent use during rendering.
package digitglyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Config tunes atlas rasterization.
type Config struct {
	// AtlasSize is the square pixel resolution of each digit mask. If zero
	// a reasonable value is chosen.
	AtlasSize int
	// GlyphScale is the glyph point size relative to AtlasSize. If zero a
	// reasonable value is chosen.
	GlyphScale float64
}

func (cfg *Config) fillDefaults() error {
	if cfg.AtlasSize == 0 {
		cfg.AtlasSize = 128
	}
	if cfg.GlyphScale == 0 {
		cfg.GlyphScale = 0.78
	}
	if cfg.AtlasSize < 8 {
		return errors.New("atlas size too small")
	}
	if cfg.GlyphScale < 0 || cfg.GlyphScale > 1 {
		return errors.New("glyph scale must be in (0,1]")
	}
	return nil
}

// Atlas holds one rasterized alpha mask per digit.
type Atlas struct {
	masks [10]*image.Alpha
	size  int
}

// LoadDefault builds an atlas from the Go Regular typeface.
func LoadDefault() (*Atlas, error) {
	return LoadTTFBytes(goregular.TTF, Config{})
}

// LoadTTFBytes parses a TTF file blob and rasterizes the ten digit glyphs,
// each centered in its own mask.
func LoadTTFBytes(ttf []byte, cfg Config) (*Atlas, error) {
	if err := cfg.fillDefaults(); err != nil {
		return nil, err
	}
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parsing ttf: %w", err)
	}
	size := cfg.AtlasSize
	face := truetype.NewFace(parsed, &truetype.Options{
		Size:    float64(size) * cfg.GlyphScale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	a := &Atlas{size: size}
	for d := 0; d <= 9; d++ {
		s := string(rune('0' + d))
		b, _ := font.BoundString(face, s)
		m := image.NewAlpha(image.Rect(0, 0, size, size))
		dr := font.Drawer{
			Dst:  m,
			Src:  image.NewUniform(color.Opaque),
			Face: face,
			Dot: fixed.Point26_6{
				X: (fixed.I(size)-(b.Max.X-b.Min.X))/2 - b.Min.X,
				Y: (fixed.I(size)-(b.Max.Y-b.Min.Y))/2 - b.Min.Y,
			},
		}
		dr.DrawString(s)
		a.masks[d] = m
	}
	return a, nil
}

// Size returns the square pixel resolution of the atlas masks.
func (a *Atlas) Size() int { return a.size }

// Mask returns the raw alpha mask of one digit, mostly for inspection.
func (a *Atlas) Mask(digit int) *image.Alpha {
	if digit < 0 {
		return nil
	}
	if digit > 9 {
		digit = 9
	}
	return a.masks[digit]
}

// Coverage bilinearly samples the digit's mask at uv in [0,1]², following
// the image convention with Y growing downward. Out-of-range digits clamp
// to 9 and negative digits return zero coverage.
func (a *Atlas) Coverage(digit int, uv ms2.Vec) float32 {
	if a == nil || digit < 0 {
		return 0
	}
	if digit > 9 {
		digit = 9
	}
	m := a.masks[digit]
	if m == nil {
		return 0
	}
	fx := ms1.Clamp(uv.X, 0, 1) * float32(a.size-1)
	fy := ms1.Clamp(uv.Y, 0, 1) * float32(a.size-1)
	x0, y0 := int(fx), int(fy)
	x1, y1 := x0+1, y0+1
	if x1 >= a.size {
		x1 = a.size - 1
	}
	if y1 >= a.size {
		y1 = a.size - 1
	}
	tx := fx - float32(x0)
	ty := fy - float32(y0)
	top := ms1.Interp(alphaAt(m, x0, y0), alphaAt(m, x1, y0), tx)
	bot := ms1.Interp(alphaAt(m, x0, y1), alphaAt(m, x1, y1), tx)
	return ms1.Interp(top, bot, ty)
}

func alphaAt(m *image.Alpha, x, y int) float32 {
	return float32(m.AlphaAt(x, y).A) / 255
}
