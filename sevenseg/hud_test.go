package sevenseg_test

import (
	"testing"

	"github.com/soypat/glgl/math/ms2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RonDeBen/valence-sdf/sevenseg"
)

func TestHUDCapacity(t *testing.T) {
	h := sevenseg.NewHUD(sevenseg.DefaultAnimConfig())
	for i := 0; i < sevenseg.MaxHUDInstances; i++ {
		idx, err := h.Add(sevenseg.Instance{Kind: sevenseg.KindDigit, Mask: sevenseg.Digit(8).Mask()})
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	_, err := h.Add(sevenseg.Instance{Kind: sevenseg.KindDigit})
	assert.ErrorIs(t, err, sevenseg.ErrTooManyInstances)
	assert.Equal(t, sevenseg.MaxHUDInstances, h.Len())
}

func TestHUDResetAndDefaults(t *testing.T) {
	cfg := sevenseg.DefaultAnimConfig()
	h := sevenseg.NewHUD(cfg)
	_, err := h.Add(sevenseg.Instance{Kind: sevenseg.KindDigit, Mask: sevenseg.Digit(3).Mask()})
	require.NoError(t, err)
	assert.Equal(t, float32(1), h.Instances()[0].Scale, "zero scale defaults to 1")
	assert.Equal(t, cfg, h.Config())
	h.Reset()
	assert.Zero(t, h.Len())
	_, idx := h.Distance(ms2.Vec{})
	assert.Equal(t, -1, idx, "empty HUD has no nearest instance")
}

func TestHUDNearestInstance(t *testing.T) {
	h := sevenseg.NewHUD(sevenseg.DefaultAnimConfig())
	m := sevenseg.Digit(8).Mask()
	_, err := h.Add(sevenseg.Instance{Kind: sevenseg.KindDigit, Mask: m, FromMask: m, Pos: ms2.Vec{X: -1}})
	require.NoError(t, err)
	_, err = h.Add(sevenseg.Instance{Kind: sevenseg.KindDigit, Mask: m, FromMask: m, Pos: ms2.Vec{X: 1}})
	require.NoError(t, err)

	_, idx := h.Distance(ms2.Vec{X: -1})
	assert.Equal(t, 0, idx)
	_, idx = h.Distance(ms2.Vec{X: 1})
	assert.Equal(t, 1, idx)
}

func TestHUDSeparator(t *testing.T) {
	cfg := sevenseg.DefaultAnimConfig()
	h := sevenseg.NewHUD(cfg)
	_, err := h.Add(sevenseg.Instance{Kind: sevenseg.KindSeparator})
	require.NoError(t, err)
	// The slash passes through the cell center.
	d, idx := h.Distance(ms2.Vec{})
	assert.Equal(t, 0, idx)
	assert.Negative(t, d)
	want := sevenseg.DistanceSeparator(ms2.Vec{}, cfg)
	assert.Equal(t, want, d)
}

// Scaling an instance scales its field as a true distance.
func TestHUDScaledDistance(t *testing.T) {
	cfg := sevenseg.DefaultAnimConfig()
	m := sevenseg.Digit(8).Mask()
	h1 := sevenseg.NewHUD(cfg)
	_, err := h1.Add(sevenseg.Instance{Kind: sevenseg.KindDigit, Mask: m, FromMask: m, Scale: 1})
	require.NoError(t, err)
	h2 := sevenseg.NewHUD(cfg)
	_, err = h2.Add(sevenseg.Instance{Kind: sevenseg.KindDigit, Mask: m, FromMask: m, Scale: 2})
	require.NoError(t, err)

	p := ms2.Vec{X: 0.3, Y: 0.4}
	d1, _ := h1.Distance(p)
	d2, _ := h2.Distance(ms2.Scale(2, p))
	assert.InDelta(t, float64(2*d1), float64(d2), 1e-5)
}
