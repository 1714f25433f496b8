package sevenseg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RonDeBen/valence-sdf/sevenseg"
)

// TestFlowShareConservation checks over every mask pair that each
// disappearing segment's shares sum to exactly one unit of mass.
func TestFlowShareConservation(t *testing.T) {
	for from := uint8(0); from < 1<<7; from++ {
		for to := uint8(1); to < 1<<7; to++ {
			flows := sevenseg.ComputeFlows(from, to)
			require.LessOrEqual(t, len(flows), sevenseg.MaxFlows,
				"%07b->%07b overflows", from, to)
			sums := map[sevenseg.Segment]float64{}
			for _, f := range flows {
				assert.True(t, sevenseg.Active(to, f.To),
					"%07b->%07b routes to unlit segment %v", from, to, f.To)
				if sevenseg.Active(from, f.From) && !sevenseg.Active(to, f.From) {
					sums[f.From] += float64(f.Share)
				}
			}
			if len(flows) == sevenseg.MaxFlows {
				// Truncated plans legitimately lose trailing shares.
				continue
			}
			for s, sum := range sums {
				assert.InDelta(t, 1.0, sum, 1e-5,
					"%07b->%07b segment %v mass not conserved", from, to, s)
			}
		}
	}
}

func TestFlowsEmptyTarget(t *testing.T) {
	assert.Nil(t, sevenseg.ComputeFlows(0b1111111, 0))
}

// One-to-eight lights five new segments; with no disappearing mass, every
// appearing segment is seeded by a low-weight flow from a stable segment.
func TestFlowsOneToEight(t *testing.T) {
	one := sevenseg.Digit(1).Mask()
	eight := sevenseg.Digit(8).Mask()
	flows := sevenseg.ComputeFlows(one, eight)
	require.Len(t, flows, 5)
	stable := map[sevenseg.Segment]bool{
		sevenseg.SegTopRight:    true,
		sevenseg.SegBottomRight: true,
	}
	seeded := map[sevenseg.Segment]bool{}
	for _, f := range flows {
		assert.InDelta(t, 0.2, float64(f.Share), 1e-6, "excitement share")
		assert.True(t, stable[f.From], "excitement must come from a stable segment, got %v", f.From)
		assert.False(t, sevenseg.Active(one, f.To), "flow target %v should be appearing", f.To)
		seeded[f.To] = true
	}
	assert.Len(t, seeded, 5, "every appearing segment gets seeded once")
}

// Eight-to-one melts five segments; each must route its full unit of mass to
// the two surviving right-hand bars.
func TestFlowsEightToOne(t *testing.T) {
	one := sevenseg.Digit(1).Mask()
	eight := sevenseg.Digit(8).Mask()
	flows := sevenseg.ComputeFlows(eight, one)
	require.NotEmpty(t, flows)
	sums := map[sevenseg.Segment]float64{}
	for _, f := range flows {
		assert.Contains(t, []sevenseg.Segment{sevenseg.SegTopRight, sevenseg.SegBottomRight}, f.To)
		sums[f.From] += float64(f.Share)
	}
	require.Len(t, sums, 5, "five disappearing segments")
	for s, sum := range sums {
		assert.InDelta(t, 1.0, sum, 1e-6, "segment %v", s)
	}
}

func TestFlowsIdenticalMasksEmpty(t *testing.T) {
	for d := sevenseg.Digit(0); d <= 9; d++ {
		assert.Empty(t, sevenseg.ComputeFlows(d.Mask(), d.Mask()), "digit %d", d)
	}
}

// Ties split the unit of mass equally among all nearest targets.
func TestFlowsTieSplitsEvenly(t *testing.T) {
	// Middle disappears while all six outer bars stay lit: every outer bar
	// is one hop away, so the mass splits six ways.
	from := uint8(0b1111111)
	to := uint8(0b0111111)
	flows := sevenseg.ComputeFlows(from, to)
	require.Len(t, flows, 6)
	for _, f := range flows {
		assert.Equal(t, sevenseg.SegMiddle, f.From)
		assert.InDelta(t, 1.0/6, float64(f.Share), 1e-6)
	}
}
