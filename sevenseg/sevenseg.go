// Package sevenseg models animated seven-segment digits: the digit/segment
// bit-mask tables, the topological routing of segment "mass" between two
// masks (flows), and the five-phase morph animation evaluated as a 2-D
// signed distance field per sample. Shapes fold together with the same
// polynomial smooth minimum used by the 3-D scene so a digit in flight reads
// as one continuous blobby glyph.
package sevenseg

// Segment identifies one of the seven display segments. The numbering
// matches bit positions in digit masks.
type Segment uint8

const (
	SegTop Segment = iota
	SegTopRight
	SegBottomRight
	SegBottom
	SegBottomLeft
	SegTopLeft
	SegMiddle
	numSegments = 7
)

func (s Segment) String() string {
	switch s {
	case SegTop:
		return "top"
	case SegTopRight:
		return "top-right"
	case SegBottomRight:
		return "bottom-right"
	case SegBottom:
		return "bottom"
	case SegBottomLeft:
		return "bottom-left"
	case SegTopLeft:
		return "top-left"
	case SegMiddle:
		return "middle"
	}
	return "invalid"
}

// segNeighbors lists segments sharing a corner or junction. The middle bar
// touches everything, which caps the topological diameter at 2.
var segNeighbors = [numSegments][]Segment{
	SegTop:         {SegTopRight, SegTopLeft, SegMiddle},
	SegTopRight:    {SegTop, SegMiddle, SegBottomRight},
	SegBottomRight: {SegTopRight, SegMiddle, SegBottom},
	SegBottom:      {SegBottomRight, SegBottomLeft, SegMiddle},
	SegBottomLeft:  {SegBottom, SegMiddle, SegTopLeft},
	SegTopLeft:     {SegTop, SegMiddle, SegBottomLeft},
	SegMiddle:      {SegTop, SegTopRight, SegBottomRight, SegBottom, SegBottomLeft, SegTopLeft},
}

// Dist returns the topological distance between segments: 0 for the same
// segment, 1 for physical neighbors, 2 otherwise.
func (s Segment) Dist(other Segment) int {
	if s == other {
		return 0
	}
	for _, n := range segNeighbors[s] {
		if n == other {
			return 1
		}
	}
	return 2
}

// Digit is a decimal digit 0 through 9.
type Digit uint8

// Mask returns the 7-segment bitmask of d, bits 0..6 addressing Segment
// 0..6. Out-of-range digits clamp to 9.
func (d Digit) Mask() uint8 {
	if d > 9 {
		d = 9
	}
	return digitMasks[d]
}

var digitMasks = [10]uint8{
	0b0111111, // 0
	0b0000110, // 1
	0b1011011, // 2
	0b1001111, // 3
	0b1100110, // 4
	0b1101101, // 5
	0b1111101, // 6
	0b0000111, // 7
	0b1111111, // 8
	0b1101111, // 9
}

// DigitFromMask returns the digit whose segment mask equals mask.
func DigitFromMask(mask uint8) (Digit, bool) {
	for d, m := range digitMasks {
		if m == mask {
			return Digit(d), true
		}
	}
	return 0, false
}

// Active reports whether segment s is lit in mask.
func Active(mask uint8, s Segment) bool {
	return mask&(1<<s) != 0
}
