package valence

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms3"
)

// InfectedColor computes the display color of node n at a point on its
// surface while an infection color front is in flight. The front spreads
// outward along the surface from the contact points of the node's edges: for
// each connecting edge the far endpoint is projected radially onto the
// sphere, and the great-circle arc length from that contact point to the
// query point is the infection distance. Progress maps through ease-out
// cubic to a front reach of 0.2r + eased*πr, enough to wrap the whole sphere
// at completion; a smoothstep band 0.3r wide softens the front.
//
// Progress at or below 0.01 returns the base color exactly and at or above
// 0.99 the target color exactly, regardless of connectivity.
func InfectedColor(n Node, nodeIndex int, edges []Edge, surface ms3.Vec) Color {
	if n.InfectionProgress <= 0.01 {
		return n.BaseColor
	}
	if n.InfectionProgress >= 0.99 {
		return n.TargetColor
	}
	eased := EaseOutCubic(clampf(n.InfectionProgress, 0, 1))

	u := ms3.Sub(surface, n.Center)
	un := ms3.Norm(u)
	if un < epstol {
		// Query at the exact center has no direction; treat as front origin.
		return LerpHSV(n.BaseColor, n.TargetColor, eased)
	}
	u = ms3.Scale(1/un, u)

	minDist := float32(largenum)
	for _, e := range edges {
		if e.Preview() || !e.Touches(nodeIndex) {
			continue
		}
		far := e.End
		if e.NodeB == nodeIndex {
			far = e.Start
		}
		dir := ms3.Sub(far, n.Center)
		dn := ms3.Norm(dir)
		if dn < epstol {
			continue
		}
		cosA := clampf(ms3.Dot(u, ms3.Scale(1/dn, dir)), -1, 1)
		arc := n.Radius * math32.Acos(cosA)
		minDist = minf(minDist, arc)
	}
	if minDist >= largenum/2 {
		// Isolated node: no contact point to spread from, blend uniformly.
		return LerpHSV(n.BaseColor, n.TargetColor, eased)
	}

	reach := 0.2*n.Radius + eased*math32.Pi*n.Radius
	width := 0.3 * n.Radius
	blend := 1 - ms1.SmoothStep(reach-width, reach, minDist)
	return LerpHSV(n.BaseColor, n.TargetColor, blend)
}

// NodeColor resolves the display color for the scene node at index i as seen
// from a surface point, accounting for any in-flight infection front.
func (s *Scene) NodeColor(i int, surface ms3.Vec) Color {
	if s.nnodes == 0 {
		return Color{}
	}
	i = clampi(i, 0, s.nnodes-1)
	return InfectedColor(s.nodes[i], i, s.Edges(), surface)
}
