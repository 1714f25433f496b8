package sevenseg

// MaxFlows caps the routing records one transition may carry, sized for the
// fixed array of the render uniform layout. ComputeFlows silently drops
// excess flows past the cap.
const MaxFlows = 16

// Flow routes a share of a disappearing segment's mass to a segment active
// in the target mask. Shares from one source sum to 1 across its flows.
type Flow struct {
	From  Segment
	To    Segment
	Share float32
}

// ComputeFlows builds the mass-transport plan for a fromMask→toMask digit
// transition:
//
//   - Every segment lit in fromMask but not in toMask must flow somewhere:
//     its mass splits equally among the toMask segments at minimum
//     topological distance.
//   - Every segment appearing in toMask that received no routed mass gets a
//     low-weight "excitement" flow from the nearest stable segment (lit in
//     both masks), when one exists.
//
// A toMask with no lit segments produces no flows at all. The result is
// deterministic: sources and targets are visited in segment index order.
func ComputeFlows(fromMask, toMask uint8) []Flow {
	if toMask == 0 {
		return nil
	}
	flows := make([]Flow, 0, MaxFlows)

	// Disappearing segments route to the nearest lit targets.
	for from := Segment(0); from < numSegments; from++ {
		if !Active(fromMask, from) || Active(toMask, from) {
			continue
		}
		minDist := int(numSegments)
		count := 0
		for to := Segment(0); to < numSegments; to++ {
			if !Active(toMask, to) {
				continue
			}
			switch d := from.Dist(to); {
			case d < minDist:
				minDist = d
				count = 1
			case d == minDist:
				count++
			}
		}
		share := 1 / float32(count)
		for to := Segment(0); to < numSegments; to++ {
			if Active(toMask, to) && from.Dist(to) == minDist {
				flows = appendFlow(flows, Flow{From: from, To: to, Share: share})
			}
		}
	}

	// Excitement flows seed appearing segments that nothing routed to.
	for to := Segment(0); to < numSegments; to++ {
		if !Active(toMask, to) || Active(fromMask, to) {
			continue
		}
		routed := false
		for _, f := range flows {
			if f.To == to {
				routed = true
				break
			}
		}
		if routed {
			continue
		}
		src, ok := nearestStable(fromMask, toMask, to)
		if !ok {
			// No stable segment to donate from; the segment pops in at the
			// end of the transition instead.
			continue
		}
		flows = appendFlow(flows, Flow{From: src, To: to, Share: 0.2})
	}
	return flows
}

func appendFlow(flows []Flow, f Flow) []Flow {
	if len(flows) >= MaxFlows {
		return flows
	}
	return append(flows, f)
}

func nearestStable(fromMask, toMask uint8, to Segment) (Segment, bool) {
	best := Segment(0)
	bestDist := int(numSegments)
	found := false
	for s := Segment(0); s < numSegments; s++ {
		if !Active(fromMask, s) || !Active(toMask, s) {
			continue
		}
		if d := s.Dist(to); d < bestDist {
			bestDist = d
			best = s
			found = true
		}
	}
	return best, found
}
