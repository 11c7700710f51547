package topology

import "netfabric/internal/domain"

// walkError describes why a chain walk could not reach an interface.
type walkError struct {
	Reason domain.UnresolvedReason
	At     domain.CablePort
}

// walkResult is the outcome of following one side of a cable outward
// through any pass-through ports until an interface, or a failure.
type walkResult struct {
	Terminal domain.CablePort
	Cables   []domain.CableID
	Err      *walkError
}

// walkFrom follows a chain starting at port, having arrived there over the
// given cable. Front ports hop to their mapped rear port and rear ports hop
// to a front port before the next cable segment is followed. A rear port
// with several front ports is only followed when exactly one of them is
// cabled; zero cabled front ports strands the chain and more than one makes
// it ambiguous. Revisiting any port aborts the walk as a cycle.
func walkFrom(snap *domain.Snapshot, arrived domain.CableID, port domain.CablePort) walkResult {
	visited := map[domain.CablePort]struct{}{}
	cables := []domain.CableID{arrived}
	cur := port
	curCable := arrived

	for {
		if _, seen := visited[cur]; seen {
			return walkResult{Cables: cables, Err: &walkError{Reason: domain.UnresolvedCycle, At: cur}}
		}
		visited[cur] = struct{}{}

		if cur.Kind == domain.PortInterface {
			if _, ok := snap.Interfaces[domain.InterfaceID(cur.ID)]; !ok {
				return walkResult{Cables: cables, Err: &walkError{Reason: domain.UnresolvedDangling, At: cur}}
			}
			return walkResult{Terminal: cur, Cables: cables}
		}

		// Pairing hop across the pass-through device.
		paired, werr := pairedPort(snap, cur)
		if werr != nil {
			return walkResult{Cables: cables, Err: werr}
		}
		if _, seen := visited[paired]; seen {
			return walkResult{Cables: cables, Err: &walkError{Reason: domain.UnresolvedCycle, At: paired}}
		}
		visited[paired] = struct{}{}

		// Cable hop away from the pass-through device.
		next, far, werr := nextCable(snap, paired, curCable)
		if werr != nil {
			return walkResult{Cables: cables, Err: werr}
		}
		cables = append(cables, next)
		cur = far
		curCable = next
	}
}

// pairedPort maps a front port to its rear port, or a rear port to the
// single follow-through front port.
func pairedPort(snap *domain.Snapshot, p domain.CablePort) (domain.CablePort, *walkError) {
	switch p.Kind {
	case domain.PortFront:
		fp, ok := snap.FrontPorts[domain.FrontPortID(p.ID)]
		if !ok || fp.RearPort == 0 {
			return domain.CablePort{}, &walkError{Reason: domain.UnresolvedDangling, At: p}
		}
		if _, ok := snap.RearPorts[fp.RearPort]; !ok {
			return domain.CablePort{}, &walkError{Reason: domain.UnresolvedDangling, At: p}
		}
		return domain.RearPortRef(fp.RearPort), nil

	case domain.PortRear:
		if _, ok := snap.RearPorts[domain.RearPortID(p.ID)]; !ok {
			return domain.CablePort{}, &walkError{Reason: domain.UnresolvedDangling, At: p}
		}
		fronts := snap.FrontPortsOf(domain.RearPortID(p.ID))
		switch len(fronts) {
		case 0:
			return domain.CablePort{}, &walkError{Reason: domain.UnresolvedDangling, At: p}
		case 1:
			return domain.FrontPortRef(fronts[0]), nil
		}
		// Fan-in panel: continue only through a uniquely cabled front port.
		var live []domain.FrontPortID
		for _, id := range fronts {
			if len(snap.CablesAt(domain.FrontPortRef(id))) > 0 {
				live = append(live, id)
			}
		}
		switch len(live) {
		case 0:
			return domain.CablePort{}, &walkError{Reason: domain.UnresolvedDangling, At: p}
		case 1:
			return domain.FrontPortRef(live[0]), nil
		default:
			return domain.CablePort{}, &walkError{Reason: domain.UnresolvedAmbiguous, At: p}
		}

	default:
		return domain.CablePort{}, &walkError{Reason: domain.UnresolvedDangling, At: p}
	}
}

// nextCable picks the outgoing cable at a pass-through port, excluding the
// one the walk arrived on, and returns its far termination.
func nextCable(snap *domain.Snapshot, p domain.CablePort, exclude domain.CableID) (domain.CableID, domain.CablePort, *walkError) {
	var candidates []domain.CableID
	for _, id := range snap.CablesAt(p) {
		if id != exclude {
			candidates = append(candidates, id)
		}
	}
	switch len(candidates) {
	case 0:
		return 0, domain.CablePort{}, &walkError{Reason: domain.UnresolvedDangling, At: p}
	case 1:
	default:
		return 0, domain.CablePort{}, &walkError{Reason: domain.UnresolvedAmbiguous, At: p}
	}

	cable := snap.Cables[candidates[0]]
	far, ok := cable.Other(p)
	if !ok {
		return 0, domain.CablePort{}, &walkError{Reason: domain.UnresolvedDangling, At: p}
	}
	return cable.ID, far, nil
}
