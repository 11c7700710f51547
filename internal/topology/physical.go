package topology

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"netfabric/internal/domain"
)

// cableOutcome is the resolution of one cable: either the physical edge its
// chain collapses to, or the reason it stays unresolved.
type cableOutcome struct {
	edge       *domain.Edge
	unresolved *domain.UnresolvedLink
}

// BuildPhysicalLinks resolves every cable to an interface-to-interface
// physical edge by walking pass-through chains from both terminations. All
// cables of one chain produce the same edge, which is emitted once with the
// full cable set as its origins. Cables whose chain cannot be resolved are
// reported instead.
func BuildPhysicalLinks(ctx context.Context, snap *domain.Snapshot) ([]domain.Edge, []domain.UnresolvedLink, error) {
	ids := snap.CableIDs()
	outcomes := make([]cableOutcome, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = resolveCable(snap, snap.Cables[id])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("resolve cables: %w", err)
	}

	var (
		edges      []domain.Edge
		unresolved []domain.UnresolvedLink
		seen       = map[string]struct{}{}
	)
	for _, out := range outcomes {
		if out.unresolved != nil {
			unresolved = append(unresolved, *out.unresolved)
			continue
		}
		if out.edge == nil {
			continue
		}
		if _, dup := seen[out.edge.ID]; dup {
			continue
		}
		seen[out.edge.ID] = struct{}{}
		edges = append(edges, *out.edge)
	}
	return edges, unresolved, nil
}

// resolveCable walks outward from both sides of a cable. The edge identity
// is derived from the two terminal interfaces plus the sorted set of every
// cable traversed, so each member of a chain lands on the same edge.
func resolveCable(snap *domain.Snapshot, cable *domain.Cable) cableOutcome {
	if cable.A.IsZero() || cable.B.IsZero() {
		return cableOutcome{unresolved: &domain.UnresolvedLink{
			Cable: cable.ID, Reason: domain.UnresolvedDangling,
		}}
	}

	a := walkFrom(snap, cable.ID, cable.A)
	if a.Err != nil {
		return cableOutcome{unresolved: &domain.UnresolvedLink{
			Cable: cable.ID, Reason: a.Err.Reason, Side: "A", At: a.Err.At,
		}}
	}
	b := walkFrom(snap, cable.ID, cable.B)
	if b.Err != nil {
		return cableOutcome{unresolved: &domain.UnresolvedLink{
			Cable: cable.ID, Reason: b.Err.Reason, Side: "B", At: b.Err.At,
		}}
	}

	if a.Terminal == b.Terminal {
		return cableOutcome{unresolved: &domain.UnresolvedLink{
			Cable: cable.ID, Reason: domain.UnresolvedSelfLoop, At: a.Terminal,
		}}
	}

	from := domain.NodeRef(domain.NodeInterface, a.Terminal.ID)
	to := domain.NodeRef(domain.NodeInterface, b.Terminal.ID)
	edge := domain.NewEdge(domain.EdgePhysical, from, to, chainOrigins(a.Cables, b.Cables))
	return cableOutcome{edge: &edge}
}

// chainOrigins merges the cables traversed by both walks into one sorted,
// de-duplicated origin list.
func chainOrigins(a, b []domain.CableID) []string {
	set := map[domain.CableID]struct{}{}
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		set[id] = struct{}{}
	}
	ids := make([]domain.CableID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = fmt.Sprintf("cable:%d", id)
	}
	return out
}
