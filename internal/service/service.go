// Package service coordinates resolution runs: fetching snapshots,
// resolving them into a graph, archiving the run and notifying listeners.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"netfabric/internal/domain"
	"netfabric/internal/netbox"
	"netfabric/internal/repository"
	"netfabric/internal/topology"
)

// Fetcher produces a raw record set. The live API client and the offline
// snapshot loader both satisfy it.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (*netbox.Snapshot, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (*netbox.Snapshot, error)

func (f FetcherFunc) FetchSnapshot(ctx context.Context) (*netbox.Snapshot, error) {
	return f(ctx)
}

// TopologyService owns the current resolved graph and drives refreshes.
type TopologyService struct {
	fetcher  Fetcher
	store    repository.Store
	eventBus *EventBus

	mu      sync.RWMutex
	current *topology.Result
}

// NewTopologyService creates a new topology service. The store may be nil
// when run archiving is disabled.
func NewTopologyService(fetcher Fetcher, store repository.Store, eventBus *EventBus) *TopologyService {
	return &TopologyService{
		fetcher:  fetcher,
		store:    store,
		eventBus: eventBus,
	}
}

// Refresh fetches a fresh snapshot, resolves it and swaps the current
// graph. The previous graph stays in place when the refresh fails.
func (s *TopologyService) Refresh(ctx context.Context) (*topology.Result, error) {
	raw, err := s.fetcher.FetchSnapshot(ctx)
	if err != nil {
		s.eventBus.Publish(Event{Type: EventRefreshFailed, Payload: map[string]string{"error": err.Error()}})
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	s.eventBus.Publish(Event{Type: EventSnapshotLoaded})

	res, err := topology.Resolve(ctx, raw)
	if err != nil {
		s.eventBus.Publish(Event{Type: EventRefreshFailed, Payload: map[string]string{"error": err.Error()}})
		return nil, fmt.Errorf("resolve topology: %w", err)
	}

	s.mu.Lock()
	s.current = res
	s.mu.Unlock()

	s.eventBus.Publish(Event{
		Type: EventGraphResolved,
		Payload: map[string]interface{}{
			"run_id":     res.RunID,
			"nodes":      res.Graph.NodeCount(),
			"edges":      res.Graph.EdgeCount(),
			"unresolved": len(res.Unresolved),
		},
	})

	if s.store != nil {
		rawJSON, err := json.Marshal(raw)
		if err != nil {
			log.Printf("serialize snapshot for run %s: %v", res.RunID, err)
		}
		if err := s.store.SaveRun(ctx, res, rawJSON); err != nil {
			// Archiving is best effort; the resolved graph is already live.
			log.Printf("archive run %s: %v", res.RunID, err)
		} else {
			s.eventBus.Publish(Event{Type: EventRunArchived, Payload: map[string]string{"run_id": res.RunID}})
		}
	}

	return res, nil
}

// Current returns the latest resolved run, or nil before the first refresh.
func (s *TopologyService) Current() *topology.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Graph returns the current graph, or an error before the first refresh.
func (s *TopologyService) Graph() (*domain.Graph, error) {
	res := s.Current()
	if res == nil {
		return nil, fmt.Errorf("no resolved graph yet")
	}
	return res.Graph, nil
}

// ListRuns returns archived run summaries, newest first.
func (s *TopologyService) ListRuns(ctx context.Context, limit int) ([]repository.RunSummary, error) {
	if s.store == nil {
		return nil, fmt.Errorf("run archive disabled")
	}
	return s.store.ListRuns(ctx, limit)
}

// GetRun loads one archived run report.
func (s *TopologyService) GetRun(ctx context.Context, id string) (*repository.RunReport, error) {
	if s.store == nil {
		return nil, fmt.Errorf("run archive disabled")
	}
	return s.store.GetRun(ctx, id)
}

// GetRunSnapshot loads the serialized raw snapshot one archived run saw.
func (s *TopologyService) GetRunSnapshot(ctx context.Context, id string) ([]byte, error) {
	if s.store == nil {
		return nil, fmt.Errorf("run archive disabled")
	}
	return s.store.GetRunSnapshot(ctx, id)
}
