package service

import (
	"context"
	"errors"
	"testing"

	"netfabric/internal/netbox"
)

func fixtureFetcher() Fetcher {
	return FetcherFunc(func(ctx context.Context) (*netbox.Snapshot, error) {
		return &netbox.Snapshot{
			Devices: []netbox.Device{
				{ID: 1, Name: "sw1"},
				{ID: 2, Name: "sw2"},
			},
			Interfaces: []netbox.Interface{
				{ID: 10, Name: "eth0", Device: &netbox.Ref{ID: 1}},
				{ID: 20, Name: "eth0", Device: &netbox.Ref{ID: 2}},
			},
			Cables: []netbox.Cable{
				{
					ID:            100,
					ATerminations: []netbox.Termination{{ObjectType: netbox.ObjectTypeInterface, ObjectID: 10}},
					BTerminations: []netbox.Termination{{ObjectType: netbox.ObjectTypeInterface, ObjectID: 20}},
				},
			},
		}, nil
	})
}

func TestRefreshSwapsGraph(t *testing.T) {
	bus := NewEventBus()
	events := make(chan Event, 16)
	bus.Subscribe(events)

	svc := NewTopologyService(fixtureFetcher(), nil, bus)
	if svc.Current() != nil {
		t.Fatal("service has a graph before first refresh")
	}
	if _, err := svc.Graph(); err == nil {
		t.Error("Graph() should fail before first refresh")
	}

	res, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if svc.Current() != res {
		t.Error("Current() does not return the refreshed run")
	}
	if res.Graph.EdgeCount() != 1 {
		t.Errorf("edges = %d, want 1", res.Graph.EdgeCount())
	}

	var seen []EventType
	for len(events) > 0 {
		seen = append(seen, (<-events).Type)
	}
	want := []EventType{EventSnapshotLoaded, EventGraphResolved}
	if len(seen) != len(want) {
		t.Fatalf("events = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, seen[i], want[i])
		}
	}
}

func TestRefreshKeepsGraphOnFetchFailure(t *testing.T) {
	bus := NewEventBus()
	events := make(chan Event, 16)
	bus.Subscribe(events)

	calls := 0
	failing := FetcherFunc(func(ctx context.Context) (*netbox.Snapshot, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("source unreachable")
		}
		return fixtureFetcher().FetchSnapshot(ctx)
	})

	svc := NewTopologyService(failing, nil, bus)
	first, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if _, err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh failure")
	}
	if svc.Current() != first {
		t.Error("failed refresh replaced the current graph")
	}

	failed := false
	for len(events) > 0 {
		if (<-events).Type == EventRefreshFailed {
			failed = true
		}
	}
	if !failed {
		t.Error("no refresh_failed event published")
	}
}
