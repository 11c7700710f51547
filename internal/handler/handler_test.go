package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"netfabric/internal/codec"
	"netfabric/internal/domain"
	"netfabric/internal/netbox"
	"netfabric/internal/service"
)

func testMux(t *testing.T) *http.ServeMux {
	t.Helper()

	fetcher := service.FetcherFunc(func(ctx context.Context) (*netbox.Snapshot, error) {
		return &netbox.Snapshot{
			Tenants: []netbox.Tenant{{ID: 7, Name: "Acme", Slug: "acme"}},
			Devices: []netbox.Device{
				{ID: 1, Name: "sw1", Tenant: &netbox.Ref{ID: 7}},
				{ID: 2, Name: "sw2"},
			},
			Interfaces: []netbox.Interface{
				{ID: 10, Name: "eth0", Device: &netbox.Ref{ID: 1}, UntaggedVLAN: &netbox.Ref{ID: 500}},
				{ID: 20, Name: "eth0", Device: &netbox.Ref{ID: 2}},
			},
			Cables: []netbox.Cable{
				{
					ID:            100,
					ATerminations: []netbox.Termination{{ObjectType: netbox.ObjectTypeInterface, ObjectID: 10}},
					BTerminations: []netbox.Termination{{ObjectType: netbox.ObjectTypeInterface, ObjectID: 20}},
				},
				{
					ID:            101,
					ATerminations: []netbox.Termination{{ObjectType: netbox.ObjectTypeInterface, ObjectID: 20}},
					BTerminations: []netbox.Termination{{ObjectType: netbox.ObjectTypeFrontPort, ObjectID: 999}},
				},
			},
			VLANs: []netbox.VLAN{{ID: 500, Name: "v10", VID: 10}},
		}, nil
	})

	svc := service.NewTopologyService(fetcher, nil, service.NewEventBus())
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("seed refresh: %v", err)
	}

	h := NewTopologyHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/graph", h.GetGraph)
	mux.HandleFunc("GET /api/nodes", h.ListNodes)
	mux.HandleFunc("GET /api/nodes/{id}", h.GetNode)
	mux.HandleFunc("GET /api/edges", h.ListEdges)
	mux.HandleFunc("GET /api/unresolved", h.GetUnresolved)
	mux.HandleFunc("GET /api/diagnostics", h.GetDiagnostics)
	mux.HandleFunc("POST /api/refresh", h.Refresh)
	mux.HandleFunc("GET /api/export/{format}", h.Export)
	return mux
}

func get(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGetGraph(t *testing.T) {
	rec := get(t, testMux(t), "/api/graph")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var doc codec.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	// 2 devices + 2 interfaces + 1 VLAN
	if len(doc.Nodes) != 5 {
		t.Errorf("nodes = %d, want 5", len(doc.Nodes))
	}
	// 1 physical + 1 untagged VLAN edge
	if len(doc.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(doc.Edges))
	}
}

func TestListNodesFiltered(t *testing.T) {
	mux := testMux(t)

	rec := get(t, mux, "/api/nodes?kind=device")
	var nodes []domain.Node
	if err := json.Unmarshal(rec.Body.Bytes(), &nodes); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(nodes) != 2 {
		t.Errorf("device nodes = %d, want 2", len(nodes))
	}

	rec = get(t, mux, "/api/nodes?tenant=acme")
	nodes = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &nodes); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	// sw1 and its interface
	if len(nodes) != 2 {
		t.Errorf("acme nodes = %d, want 2: %+v", len(nodes), nodes)
	}
	for _, n := range nodes {
		if n.Tenant != "acme" {
			t.Errorf("node %s tenant = %q", n.ID, n.Tenant)
		}
	}
}

func TestGetNode(t *testing.T) {
	mux := testMux(t)

	rec := get(t, mux, "/api/nodes/device:1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var node domain.Node
	if err := json.Unmarshal(rec.Body.Bytes(), &node); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if node.Label != "sw1" || node.Tenant != "acme" {
		t.Errorf("node = %+v", node)
	}

	rec = get(t, mux, "/api/nodes/device:99")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListEdgesByKind(t *testing.T) {
	mux := testMux(t)

	rec := get(t, mux, "/api/edges?kind=physical")
	var edges []domain.Edge
	if err := json.Unmarshal(rec.Body.Bytes(), &edges); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("physical edges = %d, want 1", len(edges))
	}

	rec = get(t, mux, "/api/edges?kind=bridge")
	edges = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &edges); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("bridge edges = %d, want empty list", len(edges))
	}
	if !strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "[") {
		t.Errorf("empty result should be a JSON array, got %s", rec.Body.String())
	}
}

func TestGetUnresolved(t *testing.T) {
	rec := get(t, testMux(t), "/api/unresolved")
	var unresolved []domain.UnresolvedLink
	if err := json.Unmarshal(rec.Body.Bytes(), &unresolved); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	// cable 101 points at an unknown front port
	if len(unresolved) != 1 || unresolved[0].Cable != 101 {
		t.Errorf("unresolved = %+v", unresolved)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	mux := testMux(t)
	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out["run_id"] == "" {
		t.Error("refresh response has no run_id")
	}
}

func TestExportFormats(t *testing.T) {
	mux := testMux(t)

	rec := get(t, mux, "/api/export/dot")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "graph topology {") {
		t.Errorf("dot export = %s", rec.Body.String())
	}

	rec = get(t, mux, "/api/export/xml")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown format", rec.Code)
	}
}

func TestNoGraphYet(t *testing.T) {
	svc := service.NewTopologyService(service.FetcherFunc(func(ctx context.Context) (*netbox.Snapshot, error) {
		return &netbox.Snapshot{}, nil
	}), nil, service.NewEventBus())
	h := NewTopologyHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/graph", nil)
	rec := httptest.NewRecorder()
	h.GetGraph(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 before first refresh", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Error == "" {
		t.Error("error response has no message")
	}
}
