package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"netfabric/internal/codec"
	"netfabric/internal/domain"
	"netfabric/internal/repository"
	"netfabric/internal/service"
)

// TopologyHandler handles topology API requests
type TopologyHandler struct {
	svc *service.TopologyService
}

// NewTopologyHandler creates a new topology handler
func NewTopologyHandler(svc *service.TopologyService) *TopologyHandler {
	return &TopologyHandler{svc: svc}
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// GetGraph returns the complete resolved graph
func (h *TopologyHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	graph, err := h.svc.Graph()
	if err != nil {
		h.writeError(w, "No resolved graph", err.Error(), http.StatusServiceUnavailable)
		return
	}

	h.writeJSON(w, codec.NewDocument(graph), http.StatusOK)
}

// ListNodes returns graph nodes, optionally filtered by kind or tenant
func (h *TopologyHandler) ListNodes(w http.ResponseWriter, r *http.Request) {
	graph, err := h.svc.Graph()
	if err != nil {
		h.writeError(w, "No resolved graph", err.Error(), http.StatusServiceUnavailable)
		return
	}

	kind := r.URL.Query().Get("kind")
	tenant := r.URL.Query().Get("tenant")

	var nodes []domain.Node
	switch {
	case kind != "":
		nodes = graph.NodesByKind(domain.NodeKind(kind))
	case tenant != "":
		nodes = graph.NodesByTenant(tenant)
	default:
		nodes = graph.Nodes()
	}
	if tenant != "" && kind != "" {
		filtered := nodes[:0]
		for _, n := range nodes {
			if n.Tenant == tenant {
				filtered = append(filtered, n)
			}
		}
		nodes = filtered
	}

	h.writeJSON(w, nodes, http.StatusOK)
}

// GetNode returns a single node by its kind-qualified identifier
func (h *TopologyHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid node ID", "Node ID is required", http.StatusBadRequest)
		return
	}

	graph, err := h.svc.Graph()
	if err != nil {
		h.writeError(w, "No resolved graph", err.Error(), http.StatusServiceUnavailable)
		return
	}

	node, ok := graph.Node(id)
	if !ok {
		h.writeError(w, "Not found", "node "+id+" not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, node, http.StatusOK)
}

// ListEdges returns graph edges, optionally filtered by kind or layer
func (h *TopologyHandler) ListEdges(w http.ResponseWriter, r *http.Request) {
	graph, err := h.svc.Graph()
	if err != nil {
		h.writeError(w, "No resolved graph", err.Error(), http.StatusServiceUnavailable)
		return
	}

	var edges []domain.Edge
	switch kind := r.URL.Query().Get("kind"); kind {
	case "":
		edges = graph.Edges()
	case "logical":
		edges = graph.LogicalEdges()
	default:
		edges = graph.EdgesByKind(domain.EdgeKind(kind))
	}
	if edges == nil {
		edges = []domain.Edge{}
	}

	h.writeJSON(w, edges, http.StatusOK)
}

// GetUnresolved returns the unresolved-link report of the current run
func (h *TopologyHandler) GetUnresolved(w http.ResponseWriter, r *http.Request) {
	res := h.svc.Current()
	if res == nil {
		h.writeError(w, "No resolved graph", "no resolution run yet", http.StatusServiceUnavailable)
		return
	}
	unresolved := res.Unresolved
	if unresolved == nil {
		unresolved = []domain.UnresolvedLink{}
	}
	h.writeJSON(w, unresolved, http.StatusOK)
}

// GetDiagnostics returns the normalization diagnostics of the current run
func (h *TopologyHandler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	res := h.svc.Current()
	if res == nil {
		h.writeError(w, "No resolved graph", "no resolution run yet", http.StatusServiceUnavailable)
		return
	}
	h.writeJSON(w, map[string]interface{}{
		"run_id":       res.RunID,
		"resolved_at":  res.ResolvedAt,
		"diagnostics":  emptyDiags(res.Diagnostics),
		"missing_refs": emptyStrings(res.MissingRefs),
	}, http.StatusOK)
}

// Refresh triggers a new resolution run
func (h *TopologyHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Refresh(r.Context())
	if err != nil {
		log.Printf("Failed to refresh topology: %v", err)
		h.writeError(w, "Refresh failed", err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"run_id":     res.RunID,
		"nodes":      res.Graph.NodeCount(),
		"edges":      res.Graph.EdgeCount(),
		"unresolved": len(res.Unresolved),
	}, http.StatusOK)
}

// Export streams the graph in the requested format
func (h *TopologyHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	exporter, err := codec.ForFormat(format)
	if err != nil {
		h.writeError(w, "Unknown format", err.Error(), http.StatusBadRequest)
		return
	}

	graph, err := h.svc.Graph()
	if err != nil {
		h.writeError(w, "No resolved graph", err.Error(), http.StatusServiceUnavailable)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
	case "yaml":
		w.Header().Set("Content-Type", "application/yaml")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	if err := exporter.Export(graph, w); err != nil {
		log.Printf("Failed to export graph as %s: %v", format, err)
	}
}

// ListRuns returns archived run summaries
func (h *TopologyHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			h.writeError(w, "Invalid limit", err.Error(), http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := h.svc.ListRuns(r.Context(), limit)
	if err != nil {
		log.Printf("Failed to list runs: %v", err)
		h.writeError(w, "Failed to list runs", err.Error(), http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []repository.RunSummary{}
	}
	h.writeJSON(w, runs, http.StatusOK)
}

// GetRun returns one archived run report
func (h *TopologyHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	report, err := h.svc.GetRun(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to get run: %v", err)
		h.writeError(w, "Failed to get run", err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, report, http.StatusOK)
}

// GetRunSnapshot returns the raw record set one archived run resolved
func (h *TopologyHandler) GetRunSnapshot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	snapshot, err := h.svc.GetRunSnapshot(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to get run snapshot: %v", err)
		h.writeError(w, "Failed to get run snapshot", err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(snapshot)
}

func (h *TopologyHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *TopologyHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

func emptyDiags(v []domain.Diagnostic) []domain.Diagnostic {
	if v == nil {
		return []domain.Diagnostic{}
	}
	return v
}

func emptyStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
