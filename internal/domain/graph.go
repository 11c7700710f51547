package domain

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// EdgeKind classifies graph edges. Physical and logical kinds are kept in
// separate layers; consumers select layers independently.
type EdgeKind string

const (
	EdgePhysical     EdgeKind = "physical"
	EdgeVLANTagged   EdgeKind = "vlan_tagged"
	EdgeVLANUntagged EdgeKind = "vlan_untagged"
	EdgeBridge       EdgeKind = "bridge"
	EdgeL2VPN        EdgeKind = "l2vpn"
	EdgeWireless     EdgeKind = "wireless"
)

// IsPhysical reports whether the kind belongs to the physical layer.
func (k EdgeKind) IsPhysical() bool { return k == EdgePhysical }

// Node is a graph vertex: one normalized entity plus its tenant annotation.
type Node struct {
	ID     string   `json:"id"`
	Kind   NodeKind `json:"kind"`
	Label  string   `json:"label"`
	Tenant string   `json:"tenant,omitempty"`
}

// Edge is an undirected adjacency between two nodes. Origins carries the
// identifiers of the source records the edge was derived from (for a
// physical edge, every cable of the chain).
type Edge struct {
	ID      string   `json:"id"`
	Kind    EdgeKind `json:"kind"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Origins []string `json:"origins,omitempty"`
}

// EdgeID derives a deterministic edge identifier from the endpoints, kind
// and origins. Endpoint order does not matter.
func EdgeID(kind EdgeKind, from, to string, origins []string) string {
	if from > to {
		from, to = to, from
	}
	sorted := append([]string(nil), origins...)
	sort.Strings(sorted)
	key := fmt.Sprintf("%s|%s|%s|%s", kind, from, to, strings.Join(sorted, ","))
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", sum[:8])
}

// NewEdge builds an edge with a deterministic identifier.
func NewEdge(kind EdgeKind, from, to string, origins []string) Edge {
	return Edge{
		ID:      EdgeID(kind, from, to, origins),
		Kind:    kind,
		From:    from,
		To:      to,
		Origins: origins,
	}
}

// Graph is the resolved topology: nodes with tenant annotations plus the
// physical and logical edge layers. It is read-only to consumers.
type Graph struct {
	nodes    map[string]Node
	order    []string
	physical []Edge
	logical  []Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]Node)}
}

// AddNode inserts a node. Adding the same identifier twice keeps the first
// entry.
func (g *Graph) AddNode(n Node) {
	if _, ok := g.nodes[n.ID]; ok {
		return
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
}

// AddEdge inserts an edge into the layer matching its kind.
func (g *Graph) AddEdge(e Edge) {
	if e.Kind.IsPhysical() {
		g.physical = append(g.physical, e)
		return
	}
	g.logical = append(g.logical, e)
}

// Node looks a node up by identifier.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodesByKind returns the nodes of one kind, in insertion order.
func (g *Graph) NodesByKind(kind NodeKind) []Node {
	var out []Node
	for _, id := range g.order {
		if n := g.nodes[id]; n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// NodesByTenant returns the nodes annotated with the given tenant, in
// insertion order.
func (g *Graph) NodesByTenant(tenant string) []Node {
	var out []Node
	for _, id := range g.order {
		if n := g.nodes[id]; n.Tenant == tenant {
			out = append(out, n)
		}
	}
	return out
}

// PhysicalEdges returns the physical layer.
func (g *Graph) PhysicalEdges() []Edge {
	return append([]Edge(nil), g.physical...)
}

// LogicalEdges returns the logical overlay layer.
func (g *Graph) LogicalEdges() []Edge {
	return append([]Edge(nil), g.logical...)
}

// Edges returns both layers, physical first.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.physical)+len(g.logical))
	out = append(out, g.physical...)
	return append(out, g.logical...)
}

// EdgesByKind returns all edges of one kind.
func (g *Graph) EdgesByKind(kind EdgeKind) []Edge {
	var out []Edge
	for _, e := range g.Edges() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges across both layers.
func (g *Graph) EdgeCount() int { return len(g.physical) + len(g.logical) }
