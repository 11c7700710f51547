package codec

import (
	"fmt"
	"io"
	"strings"

	"netfabric/internal/domain"
)

// DOTCodec renders the graph in Graphviz dot notation, with physical edges
// drawn solid and logical edges dashed.
type DOTCodec struct{}

// NewDOTCodec creates a new DOT codec
func NewDOTCodec() *DOTCodec {
	return &DOTCodec{}
}

// Format returns the codec format identifier
func (c *DOTCodec) Format() string {
	return "dot"
}

// Export writes the graph in dot notation
func (c *DOTCodec) Export(g *domain.Graph, w io.Writer) error {
	var b strings.Builder
	b.WriteString("graph topology {\n")

	for _, n := range g.Nodes() {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		if n.Tenant != "" {
			label += "\\n[" + n.Tenant + "]"
		}
		fmt.Fprintf(&b, "  %q [label=%q];\n", n.ID, label)
	}

	for _, e := range g.PhysicalEdges() {
		fmt.Fprintf(&b, "  %q -- %q [label=%q];\n", e.From, e.To, e.Kind)
	}
	for _, e := range g.LogicalEdges() {
		fmt.Fprintf(&b, "  %q -- %q [label=%q, style=dashed];\n", e.From, e.To, e.Kind)
	}

	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write dot output: %w", err)
	}
	return nil
}
