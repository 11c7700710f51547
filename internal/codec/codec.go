// Package codec serializes resolved topology graphs for export.
package codec

import (
	"fmt"
	"io"

	"netfabric/internal/domain"
)

// Document is the wire shape of a resolved graph.
type Document struct {
	Nodes []domain.Node `json:"nodes" yaml:"nodes"`
	Edges []domain.Edge `json:"edges" yaml:"edges"`
}

// NewDocument flattens a graph into its wire shape.
func NewDocument(g *domain.Graph) *Document {
	return &Document{Nodes: g.Nodes(), Edges: g.Edges()}
}

// Exporter interface for exporting graph data to various formats
type Exporter interface {
	Export(g *domain.Graph, w io.Writer) error
	Format() string
}

// ForFormat returns the exporter matching a format identifier.
func ForFormat(format string) (Exporter, error) {
	switch format {
	case "json":
		return NewJSONCodec(), nil
	case "yaml":
		return NewYAMLCodec(), nil
	case "dot":
		return NewDOTCodec(), nil
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}
