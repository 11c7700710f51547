package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"netfabric/internal/domain"
)

// YAMLCodec handles YAML export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

type yamlNode struct {
	ID     string `yaml:"id"`
	Kind   string `yaml:"kind"`
	Label  string `yaml:"label,omitempty"`
	Tenant string `yaml:"tenant,omitempty"`
}

type yamlEdge struct {
	ID      string   `yaml:"id"`
	Kind    string   `yaml:"kind"`
	From    string   `yaml:"from"`
	To      string   `yaml:"to"`
	Origins []string `yaml:"origins,omitempty"`
}

type yamlDocument struct {
	Nodes []yamlNode `yaml:"nodes"`
	Edges []yamlEdge `yaml:"edges"`
}

// Export writes the graph as YAML
func (c *YAMLCodec) Export(g *domain.Graph, w io.Writer) error {
	doc := yamlDocument{}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, yamlNode{
			ID:     n.ID,
			Kind:   string(n.Kind),
			Label:  n.Label,
			Tenant: n.Tenant,
		})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, yamlEdge{
			ID:      e.ID,
			Kind:    string(e.Kind),
			From:    e.From,
			To:      e.To,
			Origins: e.Origins,
		})
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
