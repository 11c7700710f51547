// Package loader reads offline inventory snapshots from disk. A snapshot
// file carries the same record shapes the API returns, as YAML or JSON,
// letting the engine run without a live source of truth.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"netfabric/internal/netbox"
)

// LoadSnapshot reads a raw record set from a file, picking the codec from
// the extension. ".json" parses as JSON, everything else as YAML.
func LoadSnapshot(path string) (*netbox.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

// ParseYAML parses a raw record set from YAML bytes.
func ParseYAML(data []byte) (*netbox.Snapshot, error) {
	var snap netbox.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot yaml: %w", err)
	}
	return &snap, nil
}

// ParseJSON parses a raw record set from JSON bytes.
func ParseJSON(data []byte) (*netbox.Snapshot, error) {
	var snap netbox.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot json: %w", err)
	}
	return &snap, nil
}
