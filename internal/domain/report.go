package domain

import "fmt"

// Diagnostic describes a source record that was rejected during
// normalization. The run continues without it.
type Diagnostic struct {
	Record string `json:"record"`
	ID     int64  `json:"id,omitempty"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	if d.ID != 0 {
		return fmt.Sprintf("%s %d: %s", d.Record, d.ID, d.Reason)
	}
	return fmt.Sprintf("%s: %s", d.Record, d.Reason)
}

// UnresolvedReason classifies why a cable chain produced no physical edge.
type UnresolvedReason string

const (
	UnresolvedCycle     UnresolvedReason = "cycle"
	UnresolvedDangling  UnresolvedReason = "dangling"
	UnresolvedAmbiguous UnresolvedReason = "ambiguous"
	UnresolvedSelfLoop  UnresolvedReason = "self-loop"
)

// UnresolvedLink records a cable whose chain could not be resolved to a
// clean interface-to-interface edge. It is reported alongside the graph,
// never silently dropped.
type UnresolvedLink struct {
	Cable  CableID          `json:"cable"`
	Reason UnresolvedReason `json:"reason"`
	Side   string           `json:"side,omitempty"`
	At     CablePort        `json:"at,omitempty"`
}

func (u UnresolvedLink) String() string {
	if u.Side != "" {
		return fmt.Sprintf("cable %d side %s: %s at %s", u.Cable, u.Side, u.Reason, u.At)
	}
	return fmt.Sprintf("cable %d: %s", u.Cable, u.Reason)
}
