// Package repository defines persistence for resolution runs. Each run is
// archived with its reports so past resolutions stay inspectable after the
// in-memory graph has been replaced.
package repository

import (
	"context"
	"time"

	"netfabric/internal/domain"
	"netfabric/internal/topology"
)

// RunSummary is the archived header of one resolution run.
type RunSummary struct {
	ID              string    `json:"id"`
	ResolvedAt      time.Time `json:"resolved_at"`
	NodeCount       int       `json:"node_count"`
	EdgeCount       int       `json:"edge_count"`
	UnresolvedCount int       `json:"unresolved_count"`
	DiagnosticCount int       `json:"diagnostic_count"`
}

// RunReport is the full archived record of one resolution run.
type RunReport struct {
	RunSummary
	Unresolved  []domain.UnresolvedLink `json:"unresolved,omitempty"`
	Diagnostics []domain.Diagnostic     `json:"diagnostics,omitempty"`
	MissingRefs []string                `json:"missing_refs,omitempty"`
}

// Store archives resolution runs. The snapshot passed to SaveRun is the
// raw fetched record set, serialized, so operators can inspect exactly
// what a run saw.
type Store interface {
	SaveRun(ctx context.Context, res *topology.Result, snapshot []byte) error
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	GetRun(ctx context.Context, id string) (*RunReport, error)
	GetRunSnapshot(ctx context.Context, id string) ([]byte, error)
	Close() error
}
