package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"netfabric/internal/domain"
	"netfabric/internal/repository"
	"netfabric/internal/topology"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Store using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		resolved_at DATETIME NOT NULL,
		node_count INTEGER NOT NULL,
		edge_count INTEGER NOT NULL,
		unresolved JSON NOT NULL,
		diagnostics JSON NOT NULL,
		missing_refs JSON NOT NULL,
		snapshot JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_resolved_at ON runs(resolved_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveRun archives one resolution run with its reports and the raw
// snapshot it resolved.
func (r *Repository) SaveRun(ctx context.Context, res *topology.Result, snapshot []byte) error {
	unresolved, err := json.Marshal(emptyIfNilLinks(res.Unresolved))
	if err != nil {
		return fmt.Errorf("failed to marshal unresolved links: %w", err)
	}
	diagnostics, err := json.Marshal(emptyIfNilDiags(res.Diagnostics))
	if err != nil {
		return fmt.Errorf("failed to marshal diagnostics: %w", err)
	}
	missing, err := json.Marshal(emptyIfNilStrings(res.MissingRefs))
	if err != nil {
		return fmt.Errorf("failed to marshal missing refs: %w", err)
	}

	if len(snapshot) == 0 {
		snapshot = []byte("{}")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO runs (id, resolved_at, node_count, edge_count, unresolved, diagnostics, missing_refs, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, res.RunID, res.ResolvedAt, res.Graph.NodeCount(), res.Graph.EdgeCount(),
		unresolved, diagnostics, missing, snapshot)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// ListRuns returns run summaries, newest first.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]repository.RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, resolved_at, node_count, edge_count,
		       json_array_length(unresolved), json_array_length(diagnostics)
		FROM runs
		ORDER BY resolved_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []repository.RunSummary
	for rows.Next() {
		var s repository.RunSummary
		if err := rows.Scan(&s.ID, &s.ResolvedAt, &s.NodeCount, &s.EdgeCount,
			&s.UnresolvedCount, &s.DiagnosticCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		s.ResolvedAt = s.ResolvedAt.UTC()
		runs = append(runs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// GetRun loads the full report of one archived run.
func (r *Repository) GetRun(ctx context.Context, id string) (*repository.RunReport, error) {
	var (
		report      repository.RunReport
		resolvedAt  time.Time
		unresolved  []byte
		diagnostics []byte
		missing     []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, resolved_at, node_count, edge_count, unresolved, diagnostics, missing_refs
		FROM runs WHERE id = ?
	`, id).Scan(&report.ID, &resolvedAt, &report.NodeCount, &report.EdgeCount,
		&unresolved, &diagnostics, &missing)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	report.ResolvedAt = resolvedAt.UTC()

	if err := json.Unmarshal(unresolved, &report.Unresolved); err != nil {
		return nil, fmt.Errorf("failed to unmarshal unresolved links: %w", err)
	}
	if err := json.Unmarshal(diagnostics, &report.Diagnostics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal diagnostics: %w", err)
	}
	if err := json.Unmarshal(missing, &report.MissingRefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal missing refs: %w", err)
	}
	report.UnresolvedCount = len(report.Unresolved)
	report.DiagnosticCount = len(report.Diagnostics)
	return &report, nil
}

// GetRunSnapshot returns the serialized raw snapshot of one archived run.
func (r *Repository) GetRunSnapshot(ctx context.Context, id string) ([]byte, error) {
	var snapshot []byte
	err := r.db.QueryRowContext(ctx, `SELECT snapshot FROM runs WHERE id = ?`, id).Scan(&snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run snapshot: %w", err)
	}
	return snapshot, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// JSON columns hold arrays, never null, so json_array_length stays valid.
func emptyIfNilLinks(v []domain.UnresolvedLink) []domain.UnresolvedLink {
	if v == nil {
		return []domain.UnresolvedLink{}
	}
	return v
}

func emptyIfNilDiags(v []domain.Diagnostic) []domain.Diagnostic {
	if v == nil {
		return []domain.Diagnostic{}
	}
	return v
}

func emptyIfNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
