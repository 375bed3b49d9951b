// Package sqlite persists the graph topology in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"orrery/internal/repository"
)

// Repository implements repository.Repository on SQLite.
type Repository struct {
	db *sql.DB
}

// New opens (creating if necessary) the database at path. Use ":memory:"
// for an ephemeral store.
func New(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	r := &Repository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return r, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS nodes (
		label TEXT PRIMARY KEY,
		fixed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS edges (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (source) REFERENCES nodes(label) ON DELETE CASCADE,
		FOREIGN KEY (target) REFERENCES nodes(label) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source);
	CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveNode upserts a node by label.
func (r *Repository) SaveNode(ctx context.Context, n repository.NodeRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO nodes (label, fixed) VALUES (?, ?)
		ON CONFLICT(label) DO UPDATE SET fixed = excluded.fixed
	`, n.Label, boolToInt(n.Fixed))
	if err != nil {
		return fmt.Errorf("failed to save node %q: %w", n.Label, err)
	}
	return nil
}

// SaveEdge stores an edge, creating missing endpoint nodes first so the
// foreign keys hold.
func (r *Repository) SaveEdge(ctx context.Context, e repository.EdgeRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, label := range []string{e.Source, e.Target} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO nodes (label, fixed) VALUES (?, 0) ON CONFLICT(label) DO NOTHING`,
			label); err != nil {
			return fmt.Errorf("failed to ensure node %q: %w", label, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO edges (source, target, label) VALUES (?, ?, ?)`,
		e.Source, e.Target, e.Label); err != nil {
		return fmt.Errorf("failed to save edge %s-%s: %w", e.Source, e.Target, err)
	}

	return tx.Commit()
}

// LoadGraph reads the full topology. Nodes come back in creation order so a
// restored graph keeps the original insertion order.
func (r *Repository) LoadGraph(ctx context.Context) ([]repository.NodeRecord, []repository.EdgeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT label, fixed FROM nodes ORDER BY rowid`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []repository.NodeRecord
	for rows.Next() {
		var n repository.NodeRecord
		var fixed int
		if err := rows.Scan(&n.Label, &fixed); err != nil {
			return nil, nil, fmt.Errorf("failed to scan node: %w", err)
		}
		n.Fixed = fixed != 0
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read nodes: %w", err)
	}

	edgeRows, err := r.db.QueryContext(ctx, `SELECT source, target, label FROM edges ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer edgeRows.Close()

	var edges []repository.EdgeRecord
	for edgeRows.Next() {
		var e repository.EdgeRecord
		if err := edgeRows.Scan(&e.Source, &e.Target, &e.Label); err != nil {
			return nil, nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read edges: %w", err)
	}

	return nodes, edges, nil
}

// Clear deletes every node and edge.
func (r *Repository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM edges`); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}

	return tx.Commit()
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
