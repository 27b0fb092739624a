// Package storage persists the roster as a single serialized snapshot in
// SQLite. One well-known key, whole blob written after every accepted
// mutation, read once at startup.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"clubfin/internal/roster"

	_ "modernc.org/sqlite"
)

// SnapshotKey is the slot the full roster blob lives under.
const SnapshotKey = "clubFinanceData"

type SnapshotRepository struct {
	db *sql.DB
}

var _ roster.SnapshotRepository = (*SnapshotRepository)(nil)

func NewSnapshotRepository(dbPath string) (*SnapshotRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SnapshotRepository{db: db}, nil
}

func (r *SnapshotRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads the stored roster snapshot. ok is false when the slot is
// empty; a blob that no longer parses is reported as an error so the
// caller can fall back to seed data.
func (r *SnapshotRepository) Load(ctx context.Context) (roster.Snapshot, bool, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM roster_snapshots WHERE key = ?`, SnapshotKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return roster.Snapshot{}, false, nil
	}
	if err != nil {
		return roster.Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var snap roster.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return roster.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Roster snapshot loaded",
		"key", SnapshotKey,
		"players", len(snap.Players))
	return snap, true, nil
}

// Save overwrites the stored snapshot with the given roster state.
func (r *SnapshotRepository) Save(ctx context.Context, snap roster.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO roster_snapshots (key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		SnapshotKey, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Roster snapshot saved",
		"key", SnapshotKey,
		"players", len(snap.Players),
		"bytes", len(payload))
	return nil
}
