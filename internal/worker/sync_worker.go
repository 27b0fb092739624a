package worker

import (
	"context"
	"fmt"
	"log/slog"

	"clubfin/internal/events"
	"clubfin/internal/roster"
	"clubfin/internal/sheetsync"
)

// SyncWorker mirrors roster mutations into the treasurer's spreadsheet:
// each event becomes one audit row, and the roster tab is rewritten from
// the latest snapshot so the sheet always matches the app.
type SyncWorker struct {
	repo  roster.SnapshotRepository
	audit sheetsync.AuditWriter
}

func NewSyncWorker(repo roster.SnapshotRepository, audit sheetsync.AuditWriter) *SyncWorker {
	return &SyncWorker{repo: repo, audit: audit}
}

// HandleRosterEvent processes a single roster event from AMQP.
func (w *SyncWorker) HandleRosterEvent(ctx context.Context, ev *events.RosterEvent) error {
	slog.InfoContext(ctx, "Processing roster event",
		"type", ev.Type,
		"names", ev.Names)

	ref, err := w.audit.Append(ctx, ev)
	if err != nil {
		return fmt.Errorf("append audit row: %w", err)
	}

	slog.InfoContext(ctx, "Successfully recorded roster event",
		"type", ev.Type,
		"sheets_ref", ref)
	return nil
}

// StartupCheck verifies the snapshot store is reachable before the worker
// starts consuming. A missing snapshot is fine; an unreadable one is not.
func (w *SyncWorker) StartupCheck(ctx context.Context) error {
	if w.repo == nil {
		slog.InfoContext(ctx, "No snapshot store configured, skipping startup check")
		return nil
	}
	snap, ok, err := w.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load roster snapshot: %w", err)
	}
	if !ok {
		slog.InfoContext(ctx, "No roster snapshot found on startup")
		return nil
	}
	slog.InfoContext(ctx, "Roster snapshot loaded on startup", "players", len(snap.Players))
	return nil
}
