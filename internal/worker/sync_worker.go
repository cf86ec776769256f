package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/sheets"
	"ledger/internal/storage"
)

// RecordStore is the slice of the repository the worker needs.
type RecordStore interface {
	Get(ctx context.Context, id int64) (core.Record, error)
	GetPendingSyncRecords(ctx context.Context, limit int) ([]storage.PendingSyncRecord, error)
	MarkSynced(ctx context.Context, id int64) error
	MarkSyncError(ctx context.Context, id int64) error
}

// SyncWorker mirrors records from the local store to the external sheet
// replica, driven by AMQP messages with a pending-scan fallback.
type SyncWorker struct {
	store     RecordStore
	mirror    sheets.RecordMirror
	batchSize int
}

func NewSyncWorker(store RecordStore, mirror sheets.RecordMirror, batchSize int) *SyncWorker {
	return &SyncWorker{
		store:     store,
		mirror:    mirror,
		batchSize: batchSize,
	}
}

// HandleMessage processes a single sync message from AMQP.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version,
		"op", msg.Op)

	switch msg.Op {
	case amqp.OpDelete:
		return w.handleDelete(ctx, msg.ID)
	case amqp.OpUpsert, "":
		return w.handleUpsert(ctx, msg.ID)
	default:
		return fmt.Errorf("unknown operation: %s", msg.Op)
	}
}

func (w *SyncWorker) handleUpsert(ctx context.Context, id int64) error {
	rec, err := w.store.Get(ctx, id)
	if errors.Is(err, core.ErrRecordNotFound) {
		// Deleted between publish and consume; nothing to mirror.
		slog.WarnContext(ctx, "Record vanished before sync, skipping", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get record from storage: %w", err)
	}
	return w.mirrorRecord(ctx, rec)
}

func (w *SyncWorker) handleDelete(ctx context.Context, id int64) error {
	if w.mirror == nil {
		slog.WarnContext(ctx, "No mirror configured, skipping delete", "id", id)
		return nil
	}
	if err := w.mirror.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove record from mirror: %w", err)
	}
	slog.InfoContext(ctx, "Record removed from mirror", "id", id)
	return nil
}

// ProcessPendingRecords mirrors any records that have not been synced yet.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPendingRecords(ctx context.Context) error {
	pending, err := w.store.GetPendingSyncRecords(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending records: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending records", "count", len(pending))

	for _, p := range pending {
		rec, err := w.store.Get(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get record", "id", p.ID, "error", err)
			if err := w.store.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			continue
		}
		if err := w.mirrorRecord(ctx, rec); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror record", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck drains the pending backlog at worker startup. Useful to
// recover from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.store.GetPendingSyncRecords(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending records for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending records found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending records on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		rec, err := w.store.Get(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get record for startup sync",
				"id", p.ID, "error", err)
			if err := w.store.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			errorCount++
			continue
		}
		if err := w.mirrorRecord(ctx, rec); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror record during startup",
				"id", p.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) mirrorRecord(ctx context.Context, rec core.Record) error {
	if w.mirror == nil {
		slog.WarnContext(ctx, "No mirror configured, skipping sync", "id", rec.ID)
		return nil
	}

	if err := w.mirror.Mirror(ctx, rec); err != nil {
		if markErr := w.store.MarkSyncError(ctx, rec.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", rec.ID, "error", markErr)
		}
		return fmt.Errorf("mirror record: %w", err)
	}

	if err := w.store.MarkSynced(ctx, rec.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", rec.ID, "error", err)
		// The mirror write succeeded; the pending scan will retry the mark.
	}

	slog.InfoContext(ctx, "Record mirrored",
		"id", rec.ID,
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents)

	return nil
}
