package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ledger/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
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

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func toRecord(row DbRecord) core.Record {
	return core.Record{
		ID:       row.ID,
		Amount:   core.Money{Cents: row.AmountCents},
		Category: row.Category,
		Note:     row.Note,
		Date:     row.Date,
	}
}

// Append implements ports.RecordWriter
func (r *SQLiteRepository) Append(ctx context.Context, in core.Input) (core.Record, error) {
	row, err := r.queries.CreateRecord(ctx, CreateRecordParams{
		AmountCents: in.Amount.Cents,
		Category:    in.Category,
		Note:        in.Note,
		Date:        in.Date,
	})
	if err != nil {
		return core.Record{}, fmt.Errorf("create record: %w", err)
	}

	slog.InfoContext(ctx, "Record saved to SQLite",
		"id", row.ID,
		"category", row.Category,
		"amount_cents", row.AmountCents,
		"date", row.Date)

	return toRecord(row), nil
}

// List implements ports.RecordLister
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Record, error) {
	rows, err := r.queries.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	records := make([]core.Record, len(rows))
	for i, row := range rows {
		records[i] = toRecord(row)
	}
	return records, nil
}

// Get retrieves a single live record by id.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Record, error) {
	row, err := r.queries.GetRecord(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, core.ErrRecordNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("get record by id: %w", err)
	}
	return toRecord(row), nil
}

// Update implements ports.RecordUpdater. A successful update bumps the row
// version and resets sync status so the worker picks the change up again.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, in core.Input) (core.Record, error) {
	row, err := r.queries.UpdateRecord(ctx, UpdateRecordParams{
		ID:          id,
		AmountCents: in.Amount.Cents,
		Category:    in.Category,
		Note:        in.Note,
		Date:        in.Date,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, core.ErrRecordNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("update record: %w", err)
	}

	slog.InfoContext(ctx, "Record updated", "id", row.ID, "version", row.Version)
	return toRecord(row), nil
}

// Delete implements ports.RecordDeleter via soft delete.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.queries.SoftDeleteRecord(ctx, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if affected == 0 {
		return core.ErrRecordNotFound
	}
	slog.InfoContext(ctx, "Record soft-deleted", "id", id)
	return nil
}

// Categories implements ports.CategoryReader
func (r *SQLiteRepository) Categories(ctx context.Context) ([]string, error) {
	names, err := r.queries.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return names, nil
}

// PendingSyncRecord is the minimal row data carried in sync queue messages.
type PendingSyncRecord struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

// GetPendingSyncRecords returns records waiting to be mirrored to the
// external sheet, oldest first.
func (r *SQLiteRepository) GetPendingSyncRecords(ctx context.Context, limit int) ([]PendingSyncRecord, error) {
	rows, err := r.queries.GetPendingSyncRecords(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending sync records: %w", err)
	}

	pending := make([]PendingSyncRecord, len(rows))
	for i, row := range rows {
		pending[i] = PendingSyncRecord{
			ID:        row.ID,
			Version:   row.Version,
			CreatedAt: row.CreatedAt.Time,
		}
	}
	return pending, nil
}

// MarkSynced marks a record as successfully mirrored.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if err := r.queries.MarkRecordSynced(ctx, id); err != nil {
		return fmt.Errorf("mark record synced: %w", err)
	}
	slog.InfoContext(ctx, "Record marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a record as having failed to mirror.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if err := r.queries.MarkRecordSyncError(ctx, id); err != nil {
		return fmt.Errorf("mark record sync error: %w", err)
	}
	slog.WarnContext(ctx, "Record marked with sync error", "id", id)
	return nil
}
