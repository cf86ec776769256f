package adapters

import (
	"context"

	"ledger/internal/core"
	"ledger/internal/services"
	"ledger/internal/storage"
)

// SQLiteAdapter combines SQLiteRepository and RecordService behind the ports
// the HTTP server expects: writes go through the service (which publishes
// sync messages), reads hit storage directly.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.RecordService
}

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.RecordService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

// Append implements sheets.RecordWriter
func (a *SQLiteAdapter) Append(ctx context.Context, in core.Input) (core.Record, error) {
	return a.service.CreateRecord(ctx, in)
}

// List implements sheets.RecordLister
func (a *SQLiteAdapter) List(ctx context.Context) ([]core.Record, error) {
	return a.storage.List(ctx)
}

// Update implements sheets.RecordUpdater
func (a *SQLiteAdapter) Update(ctx context.Context, id int64, in core.Input) (core.Record, error) {
	return a.service.UpdateRecord(ctx, id, in)
}

// Delete implements sheets.RecordDeleter
func (a *SQLiteAdapter) Delete(ctx context.Context, id int64) error {
	return a.service.DeleteRecord(ctx, id)
}

// Categories implements sheets.CategoryReader
func (a *SQLiteAdapter) Categories(ctx context.Context) ([]string, error) {
	return a.storage.Categories(ctx)
}
