package storage

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB / *sql.Tx the queries need.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// DbRecord is a row of the records table.
type DbRecord struct {
	ID          int64
	AmountCents int64
	Category    string
	Note        string
	Date        string
	Version     int64
	SyncStatus  string
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
	DeletedAt   sql.NullTime
}

const createRecord = `
INSERT INTO records (amount_cents, category, note, date)
VALUES (?, ?, ?, ?)
RETURNING id, amount_cents, category, note, date, version, sync_status, created_at, updated_at, deleted_at
`

type CreateRecordParams struct {
	AmountCents int64
	Category    string
	Note        string
	Date        string
}

func (q *Queries) CreateRecord(ctx context.Context, arg CreateRecordParams) (DbRecord, error) {
	row := q.db.QueryRowContext(ctx, createRecord, arg.AmountCents, arg.Category, arg.Note, arg.Date)
	var r DbRecord
	err := row.Scan(&r.ID, &r.AmountCents, &r.Category, &r.Note, &r.Date,
		&r.Version, &r.SyncStatus, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt)
	return r, err
}

const getRecord = `
SELECT id, amount_cents, category, note, date, version, sync_status, created_at, updated_at, deleted_at
FROM records
WHERE id = ? AND deleted_at IS NULL
`

func (q *Queries) GetRecord(ctx context.Context, id int64) (DbRecord, error) {
	row := q.db.QueryRowContext(ctx, getRecord, id)
	var r DbRecord
	err := row.Scan(&r.ID, &r.AmountCents, &r.Category, &r.Note, &r.Date,
		&r.Version, &r.SyncStatus, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt)
	return r, err
}

const listRecords = `
SELECT id, amount_cents, category, note, date, version, sync_status, created_at, updated_at, deleted_at
FROM records
WHERE deleted_at IS NULL
ORDER BY id DESC
`

func (q *Queries) ListRecords(ctx context.Context) ([]DbRecord, error) {
	rows, err := q.db.QueryContext(ctx, listRecords)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DbRecord
	for rows.Next() {
		var r DbRecord
		if err := rows.Scan(&r.ID, &r.AmountCents, &r.Category, &r.Note, &r.Date,
			&r.Version, &r.SyncStatus, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const updateRecord = `
UPDATE records
SET amount_cents = ?, category = ?, note = ?, date = ?,
    version = version + 1, sync_status = 'pending', updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND deleted_at IS NULL
RETURNING id, amount_cents, category, note, date, version, sync_status, created_at, updated_at, deleted_at
`

type UpdateRecordParams struct {
	ID          int64
	AmountCents int64
	Category    string
	Note        string
	Date        string
}

func (q *Queries) UpdateRecord(ctx context.Context, arg UpdateRecordParams) (DbRecord, error) {
	row := q.db.QueryRowContext(ctx, updateRecord,
		arg.AmountCents, arg.Category, arg.Note, arg.Date, arg.ID)
	var r DbRecord
	err := row.Scan(&r.ID, &r.AmountCents, &r.Category, &r.Note, &r.Date,
		&r.Version, &r.SyncStatus, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt)
	return r, err
}

const softDeleteRecord = `
UPDATE records
SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND deleted_at IS NULL
`

// SoftDeleteRecord returns the number of rows marked deleted (0 or 1).
func (q *Queries) SoftDeleteRecord(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, softDeleteRecord, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const getPendingSyncRecords = `
SELECT id, amount_cents, category, note, date, version, sync_status, created_at, updated_at, deleted_at
FROM records
WHERE sync_status = 'pending' AND deleted_at IS NULL
ORDER BY id ASC
LIMIT ?
`

func (q *Queries) GetPendingSyncRecords(ctx context.Context, limit int64) ([]DbRecord, error) {
	rows, err := q.db.QueryContext(ctx, getPendingSyncRecords, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DbRecord
	for rows.Next() {
		var r DbRecord
		if err := rows.Scan(&r.ID, &r.AmountCents, &r.Category, &r.Note, &r.Date,
			&r.Version, &r.SyncStatus, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const markRecordSynced = `
UPDATE records SET sync_status = 'synced', updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

func (q *Queries) MarkRecordSynced(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markRecordSynced, id)
	return err
}

const markRecordSyncError = `
UPDATE records SET sync_status = 'error', updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

func (q *Queries) MarkRecordSyncError(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markRecordSyncError, id)
	return err
}

const getCategories = `
SELECT DISTINCT category FROM records WHERE deleted_at IS NULL ORDER BY category ASC
`

func (q *Queries) GetCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, getCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
