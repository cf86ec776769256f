package worker

import (
	"context"
	"errors"
	"testing"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/storage"
)

type fakeStore struct {
	records    map[int64]core.Record
	pending    []storage.PendingSyncRecord
	synced     []int64
	syncErrors []int64
}

func (f *fakeStore) Get(_ context.Context, id int64) (core.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return core.Record{}, core.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeStore) GetPendingSyncRecords(_ context.Context, limit int) ([]storage.PendingSyncRecord, error) {
	if limit < len(f.pending) {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeStore) MarkSynced(_ context.Context, id int64) error {
	f.synced = append(f.synced, id)
	return nil
}

func (f *fakeStore) MarkSyncError(_ context.Context, id int64) error {
	f.syncErrors = append(f.syncErrors, id)
	return nil
}

type fakeMirror struct {
	mirrored []core.Record
	removed  []int64
	fail     error
}

func (f *fakeMirror) Mirror(_ context.Context, rec core.Record) error {
	if f.fail != nil {
		return f.fail
	}
	f.mirrored = append(f.mirrored, rec)
	return nil
}

func (f *fakeMirror) Remove(_ context.Context, id int64) error {
	if f.fail != nil {
		return f.fail
	}
	f.removed = append(f.removed, id)
	return nil
}

func TestHandleMessageUpsert(t *testing.T) {
	store := &fakeStore{records: map[int64]core.Record{
		1: {ID: 1, Amount: core.Money{Cents: 500}, Category: "Food"},
	}}
	mirror := &fakeMirror{}
	w := NewSyncWorker(store, mirror, 10)

	if err := w.HandleMessage(context.Background(), amqp.NewRecordSyncMessage(1, 1)); err != nil {
		t.Fatalf("handle message: %v", err)
	}
	if len(mirror.mirrored) != 1 || mirror.mirrored[0].ID != 1 {
		t.Fatalf("expected record 1 mirrored, got %v", mirror.mirrored)
	}
	if len(store.synced) != 1 || store.synced[0] != 1 {
		t.Fatalf("expected record 1 marked synced, got %v", store.synced)
	}
}

func TestHandleMessageUpsertMissingRecord(t *testing.T) {
	// A record deleted between publish and consume is not an error.
	store := &fakeStore{records: map[int64]core.Record{}}
	w := NewSyncWorker(store, &fakeMirror{}, 10)

	if err := w.HandleMessage(context.Background(), amqp.NewRecordSyncMessage(42, 1)); err != nil {
		t.Fatalf("expected missing record to be skipped, got %v", err)
	}
}

func TestHandleMessageDelete(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewSyncWorker(&fakeStore{}, mirror, 10)

	if err := w.HandleMessage(context.Background(), amqp.NewRecordDeleteMessage(7)); err != nil {
		t.Fatalf("handle delete: %v", err)
	}
	if len(mirror.removed) != 1 || mirror.removed[0] != 7 {
		t.Fatalf("expected record 7 removed, got %v", mirror.removed)
	}
}

func TestHandleMessageUnknownOp(t *testing.T) {
	w := NewSyncWorker(&fakeStore{}, &fakeMirror{}, 10)
	msg := &amqp.RecordSyncMessage{ID: 1, Op: "compact"}
	if err := w.HandleMessage(context.Background(), msg); err == nil {
		t.Fatal("expected error for unknown operation")
	}
}

func TestMirrorFailureMarksSyncError(t *testing.T) {
	store := &fakeStore{records: map[int64]core.Record{
		1: {ID: 1, Amount: core.Money{Cents: 500}, Category: "Food"},
	}}
	mirror := &fakeMirror{fail: errors.New("sheet unavailable")}
	w := NewSyncWorker(store, mirror, 10)

	if err := w.HandleMessage(context.Background(), amqp.NewRecordSyncMessage(1, 1)); err == nil {
		t.Fatal("expected error when mirror fails")
	}
	if len(store.syncErrors) != 1 || store.syncErrors[0] != 1 {
		t.Fatalf("expected sync error marked for record 1, got %v", store.syncErrors)
	}
}

func TestProcessPendingRecords(t *testing.T) {
	store := &fakeStore{
		records: map[int64]core.Record{
			1: {ID: 1, Amount: core.Money{Cents: 100}, Category: "Food"},
			2: {ID: 2, Amount: core.Money{Cents: 200}, Category: "Rent"},
		},
		pending: []storage.PendingSyncRecord{{ID: 1, Version: 1}, {ID: 2, Version: 1}},
	}
	mirror := &fakeMirror{}
	w := NewSyncWorker(store, mirror, 10)

	if err := w.ProcessPendingRecords(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if len(mirror.mirrored) != 2 {
		t.Fatalf("expected 2 mirrored records, got %d", len(mirror.mirrored))
	}
}

func TestProcessPendingRecordsMissing(t *testing.T) {
	store := &fakeStore{
		records: map[int64]core.Record{},
		pending: []storage.PendingSyncRecord{{ID: 9, Version: 1}},
	}
	w := NewSyncWorker(store, &fakeMirror{}, 10)

	if err := w.ProcessPendingRecords(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if len(store.syncErrors) != 1 || store.syncErrors[0] != 9 {
		t.Fatalf("expected sync error for record 9, got %v", store.syncErrors)
	}
}

func TestStartupSyncCheck(t *testing.T) {
	store := &fakeStore{
		records: map[int64]core.Record{
			1: {ID: 1, Amount: core.Money{Cents: 100}, Category: "Food"},
		},
		pending: []storage.PendingSyncRecord{{ID: 1, Version: 1}},
	}
	mirror := &fakeMirror{}
	w := NewSyncWorker(store, mirror, 10)

	if err := w.StartupSyncCheck(context.Background()); err != nil {
		t.Fatalf("startup sync: %v", err)
	}
	if len(mirror.mirrored) != 1 {
		t.Fatalf("expected 1 mirrored record, got %d", len(mirror.mirrored))
	}
	if len(store.synced) != 1 {
		t.Fatalf("expected 1 synced mark, got %d", len(store.synced))
	}
}
