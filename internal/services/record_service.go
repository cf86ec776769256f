package services

import (
	"context"
	"fmt"
	"log/slog"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/storage"
)

// RecordService orchestrates record operations across SQLite and AMQP.
// Writes land in SQLite first; sync messages are best-effort and never fail
// the request.
type RecordService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewRecordService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *RecordService {
	return &RecordService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// CreateRecord saves a record locally and publishes a sync message.
func (s *RecordService) CreateRecord(ctx context.Context, in core.Input) (core.Record, error) {
	rec, err := s.storage.Append(ctx, in)
	if err != nil {
		return core.Record{}, fmt.Errorf("save record: %w", err)
	}

	if err := s.publishSyncMessage(ctx, rec.ID, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", rec.ID, "error", err)
		// Record is saved locally; the worker's pending scan catches up.
	}

	return rec, nil
}

// UpdateRecord updates a record locally and publishes a sync message for the
// new version.
func (s *RecordService) UpdateRecord(ctx context.Context, id int64, in core.Input) (core.Record, error) {
	rec, err := s.storage.Update(ctx, id, in)
	if err != nil {
		return core.Record{}, fmt.Errorf("update record: %w", err)
	}

	if err := s.publishSyncMessage(ctx, rec.ID, 0); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", rec.ID, "error", err)
	}

	return rec, nil
}

// DeleteRecord soft deletes a record locally and publishes a delete message.
func (s *RecordService) DeleteRecord(ctx context.Context, id int64) error {
	if err := s.storage.Delete(ctx, id); err != nil {
		return fmt.Errorf("soft delete record: %w", err)
	}

	if err := s.publishDeleteMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"id", id, "error", err)
	}

	return nil
}

func (s *RecordService) publishSyncMessage(ctx context.Context, id, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishRecordSync(ctx, id, version)
}

func (s *RecordService) publishDeleteMessage(ctx context.Context, id int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping delete message")
		return nil
	}
	return s.amqpClient.PublishRecordDelete(ctx, id)
}

// Close closes both storage and AMQP connections.
func (s *RecordService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}

	return nil
}
