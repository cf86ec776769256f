package services

import (
	"context"
	"testing"
)

func TestNewRecordService(t *testing.T) {
	service := NewRecordService(nil, nil)

	if service == nil {
		t.Fatal("NewRecordService should return a non-nil service")
	}
	if service.storage != nil {
		t.Error("NewRecordService should set storage to nil when passed nil")
	}
	if service.amqpClient != nil {
		t.Error("NewRecordService should set amqpClient to nil when passed nil")
	}
}

func TestRecordService_PublishWithoutAMQP(t *testing.T) {
	// Without an AMQP client the publish helpers are no-ops.
	service := NewRecordService(nil, nil)

	if err := service.publishSyncMessage(context.Background(), 1, 1); err != nil {
		t.Fatalf("publishSyncMessage should skip without client, got %v", err)
	}
	if err := service.publishDeleteMessage(context.Background(), 1); err != nil {
		t.Fatalf("publishDeleteMessage should skip without client, got %v", err)
	}
}

func TestRecordService_Close(t *testing.T) {
	t.Run("nil components", func(t *testing.T) {
		service := &RecordService{}

		if err := service.Close(); err != nil {
			t.Fatalf("Close should not return error with nil components: %v", err)
		}
	})
}
