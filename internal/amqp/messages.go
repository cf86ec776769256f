package amqp

import (
	"encoding/json"
	"time"
)

// Sync operations carried on the queue.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// RecordSyncMessage is a lightweight queue message for mirroring a record to
// the external sheet. It carries only the id, version, and operation; the
// worker fetches the full record from the database.
type RecordSyncMessage struct {
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordSyncMessage creates an upsert message for a record version.
func NewRecordSyncMessage(id, version int64) *RecordSyncMessage {
	return &RecordSyncMessage{
		ID:        id,
		Version:   version,
		Op:        OpUpsert,
		Timestamp: time.Now(),
	}
}

// NewRecordDeleteMessage creates a delete message for a record id.
func NewRecordDeleteMessage(id int64) *RecordSyncMessage {
	return &RecordSyncMessage{
		ID:        id,
		Op:        OpDelete,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSyncMessageFromJSON creates a message from JSON bytes.
func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Op == "" {
		msg.Op = OpUpsert
	}
	return &msg, nil
}
