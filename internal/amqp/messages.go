package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message operations understood by the sync worker.
const (
	OpSync   = "sync"
	OpDelete = "delete"
)

// RecordSyncMessage is a lightweight pointer to a record revision. The
// worker fetches the full row from the database, so the queue never
// carries donor data.
type RecordSyncMessage struct {
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordSyncMessage creates a message asking the worker to back up
// the given revision of a record.
func NewRecordSyncMessage(id string, version int64) *RecordSyncMessage {
	return &RecordSyncMessage{
		Op:        OpSync,
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// NewRecordDeleteMessage creates a message asking the worker to remove
// a record from the backup sheet.
func NewRecordDeleteMessage(id string) *RecordSyncMessage {
	return &RecordSyncMessage{
		Op:        OpDelete,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSyncMessageFromJSON creates a message from JSON bytes
func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Op != OpSync && msg.Op != OpDelete {
		return nil, fmt.Errorf("unknown message op %q", msg.Op)
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("message without record id")
	}
	return &msg, nil
}
