package backend

import (
	"context"

	"zakatku/internal/records"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Seeder is implemented by backends that can insert a sample record
// into an empty store.
type Seeder interface {
	SeedSampleIfEmpty(ctx context.Context) error
}

// BackendResult contains the backend instance and optional cleanup function.
type BackendResult struct {
	Store   records.Store
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Insert a sample record when the store is empty
	SeedSample bool
}

// BackendType represents the type of backend.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
