// Package sheets defines the ports the backup worker writes through.
package sheets

import (
	"context"

	"zakatku/internal/core"
)

// RecordBackup mirrors record revisions into an external backup sheet.
// Upsert is keyed by record id so redeliveries stay idempotent.
type RecordBackup interface {
	UpsertRecord(ctx context.Context, rec core.Record, version int64) (string, error)
	DeleteRecord(ctx context.Context, id string) error
}
