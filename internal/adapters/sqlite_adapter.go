package adapters

import (
	"context"

	"zakatku/internal/core"
	"zakatku/internal/records"
	"zakatku/internal/services"
)

// SQLiteAdapter exposes RecordService as a records.Store so the HTTP
// handlers work unchanged against the SQLite + AMQP backend.
type SQLiteAdapter struct {
	service *services.RecordService
}

func NewSQLiteAdapter(service *services.RecordService) *SQLiteAdapter {
	return &SQLiteAdapter{service: service}
}

var _ records.Store = (*SQLiteAdapter)(nil)

func (a *SQLiteAdapter) ListAll(ctx context.Context) ([]core.Record, error) {
	return a.service.ListRecords(ctx)
}

func (a *SQLiteAdapter) GetByID(ctx context.Context, id string) (core.Record, error) {
	return a.service.GetRecord(ctx, id)
}

func (a *SQLiteAdapter) Create(ctx context.Context, d core.Draft) (core.Record, error) {
	return a.service.CreateRecord(ctx, d)
}

func (a *SQLiteAdapter) Update(ctx context.Context, id string, d core.Draft) (core.Record, error) {
	return a.service.UpdateRecord(ctx, id, d)
}

func (a *SQLiteAdapter) Delete(ctx context.Context, id string) error {
	return a.service.DeleteRecord(ctx, id)
}

// SeedSampleIfEmpty delegates to the service so fresh installs can show
// a populated dashboard.
func (a *SQLiteAdapter) SeedSampleIfEmpty(ctx context.Context) error {
	return a.service.SeedSampleIfEmpty(ctx)
}
