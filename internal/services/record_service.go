package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"zakatku/internal/core"
	"zakatku/internal/storage"
)

// Repository is the storage surface the service needs. Satisfied by
// storage.SQLiteRepository.
type Repository interface {
	CreateRecord(ctx context.Context, rec core.Record) error
	UpdateRecord(ctx context.Context, rec core.Record) error
	DeleteRecord(ctx context.Context, id string) error
	GetRecord(ctx context.Context, id string) (core.Record, error)
	ListRecords(ctx context.Context) ([]core.Record, error)
	GetRecordVersion(ctx context.Context, id string) (int64, error)
	CountRecords(ctx context.Context) (int64, error)
	Close() error
}

// Publisher is the queue surface the service needs. Satisfied by amqp.Client.
type Publisher interface {
	PublishRecordSync(ctx context.Context, id string, version int64) error
	PublishRecordDelete(ctx context.Context, id string) error
	Close() error
}

// RecordService orchestrates record operations across SQLite and AMQP.
// Writes land in SQLite first; backup messages are best effort and never
// fail the request.
type RecordService struct {
	storage   Repository
	publisher Publisher
	now       func() time.Time
}

func NewRecordService(storage Repository, publisher Publisher) *RecordService {
	return &RecordService{
		storage:   storage,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateRecord validates and saves a new record, then queues its backup.
func (s *RecordService) CreateRecord(ctx context.Context, d core.Draft) (core.Record, error) {
	if err := d.Validate(); err != nil {
		return core.Record{}, err
	}

	rec := core.NewRecord(uuid.NewString(), d, s.now())
	if err := s.storage.CreateRecord(ctx, rec); err != nil {
		return core.Record{}, fmt.Errorf("save record: %w", err)
	}

	// New rows start at version 1.
	if err := s.publishSyncMessage(ctx, rec.ID, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", rec.ID, "error", err)
	}

	return rec, nil
}

// UpdateRecord validates and rewrites an existing record, then queues the
// new revision for backup.
func (s *RecordService) UpdateRecord(ctx context.Context, id string, d core.Draft) (core.Record, error) {
	if err := d.Validate(); err != nil {
		return core.Record{}, err
	}

	existing, err := s.storage.GetRecord(ctx, id)
	if err != nil {
		return core.Record{}, err
	}

	rec := existing.Apply(d, s.now())
	if err := s.storage.UpdateRecord(ctx, rec); err != nil {
		return core.Record{}, fmt.Errorf("update record: %w", err)
	}

	version, err := s.storage.GetRecordVersion(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read record version after update",
			"id", id, "error", err)
		return rec, nil
	}

	if err := s.publishSyncMessage(ctx, id, version); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "version", version, "error", err)
	}

	return rec, nil
}

// DeleteRecord removes a record locally and queues the backup removal.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	if err := s.storage.DeleteRecord(ctx, id); err != nil {
		return err
	}

	if err := s.publishDeleteMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"id", id, "error", err)
	}

	return nil
}

func (s *RecordService) GetRecord(ctx context.Context, id string) (core.Record, error) {
	return s.storage.GetRecord(ctx, id)
}

func (s *RecordService) ListRecords(ctx context.Context) ([]core.Record, error) {
	return s.storage.ListRecords(ctx)
}

// SeedSampleIfEmpty inserts one demonstration record into an empty
// database so a fresh install shows a populated dashboard.
func (s *RecordService) SeedSampleIfEmpty(ctx context.Context) error {
	n, err := s.storage.CountRecords(ctx)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	if n > 0 {
		return nil
	}

	_, err = s.CreateRecord(ctx, core.Draft{
		Penginput: "Admin",
		Tanggal:   s.now().Format(core.TanggalLayout),
		Nama:      "Ahmad Hidayat",
		Alamat:    "Jl. Mawar No. 12",
		ZakatFitrah: core.ZakatFitrah{
			JiwaBeras: 4,
			BerasKg:   decimal.NewFromInt(14),
		},
		ZakatMaal: 500000,
		Infaq: core.Infaq{
			Beras: decimal.NewFromInt(2),
			Uang:  100000,
		},
	})
	return err
}

func (s *RecordService) publishSyncMessage(ctx context.Context, id string, version int64) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.publisher.PublishRecordSync(ctx, id, version)
}

func (s *RecordService) publishDeleteMessage(ctx context.Context, id string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping delete message")
		return nil
	}
	return s.publisher.PublishRecordDelete(ctx, id)
}

// Close closes both storage and AMQP connections.
func (s *RecordService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}

	return nil
}

var _ Repository = (*storage.SQLiteRepository)(nil)
