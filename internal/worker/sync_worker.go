package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"zakatku/internal/amqp"
	"zakatku/internal/core"
	"zakatku/internal/records"
	"zakatku/internal/sheets"
	"zakatku/internal/storage"
)

// Storage is the repository surface the worker needs. Satisfied by
// storage.SQLiteRepository.
type Storage interface {
	GetRecord(ctx context.Context, id string) (core.Record, error)
	GetRecordVersion(ctx context.Context, id string) (int64, error)
	GetPendingSyncRecords(ctx context.Context, limit int) ([]storage.PendingSyncRecord, error)
	MarkSynced(ctx context.Context, id string, version int64) error
	MarkSyncError(ctx context.Context, id string) error
}

// SyncWorker mirrors record revisions from SQLite into the backup sheet.
type SyncWorker struct {
	storage   Storage
	backup    sheets.RecordBackup
	batchSize int
}

func NewSyncWorker(storage Storage, backup sheets.RecordBackup, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		backup:    backup,
		batchSize: batchSize,
	}
}

// HandleMessage processes a single queue message.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	switch msg.Op {
	case amqp.OpSync:
		return w.handleSync(ctx, msg.ID)
	case amqp.OpDelete:
		return w.handleDelete(ctx, msg.ID)
	default:
		return fmt.Errorf("unknown message op %q", msg.Op)
	}
}

func (w *SyncWorker) handleSync(ctx context.Context, id string) error {
	rec, err := w.storage.GetRecord(ctx, id)
	if errors.Is(err, records.ErrNotFound) {
		// Deleted before the message was processed. The delete message
		// cleans up the backup row.
		slog.InfoContext(ctx, "Record gone before sync, dropping message", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get record from storage: %w", err)
	}

	// Always back up the current revision, not the one the message names.
	// Stale messages then become no-ops when marking synced.
	version, err := w.storage.GetRecordVersion(ctx, id)
	if err != nil {
		return fmt.Errorf("get record version: %w", err)
	}

	return w.syncRecord(ctx, rec, version)
}

func (w *SyncWorker) handleDelete(ctx context.Context, id string) error {
	if w.backup == nil {
		slog.WarnContext(ctx, "No backup target configured, skipping delete", "id", id)
		return nil
	}
	if err := w.backup.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete backup row: %w", err)
	}
	return nil
}

func (w *SyncWorker) syncRecord(ctx context.Context, rec core.Record, version int64) error {
	ref, err := w.backup.UpsertRecord(ctx, rec, version)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, rec.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", rec.ID, "error", markErr)
		}
		return fmt.Errorf("upsert backup row: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, rec.ID, version); err != nil {
		// The backup itself succeeded.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", rec.ID, "error", err)
	}

	slog.InfoContext(ctx, "Record synced to backup",
		"id", rec.ID,
		"version", version,
		"sheets_ref", ref)
	return nil
}

// ProcessPendingRecords backs up records still marked pending. This is the
// safety net for lost queue messages.
func (w *SyncWorker) ProcessPendingRecords(ctx context.Context) error {
	return w.sweep(ctx, w.batchSize)
}

// StartupSyncCheck drains a larger pending backlog once at worker startup,
// recovering from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncRecords(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending records for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending records found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending records on startup, processing...",
		"count", len(pending))

	synced, failed := w.syncPending(ctx, pending)

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)
	return nil
}

// RunPendingSweep periodically re-checks for pending records until the
// context is cancelled.
func (w *SyncWorker) RunPendingSweep(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping pending sweep", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.ProcessPendingRecords(ctx); err != nil {
				slog.ErrorContext(ctx, "Pending sweep failed", "error", err)
			}
		}
	}
}

func (w *SyncWorker) sweep(ctx context.Context, limit int) error {
	pending, err := w.storage.GetPendingSyncRecords(ctx, limit)
	if err != nil {
		return fmt.Errorf("get pending records: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending records", "count", len(pending))
	w.syncPending(ctx, pending)
	return nil
}

// syncPending backs up a batch concurrently, a few rows at a time.
func (w *SyncWorker) syncPending(ctx context.Context, pending []storage.PendingSyncRecord) (synced, failed int) {
	results := make([]error, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range pending {
		g.Go(func() error {
			results[i] = w.syncOne(gctx, p.ID)
			return nil
		})
	}
	g.Wait()

	for _, err := range results {
		if err != nil {
			failed++
		} else {
			synced++
		}
	}
	return synced, failed
}

func (w *SyncWorker) syncOne(ctx context.Context, id string) error {
	rec, err := w.storage.GetRecord(ctx, id)
	if errors.Is(err, records.ErrNotFound) {
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to get pending record", "id", id, "error", err)
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return err
	}

	version, err := w.storage.GetRecordVersion(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to get pending record version", "id", id, "error", err)
		return err
	}

	if err := w.syncRecord(ctx, rec, version); err != nil {
		slog.ErrorContext(ctx, "Failed to sync pending record", "id", id, "error", err)
		return err
	}
	return nil
}
