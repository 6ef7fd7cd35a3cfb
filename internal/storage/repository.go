package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"zakatku/internal/core"
	"zakatku/internal/records"
)

// Sync states tracked per row. A row becomes pending again on every update.
const (
	SyncStatusPending = "pending"
	SyncStatusSynced  = "synced"
	SyncStatusError   = "error"
)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const recordColumns = `id, penginput, tanggal, nama, alamat,
	zakat_fitrah_jiwa_beras, zakat_fitrah_beras_kg, zakat_fitrah_jiwa_uang, zakat_fitrah_uang,
	zakat_maal, infaq_beras, infaq_uang, fidyah_beras, fidyah_uang,
	total_beras, total_uang, created_at, updated_at`

// CreateRecord persists a new record in pending sync state.
func (r *SQLiteRepository) CreateRecord(ctx context.Context, rec core.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO zakat_records (
			id, penginput, tanggal, nama, alamat,
			zakat_fitrah_jiwa_beras, zakat_fitrah_beras_kg, zakat_fitrah_jiwa_uang, zakat_fitrah_uang,
			zakat_maal, infaq_beras, infaq_uang, fidyah_beras, fidyah_uang,
			total_beras, total_uang, sync_status, version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		rec.ID, rec.Penginput, rec.Tanggal, rec.Nama, rec.Alamat,
		rec.ZakatFitrah.JiwaBeras, rec.ZakatFitrah.BerasKg.String(), rec.ZakatFitrah.JiwaUang, rec.ZakatFitrah.Uang,
		rec.ZakatMaal, rec.Infaq.Beras.String(), rec.Infaq.Uang, rec.Fidyah.Beras.String(), rec.Fidyah.Uang,
		rec.TotalBeras.String(), rec.TotalUang, SyncStatusPending,
		rec.CreatedAt.UTC(), rec.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	slog.InfoContext(ctx, "Record saved to SQLite",
		"id", rec.ID,
		"tanggal", rec.Tanggal,
		"nama", rec.Nama,
		"total_uang", rec.TotalUang)
	return nil
}

// UpdateRecord rewrites a record's fields, bumps its version and resets
// sync state so the worker pushes the new revision to the backup sheet.
func (r *SQLiteRepository) UpdateRecord(ctx context.Context, rec core.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE zakat_records SET
			penginput = ?, tanggal = ?, nama = ?, alamat = ?,
			zakat_fitrah_jiwa_beras = ?, zakat_fitrah_beras_kg = ?, zakat_fitrah_jiwa_uang = ?, zakat_fitrah_uang = ?,
			zakat_maal = ?, infaq_beras = ?, infaq_uang = ?, fidyah_beras = ?, fidyah_uang = ?,
			total_beras = ?, total_uang = ?,
			sync_status = ?, version = version + 1, updated_at = ?
		WHERE id = ?`,
		rec.Penginput, rec.Tanggal, rec.Nama, rec.Alamat,
		rec.ZakatFitrah.JiwaBeras, rec.ZakatFitrah.BerasKg.String(), rec.ZakatFitrah.JiwaUang, rec.ZakatFitrah.Uang,
		rec.ZakatMaal, rec.Infaq.Beras.String(), rec.Infaq.Uang, rec.Fidyah.Beras.String(), rec.Fidyah.Uang,
		rec.TotalBeras.String(), rec.TotalUang,
		SyncStatusPending, rec.UpdatedAt.UTC(), rec.ID)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update record rows affected: %w", err)
	}
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

// DeleteRecord removes a record permanently.
func (r *SQLiteRepository) DeleteRecord(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM zakat_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record rows affected: %w", err)
	}
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

// GetRecord retrieves a single record by id.
func (r *SQLiteRepository) GetRecord(ctx context.Context, id string) (core.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM zakat_records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, records.ErrNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// ListRecords returns every record ordered by date then insertion time.
func (r *SQLiteRepository) ListRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM zakat_records ORDER BY tanggal, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

// CountRecords returns the total number of stored records.
func (r *SQLiteRepository) CountRecords(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM zakat_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// PendingSyncRecord is the minimal row shape the sync sweep works with.
type PendingSyncRecord struct {
	ID        string
	Version   int64
	CreatedAt time.Time
}

// GetPendingSyncRecords returns records awaiting backup, oldest first.
func (r *SQLiteRepository) GetPendingSyncRecords(ctx context.Context, limit int) ([]PendingSyncRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, version, created_at FROM zakat_records
		WHERE sync_status = ?
		ORDER BY created_at
		LIMIT ?`, SyncStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync records: %w", err)
	}
	defer rows.Close()

	var out []PendingSyncRecord
	for rows.Next() {
		var p PendingSyncRecord
		if err := rows.Scan(&p.ID, &p.Version, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending record: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get pending sync records: %w", err)
	}
	return out, nil
}

// MarkSynced records a successful backup of the given revision. A row
// updated after the message was published stays pending.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string, version int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE zakat_records SET sync_status = ?
		WHERE id = ? AND version = ?`, SyncStatusSynced, id, version)
	if err != nil {
		return fmt.Errorf("mark record synced: %w", err)
	}
	slog.InfoContext(ctx, "Record marked as synced", "id", id, "version", version)
	return nil
}

// MarkSyncError flags a record whose backup attempt failed.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE zakat_records SET sync_status = ? WHERE id = ?`, SyncStatusError, id)
	if err != nil {
		return fmt.Errorf("mark record sync error: %w", err)
	}
	slog.WarnContext(ctx, "Record marked with sync error", "id", id)
	return nil
}

// GetRecordVersion returns the current revision counter for a record.
func (r *SQLiteRepository) GetRecordVersion(ctx context.Context, id string) (int64, error) {
	var v int64
	err := r.db.QueryRowContext(ctx,
		`SELECT version FROM zakat_records WHERE id = ?`, id).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, records.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get record version: %w", err)
	}
	return v, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (core.Record, error) {
	var (
		rec           core.Record
		fitrahBeras   string
		infaqBeras    string
		fidyahBeras   string
		totalBeras    string
		created, modd time.Time
	)
	err := s.Scan(
		&rec.ID, &rec.Penginput, &rec.Tanggal, &rec.Nama, &rec.Alamat,
		&rec.ZakatFitrah.JiwaBeras, &fitrahBeras, &rec.ZakatFitrah.JiwaUang, &rec.ZakatFitrah.Uang,
		&rec.ZakatMaal, &infaqBeras, &rec.Infaq.Uang, &fidyahBeras, &rec.Fidyah.Uang,
		&totalBeras, &rec.TotalUang, &created, &modd)
	if err != nil {
		return core.Record{}, err
	}

	if rec.ZakatFitrah.BerasKg, err = decimal.NewFromString(fitrahBeras); err != nil {
		return core.Record{}, fmt.Errorf("decode zakat_fitrah_beras_kg: %w", err)
	}
	if rec.Infaq.Beras, err = decimal.NewFromString(infaqBeras); err != nil {
		return core.Record{}, fmt.Errorf("decode infaq_beras: %w", err)
	}
	if rec.Fidyah.Beras, err = decimal.NewFromString(fidyahBeras); err != nil {
		return core.Record{}, fmt.Errorf("decode fidyah_beras: %w", err)
	}
	if rec.TotalBeras, err = decimal.NewFromString(totalBeras); err != nil {
		return core.Record{}, fmt.Errorf("decode total_beras: %w", err)
	}

	rec.CreatedAt = created
	rec.UpdatedAt = modd
	return rec, nil
}
