package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"zakatku/internal/core"
	"zakatku/internal/records"
)

func draft(nama string) core.Draft {
	return core.Draft{
		Penginput: "Admin",
		Tanggal:   "2024-04-08",
		Nama:      nama,
		ZakatMaal: 250000,
	}
}

func TestCreateAssignsIDAndTotals(t *testing.T) {
	s := New()
	ctx := context.Background()

	r, err := s.Create(ctx, draft("Budi"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if r.TotalUang != 250000 {
		t.Fatalf("TotalUang = %d", r.TotalUang)
	}

	other, err := s.Create(ctx, draft("Siti"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if other.ID == r.ID {
		t.Fatalf("ids must be unique")
	}
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	s := New()
	d := draft("Budi")
	d.ZakatFitrah.JiwaUang = core.MaxJiwa + 50
	if _, err := s.Create(context.Background(), d); !errors.Is(err, core.ErrJiwaCapExceeded) {
		t.Fatalf("expected cap error, got %v", err)
	}
	all, _ := s.ListAll(context.Background())
	if len(all) != 0 {
		t.Fatalf("rejected draft must not be stored")
	}
}

func TestGetUpdateDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	r, _ := s.Create(ctx, draft("Budi"))

	got, err := s.GetByID(ctx, r.ID)
	if err != nil || got.Nama != "Budi" {
		t.Fatalf("get: %v %+v", err, got)
	}

	d := got.Draft
	d.ZakatMaal = 300000
	updated, err := s.Update(ctx, r.ID, d)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TotalUang != 300000 {
		t.Fatalf("totals not recomputed on update: %d", updated.TotalUang)
	}

	if err := s.Delete(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetByID(ctx, r.ID); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, r.ID); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("second delete must be ErrNotFound, got %v", err)
	}
}

func TestSeedSampleIfEmpty(t *testing.T) {
	fixed := time.Date(2024, 4, 8, 9, 0, 0, 0, time.UTC)
	s := NewWithClock(func() time.Time { return fixed })
	ctx := context.Background()

	if err := s.SeedSampleIfEmpty(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	all, _ := s.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 seeded record, got %d", len(all))
	}
	if all[0].Tanggal != "2024-04-08" {
		t.Fatalf("seed tanggal = %s", all[0].Tanggal)
	}

	// Second call is a no-op.
	if err := s.SeedSampleIfEmpty(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	all, _ = s.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("seed must not duplicate, got %d records", len(all))
	}
}
