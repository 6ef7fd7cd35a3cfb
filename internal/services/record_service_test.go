package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"zakatku/internal/core"
	"zakatku/internal/records"
)

type fakeRepo struct {
	items    map[string]core.Record
	versions map[string]int64
	closed   bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:    map[string]core.Record{},
		versions: map[string]int64{},
	}
}

func (f *fakeRepo) CreateRecord(_ context.Context, rec core.Record) error {
	f.items[rec.ID] = rec
	f.versions[rec.ID] = 1
	return nil
}

func (f *fakeRepo) UpdateRecord(_ context.Context, rec core.Record) error {
	if _, ok := f.items[rec.ID]; !ok {
		return records.ErrNotFound
	}
	f.items[rec.ID] = rec
	f.versions[rec.ID]++
	return nil
}

func (f *fakeRepo) DeleteRecord(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return records.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) GetRecord(_ context.Context, id string) (core.Record, error) {
	rec, ok := f.items[id]
	if !ok {
		return core.Record{}, records.ErrNotFound
	}
	return rec, nil
}

func (f *fakeRepo) ListRecords(_ context.Context) ([]core.Record, error) {
	out := make([]core.Record, 0, len(f.items))
	for _, rec := range f.items {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRepo) GetRecordVersion(_ context.Context, id string) (int64, error) {
	v, ok := f.versions[id]
	if !ok {
		return 0, records.ErrNotFound
	}
	return v, nil
}

func (f *fakeRepo) CountRecords(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeRepo) Close() error {
	f.closed = true
	return nil
}

type published struct {
	op      string
	id      string
	version int64
}

type fakePublisher struct {
	messages []published
	fail     bool
	closed   bool
}

func (f *fakePublisher) PublishRecordSync(_ context.Context, id string, version int64) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.messages = append(f.messages, published{op: "sync", id: id, version: version})
	return nil
}

func (f *fakePublisher) PublishRecordDelete(_ context.Context, id string) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.messages = append(f.messages, published{op: "delete", id: id})
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func validDraft() core.Draft {
	return core.Draft{
		Penginput: "Admin",
		Tanggal:   "2024-04-08",
		Nama:      "Budi",
		ZakatMaal: 250000,
	}
}

func TestRecordService_CreateRecord(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	svc := NewRecordService(repo, pub)

	rec, err := svc.CreateRecord(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected assigned id")
	}
	if _, ok := repo.items[rec.ID]; !ok {
		t.Fatal("record not persisted")
	}
	if len(pub.messages) != 1 || pub.messages[0].op != "sync" || pub.messages[0].version != 1 {
		t.Fatalf("expected one sync message at version 1, got %+v", pub.messages)
	}
}

func TestRecordService_CreateRejectsInvalidDraft(t *testing.T) {
	repo := newFakeRepo()
	svc := NewRecordService(repo, &fakePublisher{})

	d := validDraft()
	d.Nama = ""
	if _, err := svc.CreateRecord(context.Background(), d); !errors.Is(err, core.ErrEmptyNama) {
		t.Fatalf("expected ErrEmptyNama, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("invalid draft must not be persisted")
	}
}

func TestRecordService_CreateSurvivesPublishFailure(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{fail: true}
	svc := NewRecordService(repo, pub)

	rec, err := svc.CreateRecord(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("create must succeed despite publish failure: %v", err)
	}
	if _, ok := repo.items[rec.ID]; !ok {
		t.Fatal("record not persisted")
	}
}

func TestRecordService_CreateWithoutPublisher(t *testing.T) {
	svc := NewRecordService(newFakeRepo(), nil)
	if _, err := svc.CreateRecord(context.Background(), validDraft()); err != nil {
		t.Fatalf("create without publisher: %v", err)
	}
}

func TestRecordService_UpdateRecord(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	svc := NewRecordService(repo, pub)
	ctx := context.Background()

	rec, _ := svc.CreateRecord(ctx, validDraft())

	d := rec.Draft
	d.ZakatMaal = 300000
	updated, err := svc.UpdateRecord(ctx, rec.ID, d)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TotalUang != 300000 {
		t.Fatalf("totals not recomputed, TotalUang = %d", updated.TotalUang)
	}

	last := pub.messages[len(pub.messages)-1]
	if last.op != "sync" || last.version != 2 {
		t.Fatalf("expected sync message at version 2, got %+v", last)
	}
}

func TestRecordService_UpdateMissingRecord(t *testing.T) {
	svc := NewRecordService(newFakeRepo(), &fakePublisher{})
	_, err := svc.UpdateRecord(context.Background(), "missing", validDraft())
	if !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordService_DeleteRecord(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	svc := NewRecordService(repo, pub)
	ctx := context.Background()

	rec, _ := svc.CreateRecord(ctx, validDraft())
	if err := svc.DeleteRecord(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.items[rec.ID]; ok {
		t.Fatal("record still present after delete")
	}

	last := pub.messages[len(pub.messages)-1]
	if last.op != "delete" || last.id != rec.ID {
		t.Fatalf("expected delete message for %s, got %+v", rec.ID, last)
	}

	if err := svc.DeleteRecord(ctx, rec.ID); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("second delete must be ErrNotFound, got %v", err)
	}
}

func TestRecordService_SeedSampleIfEmpty(t *testing.T) {
	repo := newFakeRepo()
	svc := NewRecordService(repo, nil)
	svc.now = func() time.Time { return time.Date(2024, 4, 8, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	if err := svc.SeedSampleIfEmpty(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 seeded record, got %d", len(repo.items))
	}

	if err := svc.SeedSampleIfEmpty(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("seed must not duplicate, got %d", len(repo.items))
	}
}

func TestRecordService_Close(t *testing.T) {
	t.Run("nil components", func(t *testing.T) {
		svc := &RecordService{}
		if err := svc.Close(); err != nil {
			t.Fatalf("Close should not return error with nil components: %v", err)
		}
	})

	t.Run("closes both", func(t *testing.T) {
		repo := newFakeRepo()
		pub := &fakePublisher{}
		svc := NewRecordService(repo, pub)
		if err := svc.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
		if !repo.closed || !pub.closed {
			t.Fatal("both components must be closed")
		}
	})
}
