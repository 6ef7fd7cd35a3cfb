// Package memory provides an in-memory record store used for tests and for
// running the server without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"zakatku/internal/core"
	"zakatku/internal/records"
)

type Store struct {
	mu    sync.Mutex
	items []core.Record
	now   func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock fixes the timestamp source, for deterministic tests.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

var _ records.Store = (*Store)(nil)

func (s *Store) ListAll(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) GetByID(_ context.Context, id string) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.ID == id {
			return r, nil
		}
	}
	return core.Record{}, records.ErrNotFound
}

func (s *Store) Create(_ context.Context, d core.Draft) (core.Record, error) {
	if err := d.Validate(); err != nil {
		return core.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := core.NewRecord(uuid.NewString(), d, s.now())
	s.items = append(s.items, r)
	return r, nil
}

func (s *Store) Update(_ context.Context, id string, d core.Draft) (core.Record, error) {
	if err := d.Validate(); err != nil {
		return core.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.items {
		if r.ID == id {
			s.items[i] = r.Apply(d, s.now())
			return s.items[i], nil
		}
	}
	return core.Record{}, records.ErrNotFound
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.items {
		if r.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

// SeedSampleIfEmpty inserts one demonstration record when the store holds
// nothing, so a fresh install shows a populated dashboard.
func (s *Store) SeedSampleIfEmpty(ctx context.Context) error {
	s.mu.Lock()
	empty := len(s.items) == 0
	s.mu.Unlock()
	if !empty {
		return nil
	}
	_, err := s.Create(ctx, core.Draft{
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
