package records

import (
	"context"
	"errors"

	"zakatku/internal/core"
)

// ErrNotFound marks a lookup of a deleted or never-existing record id.
// Handlers treat it as a recoverable condition, not a server fault.
var ErrNotFound = errors.New("record not found")

// Ports for record storage backends.
type (
	Lister interface {
		ListAll(ctx context.Context) ([]core.Record, error)
	}

	Getter interface {
		GetByID(ctx context.Context, id string) (core.Record, error)
	}

	Writer interface {
		Create(ctx context.Context, d core.Draft) (core.Record, error)
	}

	Updater interface {
		Update(ctx context.Context, id string, d core.Draft) (core.Record, error)
	}

	Deleter interface {
		Delete(ctx context.Context, id string) error
	}

	// Store is the full CRUD surface the HTTP layer works against.
	Store interface {
		Lister
		Getter
		Writer
		Updater
		Deleter
	}
)
