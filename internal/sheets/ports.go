package sheets

import (
	"context"

	"ledger/internal/core"
)

// Ports for outbound adapters.
type (
	RecordWriter interface {
		Append(ctx context.Context, in core.Input) (core.Record, error)
	}

	RecordLister interface {
		List(ctx context.Context) ([]core.Record, error)
	}

	RecordUpdater interface {
		Update(ctx context.Context, id int64, in core.Input) (core.Record, error)
	}

	RecordDeleter interface {
		Delete(ctx context.Context, id int64) error
	}

	// CategoryReader returns the distinct category names currently in use.
	CategoryReader interface {
		Categories(ctx context.Context) ([]string, error)
	}

	// RecordMirror upserts locally stored records into an external replica,
	// keyed by the record id.
	RecordMirror interface {
		Mirror(ctx context.Context, rec core.Record) error
		Remove(ctx context.Context, id int64) error
	}
)
