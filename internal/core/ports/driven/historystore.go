package driven

import (
	"context"

	"github.com/inkwell-tools/bionify/internal/core/domain"
)

// HistoryStore persists summaries of completed conversions.
type HistoryStore interface {
	// Save stores a conversion record. Records with an existing ID are
	// overwritten.
	Save(ctx context.Context, record domain.ConversionRecord) error

	// List returns records ordered by start time descending (most
	// recent first). limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.ConversionRecord, error)

	// Get retrieves a record by ID.
	// Returns domain.ErrNotFound if no such record exists.
	Get(ctx context.Context, id string) (*domain.ConversionRecord, error)

	// Clear removes all records.
	Clear(ctx context.Context) error

	// Close releases underlying resources.
	Close() error
}
