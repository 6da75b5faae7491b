package driving

import (
	"context"

	"github.com/inkwell-tools/bionify/internal/core/domain"
)

// ConverterService is the single conversion operation the UIs invoke.
type ConverterService interface {
	// Convert transforms the EPUB at job.InputPath into its bionic
	// reading variant at job.OutputPath. onProgress, if non-nil, is
	// called after each archive entry. Convert is safe for concurrent
	// use across distinct jobs; converting to the same output path
	// concurrently returns domain.ErrConversionInProgress.
	Convert(ctx context.Context, job domain.ConversionJob, onProgress domain.ProgressFunc) (*domain.ConversionReport, error)

	// Status returns the live status of a running conversion, or
	// ok=false if no conversion with that job ID is running.
	Status(jobID string) (status *ConversionStatus, ok bool)
}

// ConversionStatus represents the current state of a running conversion.
type ConversionStatus struct {
	// JobID identifies the conversion.
	JobID string

	// Running indicates if the conversion is currently in progress.
	Running bool

	// EntriesProcessed is the count of archive entries processed.
	EntriesProcessed int

	// EntriesTotal is the number of entries in the archive.
	EntriesTotal int

	// CurrentEntry is the entry most recently processed.
	CurrentEntry string

	// ErrorCount is the number of per-entry failures encountered.
	ErrorCount int
}

// HistoryService exposes the conversion history.
type HistoryService interface {
	// List returns recent conversion records, most recent first.
	// limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.ConversionRecord, error)

	// Clear removes all records.
	Clear(ctx context.Context) error
}
