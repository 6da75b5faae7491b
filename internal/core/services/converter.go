package services

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-tools/bionify/internal/core/domain"
	"github.com/inkwell-tools/bionify/internal/core/ports/driven"
	"github.com/inkwell-tools/bionify/internal/core/ports/driving"
	"github.com/inkwell-tools/bionify/internal/logger"
	"github.com/inkwell-tools/bionify/internal/ziputil"
)

// Ensure Converter implements the interface.
var _ driving.ConverterService = (*Converter)(nil)

// Converter orchestrates EPUB conversions: it walks the input archive,
// rewrites HTML-like entries through the DocumentRewriter, and copies
// every other entry through byte-for-byte.
type Converter struct {
	rewriter driven.DocumentRewriter
	history  driven.HistoryStore

	// Status tracking
	mu            sync.RWMutex
	activeJobs    map[string]*driving.ConversionStatus
	activeOutputs map[string]struct{}
}

// NewConverter creates a new converter service.
// The history store is optional - if nil, conversions are not recorded.
func NewConverter(rewriter driven.DocumentRewriter, history driven.HistoryStore) *Converter {
	return &Converter{
		rewriter:      rewriter,
		history:       history,
		activeJobs:    make(map[string]*driving.ConversionStatus),
		activeOutputs: make(map[string]struct{}),
	}
}

// Convert transforms the EPUB at job.InputPath into its bionic reading
// variant at job.OutputPath.
func (c *Converter) Convert(ctx context.Context, job domain.ConversionJob, onProgress domain.ProgressFunc) (*domain.ConversionReport, error) {
	if job.InputPath == "" || job.OutputPath == "" {
		return nil, fmt.Errorf("%w: input and output paths are required", domain.ErrInvalidInput)
	}
	if err := job.Options.Validate(); err != nil {
		return nil, fmt.Errorf("%w: emphasis options", domain.ErrInvalidInput)
	}
	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	if err := c.claimOutput(job); err != nil {
		return nil, err
	}
	defer c.releaseOutput(job)

	started := time.Now()
	logger.Info("Starting conversion %s: %s -> %s", job.ID, job.InputPath, job.OutputPath)

	report, err := c.convert(ctx, job, onProgress, started)
	if err != nil {
		c.recordFailure(job, started, err)
		return nil, err
	}

	report.Duration = time.Since(started)
	logger.Info("Conversion complete: %d entries, %d documents rewritten, %d failures",
		report.EntriesTotal, report.DocumentsRewritten, len(report.Failures))

	if c.history != nil {
		if err := c.history.Save(context.WithoutCancel(ctx), domain.RecordFromReport(report)); err != nil {
			logger.Warn("Failed to record conversion history: %v", err)
		}
	}
	return report, nil
}

// Status returns the live status of a running conversion.
func (c *Converter) Status(jobID string) (*driving.ConversionStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status, ok := c.activeJobs[jobID]
	if !ok {
		return nil, false
	}
	snapshot := *status
	return &snapshot, true
}

// claimOutput registers the job for status tracking and refuses a
// second conversion to the same output path.
func (c *Converter) claimOutput(job domain.ConversionJob) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.activeOutputs[job.OutputPath]; busy {
		return fmt.Errorf("%w: %s", domain.ErrConversionInProgress, job.OutputPath)
	}
	c.activeOutputs[job.OutputPath] = struct{}{}
	c.activeJobs[job.ID] = &driving.ConversionStatus{JobID: job.ID, Running: true}
	return nil
}

func (c *Converter) releaseOutput(job domain.ConversionJob) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.activeOutputs, job.OutputPath)
	delete(c.activeJobs, job.ID)
}

// convert performs the archive walk. The caller owns status lifecycle.
func (c *Converter) convert(ctx context.Context, job domain.ConversionJob, onProgress domain.ProgressFunc, started time.Time) (report *domain.ConversionReport, err error) {
	zr, err := zip.OpenReader(job.InputPath)
	if err != nil {
		return nil, mapOpenError(job.InputPath, err)
	}
	defer zr.Close()

	out, err := os.Create(job.OutputPath)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPermission, job.OutputPath)
		}
		return nil, fmt.Errorf("create output: %w", err)
	}

	zw := zip.NewWriter(out)
	cleanup := func() {
		zw.Close()
		out.Close()
		os.Remove(job.OutputPath)
	}

	total := len(zr.File)
	report = &domain.ConversionReport{
		ID:         job.ID,
		InputPath:  job.InputPath,
		OutputPath: job.OutputPath,
		StartedAt:  started,
	}

	for i, f := range zr.File {
		select {
		case <-ctx.Done():
			cleanup()
			return nil, fmt.Errorf("conversion cancelled: %w", ctx.Err())
		default:
		}

		rewritten, failure := c.convertEntry(ctx, zw, f, job.Options)
		report.EntriesTotal++
		if rewritten {
			report.DocumentsRewritten++
		} else {
			report.EntriesCopied++
		}
		if failure != nil {
			report.Failures = append(report.Failures, *failure)
			logger.Warn("Entry %s not rewritten: %s", failure.Entry, failure.Reason)
		}

		c.updateStatus(job.ID, f.Name, i+1, total, len(report.Failures))
		if onProgress != nil {
			onProgress(domain.ProgressEvent{
				JobID:   job.ID,
				Percent: (i + 1) * 100 / total,
				Entry:   f.Name,
				Index:   i + 1,
				Total:   total,
			})
		}
	}

	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(job.OutputPath)
		return nil, fmt.Errorf("finalise output archive: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(job.OutputPath)
		return nil, fmt.Errorf("close output: %w", err)
	}

	return report, nil
}

// convertEntry writes one archive entry to zw. Documents are rewritten;
// everything else is copied through with its compressed bytes intact.
// Rewrite failures degrade to a copy-through plus a recorded failure.
func (c *Converter) convertEntry(ctx context.Context, zw *zip.Writer, f *zip.File, opts domain.EmphasisOptions) (rewritten bool, failure *domain.FileFailure) {
	if f.FileInfo().IsDir() || !opts.IsDocument(f.Name) {
		if err := copyEntryRaw(zw, f); err != nil {
			return false, &domain.FileFailure{Entry: f.Name, Reason: err.Error()}
		}
		return false, nil
	}

	data, err := ziputil.ReadEntry(f)
	if err == nil {
		var result []byte
		result, err = c.rewriter.Rewrite(ctx, data, opts)
		if err == nil {
			if werr := writeEntry(zw, f, result); werr != nil {
				return false, &domain.FileFailure{Entry: f.Name, Reason: werr.Error()}
			}
			return true, nil
		}
	}

	// Pass the original entry through so the book stays readable.
	if cerr := copyEntryRaw(zw, f); cerr != nil {
		return false, &domain.FileFailure{Entry: f.Name, Reason: cerr.Error()}
	}
	return false, &domain.FileFailure{Entry: f.Name, Reason: err.Error()}
}

// copyEntryRaw copies an entry without recompression, preserving its
// header (name, method, timestamps, CRC) exactly.
func copyEntryRaw(zw *zip.Writer, f *zip.File) error {
	rc, err := f.OpenRaw()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", f.Name, err)
	}

	header := f.FileHeader
	w, err := zw.CreateRaw(&header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", f.Name, err)
	}
	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("copy entry %s: %w", f.Name, err)
	}
	return nil
}

// writeEntry writes rewritten content under the original entry's name,
// compression method and timestamp. The EPUB mimetype entry never
// matches a document extension, so Stored entries that are rewritten
// simply stay Stored.
func writeEntry(zw *zip.Writer, f *zip.File, content []byte) error {
	header := &zip.FileHeader{
		Name:     f.Name,
		Method:   f.Method,
		Modified: f.Modified,
	}
	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", f.Name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write entry %s: %w", f.Name, err)
	}
	return nil
}

func (c *Converter) updateStatus(jobID, entry string, processed, total, errCount int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if status, ok := c.activeJobs[jobID]; ok {
		status.EntriesProcessed = processed
		status.EntriesTotal = total
		status.CurrentEntry = entry
		status.ErrorCount = errCount
	}
}

// recordFailure stores a failed conversion in history, best effort.
func (c *Converter) recordFailure(job domain.ConversionJob, started time.Time, convErr error) {
	if c.history == nil {
		return
	}
	record := domain.ConversionRecord{
		ID:         job.ID,
		InputPath:  job.InputPath,
		OutputPath: job.OutputPath,
		Success:    false,
		Error:      convErr.Error(),
		StartedAt:  started,
		Duration:   time.Since(started),
	}
	if err := c.history.Save(context.Background(), record); err != nil {
		logger.Warn("Failed to record conversion history: %v", err)
	}
}

// mapOpenError translates input open failures to domain errors.
func mapOpenError(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s", domain.ErrPermission, path)
	case errors.Is(err, zip.ErrFormat):
		return fmt.Errorf("%w: %s", domain.ErrInvalidArchive, path)
	default:
		return fmt.Errorf("open input: %w", err)
	}
}
