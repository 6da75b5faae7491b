package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell-tools/bionify/internal/core/domain"
	"github.com/inkwell-tools/bionify/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Save stores a conversion record. Records with an existing ID are
// overwritten.
func (s *historyStore) Save(ctx context.Context, record domain.ConversionRecord) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO conversions (id, input_path, output_path, entries_total, documents_rewritten, failure_count, success, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			input_path = excluded.input_path,
			output_path = excluded.output_path,
			entries_total = excluded.entries_total,
			documents_rewritten = excluded.documents_rewritten,
			failure_count = excluded.failure_count,
			success = excluded.success,
			error = excluded.error,
			started_at = excluded.started_at,
			duration_ms = excluded.duration_ms
	`, record.ID, record.InputPath, record.OutputPath,
		record.EntriesTotal, record.DocumentsRewritten, record.FailureCount,
		boolToInt(record.Success), nullString(record.Error),
		record.StartedAt.UTC().Format(time.RFC3339Nano),
		record.Duration.Milliseconds())

	if err != nil {
		return fmt.Errorf("saving conversion record: %w", err)
	}
	return nil
}

// List returns records ordered by start time descending.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.ConversionRecord, error) {
	query := `
		SELECT id, input_path, output_path, entries_total, documents_rewritten, failure_count, success, error, started_at, duration_ms
		FROM conversions
		ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var records []domain.ConversionRecord
	for rows.Next() {
		record, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversions: %w", err)
	}

	return records, nil
}

// Get retrieves a record by ID.
func (s *historyStore) Get(ctx context.Context, id string) (*domain.ConversionRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, input_path, output_path, entries_total, documents_rewritten, failure_count, success, error, started_at, duration_ms
		FROM conversions WHERE id = ?
	`, id)

	return scanConversion(row)
}

// Clear removes all records.
func (s *historyStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM conversions"); err != nil {
		return fmt.Errorf("clearing conversions: %w", err)
	}
	return nil
}

// Close closes the underlying store.
func (s *historyStore) Close() error {
	return s.store.Close()
}

// scanner abstracts sql.Row and sql.Rows for scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanConversion(row scanner) (*domain.ConversionRecord, error) {
	var (
		record     domain.ConversionRecord
		success    int
		errMsg     sql.NullString
		startedAt  string
		durationMS int64
	)

	err := row.Scan(&record.ID, &record.InputPath, &record.OutputPath,
		&record.EntriesTotal, &record.DocumentsRewritten, &record.FailureCount,
		&success, &errMsg, &startedAt, &durationMS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning conversion record: %w", err)
	}

	record.Success = success != 0
	if errMsg.Valid {
		record.Error = errMsg.String
	}
	if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		record.StartedAt = ts
	}
	record.Duration = time.Duration(durationMS) * time.Millisecond

	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
