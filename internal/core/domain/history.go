package domain

import "time"

// ConversionRecord is a persisted summary of a completed conversion,
// shown by the history command and the history view.
type ConversionRecord struct {
	// ID uniquely identifies the record.
	ID string

	// InputPath and OutputPath are the converted file paths.
	InputPath  string
	OutputPath string

	// EntriesTotal and DocumentsRewritten summarise the archive.
	EntriesTotal       int
	DocumentsRewritten int

	// FailureCount is the number of entries that could not be rewritten.
	FailureCount int

	// Success indicates whether the conversion completed.
	Success bool

	// Error holds the failure message for unsuccessful conversions.
	Error string

	// StartedAt and Duration describe timing.
	StartedAt time.Time
	Duration  time.Duration
}

// RecordFromReport builds a successful ConversionRecord from a report.
func RecordFromReport(report *ConversionReport) ConversionRecord {
	return ConversionRecord{
		ID:                 report.ID,
		InputPath:          report.InputPath,
		OutputPath:         report.OutputPath,
		EntriesTotal:       report.EntriesTotal,
		DocumentsRewritten: report.DocumentsRewritten,
		FailureCount:       len(report.Failures),
		Success:            true,
		StartedAt:          report.StartedAt,
		Duration:           report.Duration,
	}
}
