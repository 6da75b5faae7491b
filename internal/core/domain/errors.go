package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInputNotFound indicates the input EPUB file does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrInvalidArchive indicates the input file is not a valid ZIP archive.
	ErrInvalidArchive = errors.New("invalid EPUB file (not a valid ZIP archive)")

	// ErrPermission indicates the input or output path could not be
	// accessed due to file permissions.
	ErrPermission = errors.New("permission denied")

	// ErrConversionInProgress indicates a conversion is already running
	// for the same output path.
	ErrConversionInProgress = errors.New("conversion in progress")

	// ErrUnsafeEntryPath indicates a ZIP entry name escapes the archive
	// root via path traversal.
	ErrUnsafeEntryPath = errors.New("unsafe zip entry path")

	// ErrEntryTooLarge indicates a ZIP entry exceeds the decompressed
	// size cap.
	ErrEntryTooLarge = errors.New("zip entry exceeds size limit")
)
