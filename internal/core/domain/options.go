package domain

import (
	"strings"
	"time"
)

// EmphasisTag selects the inline element used to mark emphasized prefixes.
type EmphasisTag string

// Available emphasis tags.
const (
	// EmphasisBold renders prefixes with <b>.
	EmphasisBold EmphasisTag = "b"

	// EmphasisStrong renders prefixes with <strong>.
	EmphasisStrong EmphasisTag = "strong"
)

// IsValid returns true if the emphasis tag is recognised.
func (t EmphasisTag) IsValid() bool {
	switch t {
	case EmphasisBold, EmphasisStrong:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t EmphasisTag) String() string {
	return string(t)
}

// DefaultExtensions are the archive entry suffixes treated as
// transformable documents. Matching is ASCII case-insensitive.
var DefaultExtensions = []string{".html", ".xhtml", ".htm"}

// DefaultOutputSuffix is appended to the input file stem when no output
// path is given ("book.epub" becomes "book_bionic.epub").
const DefaultOutputSuffix = "_bionic"

// EmphasisOptions control how documents are rewritten.
type EmphasisOptions struct {
	// Tag is the inline element wrapped around word prefixes.
	Tag EmphasisTag

	// Extensions are the entry name suffixes identifying documents.
	// Empty means DefaultExtensions.
	Extensions []string
}

// DefaultEmphasisOptions returns the standard conversion options.
func DefaultEmphasisOptions() EmphasisOptions {
	return EmphasisOptions{
		Tag:        EmphasisBold,
		Extensions: DefaultExtensions,
	}
}

// Validate checks the options for consistency.
func (o EmphasisOptions) Validate() error {
	if !o.Tag.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// IsDocument reports whether an archive entry name identifies a
// transformable HTML/XHTML document. The comparison is case-insensitive
// on the configured extensions.
func (o EmphasisOptions) IsDocument(name string) bool {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ConversionJob is a request to convert one EPUB archive.
type ConversionJob struct {
	// ID uniquely identifies the job for status tracking.
	ID string

	// InputPath is the source EPUB file.
	InputPath string

	// OutputPath is where the converted EPUB is written.
	OutputPath string

	// Options control document rewriting.
	Options EmphasisOptions
}

// OutputName derives the default output path for an input path by
// inserting DefaultOutputSuffix before the extension.
func OutputName(input string) string {
	ext := ""
	stem := input
	if i := strings.LastIndex(input, "."); i > strings.LastIndexAny(input, `/\`) {
		ext = input[i:]
		stem = input[:i]
	}
	return stem + DefaultOutputSuffix + ext
}

// FileFailure records a per-entry rewrite failure. Failed entries are
// copied through unchanged rather than aborting the conversion.
type FileFailure struct {
	// Entry is the archive entry name.
	Entry string

	// Reason is the failure description.
	Reason string
}

// ConversionReport is the outcome of a completed conversion.
type ConversionReport struct {
	// ID is the job ID this report belongs to.
	ID string

	// InputPath and OutputPath echo the job paths.
	InputPath  string
	OutputPath string

	// EntriesTotal is the number of archive entries visited.
	EntriesTotal int

	// DocumentsRewritten is the number of entries rewritten.
	DocumentsRewritten int

	// EntriesCopied is the number of entries passed through unchanged.
	EntriesCopied int

	// Failures lists entries that could not be rewritten.
	Failures []FileFailure

	// StartedAt and Duration describe timing.
	StartedAt time.Time
	Duration  time.Duration
}

// ProgressEvent is a per-entry progress notification.
type ProgressEvent struct {
	// JobID identifies the conversion this event belongs to.
	JobID string

	// Percent is the completion percentage, 0-100.
	Percent int

	// Entry is the archive entry just processed.
	Entry string

	// Index is the 1-based position of the entry.
	Index int

	// Total is the number of entries in the archive.
	Total int
}

// ProgressFunc receives progress events during a conversion.
// It may be called from the conversion goroutine; implementations must
// be safe to call concurrently with UI updates.
type ProgressFunc func(ProgressEvent)
