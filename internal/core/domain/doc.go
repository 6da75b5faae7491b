// Package domain defines the core business entities for Bionify.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ConversionJob: A request to convert one EPUB archive
//   - ConversionReport: The outcome of a completed conversion
//   - EmphasisOptions: How word prefixes are emphasized
//   - ProgressEvent: A per-entry progress notification
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
