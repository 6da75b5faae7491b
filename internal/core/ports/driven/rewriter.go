package driven

import (
	"context"

	"github.com/inkwell-tools/bionify/internal/core/domain"
)

// DocumentRewriter applies the bionic emphasis rule to the text content
// of one document without disturbing its markup.
type DocumentRewriter interface {
	// Rewrite transforms a document payload and returns the rewritten
	// bytes. Implementations must leave markup, encoding and any
	// leading BOM intact, and must return an error rather than a
	// partially rewritten document.
	Rewrite(ctx context.Context, content []byte, opts domain.EmphasisOptions) ([]byte, error)
}
