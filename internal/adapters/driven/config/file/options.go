package file

import (
	"github.com/inkwell-tools/bionify/internal/core/domain"
	"github.com/inkwell-tools/bionify/internal/core/ports/driven"
)

// Configuration keys used by bionify.
const (
	// KeyEmphasisTag selects the emphasis element: "b" or "strong".
	KeyEmphasisTag = "emphasis.tag"

	// KeyExtensions lists the entry suffixes treated as documents.
	KeyExtensions = "emphasis.extensions"

	// KeyHistoryEnabled toggles conversion history persistence.
	KeyHistoryEnabled = "history.enabled"
)

// EmphasisOptionsFromConfig builds conversion options from stored
// configuration, falling back to defaults for missing or invalid keys.
func EmphasisOptionsFromConfig(store driven.ConfigStore) domain.EmphasisOptions {
	opts := domain.DefaultEmphasisOptions()
	if store == nil {
		return opts
	}

	if tag := domain.EmphasisTag(store.GetString(KeyEmphasisTag)); tag.IsValid() {
		opts.Tag = tag
	}
	if exts := store.GetStringSlice(KeyExtensions); len(exts) > 0 {
		opts.Extensions = exts
	}
	return opts
}

// HistoryEnabled reports whether conversion history should be recorded.
// History is on unless explicitly disabled.
func HistoryEnabled(store driven.ConfigStore) bool {
	if store == nil {
		return true
	}
	if _, ok := store.Get(KeyHistoryEnabled); !ok {
		return true
	}
	return store.GetBool(KeyHistoryEnabled)
}
