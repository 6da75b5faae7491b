package services

import (
	"context"
	"fmt"

	"github.com/inkwell-tools/bionify/internal/core/domain"
	"github.com/inkwell-tools/bionify/internal/core/ports/driven"
	"github.com/inkwell-tools/bionify/internal/core/ports/driving"
)

// Ensure History implements the interface.
var _ driving.HistoryService = (*History)(nil)

// History exposes the conversion history to UIs.
type History struct {
	store driven.HistoryStore
}

// NewHistory creates a new history service.
func NewHistory(store driven.HistoryStore) *History {
	return &History{store: store}
}

// List returns recent conversion records, most recent first.
func (h *History) List(ctx context.Context, limit int) ([]domain.ConversionRecord, error) {
	if h.store == nil {
		return nil, nil
	}
	records, err := h.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// Clear removes all records.
func (h *History) Clear(ctx context.Context) error {
	if h.store == nil {
		return nil
	}
	if err := h.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
