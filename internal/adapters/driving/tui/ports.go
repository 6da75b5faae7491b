// Package tui provides an interactive terminal user interface for Bionify.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/inkwell-tools/bionify/internal/core/ports/driven"
	"github.com/inkwell-tools/bionify/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Converter performs EPUB conversions.
	Converter driving.ConverterService

	// History exposes past conversions.
	History driving.HistoryService

	// Config provides stored settings. Optional; defaults are used
	// when nil.
	Config driven.ConfigStore
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(converter driving.ConverterService, history driving.HistoryService) *Ports {
	return &Ports{
		Converter: converter,
		History:   history,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Converter == nil {
		return ErrMissingConverterService
	}
	if p.History == nil {
		return ErrMissingHistoryService
	}
	return nil
}
