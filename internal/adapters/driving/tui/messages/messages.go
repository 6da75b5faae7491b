// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/inkwell-tools/bionify/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewConvert is the file selection and conversion view.
	ViewConvert
	// ViewHistory lists past conversions.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewConvert:
		return "convert"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ConversionStarted signals a conversion job has begun.
type ConversionStarted struct {
	Job domain.ConversionJob
}

// ConversionProgressed carries a per-entry progress update.
type ConversionProgressed struct {
	Event domain.ProgressEvent
}

// ConversionCompleted carries the outcome of a finished conversion.
type ConversionCompleted struct {
	Report *domain.ConversionReport
	Err    error
}

// HistoryLoaded carries the list of past conversions.
type HistoryLoaded struct {
	Records []domain.ConversionRecord
	Err     error
}

// HistoryCleared signals the conversion history was cleared.
type HistoryCleared struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
