package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-tools/bionify/internal/adapters/driving/tui/messages"
	"github.com/inkwell-tools/bionify/internal/core/domain"
)

// mockHistory implements driving.HistoryService for tests.
type mockHistory struct {
	records []domain.ConversionRecord
	cleared bool
	err     error
}

func (m *mockHistory) List(_ context.Context, _ int) ([]domain.ConversionRecord, error) {
	return m.records, m.err
}

func (m *mockHistory) Clear(_ context.Context) error {
	m.cleared = true
	return m.err
}

func sampleRecords() []domain.ConversionRecord {
	return []domain.ConversionRecord{
		{
			ID:                 "rec-1",
			InputPath:          "book.epub",
			OutputPath:         "book_bionic.epub",
			EntriesTotal:       10,
			DocumentsRewritten: 6,
			Success:            true,
			StartedAt:          time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        "rec-2",
			InputPath: "missing.epub",
			Success:   false,
			Error:     "input file not found",
			StartedAt: time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC),
		},
	}
}

func newTestView(mock *mockHistory) *View {
	v := NewView(nil, nil, mock)
	v.SetDimensions(80, 24)
	return v
}

func TestView_InitLoadsHistory(t *testing.T) {
	mock := &mockHistory{records: sampleRecords()}
	view := newTestView(mock)

	cmd := view.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(messages.HistoryLoaded)
	require.True(t, ok)
	assert.Len(t, loaded.Records, 2)
}

func TestView_HistoryLoaded(t *testing.T) {
	view := newTestView(&mockHistory{})

	view, _ = view.Update(messages.HistoryLoaded{Records: sampleRecords()})

	assert.Len(t, view.Records(), 2)
	out := view.View()
	assert.Contains(t, out, "book.epub")
	assert.Contains(t, out, "failed")
}

func TestView_HistoryLoadedError(t *testing.T) {
	view := newTestView(&mockHistory{})

	view, _ = view.Update(messages.HistoryLoaded{Err: errors.New("db locked")})

	assert.Error(t, view.Err())
	assert.Contains(t, view.View(), "db locked")
}

func TestView_EmptyHistory(t *testing.T) {
	view := newTestView(&mockHistory{})

	view, _ = view.Update(messages.HistoryLoaded{})

	assert.Contains(t, view.View(), "No conversions recorded.")
}

func TestView_Navigation(t *testing.T) {
	view := newTestView(&mockHistory{})
	view, _ = view.Update(messages.HistoryLoaded{Records: sampleRecords()})

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, view.Selected())

	// Does not move past the last record.
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.Selected())
}

func TestView_ClearHistory(t *testing.T) {
	mock := &mockHistory{records: sampleRecords()}
	view := newTestView(mock)
	view, _ = view.Update(messages.HistoryLoaded{Records: mock.records})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.NotNil(t, cmd)

	msg := cmd()
	cleared, ok := msg.(messages.HistoryCleared)
	require.True(t, ok)
	assert.NoError(t, cleared.Err)
	assert.True(t, mock.cleared)

	view, _ = view.Update(cleared)
	assert.Empty(t, view.Records())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := newTestView(&mockHistory{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_ViewNotReady(t *testing.T) {
	view := NewView(nil, nil, &mockHistory{})

	assert.Equal(t, "Initialising...", view.View())
}
