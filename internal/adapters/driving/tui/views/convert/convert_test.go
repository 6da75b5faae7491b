package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-tools/bionify/internal/adapters/driving/tui/messages"
	"github.com/inkwell-tools/bionify/internal/core/domain"
	"github.com/inkwell-tools/bionify/internal/core/ports/driving"
)

// mockConverter implements driving.ConverterService for tests.
type mockConverter struct {
	lastJob domain.ConversionJob
	report  *domain.ConversionReport
	err     error
}

func (m *mockConverter) Convert(
	_ context.Context, job domain.ConversionJob, _ domain.ProgressFunc,
) (*domain.ConversionReport, error) {
	m.lastJob = job
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &domain.ConversionReport{ID: job.ID, OutputPath: job.OutputPath}, nil
}

func (m *mockConverter) Status(_ string) (*driving.ConversionStatus, bool) {
	return nil, false
}

func newTestView(mock *mockConverter) *View {
	v := NewView(nil, nil, mock, nil)
	v.SetDimensions(80, 24)
	return v
}

func typePath(v *View, path string) *View {
	v.input.SetValue(path)
	return v
}

func TestNewView(t *testing.T) {
	view := newTestView(&mockConverter{})

	require.NotNil(t, view)
	assert.Equal(t, stateInput, view.state)
	assert.False(t, view.Converting())
}

func TestView_EnterStartsConversion(t *testing.T) {
	mock := &mockConverter{}
	view := typePath(newTestView(mock), "book.epub")

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, view.Converting())
	assert.Equal(t, "book.epub", view.job.InputPath)
	assert.Equal(t, "book_bionic.epub", view.job.OutputPath)
	assert.NotEmpty(t, view.job.ID)
}

func TestView_EnterWithEmptyPathDoesNothing(t *testing.T) {
	view := newTestView(&mockConverter{})

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, stateInput, view.state)
}

func TestView_ProgressUpdatesPercent(t *testing.T) {
	view := typePath(newTestView(&mockConverter{}), "book.epub")
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view, cmd := view.Update(messages.ConversionProgressed{
		Event: domain.ProgressEvent{Percent: 40, Entry: "ch01.xhtml", Index: 2, Total: 5},
	})

	require.NotNil(t, cmd)
	assert.Equal(t, 40, view.percent)
	assert.Equal(t, "ch01.xhtml", view.entry)
}

func TestView_CompletionShowsReport(t *testing.T) {
	view := typePath(newTestView(&mockConverter{}), "book.epub")
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	report := &domain.ConversionReport{
		OutputPath:         "book_bionic.epub",
		EntriesTotal:       5,
		DocumentsRewritten: 3,
	}
	view, _ = view.Update(messages.ConversionCompleted{Report: report})

	assert.Equal(t, stateDone, view.state)
	assert.Equal(t, report, view.Report())
	assert.NoError(t, view.Err())
	assert.Contains(t, view.View(), "book_bionic.epub")
	assert.Contains(t, view.View(), "Rewrote 3 of 5 entries")
}

func TestView_CompletionShowsFailures(t *testing.T) {
	view := typePath(newTestView(&mockConverter{}), "book.epub")
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view, _ = view.Update(messages.ConversionCompleted{
		Report: &domain.ConversionReport{
			OutputPath:   "book_bionic.epub",
			EntriesTotal: 2,
			Failures: []domain.FileFailure{
				{Entry: "broken.xhtml", Reason: "entry too large"},
			},
		},
	})

	out := view.View()
	assert.Contains(t, out, "1 entries copied unchanged")
	assert.Contains(t, out, "broken.xhtml")
}

func TestView_CompletionError(t *testing.T) {
	view := typePath(newTestView(&mockConverter{}), "missing.epub")
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view, _ = view.Update(messages.ConversionCompleted{Err: domain.ErrInputNotFound})

	assert.Equal(t, stateDone, view.state)
	assert.ErrorIs(t, view.Err(), domain.ErrInputNotFound)
	assert.Contains(t, view.View(), "Conversion failed")
}

func TestView_EscFromInputReturnsToMenu(t *testing.T) {
	view := newTestView(&mockConverter{})

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	msg := cmd()
	changed, ok := msg.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
	assert.Equal(t, stateInput, view.state)
}

func TestView_EscWhileConvertingCancels(t *testing.T) {
	view := typePath(newTestView(&mockConverter{}), "book.epub")
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, view.Converting())

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	// Cancel only; the completion event moves the view on.
	assert.Nil(t, cmd)
	assert.True(t, view.Converting())
}

func TestView_EnterAfterDoneResets(t *testing.T) {
	view := typePath(newTestView(&mockConverter{}), "book.epub")
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view, _ = view.Update(messages.ConversionCompleted{
		Report: &domain.ConversionReport{OutputPath: "book_bionic.epub"},
	})
	require.Equal(t, stateDone, view.state)

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, stateInput, view.state)
	assert.Empty(t, view.input.Value())
	assert.Nil(t, view.Report())
}

func TestView_ConfirmsBeforeOverwriting(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "book.epub")
	require.NoError(t, os.WriteFile(input, []byte("PK"), 0644))
	require.NoError(t, os.WriteFile(domain.OutputName(input), []byte("PK"), 0644))

	view := typePath(newTestView(&mockConverter{}), input)

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, stateConfirm, view.state)
	assert.Contains(t, view.View(), "already exists")

	// Enter confirms and starts the conversion.
	view, cmd = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, view.Converting())
	assert.Equal(t, input, view.job.InputPath)
}

func TestView_ConfirmEscReturnsToInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "book.epub")
	require.NoError(t, os.WriteFile(input, []byte("PK"), 0644))
	require.NoError(t, os.WriteFile(domain.OutputName(input), []byte("PK"), 0644))

	view := typePath(newTestView(&mockConverter{}), input)
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateConfirm, view.state)

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	// Stays on the convert view at the path entry phase.
	assert.Equal(t, stateInput, view.state)
	assert.Equal(t, input, view.input.Value())
}

func TestView_ViewNotReady(t *testing.T) {
	view := NewView(nil, nil, &mockConverter{}, nil)

	assert.Equal(t, "Initialising...", view.View())
}
