package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-tools/bionify/internal/adapters/driving/tui/messages"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(&Ports{Converter: &mockConverter{}, History: &mockHistory{}})
	require.NoError(t, err)
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.NoError(t, app.Err())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	require.Error(t, err)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrMissingConverterService)
}

func TestApp_Update_WindowSize(t *testing.T) {
	app := newTestApp(t)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Nil(t, cmd)
	updated := model.(*App)
	assert.True(t, updated.Ready())
	assert.Equal(t, 100, updated.width)
	assert.Equal(t, 40, updated.height)
}

func TestApp_Update_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_ViewChanged(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewConvert})
	assert.Equal(t, messages.ViewConvert, model.(*App).CurrentView())

	model, cmd := model.Update(messages.ViewChanged{View: messages.ViewHistory})
	assert.Equal(t, messages.ViewHistory, model.(*App).CurrentView())
	// Switching to history triggers a load command.
	assert.NotNil(t, cmd)
}

func TestApp_Update_EscFromHelp(t *testing.T) {
	app := newTestApp(t)
	app.currentView = messages.ViewHelp

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewMenu, model.(*App).CurrentView())
}

func TestApp_View_NotReady(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_RendersCurrentView(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(80, 24)

	assert.Contains(t, app.View(), "Bionify")

	app.currentView = messages.ViewHelp
	assert.Contains(t, app.View(), "Help")

	app.currentView = messages.ViewConvert
	assert.Contains(t, app.View(), "Convert")

	app.currentView = messages.ViewHistory
	assert.Contains(t, app.View(), "History")
}

func TestApp_Update_QuitMessage(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ErrorOccurred{Err: ErrInvalidPorts})

	assert.ErrorIs(t, model.(*App).Err(), ErrInvalidPorts)
}
