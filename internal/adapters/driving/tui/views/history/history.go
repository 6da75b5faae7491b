// Package history provides the past conversions view for the TUI.
package history

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-tools/bionify/internal/adapters/driving/tui/keymap"
	"github.com/inkwell-tools/bionify/internal/adapters/driving/tui/messages"
	"github.com/inkwell-tools/bionify/internal/adapters/driving/tui/styles"
	"github.com/inkwell-tools/bionify/internal/core/domain"
	"github.com/inkwell-tools/bionify/internal/core/ports/driving"
)

// maxVisible caps how many records render at once.
const maxVisible = 15

// View represents the conversion history view.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	history driving.HistoryService
	ctx     context.Context

	records  []domain.ConversionRecord
	selected int
	err      error
	loaded   bool

	width  int
	height int
	ready  bool
}

// NewView creates a new history view.
func NewView(s *styles.Styles, km *keymap.KeyMap, history driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		history: history,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the history.
func (v *View) Init() tea.Cmd {
	return v.loadHistory()
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.HistoryLoaded:
		v.loaded = true
		v.err = msg.Err
		v.records = msg.Records
		if v.selected >= len(v.records) {
			v.selected = 0
		}
		return v, nil

	case messages.HistoryCleared:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.records = nil
		v.selected = 0
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.records)-1 {
			v.selected++
		}
	case "c":
		return v, v.clearHistory()
	case "r":
		return v, v.loadHistory()
	}

	return v, nil
}

// loadHistory fetches recent conversions from the service.
func (v *View) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if v.history == nil {
			return messages.HistoryLoaded{Err: domain.ErrNotFound}
		}
		records, err := v.history.List(v.ctx, maxVisible)
		return messages.HistoryLoaded{Records: records, Err: err}
	}
}

// clearHistory removes all records.
func (v *View) clearHistory() tea.Cmd {
	return func() tea.Msg {
		if v.history == nil {
			return messages.HistoryCleared{Err: domain.ErrNotFound}
		}
		return messages.HistoryCleared{Err: v.history.Clear(v.ctx)}
	}
}

// View renders the history view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, maxVisible+6)
	sections = append(sections, v.styles.Title.Render("History"), "")

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))

	case !v.loaded:
		sections = append(sections, v.styles.Muted.Render("Loading..."))

	case len(v.records) == 0:
		sections = append(sections, v.styles.Muted.Render("No conversions recorded."))

	default:
		for i, r := range v.records {
			sections = append(sections, v.renderRecord(i, r))
		}
	}

	sections = append(sections, "",
		v.styles.Help.Render("[j/k] Navigate  [c] Clear  [r] Reload  [Esc] Back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderRecord renders a single history line.
func (v *View) renderRecord(i int, r domain.ConversionRecord) string {
	status := v.styles.Success.Render("ok    ")
	if !r.Success {
		status = v.styles.Error.Render("failed")
	}

	line := fmt.Sprintf("%s  %s  %s (%d/%d rewritten)",
		r.StartedAt.Format("2006-01-02 15:04"), status,
		r.InputPath, r.DocumentsRewritten, r.EntriesTotal)

	cursor := "  "
	if i == v.selected {
		cursor = "> "
		return cursor + v.styles.Selected.Render(line)
	}
	return cursor + v.styles.Normal.Render(line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Records returns the loaded records.
func (v *View) Records() []domain.ConversionRecord {
	return v.records
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}
