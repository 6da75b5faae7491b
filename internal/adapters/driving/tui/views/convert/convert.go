// Package convert provides the conversion view for the TUI.
package convert

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	configfile "github.com/inkwell-tools/bionify/internal/adapters/driven/config/file"
	"github.com/inkwell-tools/bionify/internal/adapters/driving/tui/components/input"
	"github.com/inkwell-tools/bionify/internal/adapters/driving/tui/keymap"
	"github.com/inkwell-tools/bionify/internal/adapters/driving/tui/messages"
	"github.com/inkwell-tools/bionify/internal/adapters/driving/tui/styles"
	"github.com/inkwell-tools/bionify/internal/core/domain"
	"github.com/inkwell-tools/bionify/internal/core/ports/driven"
	"github.com/inkwell-tools/bionify/internal/core/ports/driving"
)

// state tracks which phase of the conversion flow is showing.
type state int

const (
	// stateInput is the file path entry phase.
	stateInput state = iota
	// stateConfirm asks before overwriting an existing output file.
	stateConfirm
	// stateConverting shows the progress bar while a job runs.
	stateConverting
	// stateDone shows the final report or error.
	stateDone
)

// View represents the conversion view with path input and progress bar.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	input  *input.PathInput
	bar    progress.Model

	converter driving.ConverterService
	config    driven.ConfigStore
	ctx       context.Context

	state   state
	pending string
	job     domain.ConversionJob
	cancel  context.CancelFunc
	events  chan tea.Msg
	percent int
	entry   string
	report  *domain.ConversionReport
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new conversion view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	converter driving.ConverterService,
	config driven.ConfigStore,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewPathInput(s),
		bar:       progress.New(progress.WithDefaultGradient()),
		converter: converter,
		config:    config,
		ctx:       context.Background(),
		state:     stateInput,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Reset returns the view to the path entry phase.
func (v *View) Reset() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.state = stateInput
	v.pending = ""
	v.percent = 0
	v.entry = ""
	v.report = nil
	v.err = nil
	v.events = nil
	v.input.Reset()
	v.input.Focus()
}

// Update handles messages for the conversion view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ConversionProgressed:
		if v.state != stateConverting {
			return v, nil
		}
		v.percent = msg.Event.Percent
		v.entry = msg.Event.Entry
		return v, tea.Batch(
			v.bar.SetPercent(float64(msg.Event.Percent)/100),
			v.waitForEvent(),
		)

	case messages.ConversionCompleted:
		v.state = stateDone
		v.report = msg.Report
		v.err = msg.Err
		if v.cancel != nil {
			v.cancel()
			v.cancel = nil
		}
		return v, nil

	case progress.FrameMsg:
		model, cmd := v.bar.Update(msg)
		v.bar = model.(progress.Model)
		return v, cmd
	}

	// Forward other messages to the input component
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc cancels a running conversion or goes back to the menu.
	if msg.Type == tea.KeyEsc {
		switch v.state {
		case stateConverting:
			if v.cancel != nil {
				v.cancel()
			}
			return v, nil
		case stateConfirm:
			// Back to path entry without converting.
			v.state = stateInput
			v.pending = ""
			return v, v.input.Focus()
		}
		v.Reset()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	switch v.state {
	case stateInput:
		if msg.Type == tea.KeyEnter {
			path := strings.TrimSpace(v.input.Value())
			if path == "" {
				return v, nil
			}
			if _, err := os.Stat(domain.OutputName(path)); err == nil {
				v.state = stateConfirm
				v.pending = path
				v.input.Blur()
				return v, nil
			}
			return v, v.startConversion(path)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case stateConfirm:
		if msg.Type == tea.KeyEnter {
			path := v.pending
			v.pending = ""
			return v, v.startConversion(path)
		}
		return v, nil

	case stateConverting:
		// Keys other than Esc are ignored while converting.
		return v, nil

	case stateDone:
		if msg.Type == tea.KeyEnter {
			// Another conversion
			v.Reset()
			return v, v.input.Init()
		}
		return v, nil
	}

	return v, nil
}

// startConversion launches the conversion in the background and begins
// listening for its progress events.
func (v *View) startConversion(path string) tea.Cmd {
	opts := configfile.EmphasisOptionsFromConfig(v.config)

	v.job = domain.ConversionJob{
		ID:         uuid.NewString(),
		InputPath:  path,
		OutputPath: domain.OutputName(path),
		Options:    opts,
	}
	v.state = stateConverting
	v.percent = 0
	v.entry = ""
	v.input.Blur()

	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel

	events := make(chan tea.Msg, 16)
	v.events = events
	job := v.job
	converter := v.converter

	go func() {
		report, err := converter.Convert(ctx, job, func(ev domain.ProgressEvent) {
			events <- messages.ConversionProgressed{Event: ev}
		})
		events <- messages.ConversionCompleted{Report: report, Err: err}
		close(events)
	}()

	return tea.Batch(v.bar.SetPercent(0), v.waitForEvent())
}

// waitForEvent returns a command that delivers the next conversion
// event to the update loop.
func (v *View) waitForEvent() tea.Cmd {
	events := v.events
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// View renders the conversion view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Convert"), "")

	switch v.state {
	case stateInput:
		sections = append(sections, v.input.View(), "")
		sections = append(sections,
			v.styles.Help.Render("[Enter] Convert  [Esc] Back"))

	case stateConfirm:
		sections = append(sections, v.styles.Warning.Render(
			domain.OutputName(v.pending)+" already exists."), "")
		sections = append(sections,
			v.styles.Help.Render("[Enter] Overwrite  [Esc] Cancel"))

	case stateConverting:
		sections = append(sections,
			v.styles.Normal.Render("Converting "+v.job.InputPath), "")
		sections = append(sections, v.bar.View(), "")
		if v.entry != "" {
			sections = append(sections,
				v.styles.Muted.Render(fmt.Sprintf("%d%%  %s", v.percent, v.entry)))
		}
		sections = append(sections, "",
			v.styles.Help.Render("[Esc] Cancel"))

	case stateDone:
		sections = append(sections, v.renderOutcome()...)
		sections = append(sections, "",
			v.styles.Help.Render("[Enter] Convert another  [Esc] Back"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderOutcome renders the final report or error.
func (v *View) renderOutcome() []string {
	if v.err != nil {
		return []string{v.styles.Error.Render("Conversion failed: " + v.err.Error())}
	}
	if v.report == nil {
		return []string{v.styles.Error.Render("Conversion failed")}
	}

	lines := []string{
		v.styles.Success.Render("Saved " + v.report.OutputPath),
		v.styles.Normal.Render(fmt.Sprintf("Rewrote %d of %d entries in %s",
			v.report.DocumentsRewritten, v.report.EntriesTotal,
			v.report.Duration.Round(time.Millisecond))),
	}

	if len(v.report.Failures) > 0 {
		lines = append(lines, v.styles.Warning.Render(
			fmt.Sprintf("%d entries copied unchanged:", len(v.report.Failures))))
		for _, f := range v.report.Failures {
			lines = append(lines, v.styles.Muted.Render("  "+f.Entry+": "+f.Reason))
		}
	}

	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	barWidth := width - 4
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth > 0 {
		v.bar.Width = barWidth
	}
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}

// Report returns the last completed conversion report.
func (v *View) Report() *domain.ConversionReport {
	return v.report
}

// Converting reports whether a conversion is in flight.
func (v *View) Converting() bool {
	return v.state == stateConverting
}
