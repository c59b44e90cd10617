// Package tui renders a live view of an agent team run: pipeline
// stages, an event log, and a settings overlay.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thirstys/communityforge/internal/config"
	"github.com/thirstys/communityforge/internal/events"
)

// RunFinishedMsg is sent by the caller when the pipeline goroutine
// terminates.
type RunFinishedMsg struct {
	Successful int
	Failed     int
	Err        error
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	runPane      RunPaneModel
	settingsPane SettingsPaneModel
	eventSub     <-chan events.Event
	width        int
	height       int
	quitting     bool
	finished     bool
	finalLine    string
	showSettings bool
	config       *config.Config
}

// New creates a new TUI model subscribed to all bus events.
func New(bus *events.Bus, cfg *config.Config, globalPath, projectPath string) Model {
	return Model{
		runPane:      NewRunPaneModel(),
		settingsPane: NewSettingsPaneModel(cfg, globalPath, projectPath),
		eventSub:     bus.SubscribeAll(256),
		config:       cfg,
	}
}

// Init initializes the model and returns the initial command.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runPane.Init(), waitForEvent(m.eventSub))
}

// waitForEvent returns a command that waits for the next bus event.
func waitForEvent(sub <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-sub
		if !ok {
			return nil // bus closed
		}
		return event
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Settings overlay takes all keys while open
		if m.showSettings {
			switch msg.String() {
			case "s", "esc":
				m.showSettings = false
				m.settingsPane.SetVisible(false)
			default:
				var cmd tea.Cmd
				m.settingsPane, cmd = m.settingsPane.Update(msg)
				cmds = append(cmds, cmd)

				if !m.settingsPane.IsVisible() {
					m.showSettings = false
				}
			}
			return m, tea.Batch(cmds...)
		}

		switch msg.String() {
		case KeyQuit, KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case KeySettings:
			m.showSettings = true
			m.settingsPane.SetVisible(true)
			cmds = append(cmds, m.settingsPane.Init())

		default:
			var cmd tea.Cmd
			m.runPane, cmd = m.runPane.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.runPane.SetSize(msg.Width, msg.Height-1)
		m.runPane.SetFocused(true)
		m.settingsPane.SetSize(msg.Width, msg.Height)

	case RunFinishedMsg:
		m.finished = true
		m.runPane.Finish()
		m.finalLine = m.runPane.Summary()
		if msg.Err != nil {
			m.finalLine = StyleStatusFailed.Render("Run error: " + msg.Err.Error())
		}

	case events.TaskStartedEvent, events.TaskCompletedEvent, events.TaskFailedEvent, events.PipelineProgressEvent:
		var cmd tea.Cmd
		m.runPane, cmd = m.runPane.Update(msg)
		cmds = append(cmds, cmd, waitForEvent(m.eventSub))

	default:
		var cmd tea.Cmd
		m.runPane, cmd = m.runPane.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.showSettings {
		return m.settingsPane.View()
	}

	bottom := HelpView()
	if m.finished {
		bottom = lipgloss.JoinHorizontal(lipgloss.Top, m.finalLine, "  ", bottom)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.runPane.View(), bottom)
}
