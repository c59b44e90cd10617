package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thirstys/communityforge/internal/events"
)

// stageState tracks one pipeline task for display.
type stageState struct {
	TaskID   string
	Name     string
	Role     string
	Status   string // "running", "completed", "failed"
	Duration time.Duration
	Err      string
}

// RunPaneModel shows the pipeline stages and a scrollable event log.
type RunPaneModel struct {
	stages     map[string]*stageState // taskID -> state
	stageOrder []string               // insertion order for display
	logLines   []string
	progress   events.PipelineProgressEvent
	spin       spinner.Model
	viewport   viewport.Model
	width      int
	height     int
	focused    bool
	running    bool
}

// NewRunPaneModel creates a run pane.
func NewRunPaneModel() RunPaneModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleStatusRunning
	return RunPaneModel{
		stages:   make(map[string]*stageState),
		spin:     sp,
		viewport: viewport.New(0, 0),
		running:  true,
	}
}

// Init starts the spinner tick loop.
func (m RunPaneModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Update handles messages for the run pane.
func (m RunPaneModel) Update(msg tea.Msg) (RunPaneModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case spinner.TickMsg:
		if m.running {
			m.spin, cmd = m.spin.Update(msg)
		}

	case tea.KeyMsg:
		if m.focused {
			m.viewport, cmd = m.viewport.Update(msg)
		}

	case events.TaskStartedEvent:
		m.stages[msg.ID] = &stageState{
			TaskID: msg.ID,
			Name:   msg.Name,
			Role:   msg.Role,
			Status: "running",
		}
		m.stageOrder = append(m.stageOrder, msg.ID)
		m.appendLog(fmt.Sprintf("[%s] started %s", msg.Role, msg.Name))

	case events.TaskCompletedEvent:
		if stage, ok := m.stages[msg.ID]; ok {
			stage.Status = "completed"
			stage.Duration = msg.Duration
		}
		m.appendLog(fmt.Sprintf("[%s] completed in %s", msg.Role, msg.Duration.Round(time.Millisecond)))

	case events.TaskFailedEvent:
		if stage, ok := m.stages[msg.ID]; ok {
			stage.Status = "failed"
			stage.Duration = msg.Duration
			stage.Err = msg.Err
		}
		m.appendLog(fmt.Sprintf("[%s] FAILED: %s", msg.Role, msg.Err))

	case events.PipelineProgressEvent:
		m.progress = msg
		if msg.Blocked {
			m.appendLog("pipeline blocked: remaining tasks have failed dependencies")
		}
	}

	return m, cmd
}

// Finish stops the spinner once the run terminates.
func (m *RunPaneModel) Finish() {
	m.running = false
}

func (m *RunPaneModel) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	m.viewport.SetContent(strings.Join(m.logLines, "\n"))
	m.viewport.GotoBottom()
}

// SetSize updates the pane dimensions.
func (m *RunPaneModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.resizeViewport()
}

// SetFocused updates focus state for border styling and key routing.
func (m *RunPaneModel) SetFocused(focused bool) {
	m.focused = focused
}

func (m *RunPaneModel) resizeViewport() {
	logHeight := m.height - len(m.stageOrder) - 6
	if logHeight < 3 {
		logHeight = 3
	}
	m.viewport.Width = m.width - 4
	m.viewport.Height = logHeight
}

// View renders the stage table above the event log.
func (m RunPaneModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Agent Team Pipeline"))
	b.WriteString("\n")

	for _, id := range m.stageOrder {
		stage := m.stages[id]
		var marker string
		switch stage.Status {
		case "running":
			marker = m.spin.View()
		case "completed":
			marker = StyleStatusComplete.Render("ok")
		case "failed":
			marker = StyleStatusFailed.Render("xx")
		default:
			marker = StyleStatusPending.Render("..")
		}

		line := fmt.Sprintf(" %s %-22s %-24s", marker, stage.Role, stage.Name)
		if stage.Duration > 0 {
			line += fmt.Sprintf(" %8s", stage.Duration.Round(time.Millisecond))
		}
		b.WriteString(line)
		b.WriteString("\n")
		if stage.Err != "" {
			b.WriteString(StyleStatusFailed.Render("      " + stage.Err))
			b.WriteString("\n")
		}
	}

	if m.progress.Total > 0 {
		b.WriteString(fmt.Sprintf("\n %d/%d completed, %d failed, %d pending\n",
			m.progress.Completed, m.progress.Total, m.progress.Failed, m.progress.Pending))
	}

	b.WriteString("\n")
	b.WriteString(m.viewport.View())

	style := StyleUnfocusedBorder
	if m.focused {
		style = StyleFocusedBorder
	}
	return style.Width(m.width - 2).Render(b.String())
}

// Summary renders a terminal line once the run finishes.
func (m RunPaneModel) Summary() string {
	completed, failed := 0, 0
	for _, stage := range m.stages {
		switch stage.Status {
		case "completed":
			completed++
		case "failed":
			failed++
		}
	}
	text := fmt.Sprintf("Run finished: %d completed, %d failed", completed, failed)
	if failed > 0 {
		return StyleStatusFailed.Render(text)
	}
	return StyleStatusComplete.Render(text)
}
