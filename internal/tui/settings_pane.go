package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/thirstys/communityforge/internal/config"
)

// SettingsPaneModel manages the settings form overlay.
type SettingsPaneModel struct {
	form        *huh.Form
	config      *config.Config
	globalPath  string
	projectPath string
	width       int
	height      int
	visible     bool
	saved       bool
	err         error

	// Form field bindings (strings for Huh)
	saveTarget     string
	outputDir      string
	limitPerSource string
	branchPrefix   string
	redditEnabled  bool
	discordEnabled bool
	steamEnabled   bool
}

// NewSettingsPaneModel creates a new settings pane.
func NewSettingsPaneModel(cfg *config.Config, globalPath, projectPath string) SettingsPaneModel {
	m := SettingsPaneModel{
		config:      cfg,
		globalPath:  globalPath,
		projectPath: projectPath,
		visible:     false,
		saved:       false,

		saveTarget:     "global",
		outputDir:      cfg.OutputDir,
		limitPerSource: strconv.Itoa(cfg.LimitPerSource),
		branchPrefix:   cfg.BranchPrefix,
		redditEnabled:  cfg.Sources["reddit"].Enabled,
		discordEnabled: cfg.Sources["discord"].Enabled,
		steamEnabled:   cfg.Sources["steam"].Enabled,
	}

	m.buildForm()
	return m
}

// buildForm constructs the Huh form with all settings fields.
func (m *SettingsPaneModel) buildForm() {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("saveTarget").
				Title("Save To").
				Options(
					huh.NewOption("Global (~/.communityforge/config.json)", "global"),
					huh.NewOption("Project (.communityforge/config.json)", "project"),
				).
				Value(&m.saveTarget),
		).Title("Save Target"),

		huh.NewGroup(
			huh.NewInput().
				Key("outputDir").
				Title("Output Directory").
				Value(&m.outputDir).
				Placeholder("output"),

			huh.NewInput().
				Key("limitPerSource").
				Title("Insights Per Source").
				Value(&m.limitPerSource).
				Placeholder("50").
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return fmt.Errorf("must be a positive number")
					}
					return nil
				}),

			huh.NewInput().
				Key("branchPrefix").
				Title("PR Branch Prefix").
				Value(&m.branchPrefix).
				Placeholder("feature/"),
		).Title("Pipeline Settings"),

		huh.NewGroup(
			huh.NewConfirm().
				Key("redditEnabled").
				Title("Reddit Source").
				Affirmative("Enabled").
				Negative("Disabled").
				Value(&m.redditEnabled),

			huh.NewConfirm().
				Key("discordEnabled").
				Title("Discord Source").
				Affirmative("Enabled").
				Negative("Disabled").
				Value(&m.discordEnabled),

			huh.NewConfirm().
				Key("steamEnabled").
				Title("Steam Source").
				Affirmative("Enabled").
				Negative("Disabled").
				Value(&m.steamEnabled),
		).Title("Community Sources"),
	)
}

// Init initializes the settings pane.
func (m SettingsPaneModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the settings pane.
func (m SettingsPaneModel) Update(msg tea.Msg) (SettingsPaneModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel without saving
			m.visible = false
			m.saved = false
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.applyFormToConfig()

		targetPath := m.globalPath
		if m.saveTarget == "project" {
			targetPath = m.projectPath
		}

		if err := config.Save(m.config, targetPath); err != nil {
			m.err = err
			m.saved = false
		} else {
			m.saved = true
			m.err = nil
		}

		if m.saved {
			m.visible = false
		}
	}

	return m, cmd
}

// applyFormToConfig copies form field values back to the config struct.
func (m *SettingsPaneModel) applyFormToConfig() {
	if m.outputDir != "" {
		m.config.OutputDir = m.outputDir
	}
	if n, err := strconv.Atoi(m.limitPerSource); err == nil && n > 0 {
		m.config.LimitPerSource = n
	}
	if m.branchPrefix != "" {
		m.config.BranchPrefix = m.branchPrefix
	}

	setEnabled := func(name string, enabled bool) {
		source := m.config.Sources[name]
		source.Enabled = enabled
		m.config.Sources[name] = source
	}
	setEnabled("reddit", m.redditEnabled)
	setEnabled("discord", m.discordEnabled)
	setEnabled("steam", m.steamEnabled)
}

// View renders the settings pane.
func (m SettingsPaneModel) View() string {
	if !m.visible {
		return ""
	}

	var content string

	if m.saved && m.form.State == huh.StateCompleted {
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true).
			Render("Settings saved successfully")
	} else if m.err != nil {
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true).
			Render(fmt.Sprintf("Error saving: %v", m.err))
	} else {
		content = m.form.View()
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(m.width - 4).
		Height(m.height - 4)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62")).
		Render("Settings")

	body := style.Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

// SetSize updates the dimensions of the settings pane.
func (m *SettingsPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if m.form != nil {
		m.form.WithWidth(w - 8).WithHeight(h - 8)
	}
}

// SetVisible shows or hides the settings pane.
func (m *SettingsPaneModel) SetVisible(v bool) {
	m.visible = v
	m.saved = false
	m.err = nil

	// Rebuild form to reset state when showing
	if v && m.form != nil {
		m.buildForm()
	}
}

// IsVisible returns whether the settings pane is currently visible.
func (m SettingsPaneModel) IsVisible() bool {
	return m.visible
}
