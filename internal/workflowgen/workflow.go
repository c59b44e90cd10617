// Package workflowgen emits the GitHub Actions workflow files that
// automate the agent team pipeline.
package workflowgen

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Workflow models the subset of the GitHub Actions schema we emit.
type Workflow struct {
	Name string         `yaml:"name"`
	On   Triggers       `yaml:"on"`
	Jobs map[string]Job `yaml:"jobs"`
}

// Triggers holds the workflow trigger configuration.
type Triggers struct {
	Schedule         []Schedule        `yaml:"schedule,omitempty"`
	WorkflowDispatch *WorkflowDispatch `yaml:"workflow_dispatch,omitempty"`
	Push             *BranchFilter     `yaml:"push,omitempty"`
	PullRequest      *BranchFilter     `yaml:"pull_request,omitempty"`
}

// Schedule is a cron trigger entry.
type Schedule struct {
	Cron string `yaml:"cron"`
}

// WorkflowDispatch configures the manual trigger and its inputs.
type WorkflowDispatch struct {
	Inputs map[string]DispatchInput `yaml:"inputs,omitempty"`
}

// DispatchInput is one workflow_dispatch input declaration.
type DispatchInput struct {
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
	Default     string `yaml:"default,omitempty"`
}

// BranchFilter restricts push/pull_request triggers to branches and
// paths.
type BranchFilter struct {
	Branches []string `yaml:"branches,omitempty"`
	Paths    []string `yaml:"paths,omitempty"`
}

// Job is one workflow job.
type Job struct {
	RunsOn      string            `yaml:"runs-on"`
	Permissions map[string]string `yaml:"permissions,omitempty"`
	Steps       []Step            `yaml:"steps"`
}

// Step is one job step; exactly one of Uses or Run is set.
type Step struct {
	Name             string            `yaml:"name,omitempty"`
	Uses             string            `yaml:"uses,omitempty"`
	With             map[string]string `yaml:"with,omitempty"`
	If               string            `yaml:"if,omitempty"`
	WorkingDirectory string            `yaml:"working-directory,omitempty"`
	Env              map[string]string `yaml:"env,omitempty"`
	Run              string            `yaml:"run,omitempty"`
}

// Generator builds and writes workflow files.
type Generator struct {
	outputDir string
}

// NewGenerator creates a generator writing under outputDir
// (".github/workflows" when empty).
func NewGenerator(outputDir string) *Generator {
	if outputDir == "" {
		outputDir = ".github/workflows"
	}
	return &Generator{outputDir: outputDir}
}

// AgentTeamWorkflow returns the daily agent team cycle workflow.
func (g *Generator) AgentTeamWorkflow() *Workflow {
	return &Workflow{
		Name: "Agent Team Cycle",
		On: Triggers{
			Schedule: []Schedule{{Cron: "0 6 * * *"}},
			WorkflowDispatch: &WorkflowDispatch{
				Inputs: map[string]DispatchInput{
					"output_dir": {
						Description: "Output directory for artifacts",
						Required:    false,
						Default:     "output",
					},
				},
			},
		},
		Jobs: map[string]Job{
			"run-agent-team": {
				RunsOn: "ubuntu-latest",
				Permissions: map[string]string{
					"contents":      "write",
					"issues":        "write",
					"pull-requests": "write",
				},
				Steps: []Step{
					{Name: "Checkout repository", Uses: "actions/checkout@v4"},
					{
						Name: "Set up Go",
						Uses: "actions/setup-go@v5",
						With: map[string]string{"go-version": "stable", "cache": "true"},
					},
					{Name: "Build", Run: "go build ./..."},
					{
						Name: "Run Agent Team",
						Env: map[string]string{
							"REDDIT_CLIENT_ID":     "${{ secrets.REDDIT_CLIENT_ID }}",
							"REDDIT_CLIENT_SECRET": "${{ secrets.REDDIT_CLIENT_SECRET }}",
							"REDDIT_USER_AGENT":    "ThirstysGameStudio/1.0",
							"DISCORD_BOT_TOKEN":    "${{ secrets.DISCORD_BOT_TOKEN }}",
							"DISCORD_GUILD_ID":     "${{ secrets.DISCORD_GUILD_ID }}",
							"STEAM_API_KEY":        "${{ secrets.STEAM_API_KEY }}",
							"STEAM_APP_ID":         "${{ secrets.STEAM_APP_ID }}",
						},
						Run: "go run ./cmd/communityforge run --output-dir ${{ github.event.inputs.output_dir || 'output' }}",
					},
					{
						Name: "Upload artifacts",
						Uses: "actions/upload-artifact@v4",
						With: map[string]string{
							"name":           "agent-outputs-${{ github.run_number }}",
							"path":           "output/",
							"retention-days": "30",
						},
					},
					{
						Name: "Commit outputs (if any changes)",
						Run: `git config --local user.email "action@github.com"
git config --local user.name "GitHub Action"
git add output/
git diff --staged --quiet || git commit -m "chore: update agent outputs [skip ci]"
git push || true`,
					},
				},
			},
		},
	}
}

// BuildWorkflow returns the build and test workflow for the agent
// itself.
func (g *Generator) BuildWorkflow() *Workflow {
	return &Workflow{
		Name: "Build",
		On: Triggers{
			Push:        &BranchFilter{Branches: []string{"main", "develop"}},
			PullRequest: &BranchFilter{Branches: []string{"main"}},
		},
		Jobs: map[string]Job{
			"build": {
				RunsOn: "ubuntu-latest",
				Steps: []Step{
					{Name: "Checkout repository", Uses: "actions/checkout@v4"},
					{
						Name: "Set up Go",
						Uses: "actions/setup-go@v5",
						With: map[string]string{"go-version": "stable", "cache": "true"},
					},
					{Name: "Vet", Run: "go vet ./..."},
					{Name: "Test", Run: "go test -race ./..."},
					{Name: "Build", Run: "go build ./..."},
				},
			},
		},
	}
}

// Render marshals a workflow to YAML.
func Render(workflow *Workflow) ([]byte, error) {
	data, err := yaml.Marshal(workflow)
	if err != nil {
		return nil, fmt.Errorf("marshaling workflow %q: %w", workflow.Name, err)
	}
	return data, nil
}

// WriteAll renders every workflow into the output directory and
// returns the written paths.
func (g *Generator) WriteAll() ([]string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating workflow dir: %w", err)
	}

	files := map[string]*Workflow{
		"agent_team.yml": g.AgentTeamWorkflow(),
		"build.yml":      g.BuildWorkflow(),
	}

	var written []string
	for _, name := range []string{"agent_team.yml", "build.yml"} {
		data, err := Render(files[name])
		if err != nil {
			return written, err
		}
		path := filepath.Join(g.outputDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
