package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/thirstys/communityforge/internal/drafting"
	"github.com/thirstys/communityforge/internal/feedback"
	"github.com/thirstys/communityforge/internal/guardrails"
	"github.com/thirstys/communityforge/internal/scheduler"
)

// TeamRunner runs the full pipeline and writes the artifact set the
// app and CI consume.
type TeamRunner struct {
	manager   *Manager
	deps      Dependencies
	outputDir string
	disabled  map[scheduler.Role]bool
	limit     int
}

// NewTeamRunner creates a runner writing artifacts into outputDir.
func NewTeamRunner(manager *Manager, deps Dependencies, outputDir string) *TeamRunner {
	if outputDir == "" {
		outputDir = "output"
	}
	return &TeamRunner{
		manager:   manager,
		deps:      deps,
		outputDir: outputDir,
		disabled:  make(map[scheduler.Role]bool),
	}
}

// DisableRoles marks roles to skip. Tasks for a disabled role are
// skipped at pipeline creation; their dependents will block, so
// disabling an upstream stage disables everything after it.
func (r *TeamRunner) DisableRoles(roles ...scheduler.Role) {
	for _, role := range roles {
		r.disabled[role] = true
	}
}

// SetLimitPerSource overrides the per-source fetch cap for the run.
func (r *TeamRunner) SetLimitPerSource(limit int) {
	r.limit = limit
}

// RunReport pairs the run summary with the paths of every artifact
// written for it.
type RunReport struct {
	Summary       *RunSummary       `json:"summary"`
	ArtifactPaths map[string]string `json:"artifact_paths"`
}

// Run executes the five-stage pipeline and saves artifacts. The PR
// template is generated only for fully successful runs.
func (r *TeamRunner) Run(ctx context.Context) (*RunReport, error) {
	log.Printf("starting agent team run, output dir %s", r.outputDir)

	r.manager.InitializeWorkers(r.deps)
	tasks := r.manager.CreateFullPipeline()
	for _, task := range tasks {
		if r.limit > 0 && task.Role == scheduler.RoleCommunityAnalyst {
			task.InputData["limit_per_source"] = r.limit
		}
		if r.disabled[task.Role] {
			r.manager.Queue().MarkSkipped(task.ID)
		}
	}
	if _, err := r.manager.RunAll(ctx); err != nil {
		return nil, err
	}
	summary := r.manager.Summarize()

	paths, err := r.saveArtifacts(summary)
	if err != nil {
		return nil, err
	}

	if summary.Failed == 0 {
		prPath, err := r.writePRTemplate(summary)
		if err != nil {
			return nil, err
		}
		paths["pr_template"] = prPath
	}

	log.Printf("agent team run complete: %d successful, %d failed", summary.Successful, summary.Failed)
	return &RunReport{Summary: summary, ArtifactPaths: paths}, nil
}

func (r *TeamRunner) saveArtifacts(summary *RunSummary) (map[string]string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	paths := make(map[string]string)
	timestamp := time.Now().UTC().Format("20060102_150405")

	summaryPath := filepath.Join(r.outputDir, fmt.Sprintf("run_summary_%s.json", timestamp))
	if err := writeJSON(summaryPath, summary); err != nil {
		return nil, err
	}
	paths["run_summary"] = summaryPath

	// Keep a stable filename for the app to poll.
	latestPath := filepath.Join(r.outputDir, "latest_run_summary.json")
	if err := writeJSON(latestPath, summary); err != nil {
		return nil, err
	}
	paths["latest_summary"] = latestPath

	if proposals, ok := summary.OutputData["proposals"]; ok {
		p := filepath.Join(r.outputDir, "proposals.json")
		if err := writeJSON(p, proposals); err != nil {
			return nil, err
		}
		paths["proposals"] = p
	}

	if insights, ok := summary.OutputData["insights"]; ok {
		p := filepath.Join(r.outputDir, "community_insights.json")
		if err := writeJSON(p, insights); err != nil {
			return nil, err
		}
		paths["insights"] = p
	}

	if issues, ok := summary.OutputData["issues"]; ok {
		p := filepath.Join(r.outputDir, "drafted_issues.json")
		if err := writeJSON(p, issues); err != nil {
			return nil, err
		}
		paths["issues"] = p
	}

	policyPath := filepath.Join(r.outputDir, "f2p_policy.md")
	if err := os.WriteFile(policyPath, []byte(guardrails.F2PPolicy), 0o644); err != nil {
		return nil, fmt.Errorf("writing f2p policy: %w", err)
	}
	paths["f2p_policy"] = policyPath

	appDataPath := filepath.Join(r.outputDir, "app_data.json")
	if err := writeJSON(appDataPath, buildAppData(summary)); err != nil {
		return nil, err
	}
	paths["app_data"] = appDataPath

	log.Printf("saved %d artifacts to %s", len(paths), r.outputDir)
	return paths, nil
}

// AppData is the bundle consumed by the mobile app: enough to render
// the community tab and the storefront without touching run internals.
type AppData struct {
	Version          string             `json:"version"`
	GeneratedAt      string             `json:"generated_at"`
	InsightsSummary  AppInsightsSummary `json:"insights_summary"`
	Proposals        []AppProposal      `json:"proposals"`
	F2PPolicySummary F2PPolicySummary   `json:"f2p_policy_summary"`
	StorefrontItems  []StorefrontItem   `json:"storefront_items"`
}

// AppInsightsSummary condenses the community summary for display.
type AppInsightsSummary struct {
	TotalCount   int                   `json:"total_count"`
	AvgSentiment float64               `json:"avg_sentiment"`
	TopTopics    []feedback.TopicCount `json:"top_topics"`
	Sources      []string              `json:"sources"`
}

// AppProposal is the trimmed proposal shape shown in the app.
type AppProposal struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Priority     float64 `json:"priority"`
	F2PCompliant bool    `json:"f2p_compliant"`
}

// F2PPolicySummary is the short-form policy rendered in the app.
type F2PPolicySummary struct {
	CorePrinciples []string `json:"core_principles"`
	WhatWeOffer    []string `json:"what_we_offer"`
	WhatWeNeverDo  []string `json:"what_we_never_do"`
}

// StorefrontItem is one purchasable cosmetic listed in the app.
type StorefrontItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Price       int    `json:"price"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

func buildAppData(summary *RunSummary) *AppData {
	app := &AppData{
		Version:     "1.0.0",
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		F2PPolicySummary: F2PPolicySummary{
			CorePrinciples: []string{
				"No pay-to-win mechanics",
				"Cosmetic-only purchases",
				"Fair progression for all",
				"No predatory mechanics",
			},
			WhatWeOffer: []string{
				"Cosmetic items (skins, outfits, effects)",
				"Quality of life features",
				"Battle pass with cosmetic rewards",
			},
			WhatWeNeverDo: []string{
				"Sell gameplay advantages",
				"Use loot boxes with valuable items",
				"Create artificial time pressure",
			},
		},
		StorefrontItems: defaultStorefront(),
	}

	if s, ok := summary.OutputData["summary"].(*feedback.Summary); ok && s != nil {
		sources := make([]string, 0, len(s.Sources))
		for source := range s.Sources {
			sources = append(sources, source)
		}
		sort.Strings(sources)
		app.InsightsSummary = AppInsightsSummary{
			TotalCount:   s.Count,
			AvgSentiment: s.AvgSentiment,
			TopTopics:    s.TopTopics,
			Sources:      sources,
		}
	}

	if proposals, ok := summary.OutputData["proposals"].([]*feedback.Proposal); ok {
		if len(proposals) > 10 {
			proposals = proposals[:10]
		}
		for _, proposal := range proposals {
			app.Proposals = append(app.Proposals, AppProposal{
				Title:        proposal.Title,
				Description:  proposal.Description,
				Category:     proposal.Category,
				Priority:     proposal.Priority,
				F2PCompliant: proposal.F2PCompliant,
			})
		}
	}

	return app
}

func defaultStorefront() []StorefrontItem {
	return []StorefrontItem{
		{
			ID:          "skin_001",
			Name:        "Golden Knight Armor",
			Type:        "cosmetic",
			Price:       500,
			Currency:    "gems",
			Description: "A dazzling golden armor set. Purely cosmetic.",
		},
		{
			ID:          "emote_001",
			Name:        "Victory Dance",
			Type:        "emote",
			Price:       200,
			Currency:    "gems",
			Description: "Celebrate your wins in style!",
		},
		{
			ID:          "bundle_001",
			Name:        "Starter Cosmetic Bundle",
			Type:        "bundle",
			Price:       1000,
			Currency:    "gems",
			Description: "3 skins + 2 emotes. Great value!",
		},
	}
}

func (r *TeamRunner) writePRTemplate(summary *RunSummary) (string, error) {
	proposals, _ := summary.OutputData["proposals"].([]*feedback.Proposal)

	stats := drafting.RunStats{}
	if s, ok := summary.OutputData["summary"].(*feedback.Summary); ok && s != nil {
		stats.TotalInsights = s.Count
		stats.AvgSentiment = s.AvgSentiment
		for source := range s.Sources {
			stats.Sources = append(stats.Sources, source)
		}
		sort.Strings(stats.Sources)
	}

	pr := r.deps.PRGenerator.GenerateAgentRunPR(stats, proposals)
	path := filepath.Join(r.outputDir, "pr_template.md")
	if err := os.WriteFile(path, []byte(pr.Markdown()), 0o644); err != nil {
		return "", fmt.Errorf("writing pr template: %w", err)
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// RunTeam runs the default pipeline with default dependencies. It is
// the programmatic equivalent of the run command.
func RunTeam(ctx context.Context, outputDir string) (*RunReport, error) {
	manager := NewManager(scheduler.NewRegistry(), nil)
	deps := DefaultDependencies()
	return NewTeamRunner(manager, deps, outputDir).Run(ctx)
}
