// Package orchestrator coordinates the agent team: workers per role, a
// manager driving the task queue, and a runner producing artifacts.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/thirstys/communityforge/internal/comparative"
	"github.com/thirstys/communityforge/internal/drafting"
	"github.com/thirstys/communityforge/internal/feedback"
	"github.com/thirstys/communityforge/internal/guardrails"
	"github.com/thirstys/communityforge/internal/scheduler"
)

// Worker executes tasks for one role. Implementations never panic on
// bad input; they return an error which the manager records as a
// failed result.
type Worker interface {
	// Execute runs the task and returns its result. The task's input
	// data already contains merged dependency outputs.
	Execute(ctx context.Context, task *scheduler.Task) (*scheduler.Result, error)

	// CanHandle reports whether this worker accepts the task's role.
	CanHandle(task *scheduler.Task) bool

	// Role returns the role this worker serves.
	Role() scheduler.Role
}

// proposalsFromInput extracts the working proposal set from merged
// dependency data. The typed raw_proposals key is preferred; the
// serializable proposals key is the fallback.
func proposalsFromInput(input map[string]any) []*feedback.Proposal {
	if raw, ok := input["raw_proposals"].([]*feedback.Proposal); ok {
		return raw
	}
	if serialized, ok := input["proposals"].([]*feedback.Proposal); ok {
		return serialized
	}
	return nil
}

// CommunityAnalystWorker fetches and analyzes community insights.
type CommunityAnalystWorker struct {
	pipeline *feedback.Pipeline
}

// NewCommunityAnalystWorker creates the analyst worker over a
// configured pipeline.
func NewCommunityAnalystWorker(pipeline *feedback.Pipeline) *CommunityAnalystWorker {
	return &CommunityAnalystWorker{pipeline: pipeline}
}

func (w *CommunityAnalystWorker) Role() scheduler.Role { return scheduler.RoleCommunityAnalyst }

func (w *CommunityAnalystWorker) CanHandle(task *scheduler.Task) bool {
	return task.Role == scheduler.RoleCommunityAnalyst
}

func (w *CommunityAnalystWorker) Execute(ctx context.Context, task *scheduler.Task) (*scheduler.Result, error) {
	start := time.Now()
	task.Status = scheduler.StatusInProgress

	limit := 50
	if v, ok := task.InputData["limit_per_source"].(int); ok {
		limit = v
	}

	results, err := w.pipeline.Run(ctx, limit, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("community pipeline: %w", err)
	}
	proposals := w.pipeline.GenerateProposals()

	return scheduler.NewResult(task.ID, map[string]any{
		"insights":      results.Insights,
		"summary":       results.Summary,
		"proposals":     proposals,
		"raw_proposals": proposals,
	}, start), nil
}

// FeatureDesignerWorker shapes the proposal set produced by the
// analyst stage.
type FeatureDesignerWorker struct{}

// NewFeatureDesignerWorker creates the designer worker.
func NewFeatureDesignerWorker() *FeatureDesignerWorker { return &FeatureDesignerWorker{} }

func (w *FeatureDesignerWorker) Role() scheduler.Role { return scheduler.RoleFeatureDesigner }

func (w *FeatureDesignerWorker) CanHandle(task *scheduler.Task) bool {
	return task.Role == scheduler.RoleFeatureDesigner
}

func (w *FeatureDesignerWorker) Execute(ctx context.Context, task *scheduler.Task) (*scheduler.Result, error) {
	start := time.Now()
	task.Status = scheduler.StatusInProgress

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	proposals := proposalsFromInput(task.InputData)

	return scheduler.NewResult(task.ID, map[string]any{
		"proposals":     proposals,
		"raw_proposals": proposals,
		"count":         len(proposals),
	}, start), nil
}

// MonetizationReviewerWorker validates proposals against the F2P
// guardrails.
type MonetizationReviewerWorker struct {
	checker *guardrails.Checker
}

// NewMonetizationReviewerWorker creates the reviewer worker.
func NewMonetizationReviewerWorker(checker *guardrails.Checker) *MonetizationReviewerWorker {
	return &MonetizationReviewerWorker{checker: checker}
}

func (w *MonetizationReviewerWorker) Role() scheduler.Role { return scheduler.RoleMonetizationReviewer }

func (w *MonetizationReviewerWorker) CanHandle(task *scheduler.Task) bool {
	return task.Role == scheduler.RoleMonetizationReviewer
}

func (w *MonetizationReviewerWorker) Execute(ctx context.Context, task *scheduler.Task) (*scheduler.Result, error) {
	start := time.Now()
	task.Status = scheduler.StatusInProgress

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	proposals := proposalsFromInput(task.InputData)
	validation := w.checker.ValidateProposals(proposals)

	return scheduler.NewResult(task.ID, map[string]any{
		"proposals":       proposals,
		"raw_proposals":   proposals,
		"validation":      validation,
		"compliant_count": validation.CompliantProposals,
		"total_count":     len(proposals),
	}, start), nil
}

// ComparativeAnalystWorker enriches proposals with competitive
// insights.
type ComparativeAnalystWorker struct {
	analyzer *comparative.Analyzer
}

// NewComparativeAnalystWorker creates the comparative analyst worker.
func NewComparativeAnalystWorker(analyzer *comparative.Analyzer) *ComparativeAnalystWorker {
	return &ComparativeAnalystWorker{analyzer: analyzer}
}

func (w *ComparativeAnalystWorker) Role() scheduler.Role { return scheduler.RoleComparativeAnalyst }

func (w *ComparativeAnalystWorker) CanHandle(task *scheduler.Task) bool {
	return task.Role == scheduler.RoleComparativeAnalyst
}

func (w *ComparativeAnalystWorker) Execute(ctx context.Context, task *scheduler.Task) (*scheduler.Result, error) {
	start := time.Now()
	task.Status = scheduler.StatusInProgress

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	proposals := w.analyzer.EnrichProposals(proposalsFromInput(task.InputData))

	return scheduler.NewResult(task.ID, map[string]any{
		"proposals":          proposals,
		"raw_proposals":      proposals,
		"competitive_report": w.analyzer.GenerateReport(),
	}, start), nil
}

// IssueDrafterWorker converts proposals into GitHub issue drafts.
type IssueDrafterWorker struct {
	drafter *drafting.IssueDrafter
}

// NewIssueDrafterWorker creates the issue drafter worker.
func NewIssueDrafterWorker(drafter *drafting.IssueDrafter) *IssueDrafterWorker {
	return &IssueDrafterWorker{drafter: drafter}
}

func (w *IssueDrafterWorker) Role() scheduler.Role { return scheduler.RoleIssueDrafter }

func (w *IssueDrafterWorker) CanHandle(task *scheduler.Task) bool {
	return task.Role == scheduler.RoleIssueDrafter
}

func (w *IssueDrafterWorker) Execute(ctx context.Context, task *scheduler.Task) (*scheduler.Result, error) {
	start := time.Now()
	task.Status = scheduler.StatusInProgress

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	issues := w.drafter.BatchDraft(proposalsFromInput(task.InputData))

	return scheduler.NewResult(task.ID, map[string]any{
		"issues":       issues,
		"issue_report": w.drafter.Report(issues),
		"count":        len(issues),
	}, start), nil
}

// PRCreatorWorker converts proposals into pull request drafts.
type PRCreatorWorker struct {
	generator *drafting.PRGenerator
}

// NewPRCreatorWorker creates the PR creator worker.
func NewPRCreatorWorker(generator *drafting.PRGenerator) *PRCreatorWorker {
	return &PRCreatorWorker{generator: generator}
}

func (w *PRCreatorWorker) Role() scheduler.Role { return scheduler.RolePRCreator }

func (w *PRCreatorWorker) CanHandle(task *scheduler.Task) bool {
	return task.Role == scheduler.RolePRCreator
}

func (w *PRCreatorWorker) Execute(ctx context.Context, task *scheduler.Task) (*scheduler.Result, error) {
	start := time.Now()
	task.Status = scheduler.StatusInProgress

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prs := w.generator.BatchGenerate(proposalsFromInput(task.InputData))

	return scheduler.NewResult(task.ID, map[string]any{
		"prs":   prs,
		"count": len(prs),
	}, start), nil
}

// NewWorkerForRole creates the default worker for a role. Roles
// without an executable worker (manager) return an error.
func NewWorkerForRole(role scheduler.Role, deps Dependencies) (Worker, error) {
	switch role {
	case scheduler.RoleCommunityAnalyst:
		return NewCommunityAnalystWorker(deps.Pipeline), nil
	case scheduler.RoleFeatureDesigner:
		return NewFeatureDesignerWorker(), nil
	case scheduler.RoleMonetizationReviewer:
		return NewMonetizationReviewerWorker(deps.Checker), nil
	case scheduler.RoleComparativeAnalyst:
		return NewComparativeAnalystWorker(deps.Comparative), nil
	case scheduler.RoleIssueDrafter:
		return NewIssueDrafterWorker(deps.IssueDrafter), nil
	case scheduler.RolePRCreator:
		return NewPRCreatorWorker(deps.PRGenerator), nil
	default:
		return nil, fmt.Errorf("no worker available for role: %s", role)
	}
}

// Dependencies bundles the collaborators workers are built from.
type Dependencies struct {
	Pipeline     *feedback.Pipeline
	Checker      *guardrails.Checker
	Comparative  *comparative.Analyzer
	IssueDrafter *drafting.IssueDrafter
	PRGenerator  *drafting.PRGenerator
}

// DefaultDependencies wires the standard collaborator set: the three
// community sources behind retry/breaker protection, the default
// lexicon, and the standard drafters.
func DefaultDependencies() Dependencies {
	analyzer := feedback.NewAnalyzer(feedback.DefaultLexicon(nil, nil))
	sources := []feedback.Source{
		feedback.NewResilientSource(feedback.NewRedditSource()),
		feedback.NewResilientSource(feedback.NewDiscordSource()),
		feedback.NewResilientSource(feedback.NewSteamSource()),
	}
	return Dependencies{
		Pipeline:     feedback.NewPipeline(analyzer, sources...),
		Checker:      guardrails.NewChecker(),
		Comparative:  comparative.NewAnalyzer(),
		IssueDrafter: drafting.NewIssueDrafter(),
		PRGenerator:  drafting.NewPRGenerator(""),
	}
}
