package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thirstys/communityforge/internal/comparative"
	"github.com/thirstys/communityforge/internal/drafting"
	"github.com/thirstys/communityforge/internal/events"
	"github.com/thirstys/communityforge/internal/feedback"
	"github.com/thirstys/communityforge/internal/guardrails"
	"github.com/thirstys/communityforge/internal/scheduler"
)

// stubSource returns canned insights so runs are deterministic.
type stubSource struct {
	name     string
	insights []*feedback.Insight
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchInsights(_ context.Context, limit int, _ time.Time) ([]*feedback.Insight, error) {
	if limit < len(s.insights) {
		return s.insights[:limit], nil
	}
	return s.insights, nil
}

func testInsight(source, content string, engagement int) *feedback.Insight {
	insight := feedback.NewInsight(source, content)
	insight.Engagement = map[string]int{"upvotes": engagement}
	return insight
}

func testDependencies() Dependencies {
	analyzer := feedback.NewAnalyzer(feedback.DefaultLexicon(nil, nil))
	sources := []feedback.Source{
		&stubSource{name: "reddit", insights: []*feedback.Insight{
			testInsight("reddit", "Please add more skin customization options, would love new outfits", 320),
			testInsight("reddit", "The game crashes with a bug on the loading screen", 80),
		}},
		&stubSource{name: "discord", insights: []*feedback.Insight{
			testInsight("discord", "It would be great to add guild features for social play", 150),
			testInsight("discord", "Awesome update, love the new event!", 40),
		}},
	}
	return Dependencies{
		Pipeline:     feedback.NewPipeline(analyzer, sources...),
		Checker:      guardrails.NewChecker(),
		Comparative:  comparative.NewAnalyzer(),
		IssueDrafter: drafting.NewIssueDrafter(),
		PRGenerator:  drafting.NewPRGenerator(""),
	}
}

func TestRunAllFullPipeline(t *testing.T) {
	manager := NewManager(scheduler.NewRegistry(), nil)
	manager.InitializeWorkers(testDependencies())
	tasks := manager.CreateFullPipeline()

	if len(tasks) != 5 {
		t.Fatalf("expected 5 pipeline tasks, got %d", len(tasks))
	}

	results, err := manager.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for i, result := range results {
		if !result.Success {
			t.Errorf("result %d failed: %s", i, result.Error)
		}
	}

	wantRoles := []scheduler.Role{
		scheduler.RoleCommunityAnalyst,
		scheduler.RoleFeatureDesigner,
		scheduler.RoleMonetizationReviewer,
		scheduler.RoleComparativeAnalyst,
		scheduler.RoleIssueDrafter,
	}
	for i, result := range results {
		task := manager.Queue().Task(result.TaskID)
		if task == nil {
			t.Fatalf("result %d references unknown task %s", i, result.TaskID)
		}
		if task.Role != wantRoles[i] {
			t.Errorf("stage %d: expected role %s, got %s", i, wantRoles[i], task.Role)
		}
	}
}

func TestRunSummaryExcludesRawKeys(t *testing.T) {
	manager := NewManager(scheduler.NewRegistry(), nil)
	manager.InitializeWorkers(testDependencies())
	manager.CreateFullPipeline()

	if _, err := manager.RunAll(context.Background()); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	summary := manager.Summarize()

	if summary.Successful != 5 || summary.Failed != 0 {
		t.Fatalf("expected 5 successful / 0 failed, got %d / %d", summary.Successful, summary.Failed)
	}
	for key := range summary.OutputData {
		if len(key) >= 4 && key[:4] == "raw_" {
			t.Errorf("output data contains working key %q", key)
		}
	}
	if _, ok := summary.OutputData["proposals"]; !ok {
		t.Error("output data missing proposals")
	}
	if _, ok := summary.OutputData["issues"]; !ok {
		t.Error("output data missing issues")
	}
	if _, ok := summary.OutputData["validation"]; !ok {
		t.Error("output data missing validation")
	}
}

// failingWorker fails every task it receives.
type failingWorker struct {
	role scheduler.Role
}

func (w *failingWorker) Role() scheduler.Role { return w.role }

func (w *failingWorker) CanHandle(task *scheduler.Task) bool { return task.Role == w.role }

func (w *failingWorker) Execute(_ context.Context, _ *scheduler.Task) (*scheduler.Result, error) {
	return nil, errors.New("simulated worker failure")
}

func TestFailedTaskBlocksDependents(t *testing.T) {
	manager := NewManager(scheduler.NewRegistry(), nil)
	manager.InitializeWorkers(testDependencies())
	manager.RegisterWorker(&failingWorker{role: scheduler.RoleMonetizationReviewer})
	manager.CreateFullPipeline()

	results, err := manager.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	// Analyst and designer succeed, the reviewer fails, and the two
	// downstream stages never run.
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Success || !results[1].Success {
		t.Error("upstream stages should have succeeded")
	}
	if results[2].Success {
		t.Error("reviewer stage should have failed")
	}

	summary := manager.Summarize()
	if !summary.Blocked {
		t.Error("expected run to be marked blocked")
	}
	if summary.Failed != 1 {
		t.Errorf("expected 1 failed task, got %d", summary.Failed)
	}
	if manager.Queue().PendingCount() != 2 {
		t.Errorf("expected 2 permanently pending tasks, got %d", manager.Queue().PendingCount())
	}
}

func TestExecuteNextNoWorker(t *testing.T) {
	manager := NewManager(scheduler.NewRegistry(), nil)
	// No workers registered at all.
	manager.AddTask(scheduler.NewCommunityAnalysisTask([]string{"reddit"}, 10))

	if _, err := manager.ExecuteNext(context.Background()); err == nil {
		t.Fatal("expected error for missing worker")
	}
	if manager.Queue().PendingCount() != 0 {
		t.Error("task without a worker should be marked failed, not left pending")
	}
}

func TestExecuteNextEmptyQueue(t *testing.T) {
	manager := NewManager(scheduler.NewRegistry(), nil)
	result, err := manager.ExecuteNext(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatal("expected nil result for empty queue")
	}
}

func TestRunAllPublishesEvents(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	taskCh := bus.Subscribe(events.TopicTask, 64)
	pipelineCh := bus.Subscribe(events.TopicPipeline, 64)

	manager := NewManager(scheduler.NewRegistry(), bus)
	manager.InitializeWorkers(testDependencies())
	manager.CreateFullPipeline()

	if _, err := manager.RunAll(context.Background()); err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	started, completed := 0, 0
	for len(taskCh) > 0 {
		switch (<-taskCh).EventType() {
		case events.EventTypeTaskStarted:
			started++
		case events.EventTypeTaskCompleted:
			completed++
		}
	}
	if started != 5 || completed != 5 {
		t.Errorf("expected 5 started and 5 completed events, got %d / %d", started, completed)
	}

	progress := 0
	var last events.Event
	for len(pipelineCh) > 0 {
		last = <-pipelineCh
		progress++
	}
	if progress != 5 {
		t.Errorf("expected 5 progress events, got %d", progress)
	}
	if final, ok := last.(events.PipelineProgressEvent); ok {
		if final.Completed != 5 || final.Failed != 0 {
			t.Errorf("final progress: expected 5 completed / 0 failed, got %d / %d", final.Completed, final.Failed)
		}
	} else {
		t.Errorf("expected PipelineProgressEvent, got %T", last)
	}
}

func TestResetClearsState(t *testing.T) {
	manager := NewManager(scheduler.NewRegistry(), nil)
	manager.InitializeWorkers(testDependencies())
	manager.CreateFullPipeline()

	if _, err := manager.RunAll(context.Background()); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	manager.Reset()

	if len(manager.Results()) != 0 {
		t.Error("results not cleared by reset")
	}
	if !manager.Queue().IsEmpty() {
		t.Error("queue not cleared by reset")
	}

	// Workers survive the reset; a second run succeeds.
	manager.CreateFullPipeline()
	results, err := manager.RunAll(context.Background())
	if err != nil {
		t.Fatalf("second RunAll: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results after reset, got %d", len(results))
	}
}
