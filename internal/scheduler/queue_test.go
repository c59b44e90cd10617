package scheduler

import (
	"testing"
)

func task(id string, deps ...string) *Task {
	return &Task{
		ID:           id,
		Name:         id,
		Role:         RoleCommunityAnalyst,
		InputData:    map[string]any{},
		Dependencies: deps,
		Status:       StatusPending,
	}
}

func TestGetNextInsertionOrder(t *testing.T) {
	q := NewTaskQueue()
	q.AddAll([]*Task{task("a"), task("b"), task("c")})

	for _, want := range []string{"a", "b", "c"} {
		got := q.GetNext()
		if got == nil || got.ID != want {
			t.Fatalf("GetNext = %v, want %s", got, want)
		}
		q.MarkCompleted(got.ID, &Result{TaskID: got.ID, Success: true})
	}
	if got := q.GetNext(); got != nil {
		t.Errorf("drained queue returned %v", got)
	}
}

func TestGetNextExplicitPriority(t *testing.T) {
	q := NewTaskQueue()
	q.Add(task("low"), 10)
	q.Add(task("high"), 1)

	if got := q.GetNext(); got == nil || got.ID != "high" {
		t.Errorf("GetNext = %v, want high", got)
	}
}

func TestGetNextWaitsForDependencies(t *testing.T) {
	q := NewTaskQueue()
	q.AddAll([]*Task{task("child", "parent"), task("parent")})

	// child is first by insertion but parent must run first.
	got := q.GetNext()
	if got == nil || got.ID != "parent" {
		t.Fatalf("GetNext = %v, want parent", got)
	}

	// child is retained, not lost, and becomes ready after completion.
	if next := q.GetNext(); next != nil {
		t.Fatalf("GetNext before completion = %v, want nil", next)
	}
	q.MarkCompleted("parent", &Result{TaskID: "parent", Success: true, OutputData: map[string]any{"k": 1}})

	got = q.GetNext()
	if got == nil || got.ID != "child" {
		t.Errorf("GetNext = %v, want child", got)
	}
}

func TestGetNextNeverReturnsUnready(t *testing.T) {
	q := NewTaskQueue()
	q.AddAll([]*Task{task("a"), task("b", "a"), task("c", "a", "b")})

	seen := map[string]bool{}
	for {
		next := q.GetNext()
		if next == nil {
			break
		}
		for _, dep := range next.Dependencies {
			result := q.Result(dep)
			if result == nil || !result.Success {
				t.Fatalf("task %s dispatched before dependency %s succeeded", next.ID, dep)
			}
		}
		seen[next.ID] = true
		q.MarkCompleted(next.ID, &Result{TaskID: next.ID, Success: true})
	}
	if len(seen) != 3 {
		t.Errorf("executed %d tasks, want 3", len(seen))
	}
}

func TestFailedDependencyBlocksDependents(t *testing.T) {
	q := NewTaskQueue()
	q.AddAll([]*Task{task("a"), task("b", "a")})

	got := q.GetNext()
	q.MarkFailed(got.ID, "boom")

	if next := q.GetNext(); next != nil {
		t.Errorf("dependent of failed task dispatched: %v", next)
	}
	if q.PendingCount() != 1 {
		t.Errorf("pending = %d, want 1 (blocked)", q.PendingCount())
	}
}

func TestMarkCompletedIdempotent(t *testing.T) {
	q := NewTaskQueue()
	q.Add(task("a"), -1)

	got := q.GetNext()
	result := &Result{TaskID: "a", Success: true}
	q.MarkCompleted(got.ID, result)
	before := q.Summary()

	q.MarkCompleted(got.ID, result)
	after := q.Summary()

	if before.Completed != after.Completed || before.TotalTasks != after.TotalTasks {
		t.Errorf("summary changed on repeat completion: %+v then %+v", before, after)
	}
	if after.Completed != 1 {
		t.Errorf("completed = %d, want 1", after.Completed)
	}
}

func TestDependencyDataLastWriterWins(t *testing.T) {
	q := NewTaskQueue()
	child := task("child", "first", "second")
	q.AddAll([]*Task{task("first"), task("second"), child})

	q.MarkCompleted("first", &Result{
		TaskID: "first", Success: true,
		OutputData: map[string]any{"shared": "from-first", "only_first": 1},
	})
	q.MarkCompleted("second", &Result{
		TaskID: "second", Success: true,
		OutputData: map[string]any{"shared": "from-second", "only_second": 2},
	})

	data := q.DependencyData(child)
	if data["shared"] != "from-second" {
		t.Errorf("shared = %v, want from-second (later declaration wins)", data["shared"])
	}
	if data["only_first"] != 1 || data["only_second"] != 2 {
		t.Errorf("merged data incomplete: %v", data)
	}
}

func TestDependencyDataSkipsFailures(t *testing.T) {
	q := NewTaskQueue()
	child := task("child", "ok", "bad")
	q.AddAll([]*Task{task("ok"), task("bad"), child})

	q.MarkCompleted("ok", &Result{TaskID: "ok", Success: true, OutputData: map[string]any{"k": "v"}})
	q.MarkFailed("bad", "boom")

	data := q.DependencyData(child)
	if len(data) != 1 || data["k"] != "v" {
		t.Errorf("data = %v, want only successful dependency output", data)
	}
}

func TestSkippedTaskNotDispatched(t *testing.T) {
	q := NewTaskQueue()
	q.AddAll([]*Task{task("a"), task("b")})
	q.MarkSkipped("a")

	got := q.GetNext()
	if got == nil || got.ID != "b" {
		t.Errorf("GetNext = %v, want b", got)
	}
	if q.Task("a").Status != StatusSkipped {
		t.Errorf("status = %s, want skipped", q.Task("a").Status)
	}
}

func TestSummary(t *testing.T) {
	q := NewTaskQueue()
	q.AddAll([]*Task{task("a"), task("b"), task("c")})

	got := q.GetNext()
	q.MarkCompleted(got.ID, &Result{TaskID: got.ID, Success: true})
	got = q.GetNext()
	q.MarkFailed(got.ID, "boom")

	summary := q.Summary()
	if summary.TotalTasks != 3 {
		t.Errorf("total = %d, want 3", summary.TotalTasks)
	}
	if summary.Completed != 2 {
		t.Errorf("completed = %d, want 2", summary.Completed)
	}
	if summary.Pending != 1 {
		t.Errorf("pending = %d, want 1", summary.Pending)
	}
	if summary.ByStatus["completed"] != 1 || summary.ByStatus["failed"] != 1 || summary.ByStatus["pending"] != 1 {
		t.Errorf("by status = %v", summary.ByStatus)
	}
}
