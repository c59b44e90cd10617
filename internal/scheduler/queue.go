package scheduler

import (
	"log"
	"sort"
	"sync"
)

// TaskQueue holds tasks, resolves readiness from dependency
// completion, and yields the next runnable task. Tasks live in an
// arena indexed by id; the pending list holds ids ordered by a
// monotonically increasing priority counter, so insertion order is the
// default tie-break.
type TaskQueue struct {
	mu        sync.Mutex
	tasks     map[string]*Task
	completed map[string]*Result
	pending   []pendingEntry
	counter   int
}

type pendingEntry struct {
	priority int
	id       string
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{
		tasks:     make(map[string]*Task),
		completed: make(map[string]*Result),
	}
}

// Add inserts a task. A negative priority assigns the next counter
// value, preserving insertion order among equal priorities.
func (q *TaskQueue) Add(task *Task, priority int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if priority < 0 {
		priority = q.counter
		q.counter++
	}
	if task.Status == "" {
		task.Status = StatusPending
	}

	q.tasks[task.ID] = task
	q.pending = append(q.pending, pendingEntry{priority: priority, id: task.ID})
	sort.SliceStable(q.pending, func(i, j int) bool {
		return q.pending[i].priority < q.pending[j].priority
	})
}

// AddAll inserts tasks in order with counter-assigned priorities.
func (q *TaskQueue) AddAll(tasks []*Task) {
	for _, task := range tasks {
		q.Add(task, -1)
	}
}

// GetNext returns the first pending task in priority order whose
// dependencies have all terminally succeeded, removing it from the
// pending list. Tasks that are not ready are retained for later calls.
// Returns nil when nothing is ready; use PendingCount to distinguish
// an empty queue from a blocked one.
func (q *TaskQueue) GetNext() *Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	retained := q.pending[:0]
	var next *Task
	for idx, entry := range q.pending {
		task, ok := q.tasks[entry.id]
		if !ok || task.Status != StatusPending {
			// Stale entry: already dispatched, terminated, or skipped.
			continue
		}
		if next == nil && q.dependenciesMet(task) {
			next = task
			retained = append(retained, q.pending[idx+1:]...)
			break
		}
		retained = append(retained, entry)
	}
	q.pending = retained
	return next
}

// dependenciesMet reports whether every dependency has a successful
// result. A failed dependency makes the task permanently unready.
func (q *TaskQueue) dependenciesMet(task *Task) bool {
	for _, depID := range task.Dependencies {
		result, ok := q.completed[depID]
		if !ok || !result.Success {
			return false
		}
	}
	return true
}

// MarkCompleted records a successful result. Idempotent: repeating a
// completion leaves the queue counts unchanged.
func (q *TaskQueue) MarkCompleted(taskID string, result *Result) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if task, ok := q.tasks[taskID]; ok {
		task.Status = StatusCompleted
		task.Result = result
	}
	q.completed[taskID] = result
}

// MarkFailed records a failed result. Dependents of this task will
// never become ready; the queue does not retry.
func (q *TaskQueue) MarkFailed(taskID string, errMsg string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	result := &Result{TaskID: taskID, Success: false, Error: errMsg}
	if task, ok := q.tasks[taskID]; ok {
		task.Status = StatusFailed
		task.Result = result
	}
	q.completed[taskID] = result
	log.Printf("ERROR: task failed: %s - %s", taskID, errMsg)
}

// MarkSkipped records a task as intentionally not run.
func (q *TaskQueue) MarkSkipped(taskID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if task, ok := q.tasks[taskID]; ok {
		task.Status = StatusSkipped
	}
}

// Task returns the task with the given id, or nil.
func (q *TaskQueue) Task(taskID string) *Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tasks[taskID]
}

// Result returns the recorded result for a task, or nil if it has not
// terminated.
func (q *TaskQueue) Result(taskID string) *Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.completed[taskID]
}

// DependencyData merges the output data of all successfully completed
// dependencies into one map. Later dependencies overwrite same-named
// keys: last-writer-wins by declaration order.
func (q *TaskQueue) DependencyData(task *Task) map[string]any {
	q.mu.Lock()
	defer q.mu.Unlock()

	data := make(map[string]any)
	for _, depID := range task.Dependencies {
		result, ok := q.completed[depID]
		if !ok || !result.Success {
			continue
		}
		for key, value := range result.OutputData {
			data[key] = value
		}
	}
	return data
}

// IsEmpty reports whether the pending list is drained.
func (q *TaskQueue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending) == 0
}

// PendingCount returns the number of tasks still in pending status.
func (q *TaskQueue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	count := 0
	for _, task := range q.tasks {
		if task.Status == StatusPending {
			count++
		}
	}
	return count
}

// CompletedCount returns the number of terminated tasks, failures
// included.
func (q *TaskQueue) CompletedCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.completed)
}

// QueueSummary is a point-in-time snapshot of queue state.
type QueueSummary struct {
	TotalTasks int            `json:"total_tasks"`
	Completed  int            `json:"completed"`
	Pending    int            `json:"pending"`
	ByStatus   map[string]int `json:"by_status"`
}

// Summary snapshots the queue.
func (q *TaskQueue) Summary() QueueSummary {
	q.mu.Lock()
	defer q.mu.Unlock()

	summary := QueueSummary{
		TotalTasks: len(q.tasks),
		Completed:  len(q.completed),
		ByStatus:   make(map[string]int),
	}
	for _, task := range q.tasks {
		summary.ByStatus[string(task.Status)]++
		if task.Status == StatusPending {
			summary.Pending++
		}
	}
	return summary
}
