package orchestrator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/thirstys/communityforge/internal/events"
	"github.com/thirstys/communityforge/internal/scheduler"
)

// Manager drives the task queue: it dispatches ready tasks to workers,
// records results, and publishes progress events. One manager runs one
// pipeline at a time.
type Manager struct {
	registry *scheduler.Registry
	queue    *scheduler.TaskQueue
	workers  map[scheduler.Role]Worker
	results  []*scheduler.Result
	bus      *events.Bus

	startTime time.Time
	endTime   time.Time
	blocked   bool
}

// NewManager creates a manager with an empty queue. Pass a nil bus to
// run without event publication.
func NewManager(registry *scheduler.Registry, bus *events.Bus) *Manager {
	return &Manager{
		registry: registry,
		queue:    scheduler.NewTaskQueue(),
		workers:  make(map[scheduler.Role]Worker),
		bus:      bus,
	}
}

// RegisterWorker installs a worker for its role, replacing any
// previous one.
func (m *Manager) RegisterWorker(worker Worker) {
	m.workers[worker.Role()] = worker
}

// InitializeWorkers builds the default worker for every registered
// role. Roles that already have a worker keep it; roles without an
// executable worker are logged and skipped.
func (m *Manager) InitializeWorkers(deps Dependencies) {
	for _, def := range m.registry.All() {
		if _, exists := m.workers[def.Role]; exists {
			continue
		}
		worker, err := NewWorkerForRole(def.Role, deps)
		if err != nil {
			log.Printf("WARNING: %v", err)
			continue
		}
		m.workers[def.Role] = worker
	}
}

// AddTask queues a single task at default priority.
func (m *Manager) AddTask(task *scheduler.Task) {
	m.queue.Add(task, -1)
}

// AddTasks queues tasks preserving their order.
func (m *Manager) AddTasks(tasks []*scheduler.Task) {
	m.queue.AddAll(tasks)
}

// CreateFullPipeline queues the standard five-stage pipeline and
// returns its tasks.
func (m *Manager) CreateFullPipeline() []*scheduler.Task {
	tasks := scheduler.NewFullPipeline()
	m.queue.AddAll(tasks)
	return tasks
}

// Queue exposes the underlying task queue, mainly for status views.
func (m *Manager) Queue() *scheduler.TaskQueue {
	return m.queue
}

// Results returns all recorded results in execution order.
func (m *Manager) Results() []*scheduler.Result {
	return m.results
}

// ExecuteNext runs the next ready task. It returns the result, or nil
// when no task is currently dispatchable. A worker error becomes a
// failed result rather than an error return; the error return is
// reserved for tasks with no registered worker.
func (m *Manager) ExecuteNext(ctx context.Context) (*scheduler.Result, error) {
	task := m.queue.GetNext()
	if task == nil {
		return nil, nil
	}

	worker, ok := m.workers[task.Role]
	if !ok || !worker.CanHandle(task) {
		m.queue.MarkFailed(task.ID, fmt.Sprintf("no worker for role: %s", task.Role))
		return nil, fmt.Errorf("no worker for role: %s", task.Role)
	}

	start := time.Now()
	m.publishTask(events.TaskStartedEvent{
		ID:        task.ID,
		Name:      task.Name,
		Role:      string(task.Role),
		Timestamp: start,
	})

	// Merge dependency outputs into the task's own input.
	for key, value := range m.queue.DependencyData(task) {
		task.InputData[key] = value
	}

	log.Printf("executing task: %s (%s)", task.Name, task.Role)
	result, err := worker.Execute(ctx, task)
	if err != nil {
		result = scheduler.NewFailedResult(task.ID, err.Error(), start)
	}

	m.results = append(m.results, result)
	duration := time.Since(start)
	if result.Success {
		m.queue.MarkCompleted(task.ID, result)
		m.publishTask(events.TaskCompletedEvent{
			ID:        task.ID,
			Name:      task.Name,
			Role:      string(task.Role),
			Duration:  duration,
			Timestamp: time.Now(),
		})
	} else {
		m.queue.MarkFailed(task.ID, result.Error)
		m.publishTask(events.TaskFailedEvent{
			ID:        task.ID,
			Name:      task.Name,
			Role:      string(task.Role),
			Err:       result.Error,
			Duration:  duration,
			Timestamp: time.Now(),
		})
	}
	m.publishProgress()

	return result, nil
}

// RunAll executes tasks until the queue drains or no remaining task
// can ever become ready. Blocked pipelines stop cleanly instead of
// spinning.
func (m *Manager) RunAll(ctx context.Context) ([]*scheduler.Result, error) {
	m.startTime = time.Now()
	m.blocked = false

	for !m.queue.IsEmpty() {
		if err := ctx.Err(); err != nil {
			m.endTime = time.Now()
			return m.results, err
		}

		result, err := m.ExecuteNext(ctx)
		if err != nil {
			continue
		}
		if result == nil {
			if m.queue.PendingCount() > 0 {
				m.blocked = true
				log.Printf("WARNING: %d tasks blocked by failed dependencies, stopping run", m.queue.PendingCount())
				m.publishProgress()
			}
			break
		}
	}

	m.endTime = time.Now()
	return m.results, nil
}

func (m *Manager) publishTask(event events.Event) {
	if m.bus != nil {
		m.bus.Publish(events.TopicTask, event)
	}
}

func (m *Manager) publishProgress() {
	if m.bus == nil {
		return
	}
	summary := m.queue.Summary()
	m.bus.Publish(events.TopicPipeline, events.PipelineProgressEvent{
		Total:     summary.TotalTasks,
		Completed: summary.ByStatus[string(scheduler.StatusCompleted)],
		Failed:    summary.ByStatus[string(scheduler.StatusFailed)],
		Pending:   summary.Pending,
		Blocked:   m.blocked,
		Timestamp: time.Now(),
	})
}

// RunSummary is the aggregate report for one pipeline run.
type RunSummary struct {
	Timestamp          string                 `json:"timestamp"`
	EndTime            string                 `json:"end_time"`
	TotalTasks         int                    `json:"total_tasks"`
	Successful         int                    `json:"successful"`
	Failed             int                    `json:"failed"`
	Blocked            bool                   `json:"blocked"`
	TotalExecutionTime float64                `json:"total_execution_time"`
	QueueSummary       scheduler.QueueSummary `json:"queue_summary"`
	OutputData         map[string]any         `json:"output_data"`
	Results            []*scheduler.Result    `json:"results"`
}

// Summarize builds the run summary. Output data from all successful
// results is merged; keys with the raw_ prefix are working state
// between stages and are excluded.
func (m *Manager) Summarize() *RunSummary {
	successful, failed := 0, 0
	output := make(map[string]any)
	for _, result := range m.results {
		if !result.Success {
			failed++
			continue
		}
		successful++
		for key, value := range result.OutputData {
			if strings.HasPrefix(key, "raw_") {
				continue
			}
			output[key] = value
		}
	}

	totalTime := 0.0
	for _, result := range m.results {
		totalTime += result.ExecutionTime
	}

	return &RunSummary{
		Timestamp:          m.startTime.UTC().Format(time.RFC3339),
		EndTime:            m.endTime.UTC().Format(time.RFC3339),
		TotalTasks:         len(m.results),
		Successful:         successful,
		Failed:             failed,
		Blocked:            m.blocked,
		TotalExecutionTime: totalTime,
		QueueSummary:       m.queue.Summary(),
		OutputData:         output,
		Results:            m.results,
	}
}

// Reset clears queue state and results so the manager can run another
// pipeline. Registered workers are kept.
func (m *Manager) Reset() {
	m.queue = scheduler.NewTaskQueue()
	m.results = nil
	m.blocked = false
	m.startTime = time.Time{}
	m.endTime = time.Time{}
}
