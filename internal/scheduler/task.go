// Package scheduler provides the dependency-aware task queue that
// sequences the agent pipeline.
package scheduler

import "time"

// Status represents the lifecycle state of a task. Transitions move
// strictly forward: pending -> in_progress -> completed or failed.
// Skipped is reachable only through external policy (disabled roles).
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
)

// Task is one unit of work routed to a worker by role.
// ID and Dependencies are immutable after creation; Status and Result
// advance as the task moves through the queue.
type Task struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Role         Role           `json:"role"`
	InputData    map[string]any `json:"input_data"`
	Dependencies []string       `json:"dependencies"`
	Status       Status         `json:"status"`
	Result       *Result        `json:"result,omitempty"`
}

// Result is the outcome of one executed task, produced exactly once
// and immutable after creation.
type Result struct {
	TaskID        string         `json:"task_id"`
	Success       bool           `json:"success"`
	OutputData    map[string]any `json:"output_data,omitempty"`
	Error         string         `json:"error,omitempty"`
	ExecutionTime float64        `json:"execution_time"`
}

// NewResult creates a successful result with the elapsed time since
// start.
func NewResult(taskID string, output map[string]any, start time.Time) *Result {
	return &Result{
		TaskID:        taskID,
		Success:       true,
		OutputData:    output,
		ExecutionTime: time.Since(start).Seconds(),
	}
}

// NewFailedResult creates a failed result with the elapsed time since
// start.
func NewFailedResult(taskID string, errMsg string, start time.Time) *Result {
	return &Result{
		TaskID:        taskID,
		Success:       false,
		Error:         errMsg,
		ExecutionTime: time.Since(start).Seconds(),
	}
}
