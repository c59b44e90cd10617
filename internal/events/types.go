package events

import (
	"time"
)

// Event is the base interface for all pipeline events.
type Event interface {
	EventType() string
	TaskID() string
}

// Topic constants
const (
	TopicTask     = "task"
	TopicPipeline = "pipeline"
)

// Event type constants
const (
	EventTypeTaskStarted      = "task.started"
	EventTypeTaskCompleted    = "task.completed"
	EventTypeTaskFailed       = "task.failed"
	EventTypePipelineProgress = "pipeline.progress"
)

// TaskStartedEvent is published when the manager dispatches a task to
// its worker.
type TaskStartedEvent struct {
	ID        string
	Name      string
	Role      string
	Timestamp time.Time
}

func (e TaskStartedEvent) EventType() string { return EventTypeTaskStarted }
func (e TaskStartedEvent) TaskID() string    { return e.ID }

// TaskCompletedEvent is published when a task completes successfully.
type TaskCompletedEvent struct {
	ID        string
	Name      string
	Role      string
	Duration  time.Duration
	Timestamp time.Time
}

func (e TaskCompletedEvent) EventType() string { return EventTypeTaskCompleted }
func (e TaskCompletedEvent) TaskID() string    { return e.ID }

// TaskFailedEvent is published when a task fails.
type TaskFailedEvent struct {
	ID        string
	Name      string
	Role      string
	Err       string
	Duration  time.Duration
	Timestamp time.Time
}

func (e TaskFailedEvent) EventType() string { return EventTypeTaskFailed }
func (e TaskFailedEvent) TaskID() string    { return e.ID }

// PipelineProgressEvent is published after every task terminates.
type PipelineProgressEvent struct {
	Total     int
	Completed int
	Failed    int
	Pending   int
	Blocked   bool
	Timestamp time.Time
}

func (e PipelineProgressEvent) EventType() string { return EventTypePipelineProgress }
func (e PipelineProgressEvent) TaskID() string    { return "" }
