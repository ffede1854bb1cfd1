package models

// Task event operations published to the task-events topic.
const (
	TaskEventCreated = "task.created"
	TaskEventUpdated = "task.updated"
	TaskEventDeleted = "task.deleted"
)

// TaskEvent represents a task lifecycle change published for downstream consumers.
type TaskEvent struct {
	EventID   string `json:"event_id"`  // EventID is a unique identifier for the event.
	Timestamp int64  `json:"timestamp"` // Timestamp is the Unix timestamp (in seconds) when the change occurred.
	Operation string `json:"operation"` // Operation is one of "task.created", "task.updated", "task.deleted".
	UserID    string `json:"user_id"`   // UserID is the identifier of the task owner.
	TaskID    string `json:"task_id"`   // TaskID is the identifier of the affected task.
	Name      string `json:"name"`      // Name is the task title at the time of the event.
}
