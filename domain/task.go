package domain

import "time"

// Status is the workflow state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a unit of work persisted by the remote task API.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	AssignedTo  string    `json:"assigned_to,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// ToggleStatus maps completed to pending and every other status to completed.
// In-progress tasks jump straight to completed.
func ToggleStatus(s Status) Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// StatusFilter selects tasks for the task list view.
type StatusFilter string

const FilterAll StatusFilter = "all"

// ParseStatusFilter accepts "all", an empty string (treated as all) or a known status.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	if raw == "" || raw == string(FilterAll) {
		return FilterAll, nil
	}
	if Status(raw).Valid() {
		return StatusFilter(raw), nil
	}
	return "", ErrInvalidFilter
}

// FilterByStatus returns tasks whose status equals filter, preserving order.
// FilterAll returns the input unchanged.
func FilterByStatus(tasks []Task, filter StatusFilter) []Task {
	if filter == FilterAll {
		return tasks
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if string(t.Status) == string(filter) {
			out = append(out, t)
		}
	}
	return out
}
