package transport

import (
	"strings"
	"time"

	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/internal/state"
	"github.com/fastygo/taskspace/usecase"
)

// SessionView is returned by login and the session endpoint.
type SessionView struct {
	Session domain.Session    `json:"session"`
	Menu    []domain.MenuItem `json:"menu"`
}

// TaskRow is one task card with the row actions the role may invoke.
type TaskRow struct {
	domain.Task
	Actions []domain.Action `json:"actions"`
}

// TaskListView is the view-tasks screen.
type TaskListView struct {
	Filter    domain.StatusFilter `json:"filter"`
	Tasks     []TaskRow           `json:"tasks"`
	FetchedAt *time.Time          `json:"fetched_at,omitempty"`
	Empty     string              `json:"empty_message,omitempty"`
	Message   string              `json:"message,omitempty"`
}

// CreateTaskView is the create-task screen after a submit.
type CreateTaskView struct {
	Form state.CreateForm `json:"form"`
	Task *domain.Task     `json:"task,omitempty"`
}

// OperationsView lists in-flight operations for loading indicators.
type OperationsView struct {
	// Loading maps each operation name to whether one is in flight.
	Loading map[string]bool     `json:"loading"`
	Pending []usecase.Operation `json:"pending"`
	Recent  []usecase.Operation `json:"recent"`
}

// NewTaskRows attaches row actions to tasks.
func NewTaskRows(tasks []domain.Task, actions []domain.Action) []TaskRow {
	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, TaskRow{Task: t, Actions: actions})
	}
	return rows
}

// EmptyMessage is shown when a filtered list has no tasks.
func EmptyMessage(filter domain.StatusFilter) string {
	if filter == domain.FilterAll {
		return "No tasks available"
	}
	return "No " + strings.ReplaceAll(string(filter), "-", " ") + " tasks"
}
