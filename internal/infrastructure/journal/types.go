package journal

import (
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/taskspace/domain"
)

const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	// ActionComplete is an update that moved a task into completed.
	ActionComplete = "complete"
)

// Entry records one confirmed task mutation.
type Entry struct {
	ID        string        `json:"id"`
	TaskID    string        `json:"task_id"`
	Action    string        `json:"action"`
	Status    domain.Status `json:"status,omitempty"`
	Username  string        `json:"username,omitempty"`
	Timestamp time.Time     `json:"timestamp"`

	key []byte
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}

// Completed reports whether the mutation moved the task into completed.
func (e Entry) Completed() bool {
	return e.Action == ActionComplete
}
