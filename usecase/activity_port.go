package usecase

import (
	"context"
	"time"

	"github.com/fastygo/taskspace/domain"
)

const (
	ActivityCreate   = "create"
	ActivityUpdate   = "update"
	ActivityDelete   = "delete"
	// ActivityComplete is an update that moved a task into completed.
	ActivityComplete = "complete"
)

// ActivityRecorder abstracts the activity journal so use cases stay storage-agnostic.
type ActivityRecorder interface {
	RecordTask(ctx context.Context, action string, task domain.Task, username string) error
	Completions(ctx context.Context, since time.Time) ([]time.Time, error)
}
