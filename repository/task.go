package repository

import (
	"context"
	"time"

	"github.com/fastygo/taskspace/domain"
)

// CreateInput is the payload accepted by the remote task API on create.
type CreateInput struct {
	Title       string
	Description string
	DueDate     time.Time
}

// TaskRepository is the task client contract. Updates are full replacements:
// every known field is resent because the remote API has no partial patch.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, input CreateInput) (*domain.Task, error)
	Replace(ctx context.Context, task domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
