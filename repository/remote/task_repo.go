package remote

import (
	"context"
	"errors"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/repository"
)

const tasksPath = "/api/tasks"

type taskRepository struct {
	client *Client
}

// NewTaskRepository returns a TaskRepository backed by the remote task API.
func NewTaskRepository(client *Client) repository.TaskRepository {
	return &taskRepository{client: client}
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	var records []taskRecord
	if _, err := r.client.Do(ctx, fasthttp.MethodGet, tasksPath, nil, &records); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, rec.normalize())
	}
	return tasks, nil
}

// Create submits a new task. When the response body carries no usable record
// the returned task has an empty ID and callers should refetch.
func (r *taskRepository) Create(ctx context.Context, input repository.CreateInput) (*domain.Task, error) {
	payload := createPayload{
		TaskTitle:       input.Title,
		TaskDescription: input.Description,
		TaskDuedate:     FormatISO(input.DueDate),
	}
	var rec taskRecord
	if _, err := r.client.Do(ctx, fasthttp.MethodPost, tasksPath, payload, &rec); err != nil {
		// A 2xx with an unreadable body still created the task upstream.
		if errors.Is(err, ErrMalformedResponse) {
			return r.fallback(input), nil
		}
		return nil, err
	}
	if rec.ID == "" {
		return r.fallback(input), nil
	}
	task := rec.normalize()
	return &task, nil
}

func (r *taskRepository) Replace(ctx context.Context, task domain.Task) (*domain.Task, error) {
	if task.ID == "" {
		return nil, domain.ErrTaskNotFound
	}
	if task.CreatedAt.IsZero() {
		return nil, domain.InvalidInput("task has no creation time to derive a due date from")
	}
	payload := replacePayload{
		TaskTitle:       task.Title,
		TaskDescription: task.Description,
		TaskDuedate:     FormatISO(task.CreatedAt),
		Status:          task.Status,
		Priority:        task.Priority,
	}
	var rec taskRecord
	if _, err := r.client.Do(ctx, fasthttp.MethodPut, taskPath(task.ID), payload, &rec); err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			return &task, nil
		}
		return nil, err
	}
	if rec.ID != "" && string(rec.ID) == task.ID {
		updated := rec.normalize()
		if updated.CreatedAt.IsZero() {
			updated.CreatedAt = task.CreatedAt
		}
		return &updated, nil
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrTaskNotFound
	}
	_, err := r.client.Do(ctx, fasthttp.MethodDelete, taskPath(id), nil, nil)
	return err
}

func (r *taskRepository) fallback(input repository.CreateInput) *domain.Task {
	return &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
	}
}

func taskPath(id string) string {
	return tasksPath + "/" + url.PathEscape(id)
}
