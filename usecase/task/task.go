package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/internal/state"
	appLogger "github.com/fastygo/taskspace/pkg/logger"
	"github.com/fastygo/taskspace/repository"
	"github.com/fastygo/taskspace/usecase"
)

// Operation names reported to the tracker.
const (
	OpListTasks  = "list_tasks"
	OpCreateTask = "create_task"
	OpUpdateTask = "update_task"
	OpDeleteTask = "delete_task"
)

// OperationNames lists every tracked operation.
var OperationNames = []string{OpListTasks, OpCreateTask, OpUpdateTask, OpDeleteTask}

// Options tune the use case.
type Options struct {
	// DueDateLocation interprets zone-less due dates. Defaults to UTC.
	DueDateLocation *time.Location
}

type UseCase struct {
	tasks    repository.TaskRepository
	list     *state.TaskList
	activity usecase.ActivityRecorder
	tracker  *usecase.Tracker
	loc      *time.Location
	logger   *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	list *state.TaskList,
	activity usecase.ActivityRecorder,
	tracker *usecase.Tracker,
	opts Options,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if list == nil {
		list = state.NewTaskList()
	}
	if tracker == nil {
		tracker = usecase.NewTracker()
	}
	if opts.DueDateLocation == nil {
		opts.DueDateLocation = time.UTC
	}
	return &UseCase{
		tasks:    tasks,
		list:     list,
		activity: activity,
		tracker:  tracker,
		loc:      opts.DueDateLocation,
		logger:   logger,
	}
}

// ListResult is what the task list view renders.
type ListResult struct {
	Tasks []domain.Task
	// FetchedAt is when Tasks was last confirmed by the task API.
	FetchedAt time.Time
	// FetchErr is set when the refresh failed and Tasks is the previous cache.
	FetchErr error
}

// Refresh refetches the task set. A fetch that resolves after the view was
// abandoned is dropped. On failure the previous cache is returned together
// with the fetch error.
func (uc *UseCase) Refresh(ctx context.Context) ListResult {
	gen := uc.list.Current()
	op := uc.tracker.Begin(OpListTasks)

	tasks, err := uc.tasks.List(ctx)
	op.Finish(err)
	if err != nil {
		uc.log(ctx).Warn("task fetch failed", zap.Error(err))
		return ListResult{Tasks: uc.list.Snapshot(), FetchedAt: uc.list.FetchedAt(), FetchErr: err}
	}
	if !uc.list.Replace(gen, tasks) {
		uc.log(ctx).Debug("discarded task list for abandoned view")
	}
	return ListResult{Tasks: uc.list.Snapshot(), FetchedAt: uc.list.FetchedAt()}
}

// ListTasks refreshes and applies the status filter.
func (uc *UseCase) ListTasks(ctx context.Context, filter domain.StatusFilter) ListResult {
	res := uc.Refresh(ctx)
	res.Tasks = domain.FilterByStatus(res.Tasks, filter)
	return res
}

// CreateTask validates the form's due date, submits it and updates the form:
// cleared on success, kept with a message on failure. An unparseable due date
// never reaches the network.
func (uc *UseCase) CreateTask(ctx context.Context, session domain.Session, form *state.CreateForm) (*domain.Task, error) {
	if form == nil {
		return nil, domain.ErrInvalidPayload
	}
	if !domain.CanView(session.Role, domain.ViewCreateTask) {
		return nil, domain.ErrForbidden
	}

	due, err := ParseDueDate(form.DueDate, uc.loc)
	if err != nil {
		form.Fail(state.MessageInvalidDueDate)
		return nil, err
	}

	gen := uc.list.Current()
	op := uc.tracker.Begin(OpCreateTask)
	created, err := uc.tasks.Create(ctx, repository.CreateInput{
		Title:       form.Title,
		Description: form.Description,
		DueDate:     due,
	})
	op.Finish(err)
	if err != nil {
		uc.log(ctx).Error("create task failed", zap.Error(err))
		form.Fail(state.MessageCreateFailed)
		return nil, err
	}

	form.Succeed()
	if created.ID != "" {
		uc.list.Append(gen, *created)
	}
	uc.record(ctx, usecase.ActivityCreate, *created, session)
	uc.log(ctx).Info("task created", zap.String("task_id", created.ID))
	return created, nil
}

// ToggleStatus flips a cached task between completed and pending through a
// full-replace update and applies the confirmed result.
func (uc *UseCase) ToggleStatus(ctx context.Context, session domain.Session, id string) (*domain.Task, error) {
	return uc.update(ctx, session, id, domain.ActionToggle, func(t *domain.Task) error {
		t.Status = domain.ToggleStatus(t.Status)
		return nil
	})
}

// EditInput carries the editable fields. Empty fields keep the cached value.
type EditInput struct {
	Title       string
	Description string
	Priority    domain.Priority
}

// EditTask resends the full record with edited fields.
func (uc *UseCase) EditTask(ctx context.Context, session domain.Session, id string, in EditInput) (*domain.Task, error) {
	return uc.update(ctx, session, id, domain.ActionEdit, func(t *domain.Task) error {
		if in.Priority != "" && !in.Priority.Valid() {
			return domain.InvalidInput("invalid priority")
		}
		if title := strings.TrimSpace(in.Title); title != "" {
			t.Title = title
		}
		if in.Description != "" {
			t.Description = in.Description
		}
		if in.Priority != "" {
			t.Priority = in.Priority
		}
		return nil
	})
}

func (uc *UseCase) update(ctx context.Context, session domain.Session, id string, action domain.Action, mutate func(*domain.Task) error) (*domain.Task, error) {
	if !domain.CanPerform(session.Role, action) {
		return nil, domain.ErrForbidden
	}
	gen := uc.list.Current()
	task, ok := uc.list.Find(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	prev := task.Status
	if err := mutate(&task); err != nil {
		return nil, err
	}

	op := uc.tracker.Begin(OpUpdateTask)
	updated, err := uc.tasks.Replace(ctx, task)
	op.Finish(err)
	if err != nil {
		uc.log(ctx).Error("update task failed", zap.String("task_id", id), zap.Error(err))
		return nil, err
	}

	if !uc.list.Put(gen, *updated) {
		uc.log(ctx).Debug("discarded update for abandoned view", zap.String("task_id", id))
	}
	activity := usecase.ActivityUpdate
	if prev != domain.StatusCompleted && updated.Status == domain.StatusCompleted {
		activity = usecase.ActivityComplete
	}
	uc.record(ctx, activity, *updated, session)
	return updated, nil
}

// DeleteTask removes the task upstream and, once confirmed, from the cache.
func (uc *UseCase) DeleteTask(ctx context.Context, session domain.Session, id string) error {
	if !domain.CanPerform(session.Role, domain.ActionDelete) {
		return domain.ErrForbidden
	}
	if id == "" {
		return domain.ErrTaskNotFound
	}
	gen := uc.list.Current()

	op := uc.tracker.Begin(OpDeleteTask)
	err := uc.tasks.Delete(ctx, id)
	op.Finish(err)
	if err != nil {
		uc.log(ctx).Error("delete task failed", zap.String("task_id", id), zap.Error(err))
		return err
	}

	uc.list.Remove(gen, id)
	uc.record(ctx, usecase.ActivityDelete, domain.Task{ID: id}, session)
	return nil
}

// Dashboard refreshes the list and summarizes it. Weekly progress comes from
// the activity journal.
func (uc *UseCase) Dashboard(ctx context.Context, session domain.Session) (domain.DashboardStats, error) {
	if !domain.CanView(session.Role, domain.ViewDashboard) {
		return domain.DashboardStats{}, domain.ErrForbidden
	}
	res := uc.Refresh(ctx)
	stats := domain.ComputeStats(res.Tasks)

	now := time.Now()
	var completions []time.Time
	if uc.activity != nil {
		var err error
		completions, err = uc.activity.Completions(ctx, now.Add(-7*24*time.Hour))
		if err != nil {
			uc.log(ctx).Warn("weekly progress unavailable", zap.Error(err))
		}
	}
	stats.Weekly = domain.WeeklyCounts(completions, now)
	return stats, res.FetchErr
}

// Operations exposes the tracker for loading indicators.
func (uc *UseCase) Operations() *usecase.Tracker {
	return uc.tracker
}

func (uc *UseCase) record(ctx context.Context, action string, task domain.Task, session domain.Session) {
	if uc.activity == nil {
		return
	}
	if err := uc.activity.RecordTask(ctx, action, task, session.Username); err != nil {
		uc.log(ctx).Warn("failed to journal task activity", zap.String("action", action), zap.Error(err))
	}
}

func (uc *UseCase) log(ctx context.Context) *zap.Logger {
	return appLogger.WithRequestID(ctx, uc.logger)
}

// IsFetchFailure reports whether err came from the remote API rather than local validation.
func IsFetchFailure(err error) bool {
	return domain.IsDomainError(err, domain.ErrCodeNetwork) || domain.IsDomainError(err, domain.ErrCodeUpstream) ||
		errors.Is(err, context.DeadlineExceeded)
}
