package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskspace/api/transport"
	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/internal/state"
	"github.com/fastygo/taskspace/pkg/httpcontext"
	taskUC "github.com/fastygo/taskspace/usecase/task"
)

// MessageFetchFailed is shown when the task list could not be refreshed.
const MessageFetchFailed = "Failed to load tasks. Showing the last known list."

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	session, ok := h.session(ctx)
	if !ok {
		return
	}
	filter, err := domain.ParseStatusFilter(string(ctx.QueryArgs().Peek("status")))
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	res := h.uc.ListTasks(stdCtx, filter)
	view := transport.TaskListView{
		Filter: filter,
		Tasks:  transport.NewTaskRows(res.Tasks, domain.RowActions(session.Role)),
	}
	if !res.FetchedAt.IsZero() {
		view.FetchedAt = &res.FetchedAt
	}
	if len(view.Tasks) == 0 {
		view.Empty = transport.EmptyMessage(filter)
	}

	var meta interface{}
	if res.FetchErr != nil {
		view.Message = MessageFetchFailed
		meta = fetchMeta(res.FetchErr)
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(view, meta))
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	session, ok := h.session(ctx)
	if !ok {
		return
	}
	var req transport.CreateTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	form := state.CreateForm{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	created, err := h.uc.CreateTask(stdCtx, session, &form)
	if err != nil {
		status, code := mapError(err)
		env := transport.NewError(code, err.Error(), errorMeta(err))
		h.respondJSON(ctx, status, env.WithData(transport.CreateTaskView{Form: form}))
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.CreateTaskView{Form: form, Task: created})
}

// @Summary Toggle task status
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	session, id, ok := h.rowAction(ctx, domain.ActionToggle)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.ToggleStatus(stdCtx, session, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.TaskRow{Task: *updated, Actions: domain.RowActions(session.Role)})
}

// @Summary Edit task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	session, id, ok := h.rowAction(ctx, domain.ActionEdit)
	if !ok {
		return
	}
	var req transport.EditTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.EditTask(stdCtx, session, id, taskUC.EditInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(strings.ToLower(strings.TrimSpace(req.Priority))),
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.TaskRow{Task: *updated, Actions: domain.RowActions(session.Role)})
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	session, id, ok := h.rowAction(ctx, domain.ActionDelete)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, session, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"id": id})
}

// @Summary Dashboard statistics
// @Tags tasks
// @Router /api/v1/dashboard [get]
func (h *TaskHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	session, ok := h.session(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Dashboard(stdCtx, session)
	if err != nil && !taskUC.IsFetchFailure(err) {
		h.respondError(ctx, err)
		return
	}
	var meta interface{}
	if err != nil {
		h.log(stdCtx).Warn("dashboard rendered from cached tasks", zap.Error(err))
		meta = fetchMeta(err)
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(stats, meta))
}

// @Summary In-flight operations
// @Tags tasks
// @Router /api/v1/operations [get]
func (h *TaskHandler) Operations(ctx *fasthttp.RequestCtx) {
	tracker := h.uc.Operations()
	loading := make(map[string]bool, len(taskUC.OperationNames))
	for _, name := range taskUC.OperationNames {
		loading[name] = tracker.Busy(name)
	}
	h.respondSuccess(ctx, http.StatusOK, transport.OperationsView{
		Loading: loading,
		Pending: tracker.Pending(),
		Recent:  tracker.Recent(),
	})
}

// rowAction resolves the session and task id and checks the row action for the role.
func (h *TaskHandler) rowAction(ctx *fasthttp.RequestCtx, action domain.Action) (domain.Session, string, bool) {
	session, ok := h.session(ctx)
	if !ok {
		return domain.Session{}, "", false
	}
	if !domain.CanPerform(session.Role, action) {
		h.respondError(ctx, domain.ErrForbidden)
		return domain.Session{}, "", false
	}
	id, _ := ctx.UserValue("id").(string)
	if strings.TrimSpace(id) == "" {
		h.respondInvalid(ctx, "missing task id")
		return domain.Session{}, "", false
	}
	return session, id, true
}

func fetchMeta(err error) map[string]interface{} {
	meta := map[string]interface{}{"fetch_error": err.Error()}
	if upstream := domain.UpstreamStatus(err); upstream != 0 {
		meta["upstream_status"] = upstream
	}
	return meta
}
