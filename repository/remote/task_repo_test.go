package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/repository"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  fasthttp.RequestHandler
}

func (f *fakeAPI) serve(ctx *fasthttp.RequestCtx) {
	req := recordedRequest{
		Method: string(ctx.Method()),
		Path:   string(ctx.Path()),
	}
	if len(ctx.PostBody()) > 0 {
		_ = json.Unmarshal(ctx.PostBody(), &req.Body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	f.handler(ctx)
}

func (f *fakeAPI) calls() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func newTestRepo(t *testing.T, handler fasthttp.RequestHandler) (repository.TaskRepository, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{handler: handler}
	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: api.serve}
	go func() { _ = server.Serve(ln) }()
	t.Cleanup(func() {
		_ = server.Shutdown()
		_ = ln.Close()
	})

	client := NewClient(Options{
		BaseURL: "http://tasks.test/",
		Timeout: 2 * time.Second,
		Dial: func(addr string) (net.Conn, error) {
			return ln.Dial()
		},
	}, nil)
	return NewTaskRepository(client), api
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body string) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(body)
}

func TestListNormalizesRecords(t *testing.T) {
	repo, api := newTestRepo(t, func(ctx *fasthttp.RequestCtx) {
		writeJSON(ctx, 200, `[
			{"_id":"abc","TaskTitle":"Write report","TaskDescription":"finish doc","status":"in-progress","priority":"high","createdAt":"2025-01-01T10:00:00.000Z","assignedTo":"John"},
			{"_id":42,"TaskTitle":"Bare","TaskDescription":"no extras","createdAt":"2025-01-02T00:00:00Z"},
			{"_id":"x","TaskTitle":"Odd","status":"archived","priority":"urgent"}
		]`)
	})

	tasks, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(tasks))
	}

	first := tasks[0]
	if first.ID != "abc" || first.Title != "Write report" || first.Status != domain.StatusInProgress ||
		first.Priority != domain.PriorityHigh || first.AssignedTo != "John" {
		t.Errorf("Unexpected first task %+v", first)
	}
	if !first.CreatedAt.Equal(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected createdAt %v", first.CreatedAt)
	}

	second := tasks[1]
	if second.ID != "42" || second.Status != domain.StatusPending || second.Priority != domain.PriorityMedium || second.AssignedTo != "" {
		t.Errorf("Expected defaults on bare record, got %+v", second)
	}
	if tasks[2].Status != domain.StatusPending || tasks[2].Priority != domain.PriorityMedium {
		t.Errorf("Expected unknown enums to normalize, got %+v", tasks[2])
	}

	calls := api.calls()
	if len(calls) != 1 || calls[0].Method != "GET" || calls[0].Path != "/api/tasks" {
		t.Errorf("Unexpected requests %+v", calls)
	}
}

func TestListReportsServerError(t *testing.T) {
	repo, _ := newTestRepo(t, func(ctx *fasthttp.RequestCtx) {
		writeJSON(ctx, 500, `{"message":"boom"}`)
	})
	tasks, err := repo.List(context.Background())
	if tasks != nil {
		t.Errorf("Expected no tasks, got %v", tasks)
	}
	if domain.UpstreamStatus(err) != 500 {
		t.Fatalf("Expected ServerError{500}, got %v", err)
	}
}

func TestListReportsMalformedBody(t *testing.T) {
	repo, _ := newTestRepo(t, func(ctx *fasthttp.RequestCtx) {
		writeJSON(ctx, 200, `<html>`)
	})
	if _, err := repo.List(context.Background()); !domain.IsDomainError(err, domain.ErrCodeNetwork) {
		t.Fatalf("Expected network classification, got %v", err)
	}
}

func TestNetworkError(t *testing.T) {
	client := NewClient(Options{
		BaseURL: "http://tasks.test",
		Timeout: time.Second,
		Dial: func(addr string) (net.Conn, error) {
			return nil, errors.New("connection refused")
		},
	}, nil)
	repo := NewTaskRepository(client)
	_, err := repo.List(context.Background())
	if !domain.IsDomainError(err, domain.ErrCodeNetwork) {
		t.Fatalf("Expected NetworkError, got %v", err)
	}
}

func TestCreateSendsISODueDate(t *testing.T) {
	repo, api := newTestRepo(t, func(ctx *fasthttp.RequestCtx) {
		writeJSON(ctx, 201, `{"_id":"new1","TaskTitle":"Write report","TaskDescription":"finish doc","createdAt":"2025-01-01T09:00:00.000Z"}`)
	})

	due := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	task, err := repo.Create(context.Background(), repository.CreateInput{Title: "Write report", Description: "finish doc", DueDate: due})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ID != "new1" || task.Status != domain.StatusPending {
		t.Errorf("Unexpected created task %+v", task)
	}

	calls := api.calls()
	if len(calls) != 1 || calls[0].Method != "POST" || calls[0].Path != "/api/tasks" {
		t.Fatalf("Unexpected requests %+v", calls)
	}
	body := calls[0].Body
	if body["TaskTitle"] != "Write report" || body["TaskDescription"] != "finish doc" {
		t.Errorf("Unexpected body %v", body)
	}
	if body["TaskDuedate"] != "2025-01-01T10:00:00.000Z" {
		t.Errorf("Expected ISO due date, got %v", body["TaskDuedate"])
	}
}

func TestCreateWithoutRecordFallsBack(t *testing.T) {
	repo, _ := newTestRepo(t, func(ctx *fasthttp.RequestCtx) {
		writeJSON(ctx, 201, `{"message":"created"}`)
	})
	task, err := repo.Create(context.Background(), repository.CreateInput{Title: "t", DueDate: time.Now()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ID != "" || task.Title != "t" {
		t.Errorf("Expected fallback task without id, got %+v", task)
	}
}

func TestCreateServerError(t *testing.T) {
	repo, _ := newTestRepo(t, func(ctx *fasthttp.RequestCtx) {
		writeJSON(ctx, 422, `{"error":"bad"}`)
	})
	_, err := repo.Create(context.Background(), repository.CreateInput{Title: "t", DueDate: time.Now()})
	if domain.UpstreamStatus(err) != 422 {
		t.Fatalf("Expected ServerError{422}, got %v", err)
	}
}

func TestReplaceResendsFullRecord(t *testing.T) {
	repo, api := newTestRepo(t, func(ctx *fasthttp.RequestCtx) {
		writeJSON(ctx, 200, `{"_id":"abc","TaskTitle":"Write report","TaskDescription":"finish doc","status":"completed","priority":"high"}`)
	})

	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	task := domain.Task{
		ID:          "abc",
		Title:       "Write report",
		Description: "finish doc",
		Status:      domain.StatusCompleted,
		Priority:    domain.PriorityHigh,
		CreatedAt:   created,
	}
	updated, err := repo.Replace(context.Background(), task)
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if updated.Status != domain.StatusCompleted || !updated.CreatedAt.Equal(created) {
		t.Errorf("Unexpected updated task %+v", updated)
	}

	calls := api.calls()
	if len(calls) != 1 || calls[0].Method != "PUT" || calls[0].Path != "/api/tasks/abc" {
		t.Fatalf("Unexpected requests %+v", calls)
	}
	want := map[string]interface{}{
		"TaskTitle":       "Write report",
		"TaskDescription": "finish doc",
		"TaskDuedate":     "2025-01-01T10:00:00.000Z",
		"status":          "completed",
		"priority":        "high",
	}
	for k, v := range want {
		if calls[0].Body[k] != v {
			t.Errorf("Expected %s=%v, got %v", k, v, calls[0].Body[k])
		}
	}
}

func TestReplaceWithoutCreatedAtFailsLocally(t *testing.T) {
	repo, api := newTestRepo(t, func(ctx *fasthttp.RequestCtx) {
		writeJSON(ctx, 200, `{}`)
	})
	_, err := repo.Replace(context.Background(), domain.Task{ID: "abc", Status: domain.StatusCompleted})
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("Expected InvalidInput, got %v", err)
	}
	if len(api.calls()) != 0 {
		t.Errorf("Expected no network call")
	}
}

func TestDelete(t *testing.T) {
	repo, api := newTestRepo(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) == "/api/tasks/missing" {
			writeJSON(ctx, 404, `{}`)
			return
		}
		ctx.SetStatusCode(204)
	})

	if err := repo.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(context.Background(), "missing"); domain.UpstreamStatus(err) != 404 {
		t.Errorf("Expected ServerError{404}, got %v", err)
	}
	calls := api.calls()
	if len(calls) != 2 || calls[0].Method != "DELETE" || calls[0].Path != "/api/tasks/abc" {
		t.Errorf("Unexpected requests %+v", calls)
	}
}

func TestCanceledContextSkipsNetwork(t *testing.T) {
	repo, api := newTestRepo(t, func(ctx *fasthttp.RequestCtx) {
		writeJSON(ctx, 200, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.List(ctx); !domain.IsDomainError(err, domain.ErrCodeNetwork) {
		t.Fatalf("Expected NetworkError, got %v", err)
	}
	if len(api.calls()) != 0 {
		t.Errorf("Expected no request for a canceled context")
	}
}
