package usecase

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// OperationState is the lifecycle of one asynchronous view operation.
type OperationState string

const (
	OperationPending   OperationState = "pending"
	OperationSucceeded OperationState = "succeeded"
	OperationFailed    OperationState = "failed"
)

const historyLimit = 50

// Operation is a snapshot of a tracked operation. Loading indicators are bound
// to the pending ones.
type Operation struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	State      OperationState `json:"state"`
	Error      string         `json:"error,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
}

// Tracker records operations from start to finish.
type Tracker struct {
	mu       sync.RWMutex
	inflight map[string]*Operation
	history  []Operation
}

func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[string]*Operation)}
}

// Handle finishes one operation.
type Handle struct {
	tracker *Tracker
	id      string
}

// Begin registers a pending operation.
func (t *Tracker) Begin(name string) *Handle {
	op := &Operation{
		ID:        uuid.NewString(),
		Name:      name,
		State:     OperationPending,
		StartedAt: time.Now(),
	}
	t.mu.Lock()
	t.inflight[op.ID] = op
	t.mu.Unlock()
	return &Handle{tracker: t, id: op.ID}
}

// Succeed marks the operation succeeded.
func (h *Handle) Succeed() {
	h.tracker.finish(h.id, OperationSucceeded, nil)
}

// Fail marks the operation failed with err.
func (h *Handle) Fail(err error) {
	h.tracker.finish(h.id, OperationFailed, err)
}

// Finish picks Succeed or Fail from err.
func (h *Handle) Finish(err error) {
	if err != nil {
		h.Fail(err)
		return
	}
	h.Succeed()
}

func (t *Tracker) finish(id string, state OperationState, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	op, ok := t.inflight[id]
	if !ok {
		return
	}
	delete(t.inflight, id)
	now := time.Now()
	op.State = state
	op.FinishedAt = &now
	if err != nil {
		op.Error = err.Error()
	}
	t.history = append(t.history, *op)
	if len(t.history) > historyLimit {
		t.history = t.history[len(t.history)-historyLimit:]
	}
}

// Pending lists in-flight operations, oldest first.
func (t *Tracker) Pending() []Operation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Operation, 0, len(t.inflight))
	for _, op := range t.inflight {
		out = append(out, *op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// Recent lists finished operations, oldest first.
func (t *Tracker) Recent() []Operation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Operation(nil), t.history...)
}

// Busy reports whether an operation with name is in flight.
func (t *Tracker) Busy(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, op := range t.inflight {
		if op.Name == name {
			return true
		}
	}
	return false
}
