// Package state holds the dashboard's in-memory view state: the cached task
// list and the create-task form.
package state

import (
	"sync"
	"time"

	"github.com/fastygo/taskspace/domain"
)

// Generation changes only when the view is abandoned (logout or user switch).
// Results of requests started under an older generation are discarded.
type Generation uint64

// TaskList is the last successfully fetched task sequence.
type TaskList struct {
	mu        sync.RWMutex
	tasks     []domain.Task
	gen       Generation
	fetchedAt time.Time
}

func NewTaskList() *TaskList {
	return &TaskList{}
}

// Abandon invalidates in-flight results and drops the cache.
func (l *TaskList) Abandon() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.tasks = nil
	l.fetchedAt = time.Time{}
}

// Current returns the active generation without starting a new one.
func (l *TaskList) Current() Generation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.gen
}

// Snapshot returns a copy of the cached tasks.
func (l *TaskList) Snapshot() []domain.Task {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.Task(nil), l.tasks...)
}

// FetchedAt is the time of the last applied fetch.
func (l *TaskList) FetchedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fetchedAt
}

// Find returns the cached task with id.
func (l *TaskList) Find(id string) (domain.Task, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, t := range l.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// Replace installs a freshly fetched sequence. It reports false when gen is stale.
func (l *TaskList) Replace(gen Generation, tasks []domain.Task) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	l.tasks = append([]domain.Task(nil), tasks...)
	l.fetchedAt = time.Now()
	return true
}

// Append adds a confirmed new task to the end of the list.
func (l *TaskList) Append(gen Generation, task domain.Task) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	l.tasks = append(l.tasks, task)
	return true
}

// Put overwrites the cached task with the same id. The last confirmed
// response to arrive wins.
func (l *TaskList) Put(gen Generation, task domain.Task) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	for i := range l.tasks {
		if l.tasks[i].ID == task.ID {
			l.tasks[i] = task
			return true
		}
	}
	return false
}

// Remove drops the task with id after a confirmed delete.
func (l *TaskList) Remove(gen Generation, id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	out := l.tasks[:0:0]
	removed := false
	for _, t := range l.tasks {
		if t.ID == id {
			removed = true
			continue
		}
		out = append(out, t)
	}
	l.tasks = out
	return removed
}
