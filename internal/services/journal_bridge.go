package services

import (
	"context"
	"time"

	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/internal/infrastructure/journal"
	"github.com/fastygo/taskspace/usecase"
)

// JournalBridge adapts the bbolt journal to the use case activity port.
type JournalBridge struct {
	store *journal.Store
}

func NewJournalBridge(store *journal.Store) *JournalBridge {
	return &JournalBridge{store: store}
}

func (b *JournalBridge) RecordTask(ctx context.Context, action string, task domain.Task, username string) error {
	if b.store == nil {
		return domain.ErrInvalidPayload
	}
	entry := journal.Entry{
		TaskID:   task.ID,
		Action:   toJournalAction(action),
		Status:   task.Status,
		Username: username,
	}
	return b.store.Append(entry)
}

// Completions returns the times at which tasks were moved into completed.
func (b *JournalBridge) Completions(ctx context.Context, since time.Time) ([]time.Time, error) {
	if b.store == nil {
		return nil, nil
	}
	entries, err := b.store.Since(since)
	if err != nil {
		return nil, err
	}
	var out []time.Time
	for _, e := range entries {
		if e.Completed() {
			out = append(out, e.Timestamp)
		}
	}
	return out, nil
}

func toJournalAction(action string) string {
	switch action {
	case usecase.ActivityCreate:
		return journal.ActionCreate
	case usecase.ActivityDelete:
		return journal.ActionDelete
	case usecase.ActivityComplete:
		return journal.ActionComplete
	default:
		return journal.ActionUpdate
	}
}

var _ usecase.ActivityRecorder = (*JournalBridge)(nil)
