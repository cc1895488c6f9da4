package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/internal/infrastructure/journal"
	"github.com/fastygo/taskspace/usecase"
)

func openJournal(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"), "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestJournalBridgeCompletions(t *testing.T) {
	store := openJournal(t)
	bridge := NewJournalBridge(store)
	ctx := context.Background()

	records := []struct {
		action string
		task   domain.Task
	}{
		{usecase.ActivityCreate, domain.Task{ID: "1", Status: domain.StatusPending}},
		{usecase.ActivityComplete, domain.Task{ID: "1", Status: domain.StatusCompleted}},
		{usecase.ActivityDelete, domain.Task{ID: "1"}},
		{usecase.ActivityComplete, domain.Task{ID: "2", Status: domain.StatusCompleted}},
		{usecase.ActivityUpdate, domain.Task{ID: "2", Status: domain.StatusCompleted}},
	}
	for _, r := range records {
		if err := bridge.RecordTask(ctx, r.action, r.task, "sheraz"); err != nil {
			t.Fatalf("RecordTask failed: %v", err)
		}
	}

	got, err := bridge.Completions(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Completions failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 completions, got %d", len(got))
	}

	entries, _ := store.Since(time.Now().Add(-time.Hour))
	if len(entries) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(entries))
	}
	deletes := 0
	for _, e := range entries {
		if e.Username != "sheraz" {
			t.Errorf("Unexpected username %q", e.Username)
		}
		if e.Action == journal.ActionDelete {
			deletes++
		}
	}
	if deletes != 1 {
		t.Errorf("Expected one delete entry, got %d", deletes)
	}
}

func TestJournalPrunerPrune(t *testing.T) {
	store := openJournal(t)
	now := time.Now()
	_ = store.Append(journal.Entry{TaskID: "old", Action: journal.ActionUpdate, Timestamp: now.Add(-72 * time.Hour)})
	_ = store.Append(journal.Entry{TaskID: "new", Action: journal.ActionUpdate, Timestamp: now.Add(-time.Hour)})

	pruner, err := NewJournalPruner(store, nil, PrunerConfig{Interval: time.Minute, Retention: 24 * time.Hour})
	if err != nil {
		t.Fatalf("NewJournalPruner failed: %v", err)
	}
	pruner.now = func() time.Time { return now }

	removed, err := pruner.Prune()
	if err != nil || removed != 1 {
		t.Fatalf("Expected 1 removed entry, got %d (%v)", removed, err)
	}
	if size, _ := store.Size(); size != 1 {
		t.Errorf("Expected 1 remaining entry, got %d", size)
	}

	pruner.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pruner.Stop(ctx)
}
