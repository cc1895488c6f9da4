package usecase

import (
	"errors"
	"testing"
)

func TestTrackerLifecycle(t *testing.T) {
	tr := NewTracker()
	list := tr.Begin("list_tasks")
	create := tr.Begin("create_task")

	if !tr.Busy("list_tasks") || len(tr.Pending()) != 2 {
		t.Fatalf("Expected two pending operations")
	}

	list.Succeed()
	create.Fail(errors.New("boom"))
	create.Succeed()

	if tr.Busy("list_tasks") || len(tr.Pending()) != 0 {
		t.Errorf("Expected nothing in flight")
	}
	recent := tr.Recent()
	if len(recent) != 2 {
		t.Fatalf("Expected 2 finished operations, got %d", len(recent))
	}
	if recent[0].State != OperationSucceeded || recent[0].FinishedAt == nil {
		t.Errorf("Unexpected first operation %+v", recent[0])
	}
	if recent[1].State != OperationFailed || recent[1].Error != "boom" {
		t.Errorf("Expected failed operation to keep its error, got %+v", recent[1])
	}
}

func TestTrackerHistoryIsBounded(t *testing.T) {
	tr := NewTracker()
	for i := 0; i < historyLimit+10; i++ {
		tr.Begin("op").Finish(nil)
	}
	if got := len(tr.Recent()); got != historyLimit {
		t.Errorf("Expected %d entries, got %d", historyLimit, got)
	}
}
