package tasks_test

import (
	"context"
	"errors"
	"testing"

	"todoctl/internal/service"
	"todoctl/internal/tasks"
	"todoctl/internal/testutil"
)

func fetchedSyncer(t *testing.T, svc *testutil.FakeService) *tasks.Syncer {
	t.Helper()
	s := tasks.NewSyncer(svc)
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	return s
}

func TestFetchReplacesWholesale(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "A", false)
	svc.AddTask(2, "B", true)

	s := fetchedSyncer(t, svc)
	got := s.Tasks()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("unexpected cache after fetch: %v", got)
	}
	if s.Err() != "" {
		t.Errorf("expected no error, got %q", s.Err())
	}
}

func TestFetchFailureSetsError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("connection refused")

	s := tasks.NewSyncer(svc)
	if err := s.Fetch(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if s.Err() == "" {
		t.Error("expected error recorded")
	}
	if s.Loading() {
		t.Error("loading must be cleared after failure")
	}
}

func TestAddAppendsServerRecord(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "A", false)
	s := fetchedSyncer(t, svc)

	created, err := s.Add(context.Background(), "Buy milk")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if created.ID == 0 || created.Name != "Buy milk" || created.Completed {
		t.Errorf("unexpected created task: %+v", created)
	}

	got := s.Tasks()
	if len(got) != 2 || got[1] != created {
		t.Errorf("expected server record appended, got %v", got)
	}
}

func TestAddFailureLeavesCacheUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "A", false)
	s := fetchedSyncer(t, svc)

	svc.CreateTaskErr = errors.New("boom")
	if _, err := s.Add(context.Background(), "Buy milk"); err == nil {
		t.Fatal("expected error")
	}
	if got := s.Tasks(); len(got) != 1 {
		t.Errorf("failed add must not touch the cache, got %v", got)
	}
	if s.Err() == "" {
		t.Error("expected error recorded")
	}
}

func TestToggleNegatesAndReplacesByID(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "A", false)
	svc.AddTask(2, "B", false)
	s := fetchedSyncer(t, svc)

	updated, err := s.Toggle(context.Background(), 1)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !updated.Completed {
		t.Error("expected server echo with completed:true")
	}

	got := s.Tasks()
	if !got[0].Completed {
		t.Error("task 1 should be completed in cache")
	}
	if got[1].Completed {
		t.Error("task 2 must not be mutated")
	}
}

func TestToggleUnknownID(t *testing.T) {
	svc := testutil.NewFakeService()
	s := fetchedSyncer(t, svc)

	if _, err := s.Toggle(context.Background(), 42); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestRename(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "A", false)
	s := fetchedSyncer(t, svc)

	updated, err := s.Rename(context.Background(), 1, "A renamed")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if updated.Name != "A renamed" {
		t.Errorf("unexpected updated record: %+v", updated)
	}
	if got := s.Tasks(); got[0].Name != "A renamed" {
		t.Errorf("cache not updated: %v", got)
	}
}

func TestRemoveFiltersOutByID(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "A", false)
	svc.AddTask(2, "B", false)
	s := fetchedSyncer(t, svc)

	if err := s.Remove(context.Background(), 1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	got := s.Tasks()
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected only task 2 left, got %v", got)
	}
}

func TestRemoveFailureLeavesListAndSetsError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(3, "C", false)
	s := fetchedSyncer(t, svc)

	svc.DeleteTaskErr = errors.New("network down")
	if err := s.Remove(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}
	if got := s.Tasks(); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("failed remove must leave the list unchanged, got %v", got)
	}
	if s.Err() == "" {
		t.Error("expected non-empty error indicator")
	}
}

// TestStaleResponseNotApplied pins the per-id request versioning: a response
// belonging to a superseded request must not overwrite the newer state.
func TestStaleResponseNotApplied(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "A", false)
	s := fetchedSyncer(t, svc)

	release := make(chan struct{})
	blocked := make(chan struct{})
	var gateUsed bool
	svc.UpdateTaskGate = func(id int, patch service.TaskPatch) {
		if !gateUsed {
			gateUsed = true
			close(blocked)
			<-release
		}
	}

	// First rename stalls inside the fake backend.
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		s.Rename(context.Background(), 1, "old name")
	}()
	<-blocked

	// Second rename completes while the first is still in flight.
	if _, err := s.Rename(context.Background(), 1, "new name"); err != nil {
		t.Fatalf("second rename failed: %v", err)
	}

	// Let the first response arrive late.
	close(release)
	<-firstDone

	if got := s.Tasks(); got[0].Name != "new name" {
		t.Errorf("stale response overwrote newer state: %v", got)
	}
}
