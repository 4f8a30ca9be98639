// Package tasks keeps a local cache of the user's task list in sync with
// the server.
//
// The cache is strictly read-through: every mutation round-trips to the
// server first, and the local list only changes in reaction to a successful
// response. A failed request leaves the cache untouched and records an
// error message instead.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"todoctl/internal/service"
)

// Syncer owns the in-memory task list.
type Syncer struct {
	svc service.Service

	mu      sync.Mutex
	tasks   []service.Task
	loading bool
	lastErr string
	seq     map[int]uint64
}

// NewSyncer creates a Syncer with an empty cache.
func NewSyncer(svc service.Service) *Syncer {
	return &Syncer{svc: svc, seq: make(map[int]uint64)}
}

// Fetch replaces the cache wholesale with the server's task list.
func (s *Syncer) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	list, err := s.svc.ListTasks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.tasks = list
	return nil
}

// Add creates a task on the server and appends the returned record, with
// its server-assigned id, to the cache. On failure nothing was added, so
// there is nothing to roll back.
func (s *Syncer) Add(ctx context.Context, name string) (service.Task, error) {
	created, err := s.svc.CreateTask(ctx, name)
	if err != nil {
		s.setErr(err)
		return service.Task{}, err
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, created)
	s.lastErr = ""
	s.mu.Unlock()
	return created, nil
}

// Toggle flips the completed flag of the task with the given id. The target
// value is the negation of the value read from the cache at call time: two
// rapid toggles of the same id both read the pre-toggle value, so the second
// may send the same target as the first.
func (s *Syncer) Toggle(ctx context.Context, id int) (service.Task, error) {
	s.mu.Lock()
	cur, ok := s.findLocked(id)
	if !ok {
		s.mu.Unlock()
		err := fmt.Errorf("no task with id %d", id)
		s.setErr(err)
		return service.Task{}, err
	}
	target := !cur.Completed
	token := s.nextSeqLocked(id)
	s.mu.Unlock()

	updated, err := s.svc.UpdateTask(ctx, id, service.TaskPatch{Completed: &target})
	return s.applyUpdate(id, token, updated, err)
}

// Rename changes the name of the task with the given id.
func (s *Syncer) Rename(ctx context.Context, id int, newName string) (service.Task, error) {
	s.mu.Lock()
	if _, ok := s.findLocked(id); !ok {
		s.mu.Unlock()
		err := fmt.Errorf("no task with id %d", id)
		s.setErr(err)
		return service.Task{}, err
	}
	token := s.nextSeqLocked(id)
	s.mu.Unlock()

	updated, err := s.svc.UpdateTask(ctx, id, service.TaskPatch{Name: &newName})
	return s.applyUpdate(id, token, updated, err)
}

// Remove deletes the task on the server, then filters it out of the cache.
func (s *Syncer) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	token := s.nextSeqLocked(id)
	s.mu.Unlock()

	if err := s.svc.DeleteTask(ctx, id); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq[id] != token {
		return nil
	}
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.lastErr = ""
	return nil
}

// applyUpdate reconciles a server response into the cache. The response is
// dropped when a newer request for the same id has started since, so a slow
// older response can never overwrite a newer one.
func (s *Syncer) applyUpdate(id int, token uint64, updated service.Task, err error) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return service.Task{}, err
	}
	if s.seq[id] != token {
		return updated, nil
	}
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks[i] = updated
			break
		}
	}
	s.lastErr = ""
	return updated, nil
}

// Tasks returns a copy of the cached task list.
func (s *Syncer) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Find returns the cached task with the given id.
func (s *Syncer) Find(id int) (service.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

// Loading reports whether a Fetch is in flight.
func (s *Syncer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the message of the last failed operation, or "" after a
// success.
func (s *Syncer) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Syncer) findLocked(id int) (service.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

func (s *Syncer) nextSeqLocked(id int) uint64 {
	s.seq[id]++
	return s.seq[id]
}

func (s *Syncer) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}
