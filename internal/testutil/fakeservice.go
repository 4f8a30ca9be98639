// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"todoctl/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	nextID int
	tasks  []service.Task
	users  map[string]string // username -> password
	prof   service.Profile

	// ResetToken is the only token ConfirmPasswordReset accepts.
	ResetToken string

	// Error injection for testing
	LoginErr         error
	RegisterErr      error
	RefreshErr       error
	ResetRequestErr  error
	ResetConfirmErr  error
	ListTasksErr     error
	CreateTaskErr    error
	UpdateTaskErr    error
	DeleteTaskErr    error
	ProfileErr       error
	UpdateProfileErr error

	// UpdateTaskGate, when set, runs before UpdateTask touches state.
	// Tests use it to control the ordering of concurrent updates.
	UpdateTaskGate func(id int, patch service.TaskPatch)
}

// NewFakeService creates a FakeService with one known user and no tasks.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID:     1,
		users:      map[string]string{"frank": "hunter2"},
		prof:       service.Profile{Email: "frank@example.com"},
		ResetToken: "valid-token",
	}
}

// AddTask seeds a task with a fixed id.
func (f *FakeService) AddTask(id int, name string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Name: name, Completed: completed})
	if id >= f.nextID {
		f.nextID = id + 1
	}
}

// AddUser registers a known username/password pair.
func (f *FakeService) AddUser(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = password
}

// TaskSnapshot returns a copy of the stored tasks.
func (f *FakeService) TaskSnapshot() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, username, password string) (service.TokenPair, error) {
	if f.LoginErr != nil {
		return service.TokenPair{}, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.users[username] != password || password == "" {
		return service.TokenPair{}, errors.New("No active account found with the given credentials")
	}
	return service.TokenPair{Access: "access-" + username, Refresh: "refresh-" + username}, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, username, email, password string) (service.TokenPair, error) {
	if f.RegisterErr != nil {
		return service.TokenPair{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[username]; exists {
		return service.TokenPair{}, errors.New("username: A user with that username already exists.")
	}
	f.users[username] = password
	return service.TokenPair{Access: "access-" + username, Refresh: "refresh-" + username}, nil
}

// RefreshToken implements service.Service.
func (f *FakeService) RefreshToken(ctx context.Context, refresh string) (string, error) {
	if f.RefreshErr != nil {
		return "", f.RefreshErr
	}
	return "access-refreshed", nil
}

// RequestPasswordReset implements service.Service.
func (f *FakeService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if f.ResetRequestErr != nil {
		return "", f.ResetRequestErr
	}
	return "If the email exists, a reset link was sent.", nil
}

// ConfirmPasswordReset implements service.Service.
func (f *FakeService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (string, error) {
	if f.ResetConfirmErr != nil {
		return "", f.ResetConfirmErr
	}
	if token != f.ResetToken {
		return "", errors.New("Invalid or expired reset token.")
	}
	return "Password reset successful.", nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.TaskSnapshot(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, name string) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task := service.Task{ID: f.nextID, Name: name, Completed: false}
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int, patch service.TaskPatch) (service.Task, error) {
	if f.UpdateTaskGate != nil {
		f.UpdateTaskGate(id, patch)
	}
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			if patch.Name != nil {
				f.tasks[i].Name = *patch.Name
			}
			if patch.Completed != nil {
				f.tasks[i].Completed = *patch.Completed
			}
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Profile implements service.Service.
func (f *FakeService) Profile(ctx context.Context) (service.Profile, error) {
	if f.ProfileErr != nil {
		return service.Profile{}, f.ProfileErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prof, nil
}

// UpdateProfile implements service.Service.
func (f *FakeService) UpdateProfile(ctx context.Context, p service.Profile) (service.Profile, error) {
	if f.UpdateProfileErr != nil {
		return service.Profile{}, f.UpdateProfileErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.Email != "" {
		f.prof.Email = p.Email
	}
	if p.ImageURL != "" {
		f.prof.ImageURL = p.ImageURL
	}
	if p.ImagePublicID != "" {
		f.prof.ImagePublicID = p.ImagePublicID
	}
	return f.prof, nil
}
