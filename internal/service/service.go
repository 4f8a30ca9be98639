// Package service defines the backend-agnostic interface for the to-do API.
package service

import "context"

// Service defines the operations of the remote to-do API.
// All network calls go through this interface; commands and the task
// syncer never import the HTTP backend directly.
type Service interface {
	// Login exchanges username/password for an access/refresh token pair.
	Login(ctx context.Context, username, password string) (TokenPair, error)

	// Register creates an account. The server may return a token pair;
	// callers that need a session log in afterwards.
	Register(ctx context.Context, username, email, password string) (TokenPair, error)

	// RefreshToken exchanges a refresh token for a new access token.
	// Present for completeness; nothing calls it automatically, so an
	// expired session simply requires a fresh login.
	RefreshToken(ctx context.Context, refresh string) (string, error)

	// RequestPasswordReset asks the server to email a reset link.
	// Returns the server's informational message.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ConfirmPasswordReset sets a new password using a reset token.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) (string, error)

	// ListTasks returns the authenticated user's tasks in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns the server record with its
	// assigned id.
	CreateTask(ctx context.Context, name string) (Task, error)

	// UpdateTask applies a partial update and returns the updated record.
	UpdateTask(ctx context.Context, id int, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id int) error

	// Profile returns the authenticated user's profile.
	Profile(ctx context.Context) (Profile, error)

	// UpdateProfile applies a partial profile update and returns the
	// resulting profile.
	UpdateProfile(ctx context.Context, p Profile) (Profile, error)
}
