// Package service defines the backend-agnostic interface for the to-do API.
package service

// Task represents a single to-do item. The ID is server-assigned and
// immutable; clients hold tasks only as a cache of server truth.
type Task struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// TaskPatch is a partial task update. Nil fields are omitted from the
// request body.
type TaskPatch struct {
	Name      *string `json:"name,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TokenPair is the credential pair issued on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Profile is the per-user profile with an externally hosted image.
// As an UpdateProfile argument it is a partial update: empty fields are
// omitted from the request body and left unchanged on the server.
type Profile struct {
	Email         string `json:"email,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	ImagePublicID string `json:"image_public_id,omitempty"`
}
