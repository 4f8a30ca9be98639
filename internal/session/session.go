// Package session tracks the logged-in state of the current user.
//
// The manager mirrors the credential store into memory: it is the single
// mutation point for credentials, and session state is always recomputable
// from the store via CheckStatus. It is constructed once and passed
// explicitly to everything that needs it.
package session

import (
	"sync"

	"todoctl/internal/credstore"
)

// Credential store keys. All three are written together on login and
// cleared together on logout; partial state reads as logged out.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUsername     = "username"
)

// Manager owns the in-memory session state for one user.
type Manager struct {
	store *credstore.Store

	mu       sync.Mutex
	loggedIn bool
	username string
}

// NewManager creates a Manager over the given credential store.
// Call CheckStatus to initialize state from disk.
func NewManager(store *credstore.Store) *Manager {
	return &Manager{store: store}
}

// CheckStatus recomputes session state from the credential store.
// The session is logged in only when both the access token and the username
// are present and non-empty.
func (m *Manager) CheckStatus() {
	token, tokenOK := m.store.Get(KeyAccessToken)
	username, nameOK := m.store.Get(KeyUsername)

	m.mu.Lock()
	defer m.mu.Unlock()
	if tokenOK && nameOK && token != "" && username != "" {
		m.loggedIn = true
		m.username = username
	} else {
		m.loggedIn = false
		m.username = ""
	}
}

// Login stores all three credential fields and marks the session logged in.
// The caller has already completed authentication; no network call happens here.
func (m *Manager) Login(accessToken, refreshToken, username string) error {
	if err := m.store.Set(KeyAccessToken, accessToken); err != nil {
		return err
	}
	if err := m.store.Set(KeyRefreshToken, refreshToken); err != nil {
		return err
	}
	if err := m.store.Set(KeyUsername, username); err != nil {
		return err
	}

	m.mu.Lock()
	m.loggedIn = true
	m.username = username
	m.mu.Unlock()
	return nil
}

// Logout clears every stored credential and marks the session logged out.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.mu.Lock()
	m.loggedIn = false
	m.username = ""
	m.mu.Unlock()
	return nil
}

// LoggedIn reports the in-memory session state.
func (m *Manager) LoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loggedIn
}

// Username returns the logged-in username, or "" when logged out.
func (m *Manager) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.username
}

// AccessToken reads the raw access token from the store.
// Returns "" when absent.
func (m *Manager) AccessToken() string {
	token, _ := m.store.Get(KeyAccessToken)
	return token
}

// RefreshToken reads the raw refresh token from the store.
// Returns "" when absent.
func (m *Manager) RefreshToken() string {
	token, _ := m.store.Get(KeyRefreshToken)
	return token
}
