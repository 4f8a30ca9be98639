// Package credstore persists credentials as namespaced key/value pairs.
//
// Values are JSON-encoded individually and kept in a single file, so each
// key is written independently; callers must not assume atomicity across
// multiple keys.
package credstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Namespace is the prefix applied to every stored key.
const Namespace = "auth"

// Store is a file-backed key/value store for credentials.
type Store struct {
	path string
	log  *log.Logger

	mu sync.Mutex
}

// New creates a Store backed by the file at path.
// logger receives messages about undecodable values; nil uses the default logger.
func New(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{path: path, log: logger}
}

func nsKey(key string) string {
	return Namespace + "." + key
}

// load reads the backing file into a map. A missing file is an empty store.
func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		// Corrupt file: treat as empty rather than failing every caller.
		s.log.Printf("credstore: unreadable credentials file %s: %v", s.path, err)
		return map[string]string{}, nil
	}
	return m, nil
}

func (s *Store) save(m map[string]string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Set JSON-serializes value and writes it under the namespaced key.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	m[nsKey(key)] = string(raw)
	return s.save(m)
}

// Get reads the string stored under key. It reports a miss when the key is
// absent, when the stored value is the literal "undefined" or "null", or
// when the value does not decode (logged, not returned as an error).
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		s.log.Printf("credstore: %v", err)
		return "", false
	}
	raw, ok := m[nsKey(key)]
	if !ok || raw == "" || raw == "undefined" || raw == "null" {
		return "", false
	}
	var v string
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.log.Printf("credstore: failed to decode stored value for %s: %v", key, err)
		return "", false
	}
	return v, true
}

// Remove deletes one namespaced key.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	delete(m, nsKey(key))
	return s.save(m)
}

// Clear deletes every key under the namespace. Keys outside the namespace
// are left untouched.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	for k := range m {
		if strings.HasPrefix(k, Namespace+".") {
			delete(m, k)
		}
	}
	return s.save(m)
}
