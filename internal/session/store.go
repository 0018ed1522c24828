package session

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"auto_grow/internal/models"
	"auto_grow/internal/repository"
)

// StorageKey is the single persisted key holding the encoded pair.
const StorageKey = "auth"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyCredential  = errors.New("username and password must be non-empty")
	ErrInvalidUsername  = errors.New("username must not contain ':'")
)

// Store owns the username/password pair. It keeps the pair in memory and
// mirrors it to the persistence backend as base64("username:password").
type Store struct {
	mu    sync.Mutex
	kv    repository.KeyValue
	creds *models.Credentials
}

func NewStore(kv repository.KeyValue) *Store {
	return &Store{kv: kv}
}

// Set replaces the current pair. Nothing changes if validation or the
// backend write fails.
func (s *Store) Set(username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyCredential
	}
	if strings.Contains(username, ":") {
		return ErrInvalidUsername
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(StorageKey, encode(username, password)); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	s.creds = &models.Credentials{Username: username, Password: password}
	return nil
}

// Clear forgets the pair. The in-memory copy is always dropped; the
// returned error only reports the backend removal.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = nil
	if err := s.kv.Remove(StorageKey); err != nil {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// Restore reloads the pair from the backend. Any unreadable value leaves
// the store empty and yields false.
func (s *Store) Restore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = nil
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil || !ok {
		return false
	}
	c, ok := decode(raw)
	if !ok {
		return false
	}
	s.creds = &c
	return true
}

// AuthHeaderValue renders the Authorization header for the held pair.
func (s *Store) AuthHeaderValue() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds == nil {
		return "", ErrNotAuthenticated
	}
	return "Basic " + encode(s.creds.Username, s.creds.Password), nil
}

// Credentials returns a copy of the held pair.
func (s *Store) Credentials() (models.Credentials, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds == nil {
		return models.Credentials{}, false
	}
	return *s.creds, true
}

func encode(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

func decode(raw string) (models.Credentials, bool) {
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return models.Credentials{}, false
	}
	user, pass, found := strings.Cut(string(b), ":")
	if !found || user == "" || pass == "" {
		return models.Credentials{}, false
	}
	return models.Credentials{Username: user, Password: pass}, true
}
