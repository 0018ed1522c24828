package session

import (
	"context"
	"sync"

	"auto_grow/internal/logger"
)

type State int

const (
	Unknown State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Verifier checks a candidate pair against the remote login endpoint.
type Verifier interface {
	VerifyLogin(ctx context.Context, username, password string) error
}

// Manager is the only holder of authenticated state. A single mutex covers
// the store mutation and the state flag so the two never disagree.
type Manager struct {
	mu       sync.Mutex
	store    *Store
	verifier Verifier
	state    State
	initOnce sync.Once
	log      *logger.Logger
}

func NewManager(store *Store, verifier Verifier, log *logger.Logger) *Manager {
	return &Manager{
		store:    store,
		verifier: verifier,
		state:    Unknown,
		log:      log,
	}
}

// Initialize restores persisted credentials. Only the first call per
// Manager has an effect.
func (m *Manager) Initialize() {
	m.initOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.store.Restore() {
			m.state = Authenticated
			m.log.Debugw("session_restored")
			return
		}
		m.state = Unauthenticated
	})
}

// Login verifies the pair remotely and records the outcome. The network
// call runs without holding the lock; concurrent transitions resolve to
// whichever commits last.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	// An explicit transition supersedes restoring from storage.
	m.initOnce.Do(func() {})

	err := m.verifier.VerifyLogin(ctx, username, password)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.log.Infow("session_login_failed", "username", username, "err", err)
		m.clearLocked()
		return false
	}
	if err := m.store.Set(username, password); err != nil {
		m.log.Warnw("session_store_failed", "username", username, "err", err)
		m.clearLocked()
		return false
	}
	m.state = Authenticated
	m.log.Infow("session_login", "username", username)
	return true
}

// Logout clears the session. It always succeeds.
func (m *Manager) Logout() {
	m.initOnce.Do(func() {})

	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearLocked()
	m.log.Infow("session_logout")
}

// Invalidate is called when the server rejects the stored credentials.
func (m *Manager) Invalidate(reason error) {
	m.initOnce.Do(func() {})

	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearLocked()
	m.log.Warnw("session_invalidated", "reason", reason)
}

func (m *Manager) clearLocked() {
	if err := m.store.Clear(); err != nil {
		m.log.Warnw("session_clear_failed", "err", err)
	}
	m.state = Unauthenticated
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == Authenticated
}

// Username returns the signed-in user, if any.
func (m *Manager) Username() (string, bool) {
	c, ok := m.store.Credentials()
	return c.Username, ok
}

// AuthHeaderValue delegates to the store.
func (m *Manager) AuthHeaderValue() (string, error) {
	return m.store.AuthHeaderValue()
}
