// Package session holds the authenticated user's token, username and role,
// persisted across restarts in a small key-value store. The three fields are
// all-or-nothing: a partially stored session is treated as logged out and
// wiped.
package session

import (
	"log/slog"
	"sync"

	"github.com/chemstack/chemconsole/internal/permission"
)

const (
	keyToken    = "auth_token"
	keyUsername = "current_username"
	keyRole     = "current_role"
)

// Store is the persistent key-value store underneath the manager. A failing
// store degrades the session to memory-only; it never makes an operation
// fatal.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(keys ...string) error
}

// Manager caches the session in memory and mirrors every mutation to the
// store. All components read the session through it; only login and logout
// write. Reads and writes can come from different goroutines, so access is
// mutex-guarded.
type Manager struct {
	mu     sync.RWMutex
	store  Store
	logger *slog.Logger

	token    string
	username string
	role     permission.Role
}

// NewManager loads any persisted session. An incomplete triple is forcibly
// cleared so the console starts unauthenticated rather than half logged in.
func NewManager(store Store, logger *slog.Logger) *Manager {
	m := &Manager{store: store, logger: logger}

	token := m.load(keyToken)
	username := m.load(keyUsername)
	roleStr := m.load(keyRole)

	role, roleOK := permission.ParseRole(roleStr)
	if token == "" || username == "" || !roleOK {
		if token != "" || username != "" || roleStr != "" {
			logger.Warn("persisted session is incomplete, clearing",
				"has_token", token != "",
				"has_username", username != "",
				"role", roleStr)
			m.Clear()
		}
		return m
	}

	m.token = token
	m.username = username
	m.role = role
	return m
}

func (m *Manager) load(key string) string {
	if m.store == nil {
		return ""
	}
	value, ok, err := m.store.Get(key)
	if err != nil {
		m.logger.Warn("session store unavailable, continuing in memory", "key", key, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return value
}

// Set replaces the whole session. It is called exactly once per successful
// login.
func (m *Manager) Set(token, username string, role permission.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	m.username = username
	m.role = role

	if m.store == nil {
		return
	}
	for key, value := range map[string]string{
		keyToken:    token,
		keyUsername: username,
		keyRole:     string(role),
	} {
		if err := m.store.Set(key, value); err != nil {
			m.logger.Warn("failed to persist session, session will not survive restart", "key", key, "error", err)
		}
	}
}

// Clear wipes all three fields. Calling it on an already cleared session is a
// no-op.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.username = ""
	m.role = ""

	if m.store == nil {
		return
	}
	if err := m.store.Delete(keyToken, keyUsername, keyRole); err != nil {
		m.logger.Warn("failed to clear persisted session", "error", err)
	}
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) Username() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.username
}

func (m *Manager) Role() permission.Role {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.role
}

// IsAuthenticated reports whether all three fields are present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != "" && m.username != "" && m.role != ""
}
