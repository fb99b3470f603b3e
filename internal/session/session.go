// Package session tracks, per user, whether a category prompt is outstanding.
//
// The machine has exactly two states. A user is either idle or awaiting a
// category answer; the very next non-command text consumes the prompt and the
// user is idle again. There is no expiry: a prompt can stay pending across
// restarts of the conversation, and a fresh /start simply re-arms it.
package session

import "sync"

// State is the per-user conversation state.
type State int

const (
	// Idle means no prompt is outstanding.
	Idle State = iota
	// AwaitingCategory means a prompt was issued and exactly one reply is
	// expected.
	AwaitingCategory
)

// Manager holds the conversation state for all users. Safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	states map[string]State
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{states: make(map[string]State)}
}

// Start arms the prompt for a user. Re-arming while already awaiting is an
// idempotent restart, not an error.
func (m *Manager) Start(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = AwaitingCategory
}

// Awaiting reports whether a prompt is outstanding for the user.
func (m *Manager) Awaiting(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[userID] == AwaitingCategory
}

// Clear returns the user to idle. Called only after the answer was
// successfully consumed; a failed append must leave the prompt armed so the
// user can retry instead of silently losing the event.
func (m *Manager) Clear(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
}
