package storage

import (
	"sync"

	"github.com/habithack/habithack/internal/models"
)

// Memory is an in-memory EventStore and UserRegistry for tests and for
// running the bot without durable storage.
type Memory struct {
	mu     sync.Mutex
	events []models.Event
	users  []string

	// AppendErr, when set, is returned by Append. Lets tests exercise the
	// failed-write path without real I/O.
	AppendErr error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(event models.Event) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *Memory) ScanByUser(username string) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Event
	for _, e := range m.events {
		if e.Username == username {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) ScanAll() ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *Memory) Register(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing == id {
			return nil
		}
	}
	m.users = append(m.users, id)
	return nil
}

func (m *Memory) ListAll() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.users))
	copy(out, m.users)
	return out, nil
}
