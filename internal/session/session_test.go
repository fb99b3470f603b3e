package session

import (
	"sync"
	"testing"
)

func TestManager_StartAndClear(t *testing.T) {
	m := NewManager()

	if m.Awaiting("alice") {
		t.Error("New manager should have no pending prompt")
	}

	m.Start("alice")
	if !m.Awaiting("alice") {
		t.Error("Expected prompt to be armed after Start")
	}
	if m.Awaiting("bob") {
		t.Error("State must be keyed per user")
	}

	m.Clear("alice")
	if m.Awaiting("alice") {
		t.Error("Expected idle after Clear")
	}
}

func TestManager_IdempotentRestart(t *testing.T) {
	m := NewManager()
	m.Start("alice")
	m.Start("alice") // re-entry restarts the prompt, not an error
	if !m.Awaiting("alice") {
		t.Error("Expected prompt still armed after re-entry")
	}
	m.Clear("alice")
	if m.Awaiting("alice") {
		t.Error("One Clear must consume the prompt regardless of Start count")
	}
}

func TestManager_ConcurrentUsers(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%26))
			m.Start(id)
			m.Awaiting(id)
			m.Clear(id)
		}(i)
	}
	wg.Wait()
}
