package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// UserRegistry is the durable set of known chat ids, used only to target the
// reminder broadcast.
type UserRegistry interface {
	Register(id string) error
	ListAll() ([]string, error)
}

// FileRegistry stores one raw identity token per line in a plain text file.
type FileRegistry struct {
	path string
	mu   sync.Mutex
}

// NewFileRegistry creates a registry backed by the given file. The file is
// created lazily on first Register.
func NewFileRegistry(path string) (*FileRegistry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileRegistry{path: path}, nil
}

// Register inserts the id into the set. Registering an already known id is a
// no-op, not an error.
func (r *FileRegistry) Register(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	known, err := r.readAll()
	if err != nil {
		return err
	}
	for _, existing := range known {
		if existing == id {
			return nil
		}
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open user registry: %w", err)
	}
	if _, err := f.WriteString(id + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write user registry: %w", err)
	}
	return f.Close()
}

// ListAll returns the deduplicated set of registered ids. A missing file is an
// empty registry.
func (r *FileRegistry) ListAll() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll()
}

// readAll is the lock-free inner read; callers hold r.mu.
func (r *FileRegistry) readAll() ([]string, error) {
	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open user registry: %w", err)
	}
	defer f.Close()

	seen := make(map[string]bool)
	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := scanner.Text()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user registry: %w", err)
	}
	return ids, nil
}
