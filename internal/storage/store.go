// Package storage keeps finished PDFs on disk behind opaque download
// handles so the HTTP layer never exposes filesystem paths.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a handle does not resolve to a stored file.
var ErrNotFound = errors.New("document not found")

// Entry describes one stored document.
type Entry struct {
	Filename string
	Path     string
}

// Store maps download handles to files in a single output directory.
// Handles are UUIDs minted at save time; entries live until the process
// exits or Sweep removes leftovers from an earlier run.
type Store struct {
	dir     string
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewStore creates the output directory if needed and sweeps PDFs left
// over from previous runs. Old files have no valid handle anymore, so
// keeping them only leaks disk.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	s := &Store{dir: dir, entries: make(map[string]Entry)}
	if err := s.sweep(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the document to disk and returns its download handle.
// filename is the user-facing name offered at download time.
func (s *Store) Save(data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to store an empty document")
	}

	handle := uuid.NewString()
	path := filepath.Join(s.dir, handle+".pdf")

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.mu.Lock()
	s.entries[handle] = Entry{Filename: filename, Path: path}
	s.mu.Unlock()

	return handle, nil
}

// Open resolves a handle to the stored file. The handle must parse as a
// UUID, which also rules out path traversal through crafted handles.
func (s *Store) Open(handle string) (*os.File, Entry, error) {
	if _, err := uuid.Parse(handle); err != nil {
		return nil, Entry{}, ErrNotFound
	}

	s.mu.RLock()
	entry, ok := s.entries[handle]
	s.mu.RUnlock()
	if !ok {
		return nil, Entry{}, ErrNotFound
	}

	f, err := os.Open(entry.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Entry{}, ErrNotFound
		}
		return nil, Entry{}, fmt.Errorf("failed to open %s: %w", entry.Path, err)
	}
	return f, entry, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) sweep() error {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read output directory %s: %w", s.dir, err)
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".pdf") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, f.Name())); err != nil {
			return fmt.Errorf("failed to sweep stale file %s: %w", f.Name(), err)
		}
	}
	return nil
}
