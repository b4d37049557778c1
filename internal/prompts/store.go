package prompts

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Store holds the editable drafting prompt. Reads and writes may come from
// concurrent requests; writes are last-writer-wins and bump a version
// counter so callers can observe that an update landed.
type Store struct {
	mu      sync.RWMutex
	text    string
	version uint64
	path    string
}

// NewStore creates a Store seeded with the embedded default drafting
// prompt. If path is non-empty and the file exists, its contents replace
// the default, and later updates are persisted back to it.
func NewStore(path string) (*Store, error) {
	text, err := Get(KeyDraft)
	if err != nil {
		return nil, err
	}

	s := &Store{text: text, path: path}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if strings.TrimSpace(string(data)) != "" {
				s.text = string(data)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", path, err)
		}
	}

	return s, nil
}

// Get returns the current prompt text and its version.
func (s *Store) Get() (string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text, s.version
}

// Set replaces the prompt text and persists it when a backing file is
// configured. Empty or whitespace-only text is rejected; accepted text is
// stored verbatim, whitespace included.
func (s *Store) Set(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("prompt text is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path != "" {
		if err := os.WriteFile(s.path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to persist prompt to %s: %w", s.path, err)
		}
	}

	s.text = text
	s.version++
	return nil
}
