package cart

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Persistence serializes cart state to a durable slot. Save is invoked
// after every mutating cart operation; Load once at startup.
type Persistence interface {
	// Save writes the full item list.
	Save(items []Item) error

	// Load reads the stored item list. The bool reports whether stored
	// data was found; corrupt data counts as absent, never as an error.
	Load() ([]Item, bool, error)
}

// FileStore persists the cart as one JSON file, the client-side equivalent
// of a single durable key-value slot.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed cart persistence at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the item list atomically (temp file + rename), so a crash
// mid-write never leaves a half-written cart behind.
func (s *FileStore) Save(items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if items == nil {
		items = []Item{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cart directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace cart file: %w", err)
	}
	return nil
}

// Load reads the stored item list. A missing or corrupt file is treated as
// an absent cart and never as a fatal error.
func (s *FileStore) Load() ([]Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cart: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("[FileStore] Corrupt cart data at %s, starting empty: %v", s.path, err)
		return nil, false, nil
	}
	return items, true, nil
}

// Ensure FileStore implements Persistence
var _ Persistence = (*FileStore)(nil)
