package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"nuffjamz/pkg/model"
)

// DraftStore persists the in-progress draft between sessions.
type DraftStore interface {
	// Load returns the saved draft and whether one existed.
	Load() (model.BookingDraft, bool, error)
	Save(draft model.BookingDraft) error
	Clear() error
}

// FileStore keeps the draft as a JSON file, written atomically via a
// temp file and rename.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (model.BookingDraft, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.BookingDraft{}, false, nil
		}
		return model.BookingDraft{}, false, fmt.Errorf("failed to read draft: %w", err)
	}

	var draft model.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		// A corrupt draft is treated as absent rather than blocking the
		// wizard from starting.
		return model.BookingDraft{}, false, nil
	}

	if draft.IsEmpty() {
		return model.BookingDraft{}, false, nil
	}

	return draft, true, nil
}

func (s *FileStore) Save(draft model.BookingDraft) error {
	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create draft directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".draft-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp draft: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write draft: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close draft: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace draft: %w", err)
	}

	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove draft: %w", err)
	}
	return nil
}

// MemStore is an in-memory DraftStore for tests.
type MemStore struct {
	mu    sync.Mutex
	draft model.BookingDraft
	saved bool

	// SaveErr, when set, is returned by Save to simulate failures.
	SaveErr error
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load() (model.BookingDraft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft, s.saved, nil
}

func (s *MemStore) Save(draft model.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.draft = draft
	s.saved = true
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = model.BookingDraft{}
	s.saved = false
	return nil
}

// Saved reports whether a draft is currently stored.
func (s *MemStore) Saved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}
