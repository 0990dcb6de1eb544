// Package progress tracks cross-session progression: which (category, element)
// pairs were already pulled, and the TP balance earned from repeats.
//
// State lives in two independent documents, "repeats" and "points", behind a
// Store. Every mutation rewrites its document in full; the two documents are
// not written transactionally.
package progress

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Document names.
const (
	DocRepeats = "repeats"
	DocPoints  = "points"
)

// ErrNotFound is returned by Store.Load for a document that was never saved.
var ErrNotFound = errors.New("document not found")

// Store persists whole documents by name.
type Store interface {
	Load(doc string) ([]byte, error)
	Save(doc string, data []byte) error
}

// FileStore keeps each document in <Dir>/<doc>.json.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore { return &FileStore{Dir: dir} }

func (s *FileStore) path(doc string) string { return filepath.Join(s.Dir, doc+".json") }

func (s *FileStore) Load(doc string) ([]byte, error) {
	b, err := os.ReadFile(s.path(doc))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", doc, err)
	}
	return b, nil
}

// Save writes to a temp file and renames it over the document, so readers
// never observe a partial write.
func (s *FileStore) Save(doc string, data []byte) error {
	if strings.TrimSpace(s.Dir) == "" {
		return fmt.Errorf("store dir is required")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.Dir, doc+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", doc, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", doc, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", doc, err)
	}
	if err := os.Rename(tmp.Name(), s.path(doc)); err != nil {
		return fmt.Errorf("write %s: %w", doc, err)
	}
	return nil
}

// MemoryStore is an in-process Store for tests and throwaway sessions.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
	// FailSave, when set, makes every Save return it.
	FailSave error
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{docs: make(map[string][]byte)} }

func (s *MemoryStore) Load(doc string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.docs[doc]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (s *MemoryStore) Save(doc string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSave != nil {
		return s.FailSave
	}
	s.docs[doc] = append([]byte(nil), data...)
	return nil
}
