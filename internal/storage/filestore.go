package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"loyalty-system/internal/domain"
)

// FileStore keeps each collection as <name>.json under a data directory.
// Saves go through write-temp-then-rename so a crash mid-save leaves the
// previous file intact. A per-collection mutex serializes concurrent
// load-mutate-save cycles inside one process; the version check catches
// interleavings the mutex cannot see (a second store over the same dir).
type FileStore struct {
	dir string

	mu       sync.Mutex
	versions map[string]int64
	locks    map[string]*sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{
		dir:      dir,
		versions: make(map[string]int64),
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *FileStore) Load(ctx context.Context, collection string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	path := s.path(collection)
	body, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// Initialize to empty before the first read, as the application
		// expects every collection to exist once touched.
		if err := writeAtomic(path, []byte("[]")); err != nil {
			return Document{}, fmt.Errorf("init %s: %w", collection, err)
		}
		body = []byte("[]")
	} else if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", collection, err)
	}

	s.mu.Lock()
	version := s.versions[collection]
	s.mu.Unlock()
	return Document{Body: body, Version: version}, nil
}

func (s *FileStore) Replace(ctx context.Context, collection string, body []byte, expected int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	current := s.versions[collection]
	if current != expected {
		s.mu.Unlock()
		return domain.ErrVersionConflict
	}
	s.mu.Unlock()

	if err := writeAtomic(s.path(collection), body); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}

	s.mu.Lock()
	s.versions[collection] = current + 1
	s.mu.Unlock()
	return nil
}

func writeAtomic(path string, body []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
