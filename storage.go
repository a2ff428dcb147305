package aurora

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Fixed storage keys, one JSON blob per feature.
const (
	KeySchedule  = "aurora-schedule"
	KeyExpenses  = "aurora-expenses"
	KeyChecklist = "aurora-checklist"
)

// Storage is the on-device persistence: whole blobs under fixed keys, read
// once at start-up and overwritten on every change.
//
// Load must return an error matching fs.ErrNotExist for a key never saved.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, blob []byte) error
}

// DirStorage stores each key in "<dir>/<key>.json".
type DirStorage struct {
	dir string
}

// NewDirStorage returns a storage rooted in dir, the folder is created on first save.
func NewDirStorage(dir string) *DirStorage { return &DirStorage{dir: dir} }

func (s *DirStorage) path(key string) string { return filepath.Join(s.dir, key+".json") }

// Load reads the blob saved under key.
func (s *DirStorage) Load(key string) ([]byte, error) {
	return os.ReadFile(s.path(key))
}

// Save replaces the blob under key. The file is written next to its
// destination and renamed, so a crash never leaves half a blob.
func (s *DirStorage) Save(key string, blob []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("could not create storage directory %q: %w", s.dir, err)
	}
	f, err := os.CreateTemp(s.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("could not save %q: %w", key, err)
	}
	defer os.Remove(f.Name()) // no-op after the rename

	if _, err := f.Write(blob); err != nil {
		f.Close()
		return fmt.Errorf("could not save %q: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not save %q: %w", key, err)
	}
	if err := os.Rename(f.Name(), s.path(key)); err != nil {
		return fmt.Errorf("could not save %q: %w", key, err)
	}
	return nil
}

// MemStorage is an in-memory Storage.
type MemStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
	saves int
}

func NewMemStorage() *MemStorage { return &MemStorage{blobs: make(map[string][]byte)} }

func (s *MemStorage) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, fs.ErrNotExist)
	}
	return bytes.Clone(b), nil
}

func (s *MemStorage) Save(key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = bytes.Clone(blob)
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemStorage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// loadOrDefault decodes the blob under key. A missing or unparseable blob is
// discarded in favor of def(), it is never an error.
func loadOrDefault[T any](st Storage, key string, decode func(io.Reader) (T, error), def func() T, log *zap.Logger) T {
	blob, err := st.Load(key)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("nothing stored yet, using defaults", zap.String("key", key))
		return def()
	}
	if err != nil {
		log.Warn("cannot read storage, using defaults", zap.String("key", key), zap.Error(err))
		return def()
	}
	v, err := decode(bytes.NewReader(blob))
	if err != nil {
		log.Warn("stored data is corrupted, using defaults", zap.String("key", key), zap.Error(err))
		return def()
	}
	return v
}

// save encodes v and stores it under key.
func save[T any](st Storage, key string, encode func(io.Writer, T) error, v T) error {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return err
	}
	return st.Save(key, buf.Bytes())
}
