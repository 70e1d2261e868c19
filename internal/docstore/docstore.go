// Package docstore persists each logical collection as a single named JSON
// document on disk. Writes replace the whole document atomically: the new
// contents go to a temporary file beside the target, then an os.Rename swaps
// it in, so a reader never observes a partially written document and a crash
// mid-write leaves the previous generation intact.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// StorageError wraps a filesystem failure during a write. It is fatal for
// the mutation that triggered it and is never retried here.
type StorageError struct {
	Op   string
	Name string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s document %q: %v", e.Op, e.Name, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store owns the on-disk representation of every document under one data
// directory and is the sole writer of each file. A mutex per document name
// serializes read-modify-write cycles so two writers to the same collection
// cannot lose each other's update.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(dir string) *Store {
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}
}

// Read returns the parsed document at name, or def when the file is absent,
// unreadable, or malformed. Missing data is never an error here: it just
// means "no data yet".
func Read[T any](s *Store, name string, def T) T {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return def
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def
	}
	return v
}

// Write durably replaces the document at name with v.
func (s *Store) Write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Name: name, Err: err}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &StorageError{Op: "write", Name: name, Err: err}
	}

	target := s.path(name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return &StorageError{Op: "write", Name: name, Err: err}
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return &StorageError{Op: "replace", Name: name, Err: err}
	}
	return nil
}

// EnsureExists creates the document with the empty default when the file is
// missing. Idempotent; called lazily before first access of a collection.
func (s *Store) EnsureExists(name string, empty any) error {
	_, err := os.Stat(s.path(name))
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &StorageError{Op: "stat", Name: name, Err: err}
	}
	return s.Write(name, empty)
}

// Update runs fn while holding the named document's lock, serializing the
// whole read-modify-write cycle against other updates of the same document.
func (s *Store) Update(name string, fn func() error) error {
	l := s.lockFor(name)
	l.Lock()
	defer l.Unlock()
	return fn()
}

func (s *Store) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
