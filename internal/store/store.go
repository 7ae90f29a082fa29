// Package store persists whole collections of records as pretty-printed JSON
// files. There are no partial updates: every Load reads the full file and
// every Save replaces it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	apperr "quoteboard/internal/errors"
	"quoteboard/internal/logging"
)

// CorruptPolicy decides what Load does with a file it cannot parse.
type CorruptPolicy int

const (
	// UseDefault logs the fault and returns the default collection.
	UseDefault CorruptPolicy = iota
	// Fail returns a persistence error and leaves the file untouched.
	Fail
)

// Options configure a JSONFile.
type Options[T any] struct {
	// Default builds the collection returned when the file is absent (and,
	// with UseDefault, when it is corrupt). Nil means an empty collection.
	Default   func() []T
	OnCorrupt CorruptPolicy
	Logger    logging.Logger
}

// JSONFile is one collection backed by one file.
type JSONFile[T any] struct {
	path      string
	def       func() []T
	onCorrupt CorruptPolicy
	log       logging.Logger
}

func NewJSONFile[T any](path string, opts Options[T]) *JSONFile[T] {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &JSONFile[T]{
		path:      path,
		def:       opts.Default,
		onCorrupt: opts.OnCorrupt,
		log:       log.WithComponent("store").With("file", path),
	}
}

func (f *JSONFile[T]) Path() string {
	return f.path
}

// Exists reports whether the backing file is present.
func (f *JSONFile[T]) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

func (f *JSONFile[T]) defaults() []T {
	if f.def == nil {
		return []T{}
	}
	return f.def()
}

// Load reads the whole collection.
func (f *JSONFile[T]) Load() ([]T, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return f.defaults(), nil
	}
	if err != nil {
		return nil, apperr.Persistence("store.load", err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		if f.onCorrupt == Fail {
			return nil, apperr.Persistence("store.load", fmt.Errorf("parse %s: %w", f.path, err))
		}
		f.log.Warn(context.Background(), err, "unreadable collection, using defaults")
		return f.defaults(), nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save replaces the file with items. The data goes to a temporary file in the
// same directory which is synced and then renamed over the target, so readers
// see either the old or the new collection.
func (f *JSONFile[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return apperr.Persistence("store.save", err)
	}
	data = append(data, '\n')

	if err := writeAtomic(f.path, data, 0o644); err != nil {
		f.log.Error(context.Background(), err, "save failed", "records", len(items))
		return apperr.Persistence("store.save", err)
	}
	f.log.Debug(context.Background(), "collection saved", "records", len(items))
	return nil
}

func writeAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// EnsureDir creates the data directory if it does not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.Persistence("store.mkdir", err)
	}
	return nil
}
