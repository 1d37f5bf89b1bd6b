// Package persistence implements the file-backed repositories. Each
// collection is one JSON array file; every mutation re-reads the file,
// applies the change in memory, and rewrites the whole document.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection is a JSON-array file holding every record of one type.
// A per-file mutex serializes writers and writes go through a temp file plus
// rename, so a crash mid-write cannot leave a half-written store behind.
type Collection[T any] struct {
	mu   sync.Mutex
	path string
}

// NewCollection opens (or initializes) the collection file at path
func NewCollection[T any](path string) (*Collection[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", filepath.Base(path), err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}
	return &Collection[T]{path: path}, nil
}

// Path returns the backing file path
func (c *Collection[T]) Path() string {
	return c.path
}

// Read loads and decodes the whole collection
func (c *Collection[T]) Read() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readLocked()
}

// Mutate runs fn against the current records under the file lock and
// persists whatever fn returns
func (c *Collection[T]) Mutate(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.readLocked()
	if err != nil {
		return err
	}
	records, err = fn(records)
	if err != nil {
		return err
	}
	return c.writeLocked(records)
}

func (c *Collection[T]) readLocked() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(c.path), err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(c.path), err)
	}
	return records, nil
}

func (c *Collection[T]) writeLocked(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(c.path), err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", filepath.Base(c.path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", filepath.Base(c.path), err)
	}
	return nil
}
