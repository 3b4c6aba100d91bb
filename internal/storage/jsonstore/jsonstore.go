// Package jsonstore persists the catalog metadata as a single JSON document
// inside the image directory, mapping id -> record.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"coloringbook/internal/lib/logger/sl"
	"coloringbook/internal/models"
)

const metadataFile = "metadata.json"

type Store struct {
	log  *slog.Logger
	dir  string
	path string

	// mu serializes every read-modify-write of the document. Plain reads go
	// through Load, which returns a fresh map and never blocks an Update
	// beyond the file read.
	mu sync.Mutex
}

func New(log *slog.Logger, imageDir string) *Store {
	return &Store{
		log:  log,
		dir:  imageDir,
		path: filepath.Join(imageDir, metadataFile),
	}
}

// Path returns the location of the metadata document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the metadata document. A missing file and a malformed document
// both yield an empty mapping: corruption is treated as "no metadata yet" and
// the document is replaced wholesale on the next Save.
func (s *Store) Load() (map[string]models.Meta, error) {
	const op = "storage.jsonstore.Load"

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]models.Meta{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metadata := map[string]models.Meta{}
	if err = json.Unmarshal(data, &metadata); err != nil {
		s.log.Warn("metadata document is malformed, treating as empty",
			slog.String("op", op),
			slog.String("path", s.path),
			sl.Err(err),
		)
		return map[string]models.Meta{}, nil
	}

	return metadata, nil
}

// Save writes the full mapping, replacing prior content atomically via a
// temporary file in the same directory followed by a rename.
func (s *Store) Save(metadata map[string]models.Meta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(metadata)
}

func (s *Store) save(metadata map[string]models.Meta) error {
	const op = "storage.jsonstore.Save"

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".metadata-*.json")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Update runs fn under the store lock with the current mapping. fn mutates the
// mapping in place and reports whether it changed; the document is saved only
// when it did. The (possibly updated) mapping is returned to the caller.
func (s *Store) Update(fn func(metadata map[string]models.Meta) (bool, error)) (map[string]models.Meta, error) {
	const op = "storage.jsonstore.Update"

	s.mu.Lock()
	defer s.mu.Unlock()

	metadata, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	changed, err := fn(metadata)
	if err != nil {
		return nil, err
	}

	if changed {
		if err = s.save(metadata); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return metadata, nil
}
