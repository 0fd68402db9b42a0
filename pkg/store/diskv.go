package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

const tempDirName = ".tmp"

// Diskv is a Backend storing one file per key under a base directory.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv opens (creating if needed) a diskv store rooted at basePath.
func NewDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:  basePath,
			Transform: flatTransform,
			TempDir:   filepath.Join(basePath, tempDirName),
		}),
		basePath: basePath,
	}, nil
}

// BasePath returns the directory backing the store.
func (s *Diskv) BasePath() string {
	return s.basePath
}

// Get always reads the file, bypassing diskv's cache, so writes made by
// other processes are visible.
func (s *Diskv) Get(key string) ([]byte, error) {
	rc, err := s.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer rc.Close()

	val, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

// Set rewrites the value for key. diskv writes through TempDir and renames,
// so readers never observe a partial value.
func (s *Diskv) Set(key string, val []byte) error {
	if err := s.d.Write(key, val); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *Diskv) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// flatTransform keeps every key directly under the base path; there are only
// a handful of keys.
func flatTransform(string) []string {
	return []string{}
}
