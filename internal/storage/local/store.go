// Package local stores containers as files in a single directory.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"evault/internal/storage"
)

const tmpPattern = ".upload-*"

type Store struct {
	dir string
}

var _ storage.Store = (*Store)(nil)

// New creates dir if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Put writes blob to a temp file in the same directory and renames it into
// place, so readers never observe a partial container.
func (s *Store) Put(ctx context.Context, name string, blob []byte) (retErr error) {
	if err := storage.ValidName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, tmpPattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(blob); err != nil {
		return fmt.Errorf("failed to write container: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync container: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close container: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("failed to store container: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := storage.ValidName(name); err != nil {
		return nil, storage.ErrNotFound
	}
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}
	return data, nil
}

func (s *Store) ReadPrefix(ctx context.Context, name string, n int64) ([]byte, error) {
	if err := storage.ValidName(name); err != nil {
		return nil, storage.ErrNotFound
	}
	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open container: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, n))
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}
	return data, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if err := storage.ValidName(name); err != nil {
		return storage.ErrNotFound
	}
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete container: %w", err)
	}
	return nil
}

// List returns regular files, newest first. In-flight temp files are skipped.
func (s *Store) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	out := make([]storage.ObjectInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || storage.ValidName(e.Name()) != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		out = append(out, storage.ObjectInfo{
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	storage.SortNewestFirst(out)
	return out, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
