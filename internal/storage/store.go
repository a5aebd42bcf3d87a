package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when a named container does not exist.
var ErrNotFound = errors.New("container not found")

// ObjectInfo describes a stored container
type ObjectInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Store persists opaque container blobs under server-chosen names. Concurrent
// writes to the same name are last-writer-wins.
type Store interface {
	Put(ctx context.Context, name string, blob []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	// ReadPrefix returns at most the first n bytes of a container.
	ReadPrefix(ctx context.Context, name string, n int64) ([]byte, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]ObjectInfo, error)
}

// Config holds configuration for storage backends
type Config struct {
	Backend string // "local" or "s3"
	Dir     string // local backend directory
	Bucket  string
	Region  string
	Prefix  string // key prefix inside the bucket
}

// DefaultConfig stores containers under ./encrypted_store.
var DefaultConfig = Config{
	Backend: "local",
	Dir:     "encrypted_store",
	Prefix:  "containers/",
}

// ValidName reports whether name can be used as a container name. Names are
// single path elements: no separators, no "." or "..", no NUL.
func ValidName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("invalid container name %q", name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("invalid container name %q", name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("invalid container name %q", name)
	}
	return nil
}

// SortNewestFirst orders objects by modification time, newest first, breaking
// ties by name.
func SortNewestFirst(objs []ObjectInfo) {
	sort.SliceStable(objs, func(i, j int) bool {
		if objs[i].ModTime.Equal(objs[j].ModTime) {
			return objs[i].Name < objs[j].Name
		}
		return objs[i].ModTime.After(objs[j].ModTime)
	})
}
