package vault

import (
	"context"
	"errors"
	"fmt"

	"evault/internal/container"
	"evault/internal/core/domain"
	"evault/internal/metrics"
	"evault/internal/storage"
)

// headerPrefix is enough bytes to hold the longest possible header.
const headerPrefix = container.MinSize + container.MaxFilenameLength

// List returns stored containers, newest first. The logical filename is read
// from each container's clear-text header, which needs no key; containers
// whose header cannot be parsed are listed without a name.
func (s *VaultService) List(ctx context.Context) ([]domain.FileEntry, error) {
	objs, err := s.store.List(ctx)
	if err != nil {
		failed("list", err)
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	out := make([]domain.FileEntry, 0, len(objs))
	for _, o := range objs {
		entry := domain.FileEntry{
			ID:         o.Name,
			Size:       o.Size,
			ModifiedAt: o.ModTime,
		}
		if blob, err := s.store.ReadPrefix(ctx, o.Name, headerPrefix); err == nil {
			if h, err := s.inspect(blob); err == nil {
				entry.Name = h.Filename
			}
		} else if errors.Is(err, storage.ErrNotFound) {
			// deleted since the listing was taken
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *VaultService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		failed("delete", err)
		return fmt.Errorf("failed to delete container %s: %w", id, err)
	}
	metrics.DeletesTotal.Inc()
	return nil
}

func (s *VaultService) inspect(blob []byte) (domain.Header, error) {
	if s.codec != nil {
		return s.codec.Inspect(blob)
	}
	return container.Inspect(blob)
}

func failed(op string, err error) {
	kind := "other"
	if k, ok := domain.KindOf(err); ok {
		kind = k.String()
	} else if errors.Is(err, storage.ErrNotFound) {
		kind = "not found"
	}
	metrics.FailuresTotal.WithLabelValues(op, kind).Inc()
}
