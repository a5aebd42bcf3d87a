package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"evault/internal/core/domain"
	"evault/internal/metrics"
)

var errDisabled = domain.E(domain.KindConfiguration, "server encryption key not configured")

func newContainerName() string {
	return uuid.NewString() + containerExt
}

func (s *VaultService) Upload(ctx context.Context, filename string, data []byte) (domain.FileEntry, error) {
	if !s.Enabled() {
		failed("upload", errDisabled)
		return domain.FileEntry{}, errDisabled
	}

	blob, err := s.codec.Encode(data, filename)
	if err != nil {
		failed("upload", err)
		return domain.FileEntry{}, fmt.Errorf("failed to encode container: %w", err)
	}

	// Nothing has been written yet, so an encode failure above leaves no trace.
	id := s.newID()
	if err := s.store.Put(ctx, id, blob); err != nil {
		failed("upload", err)
		return domain.FileEntry{}, fmt.Errorf("failed to store container: %w", err)
	}

	metrics.UploadsTotal.Inc()
	metrics.ContainerBytes.Observe(float64(len(blob)))

	return domain.FileEntry{
		ID:         id,
		Name:       filename,
		Size:       int64(len(blob)),
		ModifiedAt: time.Now().UTC(),
	}, nil
}
