package vault

import (
	"context"
	"fmt"

	"evault/internal/core/domain"
	"evault/internal/metrics"
)

func (s *VaultService) Download(ctx context.Context, id string) (domain.File, error) {
	if !s.Enabled() {
		failed("download", errDisabled)
		return domain.File{}, errDisabled
	}

	blob, err := s.store.Get(ctx, id)
	if err != nil {
		failed("download", err)
		return domain.File{}, fmt.Errorf("failed to get container %s: %w", id, err)
	}

	plaintext, name, err := s.codec.Decode(blob)
	if err != nil {
		failed("download", err)
		return domain.File{}, fmt.Errorf("failed to decode container %s: %w", id, err)
	}

	metrics.DownloadsTotal.Inc()
	return domain.File{ID: id, Name: name, Data: plaintext}, nil
}
