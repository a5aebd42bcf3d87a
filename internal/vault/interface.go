package vault

import (
	"context"

	"evault/internal/core/domain"
	"evault/internal/core/ports"
	"evault/internal/storage"
)

const containerExt = ".enc"

type Service interface {
	Upload(ctx context.Context, filename string, data []byte) (domain.FileEntry, error)
	Download(ctx context.Context, id string) (domain.File, error)
	List(ctx context.Context) ([]domain.FileEntry, error)
	Delete(ctx context.Context, id string) error
	Enabled() bool
}

type VaultService struct {
	codec ports.Codec
	store storage.Store
	newID func() string
}

// NewService wires a codec and a store. A nil codec means no key was loaded:
// the service then refuses to encode or decode but can still list and
// delete.
func NewService(codec ports.Codec, store storage.Store) Service {
	return &VaultService{
		codec: codec,
		store: store,
		newID: newContainerName,
	}
}

func (s *VaultService) Enabled() bool {
	return s.codec != nil
}
