package vault

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"evault/internal/container"
	"evault/internal/core/domain"
	"evault/internal/storage"
	"evault/internal/vault/mocks"
)

func TestVaultService_Download(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		corrupt func(store *mocks.MockStore, id string)
		id      string
		wantErr error
	}{
		{
			name:  "Success - Small file",
			input: []byte("Hello, World!"),
		},
		{
			name:  "Success - Empty file",
			input: []byte{},
		},
		{
			name:    "Failure - Unknown id",
			input:   []byte("x"),
			id:      "missing.enc",
			wantErr: storage.ErrNotFound,
		},
		{
			name:  "Failure - Tampered ciphertext",
			input: []byte("Hello, World!"),
			corrupt: func(store *mocks.MockStore, id string) {
				b := store.Objects[id]
				b[len(b)-1] ^= 0x80
			},
			wantErr: domain.ErrAuthentication,
		},
		{
			name:  "Failure - Truncated container",
			input: []byte("Hello, World!"),
			corrupt: func(store *mocks.MockStore, id string) {
				store.Objects[id] = store.Objects[id][:container.MinSize-1]
			},
			wantErr: domain.ErrFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore()
			svc := NewService(newCodec(t), store)

			entry, err := svc.Upload(context.Background(), "file.bin", tt.input)
			if err != nil {
				t.Fatalf("Setup failed: %v", err)
			}
			if tt.corrupt != nil {
				tt.corrupt(store, entry.ID)
			}
			id := entry.ID
			if tt.id != "" {
				id = tt.id
			}

			file, err := svc.Download(context.Background(), id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Download() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Download() error = %v", err)
			}
			if !bytes.Equal(file.Data, tt.input) || file.Name != "file.bin" || file.ID != entry.ID {
				t.Errorf("Download() = %+v", file)
			}
		})
	}
}

func TestVaultService_DownloadDisabled(t *testing.T) {
	store := mocks.NewMockStore()
	store.Objects["a.enc"] = []byte("anything")
	svc := NewService(nil, store)

	if _, err := svc.Download(context.Background(), "a.enc"); !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("Download() error = %v, want configuration error", err)
	}
	if svc.Enabled() {
		t.Error("Enabled() = true without a codec")
	}
}
