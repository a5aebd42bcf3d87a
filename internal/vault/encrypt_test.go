package vault

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"evault/internal/container"
	"evault/internal/core/domain"
	"evault/internal/keys"
	"evault/internal/vault/mocks"
)

func newCodec(t *testing.T) *container.Codec {
	t.Helper()
	key, err := keys.Generate()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	c, err := container.New(key)
	if err != nil {
		t.Fatalf("container.New() error = %v", err)
	}
	return c
}

func TestVaultService_Upload(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		input     []byte
		disabled  bool
		setupMock func(*mocks.MockStore)
		wantErr   error
		wantStore bool
	}{
		{
			name:      "Success - Small file",
			filename:  "hello.txt",
			input:     []byte("Hello, World!"),
			wantStore: true,
		},
		{
			name:      "Success - Empty file",
			filename:  "empty.txt",
			input:     []byte{},
			wantStore: true,
		},
		{
			name:     "Failure - Key not configured",
			filename: "hello.txt",
			input:    []byte("data"),
			disabled: true,
			wantErr:  domain.ErrConfiguration,
		},
		{
			name:     "Failure - Filename too long",
			filename: strings.Repeat("x", container.MaxFilenameLength+1),
			input:    []byte("data"),
			wantErr:  domain.ErrValidation,
		},
		{
			name:     "Failure - Store write fails",
			filename: "hello.txt",
			input:    []byte("data"),
			setupMock: func(m *mocks.MockStore) {
				m.PutFunc = func(ctx context.Context, name string, blob []byte) error {
					return errDiskFull
				}
			},
			wantErr: errDiskFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore()
			if tt.setupMock != nil {
				tt.setupMock(store)
			}

			var svc Service
			if tt.disabled {
				svc = NewService(nil, store)
			} else {
				svc = NewService(newCodec(t), store)
			}

			entry, err := svc.Upload(context.Background(), tt.filename, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Upload() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Upload() error = %v", err)
			}

			if got := len(store.Objects); (got == 1) != tt.wantStore {
				t.Fatalf("store holds %d objects, wantStore %v", got, tt.wantStore)
			}
			if !tt.wantStore {
				return
			}

			if !strings.HasSuffix(entry.ID, ".enc") || entry.Name != tt.filename {
				t.Errorf("Upload() entry = %+v", entry)
			}
			blob := store.Objects[entry.ID]
			if int64(len(blob)) != entry.Size {
				t.Errorf("entry size = %d, stored %d bytes", entry.Size, len(blob))
			}
			if bytes.Contains(blob, []byte("Hello, World!")) {
				t.Error("plaintext visible in stored container")
			}
		})
	}
}

func TestVaultService_UploadUniqueNames(t *testing.T) {
	store := mocks.NewMockStore()
	svc := NewService(newCodec(t), store)

	for i := 0; i < 20; i++ {
		if _, err := svc.Upload(context.Background(), "same.txt", []byte("same")); err != nil {
			t.Fatal(err)
		}
	}
	if len(store.Objects) != 20 {
		t.Errorf("got %d containers, want 20 distinct names", len(store.Objects))
	}
}

var errDiskFull = errors.New("disk full")
