// evault/internal/pkg/crypto/aes/aes.go
package aes

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

const (
	GCMNonceSize = 12 // GCM standard nonce size
	GCMTagSize   = 16
	KeySize      = 32 // AES-256 only
)

// AESEncryptor is AES-256-GCM bound to one key. The AEAD is built once and is
// safe for concurrent use.
type AESEncryptor struct {
	aead cipher.AEAD
	rand io.Reader
}

func NewAESEncryptor(key []byte) (*AESEncryptor, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key size: expected %d, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESEncryptor{
		aead: gcm,
		rand: rand.Reader,
	}, nil
}

// WithRandom replaces the nonce source. Only tests should need this.
func (e *AESEncryptor) WithRandom(r io.Reader) *AESEncryptor {
	e.rand = r
	return e
}

func (e *AESEncryptor) NonceSize() int { return GCMNonceSize }

func (e *AESEncryptor) Overhead() int { return e.aead.Overhead() }

// GenerateNonce returns 12 fresh random bytes. A short read is an error, never
// a partially zero nonce.
func (e *AESEncryptor) GenerateNonce() ([]byte, error) {
	nonce := make([]byte, GCMNonceSize)
	if _, err := io.ReadFull(e.rand, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

func (e *AESEncryptor) Seal(plaintext []byte, nonce []byte) ([]byte, error) {
	if len(nonce) != GCMNonceSize {
		return nil, fmt.Errorf("invalid nonce size: expected %d, got %d", GCMNonceSize, len(nonce))
	}
	return e.aead.Seal(nil, nonce, plaintext, nil), nil
}

func (e *AESEncryptor) Open(ciphertext []byte, nonce []byte) ([]byte, error) {
	if len(nonce) != GCMNonceSize {
		return nil, fmt.Errorf("invalid nonce size: expected %d, got %d", GCMNonceSize, len(nonce))
	}
	return e.aead.Open(nil, nonce, ciphertext, nil)
}
