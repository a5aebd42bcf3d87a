package ports

import (
	"evault/internal/core/domain"
)

// Cipher seals and opens single AEAD messages under a fixed key.
type Cipher interface {
	NonceSize() int
	Overhead() int
	GenerateNonce() ([]byte, error)
	Seal(plaintext []byte, nonce []byte) ([]byte, error)
	Open(ciphertext []byte, nonce []byte) ([]byte, error)
}

// Codec turns (plaintext, filename) pairs into containers and back.
type Codec interface {
	Encode(plaintext []byte, filename string) ([]byte, error)
	Decode(container []byte) ([]byte, string, error)
	Inspect(container []byte) (domain.Header, error)
}
