// Package container implements the encrypted file container: a random GCM
// nonce, the logical filename in clear, and the AES-256-GCM ciphertext of the
// file contents. The filename is not authenticated data.
package container

import (
	"fmt"

	"evault/internal/core/domain"
	"evault/internal/core/ports"
	"evault/internal/pkg/crypto/aes"
)

// Codec encodes and decodes containers under one key. It holds no mutable
// state and may be shared by any number of goroutines.
type Codec struct {
	cipher ports.Cipher
}

var _ ports.Codec = (*Codec)(nil)

// New builds a Codec for key.
func New(key domain.Key) (*Codec, error) {
	enc, err := aes.NewAESEncryptor(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return NewWithCipher(enc), nil
}

// NewWithCipher builds a Codec around an existing cipher.
func NewWithCipher(c ports.Cipher) *Codec {
	return &Codec{cipher: c}
}

// Encode seals plaintext under a fresh nonce and prefixes the header.
func (c *Codec) Encode(plaintext []byte, filename string) ([]byte, error) {
	if len(filename) > MaxFilenameLength {
		return nil, domain.E(domain.KindValidation, msgFilenameTooLong)
	}

	nonce, err := c.cipher.GenerateNonce()
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("cipher returned a %d-byte nonce", len(nonce))
	}

	ct, err := c.cipher.Seal(plaintext, nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}

	out := make([]byte, 0, MinSize+len(filename)+len(ct))
	out = appendHeader(out, nonce, filename)
	return append(out, ct...), nil
}

// Decode parses and opens a container, returning the plaintext and the
// filename recorded in its header.
func (c *Codec) Decode(container []byte) ([]byte, string, error) {
	h, ct, err := parseHeader(container)
	if err != nil {
		return nil, "", err
	}

	pt, err := c.cipher.Open(ct, h.Nonce[:])
	if err != nil {
		// The cause is dropped so callers cannot tell a bad tag from a
		// short ciphertext or a wrong key.
		return nil, "", domain.E(domain.KindAuthentication, msgAuthFailed)
	}
	if pt == nil {
		pt = []byte{}
	}
	return pt, h.Filename, nil
}

// Inspect returns the header of a container without decrypting it.
func (c *Codec) Inspect(container []byte) (domain.Header, error) {
	return Inspect(container)
}

// Inspect returns the header of a container without decrypting it.
func Inspect(container []byte) (domain.Header, error) {
	h, _, err := parseHeader(container)
	return h, err
}

// Encode is a one-shot form of Codec.Encode.
func Encode(plaintext []byte, filename string, key domain.Key) ([]byte, error) {
	c, err := New(key)
	if err != nil {
		return nil, err
	}
	return c.Encode(plaintext, filename)
}

// Decode is a one-shot form of Codec.Decode.
func Decode(container []byte, key domain.Key) ([]byte, string, error) {
	c, err := New(key)
	if err != nil {
		return nil, "", err
	}
	return c.Decode(container)
}
