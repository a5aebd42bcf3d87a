// Package keys loads the server-held container key from configuration.
package keys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"evault/internal/core/domain"
)

// DefaultEnv is the environment variable the server reads its key from.
const DefaultEnv = "FILE_ENCRYPTION_KEY"

const errWrongLength = "key missing or wrong length"

// Load interprets source as key material. A 64-character hexadecimal string is
// decoded; otherwise a value of exactly 32 bytes is used verbatim.
func Load(source string) (domain.Key, error) {
	var key domain.Key

	if len(source) == hex.EncodedLen(domain.KeySize) {
		if n, err := hex.Decode(key[:], []byte(source)); err == nil && n == domain.KeySize {
			return key, nil
		}
	}

	if len(source) == domain.KeySize {
		copy(key[:], source)
		return key, nil
	}

	return domain.Key{}, domain.E(domain.KindConfiguration, errWrongLength)
}

// FromEnv reads the named environment variable once and loads it.
func FromEnv(name string) (domain.Key, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return domain.Key{}, domain.Wrap(domain.KindConfiguration, errWrongLength, fmt.Errorf("%s is not set", name))
	}
	return Load(v)
}

// Generate returns a fresh random key.
func Generate() (domain.Key, error) {
	return generate(rand.Reader)
}

func generate(r io.Reader) (domain.Key, error) {
	var key domain.Key
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return domain.Key{}, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}
