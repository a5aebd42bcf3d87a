package domain

import (
	"encoding/hex"
	"time"
)

const (
	KeySize = 32 // AES-256
)

// Key is the server-held symmetric key. It is loaded once at startup and
// handed to whichever component needs it; it is never persisted.
type Key [KeySize]byte

// Hex returns the 64-character hexadecimal form accepted by the key loader.
func (k Key) Hex() string {
	return hex.EncodeToString(k[:])
}

// String keeps key material out of logs and fmt output.
func (k Key) String() string {
	return "Key(redacted)"
}

// Header is the plaintext prefix of a stored container.
type Header struct {
	Nonce    [12]byte
	Filename string
}

// File is a decrypted container.
type File struct {
	ID   string
	Name string
	Data []byte
}

// FileEntry describes one stored container without decrypting it.
type FileEntry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}
