package container

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"evault/internal/core/domain"
)

// Container layout, all integers big-endian:
//
//	[12 nonce][2 filename length][filename][ciphertext || 16 tag]
const (
	NonceSize         = 12
	LengthFieldSize   = 2
	MinSize           = NonceSize + LengthFieldSize
	TagSize           = 16
	MaxFilenameLength = math.MaxUint16
)

const (
	msgFilenameTooLong = "filename too long"
	msgTruncated       = "truncated container"
	msgCorruptFilename = "corrupt filename field"
	msgAuthFailed      = "decryption failed: data may be corrupted or tampered"
)

// Size returns the container length for a plaintext of n bytes.
func Size(n int, filename string) int {
	return MinSize + len(filename) + n + TagSize
}

// appendHeader serializes nonce || be16(len) || filename into buf.
func appendHeader(buf []byte, nonce []byte, filename string) []byte {
	buf = append(buf, nonce...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(filename)))
	return append(buf, filename...)
}

// parseHeader splits a container into its header and the trailing
// ciphertext. It never looks at the ciphertext.
func parseHeader(b []byte) (domain.Header, []byte, error) {
	var h domain.Header
	if len(b) < MinSize {
		return h, nil, domain.E(domain.KindFormat, msgTruncated)
	}

	copy(h.Nonce[:], b[:NonceSize])
	off := NonceSize
	n := int(binary.BigEndian.Uint16(b[off : off+LengthFieldSize]))
	off += LengthFieldSize

	if len(b)-off < n {
		return h, nil, domain.E(domain.KindFormat, msgTruncated)
	}
	name := b[off : off+n]
	if !utf8.Valid(name) {
		return h, nil, domain.E(domain.KindFormat, msgCorruptFilename)
	}
	h.Filename = string(name)
	off += n

	return h, b[off:], nil
}
