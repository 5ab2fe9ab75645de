// Package blob holds byte helpers: SHA-256 checksums and base64 transport
// encoding for logos and module hashes.
package blob

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// Checksum returns the SHA-256 digest of b.
func Checksum(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

// ChecksumHex returns the hex encoded SHA-256 digest of b.
func ChecksumHex(b []byte) string {
	return hex.EncodeToString(Checksum(b))
}

// ToBase64 encodes b with the standard padded alphabet.
func ToBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// FromBase64 decodes s. The second result is false when s is not valid
// standard base64.
func FromBase64(s string) ([]byte, bool) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return b, true
}
