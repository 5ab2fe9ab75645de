// Package principal implements caller identities and ledger account
// identifiers of the canister runtime.
package principal

import (
	"bytes"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"
)

// MaxLength is the maximum byte length of a principal.
const MaxLength = 29

const anonymousTag = 0x04

// Errors
var (
	ErrTooLong      = errors.New("principal: too long")
	ErrInvalidText  = errors.New("principal: invalid text encoding")
	ErrChecksum     = errors.New("principal: checksum mismatch")
	ErrNotCanonical = errors.New("principal: text is not in canonical form")
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Principal is an opaque caller identifier (user or canister).
type Principal struct {
	raw string
}

// FromBytes creates a Principal from its raw bytes.
func FromBytes(b []byte) (Principal, error) {
	if len(b) > MaxLength {
		return Principal{}, ErrTooLong
	}
	return Principal{raw: string(b)}, nil
}

// MustFromBytes is like FromBytes but panics on error.
func MustFromBytes(b []byte) Principal {
	p, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return p
}

// Anonymous returns the anonymous principal.
func Anonymous() Principal {
	return Principal{raw: string([]byte{anonymousTag})}
}

// ManagementCanister returns the principal of the management canister ("aaaaa-aa").
func ManagementCanister() Principal {
	return Principal{}
}

// FromText parses the textual form, e.g. "ryjl3-tyaaa-aaaaa-aaaba-cai".
func FromText(text string) (Principal, error) {
	compact := strings.ToUpper(strings.ReplaceAll(text, "-", ""))
	decoded, err := encoding.DecodeString(compact)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidText, err)
	}
	if len(decoded) < 4 {
		return Principal{}, ErrInvalidText
	}

	body := decoded[4:]
	if binary.BigEndian.Uint32(decoded[:4]) != crc32.ChecksumIEEE(body) {
		return Principal{}, ErrChecksum
	}

	p, err := FromBytes(body)
	if err != nil {
		return Principal{}, err
	}
	if p.String() != text {
		return Principal{}, ErrNotCanonical
	}
	return p, nil
}

// MustFromText is like FromText but panics on error.
func MustFromText(text string) Principal {
	p, err := FromText(text)
	if err != nil {
		panic(err)
	}
	return p
}

// Bytes returns a copy of the raw bytes.
func (p Principal) Bytes() []byte {
	return []byte(p.raw)
}

// Len returns the raw byte length.
func (p Principal) Len() int {
	return len(p.raw)
}

// IsAnonymous reports whether p is the anonymous principal.
func (p Principal) IsAnonymous() bool {
	return p.raw == string([]byte{anonymousTag})
}

// Equal reports whether both principals are the same identity.
func (p Principal) Equal(other Principal) bool {
	return p.raw == other.raw
}

// Compare orders principals by raw bytes.
func (p Principal) Compare(other Principal) int {
	return bytes.Compare([]byte(p.raw), []byte(other.raw))
}

// String returns the canonical textual form.
func (p Principal) String() string {
	body := []byte(p.raw)
	buf := make([]byte, 4, 4+len(body))
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE(body))
	buf = append(buf, body...)

	enc := strings.ToLower(encoding.EncodeToString(buf))

	var b strings.Builder
	for i := 0; i < len(enc); i += 5 {
		if i > 0 {
			b.WriteByte('-')
		}
		end := i + 5
		if end > len(enc) {
			end = len(enc)
		}
		b.WriteString(enc[i:end])
	}
	return b.String()
}

// MarshalText encodes the textual form.
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes the textual form.
func (p *Principal) UnmarshalText(text []byte) error {
	parsed, err := FromText(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
