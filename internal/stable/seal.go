package stable

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sealing errors.
var (
	ErrPassphraseTooWeak = errors.New("stable: passphrase too weak (minimum 8 characters)")
	ErrSealed            = errors.New("stable: backup is sealed, passphrase required")
	ErrNotSealed         = errors.New("stable: backup is not sealed")
	ErrOpenFailed        = errors.New("stable: open sealed backup failed - wrong passphrase or corrupted data")
)

const (
	// MinPassphraseLength is the minimum passphrase length.
	MinPassphraseLength = 8

	sealMagic   = "CNKB"
	sealVersion = 1
	saltLength  = 16
	headerLen   = len(sealMagic) + 1 + saltLength + chacha20poly1305.NonceSizeX
)

type kdfParams struct {
	time    uint32
	memory  uint32
	threads uint8
}

var defaultKDF = kdfParams{time: 3, memory: 64 * 1024, threads: 4}

// Sealer encrypts backups with XChaCha20-Poly1305 under a key derived from
// a passphrase with Argon2id. Every sealed blob carries its own salt.
//
// Layout: magic(4) | version(1) | salt(16) | nonce(24) | ciphertext.
type Sealer struct {
	passphrase []byte
	kdf        kdfParams
}

// NewSealer creates a sealer for passphrase.
func NewSealer(passphrase []byte) (*Sealer, error) {
	if len(passphrase) < MinPassphraseLength {
		return nil, ErrPassphraseTooWeak
	}
	return &Sealer{
		passphrase: append([]byte(nil), passphrase...),
		kdf:        defaultKDF,
	}, nil
}

func (s *Sealer) key(salt []byte) []byte {
	return argon2.IDKey(s.passphrase, salt, s.kdf.time, s.kdf.memory, s.kdf.threads, chacha20poly1305.KeySize)
}

// Seal encrypts plaintext.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	header := make([]byte, headerLen)
	copy(header, sealMagic)
	header[len(sealMagic)] = sealVersion
	salt := header[len(sealMagic)+1 : len(sealMagic)+1+saltLength]
	nonce := header[len(sealMagic)+1+saltLength:]
	if _, err := rand.Read(header[len(sealMagic)+1:]); err != nil {
		return nil, fmt.Errorf("stable: seal: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.key(salt))
	if err != nil {
		return nil, fmt.Errorf("stable: seal: %w", err)
	}
	// The header is authenticated as additional data.
	out := make([]byte, headerLen, headerLen+len(plaintext)+aead.Overhead())
	copy(out, header)
	return aead.Seal(out, nonce, plaintext, header), nil
}

// Open decrypts a blob produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if !IsSealed(sealed) || len(sealed) < headerLen {
		return nil, ErrNotSealed
	}
	if v := sealed[len(sealMagic)]; v != sealVersion {
		return nil, fmt.Errorf("stable: unsupported seal version %d", v)
	}

	header := sealed[:headerLen]
	salt := header[len(sealMagic)+1 : len(sealMagic)+1+saltLength]
	nonce := header[len(sealMagic)+1+saltLength:]

	aead, err := chacha20poly1305.NewX(s.key(salt))
	if err != nil {
		return nil, fmt.Errorf("stable: open: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, sealed[headerLen:], header)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}

// IsSealed reports whether data starts with the sealed backup magic.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, []byte(sealMagic))
}
