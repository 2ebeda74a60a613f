package keystore

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2idParams tunes the passphrase-to-key derivation for a new
// container. The zero value is not usable; use DefaultArgon2idParams.
type Argon2idParams struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltSize    int
	KeySize     int
}

// DefaultArgon2idParams are the parameters genrsa -p uses unless a
// caller overrides them: 64 MiB, 3 passes, 4-way parallel, a 32-byte
// ChaCha20-Poly1305 key.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
		SaltSize:    16,
		KeySize:     chacha20poly1305KeySize,
	}
}

const chacha20poly1305KeySize = 32

func deriveKey(password, salt []byte, p Argon2idParams) ([]byte, error) {
	if len(password) == 0 {
		return nil, errors.New("keystore: passphrase cannot be empty")
	}
	if len(salt) == 0 {
		return nil, errors.New("keystore: salt cannot be empty")
	}
	return argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Parallelism, uint32(p.KeySize)), nil
}

func generateSalt(n int) ([]byte, error) {
	salt := make([]byte, n)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("keystore: generating salt: %w", err)
	}
	return salt, nil
}
