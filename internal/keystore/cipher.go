// Package keystore protects an exported RSA private key with a
// passphrase. It resolves the reference tool's unfinished encrypted-
// key branch two ways: Seal/Open produce and consume a new
// AEAD container (Argon2id + ChaCha20-Poly1305, both already in the
// dependency tree via absfs-encryptfs's cipher.go/key_provider.go) for
// genrsa -p; DecodePBES2 separately completes the legacy PKCS#8
// PBES2/PBKDF2-HMAC-SHA256 + DES3-CBC path the reference C source
// reads but never decrypts, for interop with keys it produced.
package keystore

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// aeadEngine wraps a ChaCha20-Poly1305 AEAD instance keyed for a
// single container.
type aeadEngine struct {
	aead interface {
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
		NonceSize() int
		Overhead() int
	}
}

func newAEADEngine(key []byte) (*aeadEngine, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("keystore: key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("keystore: %w", err)
	}
	return &aeadEngine{aead: aead}, nil
}

func (e *aeadEngine) seal(nonce, plaintext, aad []byte) []byte {
	return e.aead.Seal(nil, nonce, plaintext, aad)
}

func (e *aeadEngine) open(nonce, ciphertext, aad []byte) ([]byte, error) {
	pt, err := e.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return pt, nil
}

func generateNonce() ([]byte, error) {
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("keystore: generating nonce: %w", err)
	}
	return nonce, nil
}
