// Package hmacpbkdf hand-rolls HMAC (RFC 2104) and PBKDF2 (RFC 2898
// §5.2) over the Digest contract in internal/digest. spec.md singles
// these two out as core engineering (§4.2-§4.3) rather than ambient
// plumbing, so unlike the teacher's key_provider.go — which calls
// golang.org/x/crypto/pbkdf2 — this package builds the construction
// itself from Write/Sum calls on the underlying hash.
package hmacpbkdf

import "github.com/Mikastiv/ft-ssl/internal/digest"

// HMAC computes HMAC-H(key, message) for the digest constructor newHash,
// per RFC 2104.
func HMAC(newHash digest.New, key, message []byte) []byte {
	h := newHash()
	blockSize := h.BlockSize()

	k := key
	if len(k) > blockSize {
		h.Write(k)
		k = h.Sum(nil)
		h.Reset()
	}
	if len(k) < blockSize {
		padded := make([]byte, blockSize)
		copy(padded, k)
		k = padded
	}

	ipad := make([]byte, blockSize)
	opad := make([]byte, blockSize)
	for i := 0; i < blockSize; i++ {
		ipad[i] = k[i] ^ 0x36
		opad[i] = k[i] ^ 0x5C
	}

	h.Reset()
	h.Write(ipad)
	h.Write(message)
	inner := h.Sum(nil)

	h.Reset()
	h.Write(opad)
	h.Write(inner)
	return h.Sum(nil)
}
