package hmacpbkdf

import (
	"github.com/Mikastiv/ft-ssl/internal/buf"
	"github.com/Mikastiv/ft-ssl/internal/digest"
)

// Key derives dkLen bytes from password and salt using PBKDF2-HMAC-H
// with iterations c, per RFC 2898 §5.2:
//
//	T_i = F(P, S, c, i)
//	F(P,S,c,i) = U_1 XOR U_2 XOR ... XOR U_c
//	U_1 = HMAC_H(P, S || INT32_BE(i))
//	U_k = HMAC_H(P, U_{k-1})
//
// dkLen bytes are produced by concatenating T_1, T_2, ... and
// truncating the last block.
func Key(newHash digest.New, password, salt []byte, iterations, dkLen int) []byte {
	hLen := newHash().Size()
	numBlocks := (dkLen + hLen - 1) / hLen

	dk := make([]byte, 0, numBlocks*hLen)
	for i := 1; i <= numBlocks; i++ {
		dk = append(dk, block(newHash, password, salt, iterations, uint32(i))...)
	}
	return dk[:dkLen]
}

func block(newHash digest.New, password, salt []byte, iterations int, index uint32) []byte {
	saltIndex := make([]byte, len(salt)+4)
	copy(saltIndex, salt)
	buf.PutU32BE(saltIndex[len(salt):], index)

	u := HMAC(newHash, password, saltIndex)
	t := append([]byte(nil), u...)

	for i := 1; i < iterations; i++ {
		u = HMAC(newHash, password, u)
		for j := range t {
			t[j] ^= u[j]
		}
	}

	return t
}

// DESKeyFromPassword derives an 8-byte DES key from a password, the way
// the reference ft_ssl tool does: the first 8 bytes of the first
// PBKDF2 block, T_1. This matches spec.md §9 "PBKDF2 output size" — it
// is intentionally weak (one block, whatever the iteration count) and
// kept only for interoperability with the reference CLI's -k/-p
// derivation path, never for the keystore's own passphrase handling
// (see internal/keystore, which uses a full-length PBKDF2/Argon2id key).
func DESKeyFromPassword(newHash digest.New, password, salt []byte, iterations int) []byte {
	return Key(newHash, password, salt, iterations, 8)
}
