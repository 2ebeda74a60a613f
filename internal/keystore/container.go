package keystore

import (
	"bytes"
	"errors"

	"github.com/Mikastiv/ft-ssl/internal/asn1der"
)

// magic tags a DER blob as one of this package's own AEAD containers,
// distinguishing it from a legacy PBES2 EncryptedPrivateKeyInfo at the
// same "ENCRYPTED PRIVATE KEY" PEM label.
var magic = []byte("ftsslkeystorev1")

// Common errors
var (
	ErrAuthFailed    = errors.New("keystore: authentication failed - wrong passphrase or corrupted data")
	ErrNotAContainer = errors.New("keystore: not a recognized container format")
)

// Seal encrypts plaintext (a PKCS#1 or PKCS#8 private key DER body)
// under passphrase, returning a self-contained DER blob: magic tag,
// Argon2id parameters, salt, nonce, and the ChaCha20-Poly1305
// ciphertext with the magic tag bound in as associated data.
func Seal(plaintext, passphrase []byte, params Argon2idParams) ([]byte, error) {
	salt, err := generateSalt(params.SaltSize)
	if err != nil {
		return nil, err
	}
	key, err := deriveKey(passphrase, salt, params)
	if err != nil {
		return nil, err
	}
	engine, err := newAEADEngine(key)
	if err != nil {
		return nil, err
	}
	nonce, err := generateNonce()
	if err != nil {
		return nil, err
	}
	ciphertext := engine.seal(nonce, plaintext, magic)

	s := asn1der.NewSeq()
	s.AddRaw(tlvOctetString(magic))
	s.AddInteger(uint64(params.Memory))
	s.AddInteger(uint64(params.Iterations))
	s.AddInteger(uint64(params.Parallelism))
	s.AddRaw(tlvOctetString(salt))
	s.AddRaw(tlvOctetString(nonce))
	s.AddRaw(tlvOctetString(ciphertext))
	return s.Finish(), nil
}

// Open decrypts a Seal container produced by this package. It returns
// ErrNotAContainer (rather than a DER error) when der is not tagged
// with this package's magic, so callers can fall back to DecodePBES2
// for legacy PEM files.
func Open(der, passphrase []byte) ([]byte, error) {
	top, err := asn1der.NextEntry(der, 0)
	if err != nil {
		return nil, err
	}
	if top.Tag != asn1der.TagSequence {
		return nil, ErrNotAContainer
	}

	off := asn1der.SeqFirstEntry(top)
	magicEntry, err := asn1der.NextEntry(der, off)
	if err != nil || magicEntry.Tag != asn1der.TagOctetString || !bytes.Equal(magicEntry.Data, magic) {
		return nil, ErrNotAContainer
	}

	memEntry, err := asn1der.NextEntry(der, asn1der.NextEntryOffset(magicEntry))
	if err != nil {
		return nil, err
	}
	memory, err := asn1der.IntegerToU64(memEntry.Data)
	if err != nil {
		return nil, err
	}

	iterEntry, err := asn1der.NextEntry(der, asn1der.NextEntryOffset(memEntry))
	if err != nil {
		return nil, err
	}
	iterations, err := asn1der.IntegerToU64(iterEntry.Data)
	if err != nil {
		return nil, err
	}

	parEntry, err := asn1der.NextEntry(der, asn1der.NextEntryOffset(iterEntry))
	if err != nil {
		return nil, err
	}
	parallelism, err := asn1der.IntegerToU64(parEntry.Data)
	if err != nil {
		return nil, err
	}

	saltEntry, err := asn1der.NextEntry(der, asn1der.NextEntryOffset(parEntry))
	if err != nil {
		return nil, err
	}
	nonceEntry, err := asn1der.NextEntry(der, asn1der.NextEntryOffset(saltEntry))
	if err != nil {
		return nil, err
	}
	ctEntry, err := asn1der.NextEntry(der, asn1der.NextEntryOffset(nonceEntry))
	if err != nil {
		return nil, err
	}

	params := Argon2idParams{
		Memory:      uint32(memory),
		Iterations:  uint32(iterations),
		Parallelism: uint8(parallelism),
		SaltSize:    len(saltEntry.Data),
		KeySize:     chacha20poly1305KeySize,
	}

	key, err := deriveKey(passphrase, saltEntry.Data, params)
	if err != nil {
		return nil, err
	}
	engine, err := newAEADEngine(key)
	if err != nil {
		return nil, err
	}
	return engine.open(nonceEntry.Data, ctEntry.Data, magic)
}

// Rotate re-seals a container under a new passphrase without
// re-deriving the caller's understanding of the plaintext: it opens
// under oldPassphrase and reseals under newPassphrase with a fresh
// salt and nonce, the way a passphrase change should invalidate every
// prior key-derivation parameter (_examples/absfs-encryptfs's
// key_rotation.go re-encrypts under a new KeyProvider in the same
// spirit, one file at a time).
func Rotate(der, oldPassphrase, newPassphrase []byte, params Argon2idParams) ([]byte, error) {
	plaintext, err := Open(der, oldPassphrase)
	if err != nil {
		return nil, err
	}
	return Seal(plaintext, newPassphrase, params)
}

func tlvOctetString(data []byte) []byte {
	return asn1der.EncodeOctetString(data)
}
