package keystore

import (
	"github.com/Mikastiv/ft-ssl/internal/asn1der"
	"github.com/Mikastiv/ft-ssl/internal/des"
	"github.com/Mikastiv/ft-ssl/internal/hmacpbkdf"

	"testing"
)

// buildPBES2DES3 constructs an EncryptedPrivateKeyInfo DER blob using
// PBKDF2-HMAC-SHA256 + DES-EDE3-CBC, matching the structure the
// reference tool's decode_encrypted_private_key reads (and never
// finishes decrypting).
func buildPBES2DES3(t *testing.T, plaintext, salt []byte, iterations int, iv []byte) []byte {
	t.Helper()

	keyMaterial := hmacpbkdf.Key(newSHA256, []byte("test-passphrase"), salt, iterations, 24)
	var k3 des.Key3
	copy(k3[0][:], keyMaterial[0:8])
	copy(k3[1][:], keyMaterial[8:16])
	copy(k3[2][:], keyMaterial[16:24])
	cipher3 := des.NewTripleCipher(k3)

	ciphertext, err := des.Encrypt(cipher3, des.CBC, iv, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	kdfParams := asn1der.NewSeq()
	kdfParams.AddRaw(tlvOctetString(salt))
	kdfParams.AddInteger(uint64(iterations))

	kdf := asn1der.NewSeq()
	kdf.AddObjectIdent(asn1der.OIDPBKDF2)
	kdf.AddSeq(kdfParams)

	scheme := asn1der.NewSeq()
	scheme.AddObjectIdent(oidDESEDE3CBC)
	scheme.AddRaw(tlvOctetString(iv))

	pbes2Params := asn1der.NewSeq()
	pbes2Params.AddSeq(kdf)
	pbes2Params.AddSeq(scheme)

	encAlgo := asn1der.NewSeq()
	encAlgo.AddObjectIdent(asn1der.OIDPBES2)
	encAlgo.AddSeq(pbes2Params)

	top := asn1der.NewSeq()
	top.AddSeq(encAlgo)
	top.AddRaw(tlvOctetString(ciphertext))
	return top.Finish()
}

func TestDecodePBES2DES3CBC(t *testing.T) {
	plaintext := []byte("0123456789ABCDEF") // two DES blocks, still gets PKCS#7 padded
	salt := []byte("saltsalt")
	iv := make([]byte, des.BlockSize)

	der := buildPBES2DES3(t, plaintext, salt, 1000, iv)

	got, err := DecodePBES2(der, []byte("test-passphrase"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(plaintext) {
		t.Errorf("decoded plaintext = %q, want %q", got, plaintext)
	}
}

func TestDecodePBES2WrongPassphraseGarbles(t *testing.T) {
	plaintext := []byte("some private key bytes")
	salt := []byte("anothersalt12345")
	iv := make([]byte, des.BlockSize)

	der := buildPBES2DES3(t, plaintext, salt, 1000, iv)

	got, err := DecodePBES2(der, []byte("not-the-passphrase"))
	if err == nil && string(got) == string(plaintext) {
		t.Error("wrong passphrase should not reproduce the original plaintext")
	}
}
