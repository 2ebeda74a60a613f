package des

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func mustBlock(t *testing.T, s string) Block {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 8 {
		t.Fatalf("bad test block %q", s)
	}
	var out Block
	copy(out[:], b)
	return out
}

func TestDESEncryptKnownAnswer(t *testing.T) {
	key := Key(mustBlock(t, "133457799BBCDFF1"))
	c := NewCipher(key)
	plain := mustBlock(t, "0123456789ABCDEF")
	want := mustBlock(t, "85E813540F0AB405")

	got := c.EncryptBlock(plain)
	if got != want {
		t.Errorf("encrypt = %x, want %x", got, want)
	}

	back := c.DecryptBlock(got)
	if back != plain {
		t.Errorf("decrypt(encrypt(p)) = %x, want %x", back, plain)
	}
}

func TestDESCBCKnownAnswer(t *testing.T) {
	key := Key(mustBlock(t, "0E329232EA6D0D73"))
	c := NewCipher(key)
	iv := make([]byte, BlockSize)

	plainHex := "8787878787878787" + "8787878787878787"
	plain, _ := hex.DecodeString(plainHex)

	ct, err := Encrypt(c, CBC, iv, plain)
	if err != nil {
		t.Fatal(err)
	}

	// Both data blocks encrypt to zero under this key, so the third
	// (padding) block is E(0808080808080808 XOR 0).
	want := make([]byte, 2*BlockSize)
	padBlock := c.EncryptBlock(Block{8, 8, 8, 8, 8, 8, 8, 8})
	want = append(want, padBlock[:]...)
	if !bytes.Equal(ct, want) {
		t.Errorf("CBC encrypt = %x, want %x", ct, want)
	}

	pt, err := Decrypt(c, CBC, iv, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt, plain) {
		t.Errorf("CBC round trip = %x, want %x", pt, plain)
	}
}

func TestModesRoundTrip(t *testing.T) {
	key := Key(mustBlock(t, "0123456789ABCDEF"))
	c := NewCipher(key)
	iv := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	plain := []byte("the quick brown fox jumps over the lazy dog, 1234")

	for _, m := range []Mode{ECB, CBC, CFB, OFB, PCBC} {
		ct, err := Encrypt(c, m, iv, plain)
		if err != nil {
			t.Fatalf("mode %d: encrypt: %v", m, err)
		}
		if len(ct)%BlockSize != 0 {
			t.Fatalf("mode %d: ciphertext not block-aligned", m)
		}
		pt, err := Decrypt(c, m, iv, ct)
		if err != nil {
			t.Fatalf("mode %d: decrypt: %v", m, err)
		}
		if !bytes.Equal(pt, plain) {
			t.Errorf("mode %d: round trip = %q, want %q", m, pt, plain)
		}
	}
}

func TestPadAlwaysAddsFullBlockWhenAligned(t *testing.T) {
	data := make([]byte, BlockSize*2)
	padded := pad(data)
	if len(padded) != len(data)+BlockSize {
		t.Errorf("pad(aligned) len = %d, want %d", len(padded), len(data)+BlockSize)
	}
	unpadded, err := unpad(padded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(unpadded, data) {
		t.Error("unpad(pad(x)) != x")
	}
}

func TestUnpadRejectsBadPadding(t *testing.T) {
	data := make([]byte, BlockSize)
	data[BlockSize-1] = 0 // invalid pad length
	if _, err := unpad(data); err == nil {
		t.Error("expected padding error for pad length 0")
	}

	data2 := pad([]byte("hello"))
	data2[len(data2)-2] ^= 0xFF // corrupt one pad byte
	if _, err := unpad(data2); err == nil {
		t.Error("expected padding error for inconsistent pad bytes")
	}
}

func TestTripleDESEqualKeysReducesToDES(t *testing.T) {
	k := Key(mustBlock(t, "133457799BBCDFF1"))
	single := NewCipher(k)
	triple := NewTripleCipher(Key3{k, k, k})

	plain := mustBlock(t, "0123456789ABCDEF")
	if got, want := triple.EncryptBlock(plain), single.EncryptBlock(plain); got != want {
		t.Errorf("3DES(k,k,k) encrypt = %x, want %x (DES)", got, want)
	}
}

func TestTripleDESRoundTrip(t *testing.T) {
	k1 := Key(mustBlock(t, "0123456789ABCDEF"))
	k2 := Key(mustBlock(t, "FEDCBA9876543210"))
	k3 := Key(mustBlock(t, "1122334455667788"))
	triple := NewTripleCipher(Key3{k1, k2, k3})

	plain := mustBlock(t, "0011223344556677")
	ct := triple.EncryptBlock(plain)
	pt := triple.DecryptBlock(ct)
	if pt != plain {
		t.Errorf("3DES round trip = %x, want %x", pt, plain)
	}
}
