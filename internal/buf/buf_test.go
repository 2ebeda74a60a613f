package buf

import (
	"bytes"
	"testing"
)

func TestPutU32BE(t *testing.T) {
	b := make([]byte, 4)
	PutU32BE(b, 1)
	if !bytes.Equal(b, []byte{0, 0, 0, 1}) {
		t.Errorf("PutU32BE(1) = %x", b)
	}
}

func TestHexRoundTrip(t *testing.T) {
	in := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01}
	enc := EncodeHex(in)
	if enc != "DEADBEEF0001" {
		t.Fatalf("EncodeHex = %q", enc)
	}
	dec, err := DecodeHex(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dec, in) {
		t.Errorf("DecodeHex round trip = %x, want %x", dec, in)
	}
}

func TestDecodeHexErrors(t *testing.T) {
	if _, err := DecodeHex("abc"); err == nil {
		t.Error("expected error for odd-length hex")
	}
	if _, err := DecodeHex("zz"); err == nil {
		t.Error("expected error for non-hex byte")
	}
}
