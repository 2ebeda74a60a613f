package cipherio

import (
	"bytes"
	"testing"

	"github.com/Mikastiv/ft-ssl/internal/des"
)

func TestRunEncryptDecryptRoundTrip(t *testing.T) {
	opts := Options{
		Family: FamilyDES,
		Mode:   des.CBC,
		Key:    []byte("01234567"),
		IV:     []byte("abcdefgh"),
	}

	plaintext := []byte("hello, this is a test message")

	opts.Encrypt = true
	ciphertext, err := Run(opts, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	opts.Encrypt = false
	got, err := Run(opts, ciphertext)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("round trip = %q, want %q", got, plaintext)
	}
}

func TestRunWithBase64Wrapping(t *testing.T) {
	opts := Options{
		Family:  FamilyDES3,
		Mode:    des.ECB,
		Key:     []byte("0123456789ABCDEFGHIJKLMN"),
		Encrypt: true,
		Base64:  true,
	}

	plaintext := []byte("wrap me in base64")
	wrapped, err := Run(opts, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	opts.Encrypt = false
	got, err := Run(opts, wrapped)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("round trip through base64 = %q, want %q", got, plaintext)
	}
}

func TestRunRejectsBadKeyLength(t *testing.T) {
	opts := Options{Family: FamilyDES, Mode: des.ECB, Key: []byte("short"), Encrypt: true}
	if _, err := Run(opts, []byte("data")); err == nil {
		t.Error("expected error for short DES key")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]des.Mode{
		"":     des.CBC,
		"cbc":  des.CBC,
		"ecb":  des.ECB,
		"cfb":  des.CFB,
		"ofb":  des.OFB,
		"pcbc": des.PCBC,
	}
	for suffix, want := range cases {
		got, err := ParseMode(suffix)
		if err != nil {
			t.Fatalf("suffix %q: %v", suffix, err)
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %v, want %v", suffix, got, want)
		}
	}

	if _, err := ParseMode("bogus"); err == nil {
		t.Error("expected error for unknown mode suffix")
	}
}
