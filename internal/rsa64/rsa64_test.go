package rsa64

import (
	"math/big"
	"testing"
)

func TestIsPrimeKnownValues(t *testing.T) {
	primes := []uint64{2, 3, 5, 7, 11, 104729, 0xC0000001}
	for _, p := range primes {
		if !IsPrime(p) {
			t.Errorf("IsPrime(%d) = false, want true", p)
		}
	}

	composites := []uint64{0, 1, 4, 6, 8, 9, 10, 100, 0xC0000000}
	for _, c := range composites {
		if IsPrime(c) {
			t.Errorf("IsPrime(%d) = true, want false", c)
		}
	}
}

func TestInverseMod(t *testing.T) {
	// 3 * 4 = 12 = 1 mod 11
	if got := InverseMod(3, 11); got != 4 {
		t.Errorf("InverseMod(3, 11) = %d, want 4", got)
	}
	e, phi := uint64(65537), uint64(3233)
	d := InverseMod(e, phi)
	if (e*d)%phi != 1 {
		t.Errorf("InverseMod(%d, %d) = %d is not a valid inverse", e, phi, d)
	}
}

func TestGenerateProducesValidKey(t *testing.T) {
	k, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	if !IsPrime(k.Prime1) || !IsPrime(k.Prime2) {
		t.Fatal("generated primes are not prime")
	}
	if k.Prime1 == k.Prime2 {
		t.Fatal("generated primes must be distinct")
	}
	if k.Modulus != k.Prime1*k.Prime2 {
		t.Errorf("modulus = %d, want p*q = %d", k.Modulus, k.Prime1*k.Prime2)
	}
	if k.PubExponent != PublicExponent {
		t.Errorf("public exponent = %d, want %d", k.PubExponent, PublicExponent)
	}
	phi := (k.Prime1 - 1) * (k.Prime2 - 1)
	// e*d overflows uint64 for these key sizes, so reduce it in big.Int.
	ed := new(big.Int).Mul(new(big.Int).SetUint64(k.PubExponent), new(big.Int).SetUint64(k.PrivExponent))
	if ed.Mod(ed, new(big.Int).SetUint64(phi)).Cmp(big.NewInt(1)) != 0 {
		t.Error("d is not the modular inverse of e mod phi")
	}
}

func TestPKCS1PrivateRoundTrip(t *testing.T) {
	k, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	der := EncodePKCS1Private(k)
	got, err := DecodePKCS1Private(der)
	if err != nil {
		t.Fatal(err)
	}
	if got != k {
		t.Errorf("round trip = %+v, want %+v", got, k)
	}
}

func TestPKCS8PrivateRoundTrip(t *testing.T) {
	k, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	der := EncodePKCS8Private(k)
	got, err := DecodePKCS8Private(der)
	if err != nil {
		t.Fatal(err)
	}
	if got != k {
		t.Errorf("round trip = %+v, want %+v", got, k)
	}
}

func TestSPKIPublicRoundTrip(t *testing.T) {
	k, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	der := EncodeSPKIPublic(k.Modulus, k.PubExponent)
	got, err := DecodeSPKIPublic(der)
	if err != nil {
		t.Fatal(err)
	}
	if got.Modulus != k.Modulus || got.Exponent != k.PubExponent {
		t.Errorf("round trip = %+v, want n=%d e=%d", got, k.Modulus, k.PubExponent)
	}
}

func TestPKCS1PublicRoundTrip(t *testing.T) {
	der := EncodePKCS1Public(3233, 17)
	got, err := DecodePKCS1Public(der)
	if err != nil {
		t.Fatal(err)
	}
	if got.Modulus != 3233 || got.Exponent != 17 {
		t.Errorf("round trip = %+v, want n=3233 e=17", got)
	}
}

func TestPrintFieldFormat(t *testing.T) {
	lines := PrintPrivateText(Key{
		Modulus:      255,
		PubExponent:  65537,
		PrivExponent: 1,
		Prime1:       1,
		Prime2:       1,
		Exponent1:    1,
		Exponent2:    1,
		Coefficient:  1,
	})
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8", len(lines))
	}
	want := "modulus: 255 (0xff)"
	if lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
}
