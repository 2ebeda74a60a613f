// Package rsa64 implements the toy 64-bit RSA subsystem: Miller-Rabin
// primality testing, 32-bit prime generation, key assembly, and the
// PKCS#1/PKCS#8/SPKI DER codecs. Grounded on
// _examples/original_source/src/rsa.c's rsa_generate and the
// asn_seq_add_* call sequences for each key format.
package rsa64

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	"github.com/Mikastiv/ft-ssl/internal/asn1der"
	"github.com/Mikastiv/ft-ssl/internal/clierr"
)

// PublicExponent is fixed at the conventional Fermat-4 value.
const PublicExponent = 65537

// witnesses is the deterministic Miller-Rabin base set, exact for all
// n < 3.3e14 and so for every 32-bit candidate this package generates.
var witnesses = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

func powerMod(base, exp, mod uint64) uint64 {
	b := new(big.Int).SetUint64(base)
	e := new(big.Int).SetUint64(exp)
	m := new(big.Int).SetUint64(mod)
	return new(big.Int).Exp(b, e, m).Uint64()
}

func millerRabinRound(n, d, a uint64) bool {
	x := powerMod(a, d, n)
	if x == 1 || x == n-1 {
		return true
	}
	for d != n-1 {
		x = (x * x) % n
		d *= 2
		if x == 1 {
			return false
		}
		if x == n-1 {
			return true
		}
	}
	return false
}

// IsPrime reports whether n is prime via deterministic Miller-Rabin
// over the fixed witness set.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 {
		return false
	}

	d := n - 1
	for d%2 == 0 {
		d /= 2
	}

	for _, a := range witnesses {
		if a >= n {
			continue
		}
		if !millerRabinRound(n, d, a) {
			return false
		}
	}
	return true
}

const (
	primeLow  = 0xC0000000
	primeHigh = 0xFFFFFFFF
)

func randomUint32InRange(low, high uint32) (uint32, error) {
	span := uint64(high-low) + 1
	max := new(big.Int).SetUint64(span)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0, &clierr.RNGError{Err: err}
	}
	return low + uint32(n.Uint64()), nil
}

// GeneratePrime draws 32-bit candidates uniformly from
// [0xC0000000, 0xFFFFFFFF], rejecting composites and rejecting any
// candidate equal to avoid (used to keep the two RSA primes distinct).
func GeneratePrime(avoid uint64) (uint64, error) {
	for {
		n, err := randomUint32InRange(primeLow, primeHigh)
		if err != nil {
			return 0, err
		}
		cand := uint64(n)
		if avoid != 0 && cand == avoid {
			continue
		}
		if IsPrime(cand) {
			return cand, nil
		}
	}
}

// InverseMod returns a^-1 mod m via the extended Euclidean algorithm.
// m (phi = (p-1)(q-1) for the primes this package generates) routinely
// exceeds int64's range, so the arithmetic runs in big.Int rather than
// risking a silent high-bit reinterpretation through a uint64->int64
// conversion.
func InverseMod(a, m uint64) uint64 {
	bigA := new(big.Int).SetUint64(a)
	bigM := new(big.Int).SetUint64(m)
	inv := new(big.Int).ModInverse(bigA, bigM)
	return inv.Uint64()
}

// Key holds a full RSA key pair's narrow 64-bit field set.
type Key struct {
	Prime1       uint64
	Prime2       uint64
	Modulus      uint64
	PubExponent  uint64
	PrivExponent uint64
	Exponent1    uint64
	Exponent2    uint64
	Coefficient  uint64
}

// Generate produces a fresh 64-bit RSA key pair: two 32-bit primes
// whose product forms the modulus, fixed e = 65537, d the modular
// inverse of e mod phi, and the CRT exponents/coefficient.
func Generate() (Key, error) {
	p, err := GeneratePrime(0)
	if err != nil {
		return Key{}, err
	}
	q, err := GeneratePrime(p)
	if err != nil {
		return Key{}, err
	}

	n := p * q
	phi := (p - 1) * (q - 1)
	e := uint64(PublicExponent)
	d := InverseMod(e, phi)

	return Key{
		Prime1:       p,
		Prime2:       q,
		Modulus:      n,
		PubExponent:  e,
		PrivExponent: d,
		Exponent1:    d % (p - 1),
		Exponent2:    d % (q - 1),
		Coefficient:  InverseMod(q, p),
	}, nil
}

// --- DER encode ---

func u64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// EncodePKCS1Private builds the PKCS#1 RSAPrivateKey DER form:
// SEQUENCE { version=0, n, e, d, p, q, exp1, exp2, coefficient }.
func EncodePKCS1Private(k Key) []byte {
	s := asn1der.NewSeq()
	s.AddInteger(0)
	s.AddInteger(k.Modulus)
	s.AddInteger(k.PubExponent)
	s.AddInteger(k.PrivExponent)
	s.AddInteger(k.Prime1)
	s.AddInteger(k.Prime2)
	s.AddInteger(k.Exponent1)
	s.AddInteger(k.Exponent2)
	s.AddInteger(k.Coefficient)
	return s.Finish()
}

// EncodePKCS8Private builds the PKCS#8 PrivateKeyInfo DER form:
// SEQUENCE { version=0, SEQUENCE { OID rsaEncryption, NULL }, OCTET
// STRING containing RSAPrivateKey }.
func EncodePKCS8Private(k Key) []byte {
	algo := asn1der.NewSeq()
	algo.AddObjectIdent(asn1der.OIDRsaEncryption)
	algo.AddNull()

	inner := asn1der.NewSeq()
	inner.AddInteger(0)
	inner.AddInteger(k.Modulus)
	inner.AddInteger(k.PubExponent)
	inner.AddInteger(k.PrivExponent)
	inner.AddInteger(k.Prime1)
	inner.AddInteger(k.Prime2)
	inner.AddInteger(k.Exponent1)
	inner.AddInteger(k.Exponent2)
	inner.AddInteger(k.Coefficient)

	outer := asn1der.NewSeq()
	outer.AddInteger(0)
	outer.AddSeq(algo)
	outer.AddOctetStrSeq(inner)
	return outer.Finish()
}

// EncodePKCS1Public builds the bare PKCS#1 RSAPublicKey DER form:
// SEQUENCE { n, e }.
func EncodePKCS1Public(modulus, exponent uint64) []byte {
	s := asn1der.NewSeq()
	s.AddInteger(modulus)
	s.AddInteger(exponent)
	return s.Finish()
}

// EncodeSPKIPublic builds the SPKI SubjectPublicKeyInfo DER form:
// SEQUENCE { SEQUENCE { OID rsaEncryption, NULL }, BIT STRING
// containing SEQUENCE { n, e } }.
func EncodeSPKIPublic(modulus, exponent uint64) []byte {
	algo := asn1der.NewSeq()
	algo.AddObjectIdent(asn1der.OIDRsaEncryption)
	algo.AddNull()

	pub := asn1der.NewSeq()
	pub.AddInteger(modulus)
	pub.AddInteger(exponent)

	outer := asn1der.NewSeq()
	outer.AddSeq(algo)
	outer.AddBitStrSeq(pub)
	return outer.Finish()
}

// --- DER decode ---

func decodeInteger(input []byte, offset int) (asn1der.Entry, uint64, error) {
	e, err := asn1der.NextEntry(input, offset)
	if err != nil {
		return e, 0, err
	}
	if e.Tag != asn1der.TagInteger {
		return e, 0, &clierr.DERError{Message: "expected INTEGER", Offset: offset}
	}
	v, err := asn1der.IntegerToU64(e.Data)
	return e, v, err
}

// DecodePKCS1Private parses a bare PKCS#1 RSAPrivateKey body.
func DecodePKCS1Private(der []byte) (Key, error) {
	top, err := asn1der.NextEntry(der, 0)
	if err != nil {
		return Key{}, err
	}
	if top.Tag != asn1der.TagSequence {
		return Key{}, &clierr.DERError{Message: "expected top-level SEQUENCE"}
	}

	off := asn1der.SeqFirstEntry(top)
	version, _, err := decodeInteger(der, off) // version
	if err != nil {
		return Key{}, err
	}

	fields := make([]uint64, 8)
	e := version
	for i := range fields {
		e, fields[i], err = decodeInteger(der, asn1der.NextEntryOffset(e))
		if err != nil {
			return Key{}, err
		}
	}

	return Key{
		Modulus:      fields[0],
		PubExponent:  fields[1],
		PrivExponent: fields[2],
		Prime1:       fields[3],
		Prime2:       fields[4],
		Exponent1:    fields[5],
		Exponent2:    fields[6],
		Coefficient:  fields[7],
	}, nil
}

// DecodePKCS8Private parses a PKCS#8 PrivateKeyInfo wrapping a
// PKCS#1 RSAPrivateKey in its OCTET STRING payload.
func DecodePKCS8Private(der []byte) (Key, error) {
	top, err := asn1der.NextEntry(der, 0)
	if err != nil {
		return Key{}, err
	}
	off := asn1der.SeqFirstEntry(top)

	version, _, err := decodeInteger(der, off)
	if err != nil {
		return Key{}, err
	}

	algo, err := asn1der.NextEntry(der, asn1der.NextEntryOffset(version))
	if err != nil {
		return Key{}, err
	}
	if algo.Tag != asn1der.TagSequence {
		return Key{}, &clierr.DERError{Message: "expected algorithm identifier SEQUENCE"}
	}

	octet, err := asn1der.NextEntry(der, asn1der.NextEntryOffset(algo))
	if err != nil {
		return Key{}, err
	}
	if octet.Tag != asn1der.TagOctetString {
		return Key{}, &clierr.DERError{Message: "expected OCTET STRING private key"}
	}

	return DecodePKCS1Private(octet.Data)
}

// PublicFields is the narrow (n, e) pair decoded from either public
// key form.
type PublicFields struct {
	Modulus  uint64
	Exponent uint64
}

// DecodePKCS1Public parses a bare PKCS#1 RSAPublicKey body.
func DecodePKCS1Public(der []byte) (PublicFields, error) {
	top, err := asn1der.NextEntry(der, 0)
	if err != nil {
		return PublicFields{}, err
	}
	off := asn1der.SeqFirstEntry(top)

	modEntry, n, err := decodeInteger(der, off)
	if err != nil {
		return PublicFields{}, err
	}
	_, e, err := decodeInteger(der, asn1der.NextEntryOffset(modEntry))
	if err != nil {
		return PublicFields{}, err
	}
	return PublicFields{Modulus: n, Exponent: e}, nil
}

// DecodeSPKIPublic parses an SPKI SubjectPublicKeyInfo, unwrapping its
// BIT STRING to reach the nested RSAPublicKey SEQUENCE.
func DecodeSPKIPublic(der []byte) (PublicFields, error) {
	top, err := asn1der.NextEntry(der, 0)
	if err != nil {
		return PublicFields{}, err
	}
	off := asn1der.SeqFirstEntry(top)

	algo, err := asn1der.NextEntry(der, off)
	if err != nil {
		return PublicFields{}, err
	}

	bitstr, err := asn1der.NextEntry(der, asn1der.NextEntryOffset(algo))
	if err != nil {
		return PublicFields{}, err
	}
	if bitstr.Tag != asn1der.TagBitString {
		return PublicFields{}, &clierr.DERError{Message: "expected BIT STRING"}
	}
	if len(bitstr.Data) < 1 {
		return PublicFields{}, &clierr.DERError{Message: "empty BIT STRING body"}
	}

	return DecodePKCS1Public(bitstr.Data[1:])
}

// --- -text printing ---

func trimLeadingZeros(b []byte) []byte {
	i := 0
	for i < len(b)-1 && b[i] == 0 {
		i++
	}
	return b[i:]
}

// formatField renders one RSA field the way the reference tool's
// print_bigint does: label, decimal value, then the hex value in
// parentheses with a leading nibble collapsed (no leading zero
// nibble unless the value is exactly zero).
func formatField(name string, v uint64) string {
	raw := trimLeadingZeros(u64Bytes(v))
	dec := new(big.Int).SetBytes(raw).String()

	var hex strings.Builder
	hex.WriteString("(0x")
	for i, b := range raw {
		if i == 0 && b&0xF0 == 0 {
			fmt.Fprintf(&hex, "%x", b)
			continue
		}
		fmt.Fprintf(&hex, "%02x", b)
	}
	hex.WriteString(")")

	return fmt.Sprintf("%s: %s %s", name, dec, hex.String())
}

// PrintPublicText renders the two public fields in the reference
// tool's exact label order, one line per field.
func PrintPublicText(f PublicFields) []string {
	return []string{
		formatField("Modulus", f.Modulus),
		formatField("Exponent", f.Exponent),
	}
}

// PrintPrivateText renders all eight private fields in the reference
// tool's exact label order, one line per field.
func PrintPrivateText(k Key) []string {
	return []string{
		formatField("modulus", k.Modulus),
		formatField("publicExponent", k.PubExponent),
		formatField("privateExponent", k.PrivExponent),
		formatField("prime1", k.Prime1),
		formatField("prime2", k.Prime2),
		formatField("exponent1", k.Exponent1),
		formatField("exponent2", k.Exponent2),
		formatField("coefficient", k.Coefficient),
	}
}
