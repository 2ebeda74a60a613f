package asn1der

// Seq is an append-only accumulator for a DER SEQUENCE body. Terminal
// emission (via AddSeq on a parent, or Finish) prepends the tag and
// length to the accumulated bytes.
type Seq struct {
	body []byte
}

// NewSeq starts an empty sequence builder.
func NewSeq() *Seq {
	return &Seq{}
}

func encodeLength(n int) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}
	var lenBytes []byte
	for v := n; v > 0; v >>= 8 {
		lenBytes = append([]byte{byte(v)}, lenBytes...)
	}
	return append([]byte{0x80 | byte(len(lenBytes))}, lenBytes...)
}

func encodeTLV(tag byte, data []byte) []byte {
	out := append([]byte{tag}, encodeLength(len(data))...)
	return append(out, data...)
}

// AddInteger appends a DER INTEGER. Encoding is minimal and canonical:
// leading zero bytes are stripped, then a single 0x00 is prepended if
// the high bit of the remaining value would otherwise be set, to keep
// the value from being read as negative.
func (s *Seq) AddInteger(v uint64) {
	var b []byte
	for i := 7; i >= 0; i-- {
		b = append(b, byte(v>>(8*uint(i))))
	}
	for len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	if b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	s.body = append(s.body, encodeTLV(TagInteger, b)...)
}

// AddObjectIdent appends a pre-encoded DER OBJECT IDENTIFIER body.
func (s *Seq) AddObjectIdent(oid []byte) {
	s.body = append(s.body, encodeTLV(TagObjectIdent, oid)...)
}

// AddNull appends a DER NULL.
func (s *Seq) AddNull() {
	s.body = append(s.body, encodeTLV(TagNull, nil)...)
}

// AddOctetStrSeq wraps child's finished SEQUENCE bytes in an OCTET
// STRING.
func (s *Seq) AddOctetStrSeq(child *Seq) {
	s.body = append(s.body, encodeTLV(TagOctetString, child.Finish())...)
}

// AddBitStrSeq wraps child's finished SEQUENCE bytes in a BIT STRING,
// prepending the mandatory 0x00 "unused bits" byte.
func (s *Seq) AddBitStrSeq(child *Seq) {
	data := append([]byte{0x00}, child.Finish()...)
	s.body = append(s.body, encodeTLV(TagBitString, data)...)
}

// AddSeq appends child's already-tagged SEQUENCE bytes as a nested
// SEQUENCE. child.Finish() already carries its own SEQUENCE tag and
// length, so this appends it as-is rather than wrapping it again.
func (s *Seq) AddSeq(child *Seq) {
	s.body = append(s.body, child.Finish()...)
}

// AddRaw appends an already-encoded TLV verbatim, for cases (like the
// keystore's EncryptedData) where the value isn't one of the typed
// helpers above.
func (s *Seq) AddRaw(tlv []byte) {
	s.body = append(s.body, tlv...)
}

// EncodeOctetString returns data framed as a standalone DER OCTET
// STRING TLV, for callers (like internal/keystore) building entries
// outside of a Seq via AddRaw.
func EncodeOctetString(data []byte) []byte {
	return encodeTLV(TagOctetString, data)
}

// Finish returns the accumulated body framed as a DER SEQUENCE.
func (s *Seq) Finish() []byte {
	return encodeTLV(TagSequence, s.body)
}

// Object identifiers used as literals in the RSA key formats, stored
// pre-encoded in their DER OID byte form.
var (
	OIDRsaEncryption = []byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x01} // 1.2.840.113549.1.1.1
	OIDPBES2         = []byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x05, 0x0D} // 1.2.840.113549.1.5.13
	OIDPBKDF2        = []byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x05, 0x0C} // 1.2.840.113549.1.5.12
)
