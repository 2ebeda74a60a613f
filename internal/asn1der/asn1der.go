// Package asn1der implements a minimal streaming ASN.1 DER reader and
// an append-only SEQUENCE builder, grounded on
// _examples/original_source/src/rsa.c's asn_next_entry/asn_seq_* call
// pattern. It supports exactly the tags the RSA key formats need:
// INTEGER, BIT STRING, OCTET STRING, NULL, OBJECT IDENTIFIER, SEQUENCE.
//
// The reader never allocates: every Entry.Data is a slice into the
// caller's input.
package asn1der

import "github.com/Mikastiv/ft-ssl/internal/clierr"

// Tag values recognized by this package.
const (
	TagInteger     = 0x02
	TagBitString   = 0x03
	TagOctetString = 0x04
	TagNull        = 0x05
	TagObjectIdent = 0x06
	TagSequence    = 0x30
)

// Entry is a single parsed tag-length-value record.
type Entry struct {
	Tag       byte
	Offset    int // offset of the tag byte in the original input
	HeaderLen int // bytes consumed by tag + length
	DataLen   int
	Data      []byte
}

// NextEntryOffset is the offset of the byte following this entry.
func NextEntryOffset(e Entry) int {
	return e.Offset + e.HeaderLen + e.DataLen
}

// SeqFirstEntry is the offset of the first child entry inside a
// SEQUENCE/constructed entry's body.
func SeqFirstEntry(e Entry) int {
	return e.Offset + e.HeaderLen
}

// NextEntry parses the tag-length-value record starting at offset in
// input. Length decoding follows DER: short form (0..0x7F) is the
// length directly; long form (high bit set) gives a count N in
// [1,8] of following big-endian length bytes; N = 0 (indefinite
// length) is rejected.
func NextEntry(input []byte, offset int) (Entry, error) {
	if offset < 0 || offset >= len(input) {
		return Entry{}, &clierr.DERError{Message: "entry offset past end of input", Offset: offset}
	}

	tag := input[offset]
	pos := offset + 1
	if pos >= len(input) {
		return Entry{}, &clierr.DERError{Message: "truncated length", Offset: offset}
	}

	first := input[pos]
	pos++

	var length int
	if first&0x80 == 0 {
		length = int(first)
	} else {
		n := int(first & 0x7F)
		if n == 0 {
			return Entry{}, &clierr.DERError{Message: "indefinite length not allowed", Offset: offset}
		}
		if n > 8 {
			return Entry{}, &clierr.DERError{Message: "length field too wide", Offset: offset}
		}
		if pos+n > len(input) {
			return Entry{}, &clierr.DERError{Message: "truncated long-form length", Offset: offset}
		}
		for i := 0; i < n; i++ {
			length = length<<8 | int(input[pos+i])
		}
		pos += n
	}

	headerLen := pos - offset
	if pos+length > len(input) {
		return Entry{}, &clierr.DERError{Message: "entry data runs past end of input", Offset: offset}
	}

	return Entry{
		Tag:       tag,
		Offset:    offset,
		HeaderLen: headerLen,
		DataLen:   length,
		Data:      input[pos : pos+length],
	}, nil
}

// IntegerToU64 interprets a DER INTEGER body as an unsigned 64-bit
// value, rejecting anything that would not fit after stripping a
// leading 0x00 sign-guard byte.
func IntegerToU64(data []byte) (uint64, error) {
	b := data
	for len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) > 8 {
		return 0, &clierr.RangeError{Message: "INTEGER does not fit in 64 bits"}
	}
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v, nil
}
