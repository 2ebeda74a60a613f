// Package buf provides the byte-level primitives the rest of ft-ssl is
// built on: a big-endian 32-bit writer and an uppercase hex codec. It
// has no integer readers.
//
// These mirror part of the small utility layer the reference ft_ssl
// tool keeps in utils.c (print_hex, parse_hex): narrow and deliberately
// free of any cipher-specific knowledge.
package buf

import "fmt"

// PutU32BE writes v into the first 4 bytes of b in big-endian order.
// Used by PBKDF2 to append the INT32_BE(i) block counter to the salt.
func PutU32BE(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

// EncodeHex renders b as uppercase hex, matching the reference tool's
// print_hex output.
func EncodeHex(b []byte) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0xF]
	}
	return string(out)
}

// DecodeHex parses a hex string (upper or lower case, no separators, no
// leading "0x") into bytes. An odd-length string is rejected: unlike
// the reference parse_hex, ft-ssl needs an unambiguous byte count for
// key/IV validation rather than an implicit trailing nibble.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("hex string has odd length %d", len(s))
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, ok1 := fromHex(s[i*2])
		lo, ok2 := fromHex(s[i*2+1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("invalid hex byte %q", s[i*2:i*2+2])
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func fromHex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
