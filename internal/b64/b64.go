// Package b64 implements the standard (RFC 4648) Base64 alphabet with
// the line-wrapped encoding and whitespace-tolerant decoding that the
// reference ft_ssl base64 subcommand and PEM framing both rely on.
//
// encoding/base64 in the standard library covers the alphabet itself;
// this package exists for the 64-column line wrapping on encode and the
// permissive whitespace handling on decode, neither of which the stdlib
// codec does out of the box.
package b64

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// LineWidth is the number of encoded characters per line on encode,
// matching the classic PEM/base64 wrapping convention.
const LineWidth = 64

// Encode returns the Base64 encoding of data, wrapped at LineWidth
// columns with "\n" separators and a trailing newline.
func Encode(data []byte) string {
	raw := base64.StdEncoding.EncodeToString(data)
	if raw == "" {
		return "\n"
	}

	var sb strings.Builder
	sb.Grow(len(raw) + len(raw)/LineWidth + 1)
	for i := 0; i < len(raw); i += LineWidth {
		end := i + LineWidth
		if end > len(raw) {
			end = len(raw)
		}
		sb.WriteString(raw[i:end])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Decode decodes a Base64 body, tolerating interior whitespace
// (space, \t, \n, \r, \v, \f) the way PEM bodies and wrapped cipher
// output require. It rejects any other non-alphabet byte and any
// length not congruent to 0 mod 4 after whitespace is stripped.
func Decode(text string) ([]byte, error) {
	stripped := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if isSpace(c) {
			continue
		}
		stripped = append(stripped, c)
	}

	if len(stripped)%4 != 0 {
		return nil, fmt.Errorf("invalid base64: length %d not a multiple of 4", len(stripped))
	}

	out, err := base64.StdEncoding.DecodeString(string(stripped))
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return out, nil
}

func isSpace(c byte) bool {
	switch c {
	case '\n', '\r', '\t', '\v', '\f', ' ':
		return true
	default:
		return false
	}
}
