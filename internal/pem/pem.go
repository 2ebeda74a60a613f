// Package pem implements the header/footer framing used by the RSA
// key formats (spec.md §4.8): locating the BEGIN/END markers around a
// Base64 body, and re-emitting them with line-wrapped Base64 on
// output. Grounded on _examples/original_source/src/rsa.c's PEM label
// constants and the reference tool's read/write-PEM pair.
package pem

import (
	"strings"

	"github.com/Mikastiv/ft-ssl/internal/b64"
	"github.com/Mikastiv/ft-ssl/internal/clierr"
)

// Kind identifies which of the five recognized PEM labels a document
// carries.
type Kind int

const (
	None Kind = iota
	SPKIPublic
	PKCS1Public
	PKCS8Private
	PKCS1Private
	EncryptedPrivate
)

var labels = map[Kind]string{
	SPKIPublic:       "PUBLIC KEY",
	PKCS1Public:      "RSA PUBLIC KEY",
	PKCS8Private:     "PRIVATE KEY",
	PKCS1Private:     "RSA PRIVATE KEY",
	EncryptedPrivate: "ENCRYPTED PRIVATE KEY",
}

func beginLine(label string) string { return "-----BEGIN " + label + "-----" }
func endLine(label string) string   { return "-----END " + label + "-----" }

// Decode locates the BEGIN marker, then the END marker for the same
// label, and DER-decodes the Base64 body between them. The kind of
// the first label found is returned so callers can dispatch on it.
func Decode(text string) (Kind, []byte, error) {
	for kind, label := range labels {
		begin := beginLine(label)
		start := strings.Index(text, begin)
		if start < 0 {
			continue
		}
		bodyStart := start + len(begin)

		end := endLine(label)
		endIdx := strings.Index(text[bodyStart:], end)
		if endIdx < 0 {
			return None, nil, &clierr.PEMError{Message: "missing END " + label + " marker"}
		}

		body := text[bodyStart : bodyStart+endIdx]
		der, err := b64.Decode(body)
		if err != nil {
			return None, nil, &clierr.PEMError{Message: "malformed base64 body: " + err.Error()}
		}
		return kind, der, nil
	}
	return None, nil, &clierr.PEMError{Message: "no recognized BEGIN marker found"}
}

// Encode frames der as Base64 under kind's header/footer, with
// line-wrapped Base64 and a trailing newline on each marker line.
func Encode(kind Kind, der []byte) (string, error) {
	label, ok := labels[kind]
	if !ok {
		return "", &clierr.ArgumentError{Message: "unknown PEM kind"}
	}
	var sb strings.Builder
	sb.WriteString(beginLine(label))
	sb.WriteString("\n")
	sb.WriteString(b64.Encode(der))
	sb.WriteString(endLine(label))
	sb.WriteString("\n")
	return sb.String(), nil
}
