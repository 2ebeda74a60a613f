package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Mikastiv/ft-ssl/internal/clierr"
	"github.com/Mikastiv/ft-ssl/internal/keystore"
	"github.com/Mikastiv/ft-ssl/internal/pem"
	"github.com/Mikastiv/ft-ssl/internal/rsa64"
)

func rsaCommand(args []string) error {
	fs := flag.NewFlagSet("rsa", flag.ExitOnError)
	inputFile := fs.String("i", "", "input file (default stdin)")
	outputFile := fs.String("o", "", "output file (default stdout)")
	inform := fs.String("inform", "PEM", "input format; only PEM is supported")
	outform := fs.String("outform", "PEM", "output format; only PEM is supported")
	pubin := fs.Bool("pubin", false, "expect a public key as input")
	pubout := fs.Bool("pubout", false, "emit a public key")
	text := fs.Bool("text", false, "print the key fields to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !strings.EqualFold(*inform, "PEM") || !strings.EqualFold(*outform, "PEM") {
		return &clierr.ArgumentError{Message: "only PEM is supported for -inform/-outform"}
	}

	input, err := readInput(*inputFile)
	if err != nil {
		return err
	}

	kind, der, err := pem.Decode(string(input))
	if err != nil {
		return err
	}

	if *pubin || kind == pem.SPKIPublic || kind == pem.PKCS1Public {
		return handlePublicKey(kind, der, *pubout, *text, *outputFile)
	}
	return handlePrivateKey(kind, der, *pubout, *text, *outputFile)
}

func handlePublicKey(kind pem.Kind, der []byte, pubout, text bool, outputFile string) error {
	var fields rsa64.PublicFields
	var err error
	switch kind {
	case pem.SPKIPublic:
		fields, err = rsa64.DecodeSPKIPublic(der)
	case pem.PKCS1Public:
		fields, err = rsa64.DecodePKCS1Public(der)
	default:
		return &clierr.ArgumentError{Message: "input is not a public key"}
	}
	if err != nil {
		return err
	}

	if text {
		for _, line := range rsa64.PrintPublicText(fields) {
			fmt.Fprintln(os.Stderr, line)
		}
	}

	outDER := rsa64.EncodeSPKIPublic(fields.Modulus, fields.Exponent)
	out, err := pem.Encode(pem.SPKIPublic, outDER)
	if err != nil {
		return err
	}
	return writeOutput(outputFile, []byte(out))
}

func handlePrivateKey(kind pem.Kind, der []byte, pubout, text bool, outputFile string) error {
	var key rsa64.Key
	var err error

	switch kind {
	case pem.PKCS1Private:
		key, err = rsa64.DecodePKCS1Private(der)
	case pem.PKCS8Private:
		key, err = rsa64.DecodePKCS8Private(der)
	case pem.EncryptedPrivate:
		key, err = decodeEncryptedPrivate(der)
	default:
		return &clierr.ArgumentError{Message: "input is not a private key"}
	}
	if err != nil {
		return err
	}

	if text {
		for _, line := range rsa64.PrintPrivateText(key) {
			fmt.Fprintln(os.Stderr, line)
		}
	}

	if pubout {
		outDER := rsa64.EncodeSPKIPublic(key.Modulus, key.PubExponent)
		out, err := pem.Encode(pem.SPKIPublic, outDER)
		if err != nil {
			return err
		}
		return writeOutput(outputFile, []byte(out))
	}

	outDER := rsa64.EncodePKCS1Private(key)
	out, err := pem.Encode(pem.PKCS1Private, outDER)
	if err != nil {
		return err
	}
	return writeOutput(outputFile, []byte(out))
}

// decodeEncryptedPrivate resolves spec.md §9's "Encrypted-key branch
// unfinished" open question: try this package's own AEAD container
// first, then fall back to the legacy PBES2 decoder for
// interoperability with keys produced by other tools. The container
// holds a PKCS#1 RSAPrivateKey (as genrsa -p seals it); a PBES2 blob
// decrypts to a PKCS#8 PrivateKeyInfo.
func decodeEncryptedPrivate(der []byte) (rsa64.Key, error) {
	passphrase, err := readPassphrase()
	if err != nil {
		return rsa64.Key{}, err
	}

	plainDER, err := keystore.Open(der, passphrase)
	if err == keystore.ErrNotAContainer {
		plainDER, err = keystore.DecodePBES2(der, passphrase)
		if err != nil {
			return rsa64.Key{}, err
		}
		return rsa64.DecodePKCS8Private(plainDER)
	}
	if err != nil {
		return rsa64.Key{}, err
	}
	return rsa64.DecodePKCS1Private(plainDER)
}
