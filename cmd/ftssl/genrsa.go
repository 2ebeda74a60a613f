package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Mikastiv/ft-ssl/internal/keystore"
	"github.com/Mikastiv/ft-ssl/internal/pem"
	"github.com/Mikastiv/ft-ssl/internal/rsa64"
)

func genrsaCommand(args []string) error {
	fs := flag.NewFlagSet("genrsa", flag.ExitOnError)
	outputFile := fs.String("o", "", "output file (default stdout)")
	protect := fs.Bool("p", false, "protect the private key with a passphrase-derived AEAD container")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Generating RSA key with 64 bits")

	key, err := rsa64.Generate()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "e is %d (%#x)\n", key.PubExponent, key.PubExponent)

	der := rsa64.EncodePKCS1Private(key)

	if *protect {
		passphrase, err := readPassphrase()
		if err != nil {
			return err
		}
		der, err = keystore.Seal(der, passphrase, keystore.DefaultArgon2idParams())
		if err != nil {
			return err
		}
		text, err := pem.Encode(pem.EncryptedPrivate, der)
		if err != nil {
			return err
		}
		return writeOutput(*outputFile, []byte(text))
	}

	text, err := pem.Encode(pem.PKCS1Private, der)
	if err != nil {
		return err
	}
	return writeOutput(*outputFile, []byte(text))
}
