package main

import (
	"flag"

	"github.com/Mikastiv/ft-ssl/internal/cipherio"
	"github.com/Mikastiv/ft-ssl/internal/clierr"
	"github.com/Mikastiv/ft-ssl/internal/digest"
	"github.com/Mikastiv/ft-ssl/internal/hmacpbkdf"
)

// cipherCommand returns a run function for one of the des/des3
// subcommands. modeSuffix is the part after the family name ("",
// "ecb", "cbc", "cfb", "ofb", "pcbc").
func cipherCommand(family cipherio.Family, modeSuffix string) func([]string) error {
	return func(args []string) error {
		fs := flag.NewFlagSet("des", flag.ExitOnError)
		inputFile := fs.String("i", "", "input file (default stdin)")
		outputFile := fs.String("o", "", "output file (default stdout)")
		encrypt := fs.Bool("e", false, "encrypt (default)")
		decrypt := fs.Bool("d", false, "decrypt")
		keyHex := fs.String("k", "", "key in hex")
		saltHex := fs.String("s", "", "salt in hex, used with -p")
		ivHex := fs.String("v", "", "IV in hex")
		passHex := fs.String("p", "", "password in hex; derives the key via PBKDF2")
		base64Wrap := fs.Bool("a", false, "Base64-wrap output (or expect it on -d)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *encrypt && *decrypt {
			return &clierr.ArgumentError{Message: "cannot encrypt and decrypt at the same time"}
		}
		if !*encrypt && !*decrypt {
			*encrypt = true
		}

		mode, err := cipherio.ParseMode(modeSuffix)
		if err != nil {
			return err
		}

		key, err := decodeHex("-k", *keyHex)
		if err != nil {
			return err
		}
		salt, err := decodeHex("-s", *saltHex)
		if err != nil {
			return err
		}
		iv, err := decodeHex("-v", *ivHex)
		if err != nil {
			return err
		}
		pass, err := decodeHex("-p", *passHex)
		if err != nil {
			return err
		}

		if len(pass) > 0 {
			key, err = deriveKeyFromPassword(family, pass, salt)
			if err != nil {
				return err
			}
		}
		if len(key) == 0 {
			return clierr.ErrKeyRequired
		}
		if modeSuffix != "ecb" && len(iv) == 0 {
			return clierr.ErrIVRequired
		}

		input, err := readInput(*inputFile)
		if err != nil {
			return err
		}

		output, err := cipherio.Run(cipherio.Options{
			Family:  family,
			Mode:    mode,
			Encrypt: *encrypt,
			Key:     key,
			IV:      iv,
			Base64:  *base64Wrap,
		}, input)
		if err != nil {
			return err
		}

		return writeOutput(*outputFile, output)
	}
}

// deriveKeyFromPassword reproduces the reference tool's -p key
// derivation: PBKDF2-HMAC-SHA256, truncated to the first 8 (DES) or 24
// (3DES) bytes of the first PBKDF2 block (spec.md §9 "PBKDF2 output
// size" — intentionally weak, kept only for interoperability).
func deriveKeyFromPassword(family cipherio.Family, password, salt []byte) ([]byte, error) {
	newHash, err := digest.Lookup(digest.SHA256)
	if err != nil {
		return nil, err
	}
	size := 8
	if family == cipherio.FamilyDES3 {
		size = 24
	}
	return hmacpbkdf.Key(newHash, password, salt, 1, size), nil
}
