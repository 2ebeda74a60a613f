// Package cipherio is the mode & dispatch shim: it threads a
// subcommand's options (which cipher family, which mode, key material,
// IV, Base64 wrapping) into the des package's block cipher and mode
// primitives, and handles the one Base64 layer cipher commands add on
// top of raw ciphertext. Grounded on
// _examples/original_source/src/cipher.h's DesOptions/cipher()
// dispatch shape.
package cipherio

import (
	"github.com/Mikastiv/ft-ssl/internal/b64"
	"github.com/Mikastiv/ft-ssl/internal/clierr"
	"github.com/Mikastiv/ft-ssl/internal/des"
)

// Family distinguishes single DES from 3DES; both share every mode.
type Family int

const (
	FamilyDES Family = iota
	FamilyDES3
)

// Options holds one cipher invocation's resolved parameters: the
// -e/-d direction, the mode (ECB/CBC/CFB/OFB/PCBC), key and IV bytes,
// and whether to Base64-wrap the output (or expect it on input).
type Options struct {
	Family  Family
	Mode    des.Mode
	Encrypt bool
	Key     []byte
	IV      []byte
	Base64  bool
}

func newBlockCipher(opts Options) (interface {
	EncryptBlock(des.Block) des.Block
	DecryptBlock(des.Block) des.Block
}, error) {
	switch opts.Family {
	case FamilyDES:
		if len(opts.Key) != des.BlockSize {
			return nil, clierr.ErrBadKeyLength
		}
		var k des.Key
		copy(k[:], opts.Key)
		return des.NewCipher(k), nil
	case FamilyDES3:
		if len(opts.Key) != 3*des.BlockSize {
			return nil, clierr.ErrBadKeyLength
		}
		var k3 des.Key3
		copy(k3[0][:], opts.Key[0:8])
		copy(k3[1][:], opts.Key[8:16])
		copy(k3[2][:], opts.Key[16:24])
		return des.NewTripleCipher(k3), nil
	default:
		return nil, &clierr.AlgorithmError{Name: "unknown cipher family"}
	}
}

// Run applies opts to input: encrypting or decrypting per opts.Encrypt,
// and applying (or stripping) the optional Base64 wrapping layer.
func Run(opts Options, input []byte) ([]byte, error) {
	c, err := newBlockCipher(opts)
	if err != nil {
		return nil, err
	}

	if opts.Encrypt {
		ciphertext, err := des.Encrypt(c, opts.Mode, opts.IV, input)
		if err != nil {
			return nil, err
		}
		if opts.Base64 {
			return []byte(b64.Encode(ciphertext)), nil
		}
		return ciphertext, nil
	}

	ciphertext := input
	if opts.Base64 {
		decoded, err := b64.Decode(string(input))
		if err != nil {
			return nil, clierr.ErrInvalidBase64
		}
		ciphertext = decoded
	}
	return des.Decrypt(c, opts.Mode, opts.IV, ciphertext)
}

// ParseMode maps a subcommand's mode suffix ("ecb", "cbc", "cfb",
// "ofb", "pcbc") to a des.Mode, defaulting to CBC when suffix is empty
// (the bare "des"/"des3" subcommands).
func ParseMode(suffix string) (des.Mode, error) {
	switch suffix {
	case "", "cbc":
		return des.CBC, nil
	case "ecb":
		return des.ECB, nil
	case "cfb":
		return des.CFB, nil
	case "ofb":
		return des.OFB, nil
	case "pcbc":
		return des.PCBC, nil
	default:
		return 0, &clierr.AlgorithmError{Name: "des mode -" + suffix}
	}
}
