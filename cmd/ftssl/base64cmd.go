package main

import (
	"flag"

	"github.com/Mikastiv/ft-ssl/internal/b64"
	"github.com/Mikastiv/ft-ssl/internal/clierr"
)

func base64Command(args []string) error {
	fs := flag.NewFlagSet("base64", flag.ExitOnError)
	inputFile := fs.String("i", "", "input file (default stdin)")
	outputFile := fs.String("o", "", "output file (default stdout)")
	encode := fs.Bool("e", false, "encode (default)")
	decode := fs.Bool("d", false, "decode")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *encode && *decode {
		return &clierr.ArgumentError{Message: "cannot encode and decode at the same time"}
	}
	if !*encode && !*decode {
		*encode = true
	}

	input, err := readInput(*inputFile)
	if err != nil {
		return err
	}

	var output []byte
	if *decode {
		output, err = b64.Decode(string(input))
		if err != nil {
			return err
		}
	} else {
		output = []byte(b64.Encode(input))
	}

	return writeOutput(*outputFile, output)
}
