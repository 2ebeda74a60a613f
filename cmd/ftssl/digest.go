package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Mikastiv/ft-ssl/internal/buf"
	"github.com/Mikastiv/ft-ssl/internal/digest"
)

// digestCommand returns a run function for one of the message-digest
// subcommands (md5, sha224, sha256, sha384, sha512, whirlpool), all
// sharing the same -i/-o/-p options. The output line is the uppercase
// hex digest; with -p it is "name(input)= digest", where input is the
// -i path or "stdin".
func digestCommand(name string) func([]string) error {
	return func(args []string) error {
		fs := flag.NewFlagSet(name, flag.ExitOnError)
		inputFile := fs.String("i", "", "input file (default stdin)")
		outputFile := fs.String("o", "", "output file (default stdout)")
		printWithLabel := fs.Bool("p", false, "print name alongside the digest")
		if err := fs.Parse(args); err != nil {
			return err
		}

		newHash, err := digest.Lookup(name)
		if err != nil {
			return err
		}

		data, err := readInput(*inputFile)
		if err != nil {
			return err
		}

		sum := digest.Sum(newHash, data)
		line := buf.EncodeHex(sum)
		if *printWithLabel {
			label := *inputFile
			if label == "" {
				label = "stdin"
			}
			line = fmt.Sprintf("%s(%s)= %s", name, label, buf.EncodeHex(sum))
		}
		line += "\n"

		if *outputFile == "" {
			_, err = os.Stdout.WriteString(line)
		} else {
			err = writeOutput(*outputFile, []byte(line))
		}
		return err
	}
}
