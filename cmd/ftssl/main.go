// Command ftssl is a self-contained cryptographic toolkit: message
// digests, a Base64 codec, DES/3DES block-cipher modes, and a toy
// 64-bit RSA subsystem with PEM/DER key handling. Grounded on
// _examples/original_source/src/main.c's command dispatch, reworked
// onto the stdlib flag package the way
// _examples/barnettlynn-nfctools's CLIs use flag + log/slog.
package main

import (
	"fmt"
	"log/slog"
	"os"
)

// progname is set once at startup and threaded through every error
// message; never reassigned afterward.
var progname string

func main() {
	progname = programName(os.Args)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	run, ok := commands[cmd]
	if !ok {
		fail(fmt.Errorf("unknown command: %q", cmd))
	}

	if err := run(os.Args[2:]); err != nil {
		fail(err)
	}
}

func programName(args []string) string {
	if len(args) == 0 {
		return "ftssl"
	}
	name := args[0]
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}

// fail prints err prefixed with progname to stderr and exits non-zero,
// matching the reference tool's print_error convention.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progname, err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <command> [options]\n", progname)
	fmt.Fprintf(os.Stderr, "commands: md5 sha224 sha256 sha384 sha512 whirlpool base64 "+
		"des des-ecb des-cbc des-cfb des-ofb des-pcbc "+
		"des3 des3-ecb des3-cbc des3-cfb des3-ofb des3-pcbc genrsa rsa\n")
}
