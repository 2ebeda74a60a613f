package main

import (
	"fmt"
	"os"

	"github.com/Mikastiv/ft-ssl/internal/clierr"
	"golang.org/x/term"
)

// readPassphrase prompts twice and requires the two entries to match,
// the way the reference tool's read_password does with readpassphrase(3).
func readPassphrase() ([]byte, error) {
	fmt.Fprint(os.Stderr, "enter passphrase: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, &clierr.PasswordError{Message: "error reading passphrase: " + err.Error()}
	}

	fmt.Fprint(os.Stderr, "reenter passphrase: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, &clierr.PasswordError{Message: "error reading passphrase: " + err.Error()}
	}

	if string(first) != string(second) {
		return nil, &clierr.PasswordError{Message: "passphrases don't match"}
	}
	if len(first) == 0 {
		return nil, &clierr.PasswordError{Message: "passphrase cannot be empty"}
	}
	return first, nil
}
