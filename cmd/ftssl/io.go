package main

import (
	"io"
	"os"

	"github.com/Mikastiv/ft-ssl/internal/buf"
	"github.com/Mikastiv/ft-ssl/internal/clierr"
)

func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, &clierr.IOError{Operation: "read", Path: "stdin", Err: err}
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &clierr.IOError{Operation: "read", Path: path, Err: err}
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return &clierr.IOError{Operation: "write", Path: "stdout", Err: err}
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &clierr.IOError{Operation: "write", Path: path, Err: err}
	}
	return nil
}

func decodeHex(field, s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := buf.DecodeHex(s)
	if err != nil {
		return nil, &clierr.ValidationError{Field: field, Value: s, Message: "not valid hex", Err: err}
	}
	return b, nil
}
