package iojson

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned by FileReader.ReadRaw when no file was given and
// stdin is an interactive terminal.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use -f or pipe JSON input")

// FileReader reads command input from the file named by its --file flag.
// "-" reads stdin explicitly.
type FileReader struct {
	path  string
	stdin io.Reader
}

// Flag returns the --file/-f flag bound to the reader.
func (fr *FileReader) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "read the JSON payload from a file (\"-\" for stdin)",
		Destination: &fr.path,
	}
}

// IsSet reports whether a file was provided.
func (fr *FileReader) IsSet() bool {
	return fr.path != ""
}

// ReadRaw returns the unparsed input bytes.
func (fr *FileReader) ReadRaw() ([]byte, error) {
	if fr.path != "" && fr.path != "-" {
		data, err := os.ReadFile(fr.path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return data, nil
	}

	in := fr.stdin
	if in == nil {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, ErrNoInput
		}
		in = os.Stdin
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
