// Package transcript acquires the meeting transcript, either from
// piped stdin or from a live Amazon Transcribe streaming session fed
// by an external audio capture command.
package transcript

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// IsPiped reports whether stdin carries piped input instead of a terminal.
func IsPiped() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// ReadAll consumes the whole reader and trims surrounding whitespace.
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
