// Package console holds the interactive confirmation prompt that gates
// non-dry-run move batches.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// AskForConfirmation writes prompt to w, reads one line from r, and compares
// it case-sensitively to expected. EOF before any input counts as a decline.
func AskForConfirmation(r io.Reader, w io.Writer, prompt, expected string) (bool, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return false, fmt.Errorf("write confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return strings.TrimSpace(line) == expected, nil
}
