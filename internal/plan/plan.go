// Package plan re-verifies discovered paths against the filesystem and
// computes the flat destination for each one.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidFileName      = errors.New("invalid file name")
	ErrDestinationCollision = errors.New("destination collision")
)

// Move pairs a verified source file with its flat destination path.
type Move struct {
	Source      string
	Destination string
}

// VerifyExists partitions candidates into paths that still exist and paths
// that have vanished since discovery, preserving order in both partitions.
func VerifyExists(candidates []string) (verified, missing []string) {
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			missing = append(missing, candidate)
			continue
		}
		verified = append(verified, candidate)
	}
	return verified, missing
}

// Plan maps each verified file to destDir joined with its basename. The
// directory structure of the source is discarded. Two sources collapsing to
// the same destination fail the whole plan before any move happens.
func Plan(verified []string, destDir string) ([]Move, error) {
	moves := make([]Move, 0, len(verified))
	claimed := make(map[string]string, len(verified))
	for _, source := range verified {
		name, err := fileName(source)
		if err != nil {
			return nil, err
		}
		destination := filepath.Join(destDir, name)
		if owner, ok := claimed[destination]; ok {
			return nil, fmt.Errorf("%w: %q and %q both map to %q", ErrDestinationCollision, owner, source, destination)
		}
		claimed[destination] = source
		moves = append(moves, Move{Source: source, Destination: destination})
	}
	return moves, nil
}

// fileName extracts the last path segment. A regular file always has one, but
// discovery output is untrusted text, so paths with no usable name component
// are rejected rather than joined into a nonsense destination.
func fileName(path string) (string, error) {
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q ends in a path separator", ErrInvalidFileName, path)
	}
	name := filepath.Base(path)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q has no file name component", ErrInvalidFileName, path)
	}
	return name, nil
}
