package discovery

import (
	"errors"
	"fmt"
	"strings"

	"mvvideos/internal/selection"
)

var ErrEmptySources = errors.New("empty source list")

// BuildCommand assembles the find invocation for the given sources, size
// threshold, and extensions. Pure string construction: identical inputs
// always produce an identical command. Source paths are quoted so embedded
// spaces survive the shell.
func BuildCommand(sources []string, threshold selection.SizeThreshold, extensions []string) (string, error) {
	return BuildCommandWith("find", sources, threshold, extensions)
}

// BuildCommandWith is BuildCommand with a configurable find binary.
func BuildCommandWith(binary string, sources []string, threshold selection.SizeThreshold, extensions []string) (string, error) {
	if len(sources) == 0 {
		return "", fmt.Errorf("%w: at least one source directory is required", ErrEmptySources)
	}
	if len(extensions) == 0 {
		return "", fmt.Errorf("%w: at least one extension is required", selection.ErrEmptyExtensions)
	}

	var b strings.Builder
	b.WriteString(binary)
	for _, source := range sources {
		b.WriteString(" \"")
		b.WriteString(source)
		b.WriteString("\"")
	}
	b.WriteString(" -type f -size +")
	b.WriteString(threshold.String())
	for i, ext := range extensions {
		if i == 0 {
			b.WriteString(" -name \"*.")
		} else {
			b.WriteString(" -or -name \"*.")
		}
		b.WriteString(ext)
		b.WriteString("\"")
	}
	return b.String(), nil
}
