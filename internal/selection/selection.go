// Package selection validates the raw size-threshold and extension-list
// arguments before any discovery work starts.
package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidSize       = errors.New("invalid size")
	ErrEmptyExtensions   = errors.New("empty extension list")
	ErrInvalidExtensions = errors.New("invalid extension list")
)

// scaleUnits are the size suffixes understood by find(1).
const scaleUnits = "kMGTP"

// SizeThreshold is a minimum file size: a non-negative magnitude plus an
// optional scale unit (k, M, G, T, P).
type SizeThreshold struct {
	Magnitude uint64
	Scale     string
}

// String renders the threshold the way find's -size argument expects it.
func (t SizeThreshold) String() string {
	return strconv.FormatUint(t.Magnitude, 10) + t.Scale
}

// ParseSize validates a raw size string such as "100M" or "512".
// A magnitude of 0 is accepted.
func ParseSize(raw string) (SizeThreshold, error) {
	if raw == "" {
		return SizeThreshold{}, fmt.Errorf("%w: size must not be empty", ErrInvalidSize)
	}

	magnitude := raw
	scale := ""
	if last := raw[len(raw)-1:]; strings.Contains(scaleUnits, last) {
		magnitude = raw[:len(raw)-1]
		scale = last
	}

	value, err := strconv.ParseUint(magnitude, 10, 64)
	if err != nil {
		return SizeThreshold{}, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidSize, magnitude)
	}

	return SizeThreshold{Magnitude: value, Scale: scale}, nil
}

// ParseExtensions splits a comma-delimited extension list such as
// "avi,mkv,mp4". A single trailing comma is tolerated; empty segments are
// rejected so they cannot turn into broken -name patterns downstream.
func ParseExtensions(raw string) ([]string, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: extension list must not be empty", ErrEmptyExtensions)
	}

	trimmed := strings.TrimSuffix(raw, ",")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: extension list must not be empty", ErrEmptyExtensions)
	}

	segments := strings.Split(trimmed, ",")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidExtensions, raw)
		}
	}
	return segments, nil
}
