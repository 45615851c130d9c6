package selection_test

import (
	"errors"
	"testing"

	"mvvideos/internal/selection"
)

func TestParseSizeAcceptsPlainAndScaledMagnitudes(t *testing.T) {
	cases := []struct {
		raw       string
		magnitude uint64
		scale     string
	}{
		{"100", 100, ""},
		{"100k", 100, "k"},
		{"100M", 100, "M"},
		{"2G", 2, "G"},
		{"1T", 1, "T"},
		{"9P", 9, "P"},
		{"0", 0, ""},
		{"0M", 0, "M"},
	}
	for _, tc := range cases {
		got, err := selection.ParseSize(tc.raw)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", tc.raw, err)
		}
		if got.Magnitude != tc.magnitude || got.Scale != tc.scale {
			t.Fatalf("ParseSize(%q) = %+v, want magnitude=%d scale=%q", tc.raw, got, tc.magnitude, tc.scale)
		}
		if got.String() != tc.raw {
			t.Fatalf("String() = %q, want %q", got.String(), tc.raw)
		}
	}
}

func TestParseSizeRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "a10", "100L", "M", "-5", "10.5M", "1 0"} {
		if _, err := selection.ParseSize(raw); !errors.Is(err, selection.ErrInvalidSize) {
			t.Fatalf("ParseSize(%q) error = %v, want ErrInvalidSize", raw, err)
		}
	}
}

func TestParseExtensionsSplitsOnCommas(t *testing.T) {
	got, err := selection.ParseExtensions("mkv")
	if err != nil {
		t.Fatalf("ParseExtensions returned error: %v", err)
	}
	if len(got) != 1 || got[0] != "mkv" {
		t.Fatalf("ParseExtensions(\"mkv\") = %v", got)
	}

	for _, raw := range []string{"mkv,avi", "mkv,avi,"} {
		got, err = selection.ParseExtensions(raw)
		if err != nil {
			t.Fatalf("ParseExtensions(%q) returned error: %v", raw, err)
		}
		if len(got) != 2 || got[0] != "mkv" || got[1] != "avi" {
			t.Fatalf("ParseExtensions(%q) = %v, want [mkv avi]", raw, got)
		}
	}
}

func TestParseExtensionsRejectsEmptyList(t *testing.T) {
	for _, raw := range []string{"", ","} {
		if _, err := selection.ParseExtensions(raw); !errors.Is(err, selection.ErrEmptyExtensions) {
			t.Fatalf("ParseExtensions(%q) error = %v, want ErrEmptyExtensions", raw, err)
		}
	}
}

func TestParseExtensionsRejectsEmptySegments(t *testing.T) {
	for _, raw := range []string{"avi,,mkv", ",avi", "avi,,"} {
		if _, err := selection.ParseExtensions(raw); !errors.Is(err, selection.ErrInvalidExtensions) {
			t.Fatalf("ParseExtensions(%q) error = %v, want ErrInvalidExtensions", raw, err)
		}
	}
}
