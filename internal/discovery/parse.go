package discovery

import "strings"

// ParseOutput turns raw discovery output into candidate file paths, one per
// non-empty line, order preserved, no deduplication. Empty output is a
// legitimate zero-match result, not an error.
func ParseOutput(raw string) []string {
	candidates := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		candidates = append(candidates, line)
	}
	return candidates
}
