package backend

import (
	"strings"

	version "github.com/hashicorp/go-version"
)

// splitLines splits raw tool output into lines, dropping the trailing
// empty line most tools emit.
func splitLines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

// tabFields splits a tab-separated row into at most n fields with
// surrounding whitespace trimmed.
func tabFields(line string, n int) []string {
	fields := strings.SplitN(line, "\t", n)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// isUpgrade reports whether candidate is a newer version than current.
// Rows where either side fails to parse are kept: dropping data over a
// version string we cannot read would trade availability for nothing.
func isUpgrade(current, candidate string) bool {
	cur, err := version.NewVersion(current)
	if err != nil {
		return true
	}
	cand, err := version.NewVersion(candidate)
	if err != nil {
		return true
	}
	return cand.GreaterThan(cur)
}

// stripNoise filters out lines matching any of the given predicates,
// along with blank lines.
func stripNoise(out string, noisy ...func(string) bool) string {
	var kept []string
	for _, line := range splitLines(out) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		drop := false
		for _, isNoise := range noisy {
			if isNoise(line) {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func hasPrefix(prefixes ...string) func(string) bool {
	return func(line string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(line, p) {
				return true
			}
		}
		return false
	}
}

func contains(substrings ...string) func(string) bool {
	return func(line string) bool {
		for _, s := range substrings {
			if strings.Contains(line, s) {
				return true
			}
		}
		return false
	}
}
