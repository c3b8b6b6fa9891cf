// Package semver implements the lenient dotted-integer version handling used
// across the audit pipeline.
//
// This is intentionally not strict semver: components that fail to parse as
// integers are dropped rather than rejected, so "1.0-beta" compares as "1".
// Sequences of unequal length are zero-padded before comparison.
package semver

import (
	"strconv"
	"strings"
)

// Prerelease markers, matched case-insensitively as substrings with both
// dash and dot separators.
var prereleaseMarkers = []string{
	"-alpha", "-beta", "-rc", "-pre", "-dev", "-snapshot",
	".alpha", ".beta", ".rc", ".pre", ".dev", ".snapshot",
}

// Normalize converts a release tag to its plain dotted version form.
// It strips a leading "v"/"V" (when followed by a digit), a "release/" or
// "version/" prefix, and a "name-" prefix when the remainder is itself a
// dotted-numeric version. Rules are applied until a fixpoint so that
// Normalize is idempotent for all inputs.
func Normalize(v string) string {
	s := strings.TrimSpace(v)
	for {
		next := stripOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripOnce(s string) string {
	for _, prefix := range []string{"release/", "version/"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			return rest
		}
	}
	if len(s) > 1 && (s[0] == 'v' || s[0] == 'V') && isDigit(s[1]) {
		return s[1:]
	}
	if i := strings.LastIndex(s, "-"); i > 0 && isNumericDotted(s[i+1:]) {
		return s[i+1:]
	}
	return s
}

// IsValidSemver reports whether v is a 2- or 3-component dotted-integer
// version, optionally prefixed with "v" or "V".
func IsValidSemver(v string) bool {
	s := v
	if len(s) > 1 && (s[0] == 'v' || s[0] == 'V') && isDigit(s[1]) {
		s = s[1:]
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return false
	}
	return isNumericDotted(s)
}

// IsPrerelease reports whether v looks like a prerelease by keyword
// heuristic (e.g. "2.0.0-RC1", "1.0.0.beta.3").
func IsPrerelease(v string) bool {
	s := strings.ToLower(v)
	for _, marker := range prereleaseMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// Compare orders two version strings component-wise and returns -1, 0, or 1.
// Both inputs are normalized first; non-numeric components are dropped and
// the shorter sequence is right-padded with zeros.
func Compare(a, b string) int {
	ca, cb := components(Normalize(a)), components(Normalize(b))
	for len(ca) < len(cb) {
		ca = append(ca, 0)
	}
	for len(cb) < len(ca) {
		cb = append(cb, 0)
	}
	for i := range ca {
		switch {
		case ca[i] < cb[i]:
			return -1
		case ca[i] > cb[i]:
			return 1
		}
	}
	return 0
}

// IsNewer reports whether candidate is strictly newer than current.
// All-equal sequences are not newer.
func IsNewer(candidate, current string) bool {
	return Compare(candidate, current) > 0
}

func components(v string) []int {
	var out []int
	for _, part := range strings.Split(v, ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			// Lenient by design: non-numeric components are absent,
			// not errors.
			continue
		}
		out = append(out, n)
	}
	return out
}

func isNumericDotted(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for i := 0; i < len(part); i++ {
			if !isDigit(part[i]) {
				return false
			}
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
