// Package manifest defines the dependency data model and the extractors for
// the three local artifact formats: Package.swift manifests, Package.resolved
// lockfiles, and Xcode project descriptors (project.pbxproj).
//
// The extractors are targeted pattern matching over bespoke grammars; callers
// never depend on their regex internals, only on the record types returned.
package manifest

import (
	"regexp"
	"strings"
)

// Filenames of the local artifacts the scanner dispatches on.
const (
	ManifestFileName   = "Package.swift"
	LockFileName       = "Package.resolved"
	DescriptorFileName = "project.pbxproj"
)

// RequirementKind is the declared version-constraint strategy for a
// dependency, as found in a manifest or project descriptor.
type RequirementKind int

const (
	RequirementAbsent RequirementKind = iota
	RequirementExact
	RequirementUpToNextMajor
	RequirementUpToNextMinor
	RequirementRange
	RequirementBranch
	RequirementRevision
)

// String returns a short human-readable label for the requirement kind.
func (k RequirementKind) String() string {
	switch k {
	case RequirementExact:
		return "exact"
	case RequirementUpToNextMajor:
		return "up-to-next-major"
	case RequirementUpToNextMinor:
		return "up-to-next-minor"
	case RequirementRange:
		return "range"
	case RequirementBranch:
		return "branch"
	case RequirementRevision:
		return "revision"
	default:
		return "-"
	}
}

// descriptorKinds maps the project descriptor's fixed requirement vocabulary
// to RequirementKind values.
var descriptorKinds = map[string]RequirementKind{
	"exactVersion":         RequirementExact,
	"upToNextMajorVersion": RequirementUpToNextMajor,
	"upToNextMinorVersion": RequirementUpToNextMinor,
	"versionRange":         RequirementRange,
	"branch":               RequirementBranch,
	"revision":             RequirementRevision,
}

// KindFromDescriptor converts a descriptor kind token (e.g. "exactVersion")
// to a RequirementKind. Unrecognized tokens map to RequirementAbsent.
func KindFromDescriptor(s string) RequirementKind {
	return descriptorKinds[s]
}

// DependencyRecord is the identity of one dependency as discovered locally.
// URL is the canonical deduplication key.
type DependencyRecord struct {
	Name            string          // last URL path segment, ".git" stripped
	URL             string          // canonical URL, ".git" stripped
	DeclaredVersion string          // pinned/resolved version text as found locally
	SourceFile      string          // manifest/lockfile path that produced the record
	Requirement     RequirementKind // declared constraint, RequirementAbsent if unknown
}

// RequirementMap maps dependency URLs (both canonical and as written in the
// descriptor) to their declared requirement kind.
type RequirementMap map[string]RequirementKind

// Lookup resolves the requirement kind for a pin URL: exact match on the
// canonical URL first, falling back to the original non-normalized URL.
// Returns RequirementAbsent when neither key is present.
func (m RequirementMap) Lookup(rawURL string) RequirementKind {
	if k, ok := m[CanonicalURL(rawURL)]; ok {
		return k
	}
	if k, ok := m[rawURL]; ok {
		return k
	}
	return RequirementAbsent
}

// CanonicalURL trims whitespace and strips a trailing ".git" suffix and any
// trailing slash from a repository URL.
func CanonicalURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSuffix(s, ".git")
}

// NameFromURL derives a dependency name from the last path segment of its
// repository URL, with the ".git" suffix stripped.
func NameFromURL(raw string) string {
	s := CanonicalURL(raw)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

var githubURLPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)

// SplitGitHubURL parses owner and repo from a URL of the form
// https://github.com/<owner>/<repo>[.git]. ok is false for any other host.
func SplitGitHubURL(raw string) (owner, repo string, ok bool) {
	m := githubURLPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// IsGitHubURL reports whether raw points at the supported forge.
func IsGitHubURL(raw string) bool {
	_, _, ok := SplitGitHubURL(raw)
	return ok
}
