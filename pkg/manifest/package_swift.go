package manifest

import "regexp"

// One .package(...) declaration per line is assumed; the tail after the url
// argument is matched against the requirement forms below.
var (
	packageDeclPattern = regexp.MustCompile(`\.package\s*\(\s*url:\s*"([^"]+)"\s*,\s*([^\n]*)`)

	exactPattern         = regexp.MustCompile(`exact:\s*"([^"]+)"`)
	upToNextMajorPattern = regexp.MustCompile(`\.upToNextMajor\s*\(\s*from:\s*"([^"]+)"`)
	upToNextMinorPattern = regexp.MustCompile(`\.upToNextMinor\s*\(\s*from:\s*"([^"]+)"`)
	fromPattern          = regexp.MustCompile(`from:\s*"([^"]+)"`)
	rangePattern         = regexp.MustCompile(`"([^"]+)"\s*\.\.[<.]`)
	branchPattern        = regexp.MustCompile(`branch:\s*"([^"]+)"`)
	revisionPattern      = regexp.MustCompile(`revision:\s*"([^"]+)"`)
)

// ParsePackageSwift extracts dependency declarations from Package.swift
// content. Declarations whose requirement form is not recognized are skipped;
// extraction is best-effort and never fails.
func ParsePackageSwift(path string, content []byte) []DependencyRecord {
	var records []DependencyRecord
	for _, m := range packageDeclPattern.FindAllStringSubmatch(string(content), -1) {
		url, tail := m[1], m[2]
		version, kind, ok := parseRequirement(tail)
		if !ok {
			continue
		}
		records = append(records, DependencyRecord{
			Name:            NameFromURL(url),
			URL:             CanonicalURL(url),
			DeclaredVersion: version,
			SourceFile:      path,
			Requirement:     kind,
		})
	}
	return records
}

// parseRequirement classifies the argument tail of a .package declaration.
// Specific forms are tried before the bare from: shorthand, which SwiftPM
// treats as up-to-next-major.
func parseRequirement(tail string) (version string, kind RequirementKind, ok bool) {
	if m := exactPattern.FindStringSubmatch(tail); m != nil {
		return m[1], RequirementExact, true
	}
	if m := upToNextMajorPattern.FindStringSubmatch(tail); m != nil {
		return m[1], RequirementUpToNextMajor, true
	}
	if m := upToNextMinorPattern.FindStringSubmatch(tail); m != nil {
		return m[1], RequirementUpToNextMinor, true
	}
	if m := fromPattern.FindStringSubmatch(tail); m != nil {
		return m[1], RequirementUpToNextMajor, true
	}
	if m := rangePattern.FindStringSubmatch(tail); m != nil {
		return m[1], RequirementRange, true
	}
	if m := branchPattern.FindStringSubmatch(tail); m != nil {
		return m[1], RequirementBranch, true
	}
	if m := revisionPattern.FindStringSubmatch(tail); m != nil {
		return m[1], RequirementRevision, true
	}
	return "", RequirementAbsent, false
}
