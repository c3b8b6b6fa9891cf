package scan

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/spmaudit/pkg/manifest"
)

// workspaceMetadataSuffix is where Xcode stores the SwiftPM lockfile inside
// an .xcodeproj directory.
var workspaceMetadataSuffix = filepath.Join("project.xcworkspace", "xcshareddata", "swiftpm")

// DescriptorPath maps a lockfile path to its sibling project descriptor by
// stripping the workspace-metadata suffix from the lockfile's directory and
// appending the descriptor filename. ok is false when the lockfile does not
// live under an .xcodeproj workspace-metadata directory.
func DescriptorPath(lockfilePath string) (string, bool) {
	dir := filepath.Dir(lockfilePath)
	if !strings.HasSuffix(dir, workspaceMetadataSuffix) {
		return "", false
	}
	projDir := strings.TrimSuffix(dir, workspaceMetadataSuffix)
	projDir = strings.TrimSuffix(projDir, string(filepath.Separator))
	return filepath.Join(projDir, manifest.DescriptorFileName), true
}

// Reconcile merges lockfile pins with descriptor-declared requirement kinds.
//
// Pins without a resolved version (branch/revision pins) and pins whose
// source host is not the supported forge are always excluded. Pins with no
// declared requirement are treated as transitive dependencies and dropped
// unless includeTransitive is set.
func Reconcile(lockfilePath string, pins []manifest.Pin, reqs manifest.RequirementMap, includeTransitive bool) []manifest.DependencyRecord {
	var out []manifest.DependencyRecord
	for _, pin := range pins {
		if pin.Version == "" {
			continue
		}
		if !manifest.IsGitHubURL(pin.Location) {
			continue
		}
		kind := reqs.Lookup(pin.Location)
		if kind == manifest.RequirementAbsent && !includeTransitive {
			continue
		}
		out = append(out, manifest.DependencyRecord{
			Name:            manifest.NameFromURL(pin.Location),
			URL:             manifest.CanonicalURL(pin.Location),
			DeclaredVersion: pin.Version,
			SourceFile:      lockfilePath,
			Requirement:     kind,
		})
	}
	return out
}
