// Package scan discovers dependency records in a project tree. It walks the
// tree for manifest and lockfile artifacts, delegates to the extractors in
// pkg/manifest, reconciles lockfile pins against the sibling project
// descriptor, and deduplicates by canonical URL.
//
// Scanning is best-effort: unreadable directories and unparseable files
// yield empty results, never errors.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/spmaudit/pkg/manifest"
)

// Subtrees whose path contains one of these directory names are skipped:
// build output and test fixtures.
var skipMarkers = map[string]bool{
	".build":   true,
	"Fixtures": true,
}

// Options configures a Scanner.
type Options struct {
	// IncludeTransitive keeps lockfile pins that have no declared
	// requirement in the project descriptor.
	IncludeTransitive bool
	// Logf receives progress/diagnostic messages (optional).
	Logf func(string, ...any)
}

// Scanner discovers dependency records under a root directory.
type Scanner struct {
	includeTransitive bool
	logf              func(string, ...any)
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Scanner{includeTransitive: opts.IncludeTransitive, logf: logf}
}

// Scan walks root and returns discovered records deduplicated by canonical
// URL, first-seen-wins under the walk's deterministic lexical order.
func (s *Scanner) Scan(root string) []manifest.DependencyRecord {
	all := s.ScanAll(root)
	seen := make(map[string]bool, len(all))
	var out []manifest.DependencyRecord
	for _, r := range all {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		out = append(out, r)
	}
	return out
}

// ScanAll walks root and returns every record occurrence without
// deduplication, in lexical traversal order. The update path uses this to
// detect a dependency declared in multiple source files.
func (s *Scanner) ScanAll(root string) []manifest.DependencyRecord {
	var records []manifest.DependencyRecord
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipMarkers[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		switch d.Name() {
		case manifest.ManifestFileName:
			records = append(records, s.parseManifest(path)...)
		case manifest.LockFileName:
			records = append(records, s.parseLockfile(path)...)
		}
		return nil
	})
	return records
}

func (s *Scanner) parseManifest(path string) []manifest.DependencyRecord {
	content, err := os.ReadFile(path)
	if err != nil {
		s.logf("read %s: %v", path, err)
		return nil
	}
	return manifest.ParsePackageSwift(path, content)
}

func (s *Scanner) parseLockfile(path string) []manifest.DependencyRecord {
	content, err := os.ReadFile(path)
	if err != nil {
		s.logf("read %s: %v", path, err)
		return nil
	}
	pins, err := manifest.ParsePackageResolved(content)
	if err != nil {
		s.logf("parse %s: %v", path, err)
		return nil
	}

	// Missing or unparseable descriptor leaves reqs nil: every pin's
	// requirement kind is absent.
	var reqs manifest.RequirementMap
	if descPath, ok := DescriptorPath(path); ok {
		if raw, err := os.ReadFile(descPath); err == nil {
			reqs = manifest.ParsePbxproj(raw)
		} else {
			s.logf("descriptor %s: %v", descPath, err)
		}
	}

	return Reconcile(path, pins, reqs, s.includeTransitive)
}
