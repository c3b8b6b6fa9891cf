// Package update rewrites version requirements in Package.swift manifests.
// It locates the single declaration of a dependency, validates the target
// version against upstream, and applies an anchored in-place substitution.
package update

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "github.com/matzehuels/spmaudit/pkg/errors"
	"github.com/matzehuels/spmaudit/pkg/manifest"
	"github.com/matzehuels/spmaudit/pkg/scan"
	"github.com/matzehuels/spmaudit/pkg/semver"
)

// Releases resolves upstream version information.
type Releases interface {
	// LatestVersion returns the newest stable version, normalized.
	LatestVersion(ctx context.Context, owner, repo string) (string, error)
	// Versions returns all stable versions, normalized.
	Versions(ctx context.Context, owner, repo string) ([]string, error)
}

// Change describes an applied manifest edit.
type Change struct {
	Record manifest.DependencyRecord
	From   string
	To     string
	// Downgrade is set when the target version is older than the declared
	// one. The edit is still applied; callers decide how loudly to warn.
	Downgrade bool
}

// Applier rewrites dependency requirements in manifests under a project
// root.
type Applier struct {
	scanner  *scan.Scanner
	releases Releases
}

// NewApplier creates an Applier. The scanner must include every occurrence
// of a declaration, so it is run without deduplication.
func NewApplier(scanner *scan.Scanner, releases Releases) *Applier {
	return &Applier{scanner: scanner, releases: releases}
}

// Apply updates the named dependency under root to targetVersion. An empty
// targetVersion means the latest stable upstream version. The dependency
// must be declared in exactly one manifest, with a rewritable requirement
// kind, and an explicit target must exist upstream.
func (a *Applier) Apply(ctx context.Context, root, name, targetVersion string) (*Change, error) {
	rec, err := a.locate(root, name)
	if err != nil {
		return nil, err
	}

	owner, repo, ok := manifest.SplitGitHubURL(rec.URL)
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeUnsupported, "%s is not hosted on a supported forge", rec.Name)
	}

	target, err := a.resolveTarget(ctx, owner, repo, targetVersion)
	if err != nil {
		return nil, err
	}

	if err := rewrite(rec, target); err != nil {
		return nil, err
	}

	return &Change{
		Record:    rec,
		From:      rec.DeclaredVersion,
		To:        target,
		Downgrade: semver.IsNewer(rec.DeclaredVersion, target),
	}, nil
}

// locate finds the single manifest declaration of name, case-insensitively.
func (a *Applier) locate(root, name string) (manifest.DependencyRecord, error) {
	var (
		zero    manifest.DependencyRecord
		matches []manifest.DependencyRecord
	)
	for _, r := range a.scanner.ScanAll(root) {
		if strings.EqualFold(r.Name, name) {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return zero, apperrors.New(apperrors.ErrCodePackageNotFound, "no dependency named %q found", name)
	}

	files := make(map[string]bool)
	urls := make(map[string]bool)
	for _, m := range matches {
		files[m.SourceFile] = true
		urls[m.URL] = true
	}
	if len(files) > 1 {
		return zero, apperrors.New(apperrors.ErrCodeMultipleSources,
			"%q is declared in %d files; update each manually", name, len(files))
	}
	if len(urls) > 1 {
		return zero, apperrors.New(apperrors.ErrCodeAmbiguous,
			"%q matches %d different repositories", name, len(urls))
	}

	rec := matches[0]
	if filepath.Base(rec.SourceFile) != manifest.ManifestFileName {
		return zero, apperrors.New(apperrors.ErrCodeUnsupported,
			"%q comes from a lockfile; update the Xcode project instead", name)
	}
	switch rec.Requirement {
	case manifest.RequirementExact, manifest.RequirementUpToNextMajor, manifest.RequirementUpToNextMinor:
	default:
		return zero, apperrors.New(apperrors.ErrCodeUnsupported,
			"%q uses a %s requirement, which cannot be rewritten", name, rec.Requirement)
	}
	return rec, nil
}

func (a *Applier) resolveTarget(ctx context.Context, owner, repo, target string) (string, error) {
	if target == "" {
		return a.releases.LatestVersion(ctx, owner, repo)
	}

	normalized := semver.Normalize(target)
	if !semver.IsValidSemver(normalized) {
		return "", apperrors.New(apperrors.ErrCodeInvalidVersion, "%q is not a valid version", target)
	}

	versions, err := a.releases.Versions(ctx, owner, repo)
	if err != nil {
		return "", err
	}
	for _, v := range versions {
		if semver.Compare(v, normalized) == 0 {
			return normalized, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeVersionNotFound,
		"version %s not found for %s/%s", normalized, owner, repo)
}

// rewrite substitutes the declared version in place. The pattern anchors on
// the exact repository URL, the requirement keyword, and the current
// version, so an edit only happens when precisely one declaration matches.
func rewrite(rec manifest.DependencyRecord, target string) error {
	data, err := os.ReadFile(rec.SourceFile)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "read %s", rec.SourceFile)
	}
	content := string(data)

	pattern := regexp.MustCompile(
		`(url:\s*"` + regexp.QuoteMeta(rec.URL) + `(?:\.git)?"\s*,\s*[^"\n]*?(?:exact:|from:)\s*")` +
			regexp.QuoteMeta(rec.DeclaredVersion) + `(")`,
	)

	switch n := len(pattern.FindAllStringIndex(content, -1)); {
	case n == 0:
		return apperrors.New(apperrors.ErrCodeNotFound,
			"declaration of %s at %s not found in %s", rec.Name, rec.DeclaredVersion, rec.SourceFile)
	case n > 1:
		return apperrors.New(apperrors.ErrCodeAmbiguous,
			"%d declarations of %s match in %s; refusing to edit", n, rec.Name, rec.SourceFile)
	}

	updated := pattern.ReplaceAllString(content, "${1}"+target+"${2}")

	info, err := os.Stat(rec.SourceFile)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "stat %s", rec.SourceFile)
	}
	if err := os.WriteFile(rec.SourceFile, []byte(updated), info.Mode().Perm()); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write %s", rec.SourceFile)
	}
	return nil
}
