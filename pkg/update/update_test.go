package update

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/spmaudit/pkg/errors"
	"github.com/matzehuels/spmaudit/pkg/scan"
)

type fakeReleases struct {
	latest   string
	versions []string
}

func (f *fakeReleases) LatestVersion(context.Context, string, string) (string, error) {
	return f.latest, nil
}

func (f *fakeReleases) Versions(context.Context, string, string) ([]string, error) {
	return f.versions, nil
}

func writeManifest(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const sampleManifest = `// swift-tools-version:5.9
import PackageDescription

let package = Package(
    name: "App",
    dependencies: [
        .package(url: "https://github.com/Alamofire/Alamofire.git", exact: "5.8.0"),
        .package(url: "https://github.com/apple/swift-nio.git", from: "2.60.0"),
    ]
)
`

func newApplier(releases Releases) *Applier {
	return NewApplier(scan.New(scan.Options{}), releases)
}

func TestApplyToLatest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Package.swift")
	writeManifest(t, path, sampleManifest)

	applier := newApplier(&fakeReleases{latest: "5.9.1"})
	change, err := applier.Apply(context.Background(), root, "alamofire", "")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if change.From != "5.8.0" || change.To != "5.9.1" || change.Downgrade {
		t.Errorf("change = %+v", change)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `exact: "5.9.1"`) {
		t.Errorf("manifest not rewritten:\n%s", data)
	}
	// The other declaration is untouched.
	if !strings.Contains(string(data), `from: "2.60.0"`) {
		t.Errorf("unrelated declaration modified:\n%s", data)
	}
}

func TestApplyExplicitVersion(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "Package.swift"), sampleManifest)

	applier := newApplier(&fakeReleases{versions: []string{"5.9.1", "5.9.0", "5.8.0"}})
	change, err := applier.Apply(context.Background(), root, "Alamofire", "v5.9.0")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if change.To != "5.9.0" {
		t.Errorf("To = %q, want 5.9.0", change.To)
	}
}

func TestApplyDowngradeFlagged(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "Package.swift"), sampleManifest)

	applier := newApplier(&fakeReleases{versions: []string{"5.8.0", "5.7.0"}})
	change, err := applier.Apply(context.Background(), root, "Alamofire", "5.7.0")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !change.Downgrade {
		t.Error("Downgrade = false, want true")
	}
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, root string)
		pkg      string
		version  string
		wantCode apperrors.Code
	}{
		{
			name:     "unknown package",
			setup:    func(t *testing.T, root string) { writeManifest(t, filepath.Join(root, "Package.swift"), sampleManifest) },
			pkg:      "nonexistent",
			wantCode: apperrors.ErrCodePackageNotFound,
		},
		{
			name: "multiple source files",
			setup: func(t *testing.T, root string) {
				writeManifest(t, filepath.Join(root, "a", "Package.swift"), sampleManifest)
				writeManifest(t, filepath.Join(root, "b", "Package.swift"), sampleManifest)
			},
			pkg:      "Alamofire",
			wantCode: apperrors.ErrCodeMultipleSources,
		},
		{
			name: "branch requirement",
			setup: func(t *testing.T, root string) {
				writeManifest(t, filepath.Join(root, "Package.swift"),
					`.package(url: "https://github.com/vapor/vapor.git", branch: "main")`)
			},
			pkg:      "vapor",
			wantCode: apperrors.ErrCodeUnsupported,
		},
		{
			name:     "invalid explicit version",
			setup:    func(t *testing.T, root string) { writeManifest(t, filepath.Join(root, "Package.swift"), sampleManifest) },
			pkg:      "Alamofire",
			version:  "latest-and-greatest",
			wantCode: apperrors.ErrCodeInvalidVersion,
		},
		{
			name:     "version not released",
			setup:    func(t *testing.T, root string) { writeManifest(t, filepath.Join(root, "Package.swift"), sampleManifest) },
			pkg:      "Alamofire",
			version:  "99.0.0",
			wantCode: apperrors.ErrCodeVersionNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			tt.setup(t, root)

			applier := newApplier(&fakeReleases{latest: "9.9.9", versions: []string{"5.9.0"}})
			_, err := applier.Apply(context.Background(), root, tt.pkg, tt.version)
			if !apperrors.Is(err, tt.wantCode) {
				t.Errorf("Apply() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestApplyRejectsLockfileRecords(t *testing.T) {
	root := t.TempDir()
	proj := filepath.Join(root, "App.xcodeproj")
	writeManifest(t, filepath.Join(proj, "project.pbxproj"), `
			repositoryURL = "https://github.com/Alamofire/Alamofire.git";
			requirement = {
				kind = exactVersion;
				version = 5.8.0;
			};
`)
	writeManifest(t, filepath.Join(proj, "project.xcworkspace", "xcshareddata", "swiftpm", "Package.resolved"), `{
  "pins" : [
    {
      "identity" : "alamofire",
      "location" : "https://github.com/Alamofire/Alamofire.git",
      "state" : { "version" : "5.8.0", "revision" : "aaaa" }
    }
  ],
  "version" : 2
}`)

	applier := newApplier(&fakeReleases{latest: "5.9.0"})
	_, err := applier.Apply(context.Background(), root, "Alamofire", "")
	if !apperrors.Is(err, apperrors.ErrCodeUnsupported) {
		t.Errorf("Apply() error = %v, want unsupported", err)
	}
}

func TestApplyRefusesAmbiguousEdit(t *testing.T) {
	// Two textually identical declarations in one manifest.
	content := `
        .package(url: "https://github.com/Alamofire/Alamofire.git", exact: "5.8.0"),
        .package(url: "https://github.com/Alamofire/Alamofire.git", exact: "5.8.0"),
`
	root := t.TempDir()
	path := filepath.Join(root, "Package.swift")
	writeManifest(t, path, content)

	applier := newApplier(&fakeReleases{latest: "5.9.0"})
	_, err := applier.Apply(context.Background(), root, "Alamofire", "")
	if !apperrors.Is(err, apperrors.ErrCodeAmbiguous) {
		t.Fatalf("Apply() error = %v, want ambiguous", err)
	}

	// Refusal means no edit at all.
	data, _ := os.ReadFile(path)
	if string(data) != content {
		t.Error("manifest was modified despite ambiguity")
	}
}
