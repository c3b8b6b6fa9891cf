package manifest

import "testing"

const samplePbxproj = `
/* Begin XCRemoteSwiftPackageReference section */
		A1000001 /* XCRemoteSwiftPackageReference "Alamofire" */ = {
			isa = XCRemoteSwiftPackageReference;
			repositoryURL = "https://github.com/Alamofire/Alamofire.git";
			requirement = {
				kind = exactVersion;
				version = 5.8.0;
			};
		};
		A1000002 /* XCRemoteSwiftPackageReference "Kingfisher" */ = {
			isa = XCRemoteSwiftPackageReference;
			repositoryURL = "https://github.com/onevcat/Kingfisher";
			requirement = {
				kind = upToNextMajorVersion;
				minimumVersion = 7.0.0;
			};
		};
		A1000003 /* XCRemoteSwiftPackageReference "swift-nio" */ = {
			isa = XCRemoteSwiftPackageReference;
			repositoryURL = "https://github.com/apple/swift-nio.git";
			requirement = {
				branch = main;
				kind = branch;
			};
		};
/* End XCRemoteSwiftPackageReference section */
`

func TestParsePbxproj(t *testing.T) {
	reqs := ParsePbxproj([]byte(samplePbxproj))

	tests := []struct {
		url  string
		want RequirementKind
	}{
		{"https://github.com/Alamofire/Alamofire.git", RequirementExact},
		{"https://github.com/Alamofire/Alamofire", RequirementExact},
		{"https://github.com/onevcat/Kingfisher", RequirementUpToNextMajor},
		{"https://github.com/apple/swift-nio.git", RequirementBranch},
		{"https://github.com/unknown/package", RequirementAbsent},
	}

	for _, tt := range tests {
		if got := reqs.Lookup(tt.url); got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestParsePbxprojMalformed(t *testing.T) {
	if reqs := ParsePbxproj([]byte("garbage {{{")); len(reqs) != 0 {
		t.Errorf("got %d entries, want 0", len(reqs))
	}
}

func TestKindFromDescriptor(t *testing.T) {
	tests := []struct {
		token string
		want  RequirementKind
	}{
		{"exactVersion", RequirementExact},
		{"upToNextMajorVersion", RequirementUpToNextMajor},
		{"upToNextMinorVersion", RequirementUpToNextMinor},
		{"versionRange", RequirementRange},
		{"branch", RequirementBranch},
		{"revision", RequirementRevision},
		{"bogus", RequirementAbsent},
	}
	for _, tt := range tests {
		if got := KindFromDescriptor(tt.token); got != tt.want {
			t.Errorf("KindFromDescriptor(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
