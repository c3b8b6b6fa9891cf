package manifest

import "regexp"

// Remote package references in a project descriptor look like:
//
//	/* XCRemoteSwiftPackageReference "alamofire" */ = {
//		isa = XCRemoteSwiftPackageReference;
//		repositoryURL = "https://github.com/Alamofire/Alamofire.git";
//		requirement = {
//			kind = exactVersion;
//			version = 5.8.0;
//		};
//	};
//
// The URL and the requirement kind are the only fields the reconciler needs.
var descriptorBlockPattern = regexp.MustCompile(
	`(?s)repositoryURL\s*=\s*"([^"]+)"\s*;.{0,200}?kind\s*=\s*([A-Za-z]+)\s*;`)

// ParsePbxproj extracts declared-dependency requirement kinds from project
// descriptor content. Both the canonical URL and the URL exactly as written
// are stored as keys, so pin lookups can fall back to the original form.
// Malformed content yields an empty map, never an error.
func ParsePbxproj(content []byte) RequirementMap {
	reqs := make(RequirementMap)
	for _, m := range descriptorBlockPattern.FindAllStringSubmatch(string(content), -1) {
		url, kindToken := m[1], m[2]
		kind := KindFromDescriptor(kindToken)
		if kind == RequirementAbsent {
			continue
		}
		reqs[CanonicalURL(url)] = kind
		reqs[url] = kind
	}
	return reqs
}
