package audit

import "strings"

// licenseMarkers maps a distinctive license-text phrase to its SPDX
// identifier. Order matters: more specific phrases come first.
var licenseMarkers = []struct {
	phrase string
	spdx   string
}{
	{"apache license", "Apache-2.0"},
	{"gnu affero general public license", "AGPL-3.0"},
	{"gnu lesser general public license", "LGPL-3.0"},
	{"gnu general public license version 2", "GPL-2.0"},
	{"gnu general public license", "GPL-3.0"},
	{"mozilla public license", "MPL-2.0"},
	{"mit license", "MIT"},
	{"permission is hereby granted, free of charge", "MIT"},
	{"redistribution and use in source and binary forms", "BSD-3-Clause"},
	{"this is free and unencumbered software", "Unlicense"},
	{"isc license", "ISC"},
}

// ClassifyLicense guesses the SPDX identifier of a license text. Returns
// "Unknown" when no marker phrase matches.
func ClassifyLicense(text string) string {
	lower := strings.ToLower(text)
	for _, m := range licenseMarkers {
		if strings.Contains(lower, m.phrase) {
			if m.spdx == "BSD-3-Clause" && !strings.Contains(lower, "neither the name") {
				return "BSD-2-Clause"
			}
			return m.spdx
		}
	}
	return "Unknown"
}
