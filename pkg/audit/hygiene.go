package audit

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// InspectCheckout inspects a local SwiftPM checkout for hygiene signals.
// checkoutsDir is typically <root>/.build/checkouts. A missing checkout
// yields Unknown signals; a present checkout yields a definite
// Present/Missing per signal.
func InspectCheckout(checkoutsDir, name string) Hygiene {
	h := Hygiene{}
	if checkoutsDir == "" || name == "" {
		return h
	}

	dir := filepath.Join(checkoutsDir, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return h
	}

	h.Readme = SignalMissing
	h.License = SignalMissing
	for _, e := range entries {
		upper := strings.ToUpper(e.Name())
		switch {
		case strings.HasPrefix(upper, "README"):
			h.Readme = SignalPresent
		case strings.HasPrefix(upper, "LICENSE"), strings.HasPrefix(upper, "LICENCE"), strings.HasPrefix(upper, "COPYING"):
			h.License = SignalPresent
			if h.LicenseCategory == "" {
				if data, err := os.ReadFile(filepath.Join(dir, e.Name())); err == nil {
					h.LicenseCategory = ClassifyLicense(string(data))
				}
			}
		}
	}

	h.ToolsVersion = toolsVersion(filepath.Join(dir, "Package.swift"))
	return h
}

// toolsVersion extracts the swift-tools-version declaration from the first
// line of a manifest, e.g. "// swift-tools-version:5.9".
func toolsVersion(manifestPath string) string {
	f, err := os.Open(manifestPath)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ""
	}
	line := strings.TrimSpace(scanner.Text())
	line = strings.TrimPrefix(line, "//")
	line = strings.TrimSpace(line)

	const marker = "swift-tools-version"
	if !strings.HasPrefix(line, marker) {
		return ""
	}
	rest := strings.TrimPrefix(line, marker)
	rest = strings.TrimLeft(rest, ": ")
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}
