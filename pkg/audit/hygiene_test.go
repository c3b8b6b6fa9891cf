package audit

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCheckoutFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestInspectCheckout(t *testing.T) {
	checkouts := t.TempDir()
	dep := filepath.Join(checkouts, "SomeDep")
	writeCheckoutFile(t, dep, "README.md", "# SomeDep")
	writeCheckoutFile(t, dep, "LICENSE", "MIT License\n\nPermission is hereby granted, free of charge...")
	writeCheckoutFile(t, dep, "Package.swift", "// swift-tools-version:5.9\nimport PackageDescription")

	h := InspectCheckout(checkouts, "SomeDep")
	if h.Readme != SignalPresent {
		t.Errorf("Readme = %v, want present", h.Readme)
	}
	if h.License != SignalPresent {
		t.Errorf("License = %v, want present", h.License)
	}
	if h.LicenseCategory != "MIT" {
		t.Errorf("LicenseCategory = %q, want MIT", h.LicenseCategory)
	}
	if h.ToolsVersion != "5.9" {
		t.Errorf("ToolsVersion = %q, want 5.9", h.ToolsVersion)
	}
}

func TestInspectCheckoutMissingFiles(t *testing.T) {
	checkouts := t.TempDir()
	writeCheckoutFile(t, filepath.Join(checkouts, "BareDep"), "Sources.txt", "")

	h := InspectCheckout(checkouts, "BareDep")
	if h.Readme != SignalMissing {
		t.Errorf("Readme = %v, want missing", h.Readme)
	}
	if h.License != SignalMissing {
		t.Errorf("License = %v, want missing", h.License)
	}
	if h.ToolsVersion != "" {
		t.Errorf("ToolsVersion = %q, want empty", h.ToolsVersion)
	}
}

func TestInspectCheckoutNoCheckout(t *testing.T) {
	h := InspectCheckout(t.TempDir(), "NeverFetched")
	if h.Readme != SignalUnknown || h.License != SignalUnknown {
		t.Errorf("signals = %v/%v, want unknown", h.Readme, h.License)
	}
}

func TestInspectCheckoutLicenceSpelling(t *testing.T) {
	checkouts := t.TempDir()
	writeCheckoutFile(t, filepath.Join(checkouts, "Dep"), "LICENCE.txt", "Apache License\nVersion 2.0")

	h := InspectCheckout(checkouts, "Dep")
	if h.License != SignalPresent {
		t.Errorf("License = %v, want present", h.License)
	}
	if h.LicenseCategory != "Apache-2.0" {
		t.Errorf("LicenseCategory = %q, want Apache-2.0", h.LicenseCategory)
	}
}

func TestToolsVersionVariants(t *testing.T) {
	tests := []struct {
		name  string
		first string
		want  string
	}{
		{"plain", "// swift-tools-version:5.9", "5.9"},
		{"spaced", "// swift-tools-version: 5.10", "5.10"},
		{"trailing semicolon", "// swift-tools-version:6.0;", "6.0"},
		{"not a declaration", "import PackageDescription", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeCheckoutFile(t, dir, "Package.swift", tt.first+"\n")
			if got := toolsVersion(filepath.Join(dir, "Package.swift")); got != tt.want {
				t.Errorf("toolsVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyLicense(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"mit", "MIT License\nPermission is hereby granted, free of charge", "MIT"},
		{"apache", "Apache License, Version 2.0", "Apache-2.0"},
		{"bsd3", "Redistribution and use in source and binary forms... Neither the name of the copyright holder", "BSD-3-Clause"},
		{"bsd2", "Redistribution and use in source and binary forms, with or without modification", "BSD-2-Clause"},
		{"gpl3", "GNU General Public License version 3", "GPL-3.0"},
		{"mpl", "Mozilla Public License Version 2.0", "MPL-2.0"},
		{"unlicense", "This is free and unencumbered software released into the public domain", "Unlicense"},
		{"unknown", "all rights reserved, call our lawyers", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyLicense(tt.text); got != tt.want {
				t.Errorf("ClassifyLicense() = %q, want %q", got, tt.want)
			}
		})
	}
}
