// Package report builds serializable audit reports and graph renderings
// from aggregated audit results.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/spmaudit/pkg/audit"
	"github.com/matzehuels/spmaudit/pkg/manifest"
)

// Report is a full audit run, ready for JSON output or the HTTP API.
type Report struct {
	RunID       string       `json:"run_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Root        string       `json:"root"`
	Files       []FileReport `json:"files"`
}

// FileReport groups the dependencies declared in one source file.
type FileReport struct {
	SourceFile   string             `json:"source_file"`
	Dependencies []DependencyReport `json:"dependencies"`
}

// DependencyReport is one dependency's audit findings.
type DependencyReport struct {
	Name         string     `json:"name"`
	URL          string     `json:"url"`
	Requirement  string     `json:"requirement,omitempty"`
	Current      string     `json:"current"`
	Latest       string     `json:"latest,omitempty"`
	Status       string     `json:"status"`
	Message      string     `json:"message,omitempty"`
	License      string     `json:"license,omitempty"`
	Readme       string     `json:"readme,omitempty"`
	ToolsVersion string     `json:"tools_version,omitempty"`
	LastCommit   *time.Time `json:"last_commit,omitempty"`
}

// FromResults assembles a Report from aggregated audit groups. Each call
// gets a fresh run ID.
func FromResults(root string, groups []audit.Group) *Report {
	rep := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Root:        root,
	}
	for _, g := range groups {
		fr := FileReport{SourceFile: g.SourceFile}
		for _, r := range g.Results {
			dr := DependencyReport{
				Name:         r.Record.Name,
				URL:          r.Record.URL,
				Requirement:  requirementLabel(r.Record.Requirement),
				Current:      r.Outcome.Current,
				Latest:       r.Outcome.Latest,
				Status:       r.Outcome.Kind.String(),
				Message:      r.Outcome.Message,
				License:      licenseLabel(r.Hygiene),
				Readme:       signalLabel(r.Hygiene.Readme),
				ToolsVersion: r.Hygiene.ToolsVersion,
				LastCommit:   r.Hygiene.LastCommit,
			}
			fr.Dependencies = append(fr.Dependencies, dr)
		}
		rep.Files = append(rep.Files, fr)
	}
	return rep
}

// requirementLabel keeps the JSON clean: absent requirements are omitted
// instead of serialized as a placeholder.
func requirementLabel(k manifest.RequirementKind) string {
	if k == manifest.RequirementAbsent {
		return ""
	}
	return k.String()
}

func signalLabel(s audit.Signal) string {
	if s == audit.SignalUnknown {
		return ""
	}
	return s.String()
}

// licenseLabel prefers the classified license; a present but unclassified
// license file still reports as present.
func licenseLabel(h audit.Hygiene) string {
	if h.LicenseCategory != "" {
		return h.LicenseCategory
	}
	return signalLabel(h.License)
}
