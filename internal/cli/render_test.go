package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/spmaudit/pkg/audit"
	"github.com/matzehuels/spmaudit/pkg/manifest"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		kind audit.OutcomeKind
		want string
	}{
		{audit.OutcomeUpToDate, "up to date"},
		{audit.OutcomeUpdateAvailable, "update available"},
		{audit.OutcomeNoReleases, "no releases"},
		{audit.OutcomeError, "error"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.kind); got != tt.want {
			t.Errorf("statusLabel(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestAuditTableContainsRows(t *testing.T) {
	results := []audit.Result{
		{
			Record:  manifest.DependencyRecord{Name: "Alamofire"},
			Outcome: audit.UpdateOutcome{Kind: audit.OutcomeUpdateAvailable, Current: "5.8.0", Latest: "5.9.1"},
		},
		{
			Record:  manifest.DependencyRecord{Name: "swift-nio"},
			Outcome: audit.UpdateOutcome{Kind: audit.OutcomeNoReleases, Current: "2.60.0"},
		},
	}

	out := auditTable(results)
	for _, want := range []string{"Alamofire", "5.8.0", "5.9.1", "swift-nio", "no releases"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"minutes", now.Add(-10 * time.Minute), "just now"},
		{"hours", now.Add(-5 * time.Hour), "5h ago"},
		{"days", now.Add(-72 * time.Hour), "3d ago"},
		{"months", now.Add(-65 * 24 * time.Hour), "2mo ago"},
		{"years", now.Add(-800 * 24 * time.Hour), "2y ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeTime(tt.t); got != tt.want {
				t.Errorf("formatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLastCommitCellUnknown(t *testing.T) {
	if got := lastCommitCell(nil); got != "?" {
		t.Errorf("lastCommitCell(nil) = %q, want ?", got)
	}
}
