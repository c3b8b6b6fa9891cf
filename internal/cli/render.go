package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/spmaudit/pkg/audit"
)

// renderAudit prints one table per source file.
func renderAudit(groups []audit.Group) {
	for _, g := range groups {
		fmt.Println()
		fmt.Println(StyleTitle.Render(g.SourceFile))
		fmt.Println(auditTable(g.Results))
	}
	fmt.Println()
}

func auditTable(results []audit.Result) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Record.Name,
			r.Outcome.Current,
			latestCell(r.Outcome),
			statusLabel(r.Outcome.Kind),
			licenseCell(r.Hygiene),
			r.Hygiene.Readme.String(),
			orDash(r.Hygiene.ToolsVersion),
			lastCommitCell(r.Hygiene.LastCommit),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Current", "Latest", "Status", "License", "Readme", "Tools", "Last Commit").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 && row < len(results) {
				return statusStyle(results[row].Outcome.Kind)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

func statusLabel(k audit.OutcomeKind) string {
	switch k {
	case audit.OutcomeUpToDate:
		return "up to date"
	case audit.OutcomeUpdateAvailable:
		return "update available"
	case audit.OutcomeNoReleases:
		return "no releases"
	default:
		return "error"
	}
}

func statusStyle(k audit.OutcomeKind) lipgloss.Style {
	switch k {
	case audit.OutcomeUpToDate:
		return StyleSuccess
	case audit.OutcomeUpdateAvailable:
		return StyleWarning
	case audit.OutcomeNoReleases:
		return StyleDim
	default:
		return StyleError
	}
}

func latestCell(o audit.UpdateOutcome) string {
	if o.Latest == "" {
		return "—"
	}
	return o.Latest
}

func licenseCell(h audit.Hygiene) string {
	if h.LicenseCategory != "" {
		return h.LicenseCategory
	}
	return h.License.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// lastCommitCell formats a push timestamp as a coarse relative age.
func lastCommitCell(t *time.Time) string {
	if t == nil {
		return "?"
	}
	return formatRelativeTime(*t)
}

func formatRelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Hour:
		return "just now"
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}
