package tui

import (
	"fmt"
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// QualityReport formats an assessment as markdown for terminal rendering.
func QualityReport(a domain.QualityAssessment) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Quality Report\n\n")
	fmt.Fprintf(&sb, "**Score:** %d/100 (grade %s) — readiness: `%s`\n\n", a.OverallScore, a.Grade, a.Readiness)

	sb.WriteString("| Dimension | Score | Status |\n")
	sb.WriteString("|---|---|---|\n")
	for _, report := range a.Reports {
		fmt.Fprintf(&sb, "| %s | %d | %s |\n", strings.ReplaceAll(report.Dimension, "_", " "), report.Score, report.Status)
	}

	if len(a.Issues) > 0 {
		sb.WriteString("\n## Issues\n\n")
		for _, issue := range a.Issues {
			fmt.Fprintf(&sb, "- **%s** (%s): %s\n", issue.Severity, issue.Dimension, issue.Message)
		}
	}

	if len(a.Recommendations) > 0 {
		sb.WriteString("\n## Recommendations\n\n")
		for _, rec := range a.Recommendations {
			fmt.Fprintf(&sb, "- %s\n", rec)
		}
	}

	return sb.String()
}
