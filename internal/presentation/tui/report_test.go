package tui

import (
	"testing"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestQualityReport(t *testing.T) {
	a := domain.QualityAssessment{
		OverallScore: 88,
		Grade:        "B",
		Readiness:    domain.ReadinessStaging,
		Reports: []domain.ValidationReport{
			{Dimension: "structural_integrity", Score: 100, Status: domain.StatusPass},
			{Dimension: "security", Score: 80, Status: domain.StatusWarning},
		},
		Issues: []domain.QualityIssue{
			{Severity: domain.SeverityMajor, Dimension: "security", Message: "file input accepts any type"},
		},
		Recommendations: []string{"add a fallback response to node processor"},
	}

	out := QualityReport(a)
	assert.Contains(t, out, "88/100")
	assert.Contains(t, out, "grade B")
	assert.Contains(t, out, "structural integrity")
	assert.Contains(t, out, "file input accepts any type")
	assert.Contains(t, out, "add a fallback response")
}
