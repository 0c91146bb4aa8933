// Package quality runs the six dimension checks over a repaired workflow
// graph, aggregates them into an overall score, letter grade, and readiness
// level, and emits the final external document. Issues never abort the
// pipeline; they only degrade the score.
package quality

import (
	"math"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/dsl"
)

// checkResult is the raw outcome of one dimension check before scoring.
type checkResult struct {
	issues          []domain.QualityIssue
	recommendations []string
}

func (r *checkResult) issue(sev domain.Severity, msg string) {
	r.issues = append(r.issues, domain.QualityIssue{Severity: sev, Message: msg})
}

func (r *checkResult) recommend(msg string) {
	r.recommendations = append(r.recommendations, msg)
}

type dimensionCheck struct {
	name string
	run  func(domain.WorkflowGraph, domain.RequirementProfile, map[string]domain.NodeMetadata) checkResult
}

// The six dimensions, in reporting order. Each check is isolated: it reads
// the graph, profile, and node metadata, and knows nothing about the others.
var dimensions = []dimensionCheck{
	{"structural_integrity", checkStructure},
	{"configuration_correctness", checkConfiguration},
	{"performance_optimization", checkPerformance},
	{"security", checkSecurity},
	{"usability", checkUsability},
	{"best_practices", checkBestPractices},
}

// Assess scores the graph across all dimensions and builds the final
// serialized document from the graph and the app metadata derived from the
// chosen archetype and business intent.
func Assess(g domain.WorkflowGraph, profile domain.RequirementProfile, meta map[string]domain.NodeMetadata, archetypeID string) (domain.QualityAssessment, dsl.Document) {
	assessment := domain.QualityAssessment{}

	total := 0
	for _, dim := range dimensions {
		result := dim.run(g, profile, meta)
		report := buildReport(dim.name, result)
		total += report.Score

		assessment.Reports = append(assessment.Reports, report)
		for i := range result.issues {
			result.issues[i].Dimension = dim.name
		}
		assessment.Issues = append(assessment.Issues, result.issues...)
		assessment.Recommendations = append(assessment.Recommendations, result.recommendations...)
	}

	assessment.OverallScore = int(math.Round(float64(total) / float64(len(dimensions))))
	assessment.Grade = Grade(assessment.OverallScore)
	assessment.Readiness = readiness(assessment.OverallScore, assessment.Issues)

	return assessment, dsl.Build(g, appMetadata(profile, archetypeID))
}

func buildReport(name string, result checkResult) domain.ValidationReport {
	score := 100 - 10*len(result.issues) - 2*len(result.recommendations)
	if score < 0 {
		score = 0
	}

	status := domain.StatusPass
	for _, issue := range result.issues {
		status = domain.StatusWarning
		if issue.Severity == domain.SeverityCritical {
			status = domain.StatusFail
			break
		}
	}

	issueMessages := make([]string, 0, len(result.issues))
	for _, issue := range result.issues {
		issueMessages = append(issueMessages, issue.Message)
	}

	return domain.ValidationReport{
		Dimension:       name,
		Score:           score,
		Status:          status,
		Issues:          issueMessages,
		Recommendations: result.recommendations,
	}
}

// Grade maps an overall score to its letter grade.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

func readiness(score int, issues []domain.QualityIssue) domain.ReadinessLevel {
	var critical, major int
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityCritical:
			critical++
		case domain.SeverityMajor:
			major++
		}
	}

	switch {
	case critical > 0:
		return domain.ReadinessNeedsWork
	case major > 2 || score < 70:
		return domain.ReadinessDevelopment
	case major > 0 || score < 85:
		return domain.ReadinessStaging
	default:
		return domain.ReadinessProduction
	}
}
