package domain

// Severity grades a quality issue. Issues never abort the pipeline; they
// drive the score and the readiness level.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
	SeverityInfo     Severity = "info"
)

// DimensionStatus is the pass/warning/fail outcome of one quality dimension.
type DimensionStatus string

const (
	StatusPass    DimensionStatus = "pass"
	StatusWarning DimensionStatus = "warning"
	StatusFail    DimensionStatus = "fail"
)

// ValidationReport is the result of one quality dimension check.
type ValidationReport struct {
	Dimension       string          `json:"dimension"`
	Score           int             `json:"score"`
	Status          DimensionStatus `json:"status"`
	Issues          []string        `json:"issues"`
	Recommendations []string        `json:"recommendations"`
}

// QualityIssue is one scored defect with its severity.
type QualityIssue struct {
	Severity  Severity `json:"severity"`
	Dimension string   `json:"dimension"`
	Message   string   `json:"message"`
}

// ReadinessLevel is the coarse deployment-suitability label derived from
// the overall score and issue severities.
type ReadinessLevel string

const (
	ReadinessProduction  ReadinessLevel = "production"
	ReadinessStaging     ReadinessLevel = "staging"
	ReadinessDevelopment ReadinessLevel = "development"
	ReadinessNeedsWork   ReadinessLevel = "needs_work"
)

// QualityAssessment aggregates the six dimension reports.
type QualityAssessment struct {
	OverallScore    int                `json:"overall_score"`
	Grade           string             `json:"grade"`
	Readiness       ReadinessLevel     `json:"readiness"`
	Reports         []ValidationReport `json:"reports"`
	Issues          []QualityIssue     `json:"issues"`
	Recommendations []string           `json:"recommendations"`
}

// NodeMetadata is the per-node operational metadata the configurator hands
// to the scorer: token estimates, error-handling posture, and the QA
// checklist attached during enrichment.
type NodeMetadata struct {
	NodeID          string      `json:"node_id"`
	EstimatedTokens int         `json:"estimated_tokens"`
	HasFallback     bool        `json:"has_fallback"`
	Retry           RetryPolicy `json:"retry"`
	QualityChecks   []string    `json:"quality_checks,omitempty"`
}
