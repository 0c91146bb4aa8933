package domain

// Intent labels the business goal detected in a request.
// IntentUnknown is a valid value, not an error: the pipeline still produces
// a profile for requests it cannot classify, with degraded confidence.
type Intent string

const (
	IntentUnknown            Intent = "unknown"
	IntentCustomerService    Intent = "customer_service"
	IntentDocumentProcessing Intent = "document_processing"
	IntentDataAnalysis       Intent = "data_analysis"
	IntentContentGeneration  Intent = "content_generation"
	IntentTranslation        Intent = "translation"
	IntentAPIIntegration     Intent = "api_integration"
	IntentAutomation         Intent = "automation"
)

// Complexity is the declared complexity tier of a request.
// Tiers are ordered: Simple < Moderate < Complex < Enterprise.
type Complexity int

const (
	ComplexitySimple Complexity = iota
	ComplexityModerate
	ComplexityComplex
	ComplexityEnterprise
)

func (c Complexity) String() string {
	switch c {
	case ComplexitySimple:
		return "simple"
	case ComplexityModerate:
		return "moderate"
	case ComplexityComplex:
		return "complex"
	case ComplexityEnterprise:
		return "enterprise"
	default:
		return "unknown"
	}
}

// ParseComplexity maps a tier name to its Complexity value.
// Unrecognized names fall back to ComplexityModerate.
func ParseComplexity(s string) Complexity {
	switch s {
	case "simple":
		return ComplexitySimple
	case "moderate":
		return ComplexityModerate
	case "complex":
		return ComplexityComplex
	case "enterprise":
		return ComplexityEnterprise
	default:
		return ComplexityModerate
	}
}

// InputType is the semantic type of a declared data input.
type InputType string

const (
	InputTypeText      InputType = "text-input"
	InputTypeParagraph InputType = "paragraph"
	InputTypeNumber    InputType = "number"
	InputTypeFile      InputType = "file"
	InputTypeSelect    InputType = "select"
)

// DataInput is one declared input of the workflow to generate.
type DataInput struct {
	Name        string    `json:"name"`
	Type        InputType `json:"type"`
	Required    bool      `json:"required"`
	Description string    `json:"description,omitempty"`
}

// OutputRequirement is one declared output of the workflow to generate.
type OutputRequirement struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RequirementProfile is the structured result of analyzing a request.
// It is created once by the analyzer and treated as read-only downstream;
// the only mutation path is re-analysis with newly answered clarification
// questions merged in.
type RequirementProfile struct {
	Intent           Intent              `json:"intent"`
	Complexity       Complexity          `json:"complexity"`
	Inputs           []DataInput         `json:"inputs"`
	Outputs          []OutputRequirement `json:"outputs"`
	BusinessRules    []string            `json:"business_rules"`
	IntegrationNeeds []string            `json:"integration_needs"`
	PerformanceNeeds []string            `json:"performance_needs"`
	SecurityNeeds    []string            `json:"security_needs"`

	// Confidence is in [0,1]. Values below the analyzer's clarification
	// threshold trigger the pipeline's short-circuit outcome.
	Confidence float64 `json:"confidence"`
}
