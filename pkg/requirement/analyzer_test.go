package requirement

import (
	"strings"
	"testing"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_SimpleTranslation(t *testing.T) {
	res := Analyze("Translate this paragraph to French", nil)

	assert.Equal(t, domain.IntentTranslation, res.Profile.Intent)
	assert.Equal(t, domain.ComplexitySimple, res.Profile.Complexity)
	assert.False(t, res.NeedsClarification, "a concrete request should not block on clarification")

	require.NotEmpty(t, res.Profile.Inputs)
	require.NotEmpty(t, res.Profile.Outputs)
	assert.Empty(t, res.Profile.BusinessRules)
}

func TestDeriveComplexity_MarkerWordBoundaries(t *testing.T) {
	// "translate" contains "sla"; the marker must not fire mid-word.
	got := deriveComplexity("translate this paragraph to french", nil, nil, nil, nil, nil)
	assert.Equal(t, domain.ComplexitySimple, got)

	// A real service-level mention does count.
	got = deriveComplexity("respond within the sla", nil, nil, nil, nil, nil)
	assert.Equal(t, domain.ComplexityModerate, got)

	// Stem markers still cover their inflections.
	got = deriveComplexity("flag audited transactions", nil, nil, nil, nil, nil)
	assert.Equal(t, domain.ComplexityModerate, got)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	res := Analyze("", nil)

	// An unclassifiable request is still a valid profile, just a weak one.
	assert.Equal(t, domain.IntentUnknown, res.Profile.Intent)
	assert.True(t, res.NeedsClarification)
	assert.Less(t, res.Profile.Confidence, 0.3)
}

func TestAnalyze_VagueLanguageTriggersObjectiveQuestion(t *testing.T) {
	res := Analyze("Do something with customer stuff, maybe summarize it somehow", nil)

	var ids []string
	for _, q := range res.Questions {
		ids = append(ids, q.ID)
	}
	assert.Contains(t, ids, "workflow_objective")
}

func TestDetectAmbiguities_VagueWordBoundaries(t *testing.T) {
	inputs := []domain.DataInput{{Name: "invoices"}}
	outputs := []domain.OutputRequirement{{Name: "summary"}}
	rules := []string{"escalate on overdue invoices"}

	found := detectAmbiguities("fetch invoices and summarize them", 0.9, inputs, outputs, rules, domain.ComplexitySimple, nil, nil)
	assert.NotContains(t, found, ambiguityVague, "\"fetch\" must not trip the \"etc\" marker")

	found = detectAmbiguities("do something with invoices", 0.9, inputs, outputs, rules, domain.ComplexitySimple, nil, nil)
	assert.Contains(t, found, ambiguityVague)
}

func TestAnalyze_AnswersSuppressQuestions(t *testing.T) {
	input := "Handle things for us"
	first := Analyze(input, nil)
	require.True(t, first.NeedsClarification)

	answers := map[string]string{}
	for _, q := range first.Questions {
		answers[q.ID] = "Customers send support emails about billing; reply with an answer drawn from our FAQ"
	}

	second := Analyze(input, answers)
	assert.False(t, second.NeedsClarification)
	assert.Greater(t, second.Profile.Confidence, first.Profile.Confidence,
		"answered questions must raise confidence")
}

func TestAnalyze_ConfidenceCapped(t *testing.T) {
	long := strings.Repeat("analyze customer support tickets from the database and escalate if negative sentiment is detected. ", 3)
	answers := map[string]string{
		"workflow_objective":   "Triage inbound support tickets and route them to the right specialist team",
		"input_specification":  "Tickets arrive as plain text with a subject line and a customer identifier",
		"output_specification": "A routing decision plus a drafted first response for the agent to review",
		"business_rules":       "Escalate immediately when the customer mentions legal action or a refund over $500",
	}
	res := Analyze(long, answers)
	assert.LessOrEqual(t, res.Profile.Confidence, 0.95)
}

func TestAnalyze_ComplexRequestAsksAboutSecurity(t *testing.T) {
	res := Analyze("Process multiple compliance documents from the database, extract audited fields via api and summarize", nil)

	require.GreaterOrEqual(t, res.Profile.Complexity, domain.ComplexityComplex)
	var ids []string
	for _, q := range res.Questions {
		ids = append(ids, q.ID)
	}
	assert.Contains(t, ids, "performance_requirements")
}

func TestExtractBusinessRules(t *testing.T) {
	rules := extractBusinessRules("Answer questions from the knowledge base. Escalate if the sentiment is negative. Thanks", nil)
	require.Len(t, rules, 1)
	assert.Contains(t, strings.ToLower(rules[0]), "escalate")
}
