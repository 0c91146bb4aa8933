package requirement

import (
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// ambiguity identifies one failed presence check.
type ambiguity string

const (
	ambiguityVague       ambiguity = "vague_language"
	ambiguityNoInputs    ambiguity = "missing_inputs"
	ambiguityNoOutputs   ambiguity = "missing_outputs"
	ambiguityNoRules     ambiguity = "missing_business_rules"
	ambiguityLowIntent   ambiguity = "low_intent_confidence"
	ambiguityPerformance ambiguity = "missing_performance_hints"
	ambiguitySecurity    ambiguity = "missing_security_hints"
)

var vagueMarkers = []string{"something", "somehow", "etc", "stuff", "some kind", "maybe", "things like"}

func detectAmbiguities(input string, intentConfidence float64, inputs []domain.DataInput, outputs []domain.OutputRequirement, rules []string, complexity domain.Complexity, performance, security []string) []ambiguity {
	var found []ambiguity
	lower := strings.ToLower(input)

	// Word-start matching keeps "etc" from firing inside "fetch".
	for _, m := range vagueMarkers {
		if containsMarker(lower, m, false) {
			found = append(found, ambiguityVague)
			break
		}
	}
	if len(inputs) == 0 {
		found = append(found, ambiguityNoInputs)
	}
	if len(outputs) == 0 {
		found = append(found, ambiguityNoOutputs)
	}
	if len(rules) == 0 {
		found = append(found, ambiguityNoRules)
	}
	if intentConfidence < 0.5 {
		found = append(found, ambiguityLowIntent)
	}
	// Performance and security hints only matter once the declared
	// complexity suggests they should have been stated.
	if complexity >= domain.ComplexityComplex {
		if len(performance) == 0 {
			found = append(found, ambiguityPerformance)
		}
		if len(security) == 0 {
			found = append(found, ambiguitySecurity)
		}
	}
	return found
}

// questionCatalog maps each ambiguity to its pre-authored question.
// Catalog entries are static; the analyzer never invents question text.
var questionCatalog = map[ambiguity]domain.ClarificationQuestion{
	ambiguityVague: {
		ID:       "workflow_objective",
		Question: "What is the primary objective of this workflow? Please describe the end result you expect.",
		Category: "objective",
		Critical: true,
	},
	ambiguityLowIntent: {
		ID:       "workflow_objective",
		Question: "What is the primary objective of this workflow? Please describe the end result you expect.",
		Category: "objective",
		Critical: true,
	},
	ambiguityNoInputs: {
		ID:       "input_specification",
		Question: "What data does this workflow receive as input?",
		Category: "inputs",
		Critical: true,
		FollowUps: []string{
			"What format is the input in (plain text, file, structured data)?",
			"Which input fields are required?",
		},
	},
	ambiguityNoOutputs: {
		ID:       "output_specification",
		Question: "What should the workflow produce as its final output?",
		Category: "outputs",
		Critical: true,
	},
	ambiguityNoRules: {
		ID:       "business_rules",
		Question: "Are there business rules the workflow must follow (conditions, approvals, escalations)?",
		Category: "business_logic",
	},
	ambiguityPerformance: {
		ID:       "performance_requirements",
		Question: "Are there performance expectations (response time, volume) for this workflow?",
		Category: "performance",
	},
	ambiguitySecurity: {
		ID:       "security_requirements",
		Question: "Does the workflow handle sensitive data or have compliance requirements?",
		Category: "security",
		FollowUps: []string{
			"Which regulations apply (GDPR, HIPAA, internal policy)?",
		},
	},
}

// questionsFor resolves ambiguities to their questions, de-duplicating by
// question ID (two ambiguities can map to the same question).
func questionsFor(ambiguities []ambiguity) []domain.ClarificationQuestion {
	var questions []domain.ClarificationQuestion
	seen := map[string]bool{}
	for _, a := range ambiguities {
		q, ok := questionCatalog[a]
		if !ok || seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}
	return questions
}
