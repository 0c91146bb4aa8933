package pattern

import (
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

var (
	retrievalMarkers   = []string{"knowledge", "document", "database", "faq", "wiki", "search our"}
	conditionalMarkers = []string{"if ", "if the", "condition", "route", "routing", "escalat", "branch", "depending on", "classify"}
	parallelMarkers    = []string{"analysis", "analyses", "multiple", "parallel", "simultaneous", "aspects"}
)

// Select maps a profile to an archetype ID via an ordered predicate chain,
// first match wins:
//
//  1. retrieval AND conditional  -> RAGRouting
//  2. retrieval                  -> RAGPipeline
//  3. parallel                   -> Parallel
//  4. conditional                -> Conditional
//  5. default                    -> Linear
//
// Predicates are keyword tests over the business-rule and integration text
// collected by the analyzer. Reordering the chain changes product behavior.
func Select(profile domain.RequirementProfile) string {
	text := profileText(profile)

	retrieval := containsAny(text, retrievalMarkers)
	conditional := containsAny(text, conditionalMarkers)
	parallel := containsAny(text, parallelMarkers) || len(profile.Outputs) > 2

	switch {
	case retrieval && conditional:
		return RAGRouting
	case retrieval:
		return RAGPipeline
	case parallel:
		return Parallel
	case conditional:
		return Conditional
	default:
		return Linear
	}
}

func profileText(profile domain.RequirementProfile) string {
	parts := make([]string, 0, len(profile.BusinessRules)+len(profile.IntegrationNeeds))
	parts = append(parts, profile.BusinessRules...)
	parts = append(parts, profile.IntegrationNeeds...)
	return strings.ToLower(strings.Join(parts, "\n"))
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
