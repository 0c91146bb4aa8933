// Package requirement extracts a structured profile from a free-text
// automation request and decides whether generation can proceed or more
// clarification is needed first.
//
// The analysis is a fixed battery of presence/absence checks, not a learned
// model. Determinism is part of the contract: the same request and answer
// set always produce the same profile and question list.
package requirement

import (
	"sort"
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// Result is the full analyzer output for one request.
type Result struct {
	Profile domain.RequirementProfile

	// Questions are the still-relevant, unanswered clarification questions.
	Questions []domain.ClarificationQuestion

	// NeedsClarification is true while any critical question is unanswered.
	NeedsClarification bool
}

// Analyze runs the check battery over the raw request plus any previously
// answered clarification questions. An empty or unclassifiable request
// degrades confidence but still yields a profile.
func Analyze(input string, answers map[string]string) Result {
	corpus := buildCorpus(input, answers)

	intent, intentConfidence := detectIntent(corpus)
	inputs := extractInputs(corpus)
	outputs := extractOutputs(corpus, intent)
	rules := extractBusinessRules(input, answers)
	integrations := scanSignals(corpus, integrationMarkers)
	performance := scanSignals(corpus, performanceMarkers)
	security := scanSignals(corpus, securityMarkers)

	complexity := deriveComplexity(corpus, inputs, rules, integrations, performance, security)

	ambiguities := detectAmbiguities(input, intentConfidence, inputs, outputs, rules, complexity, performance, security)
	generated := questionsFor(ambiguities)

	var open []domain.ClarificationQuestion
	needs := false
	for _, q := range generated {
		if _, answered := answers[q.ID]; answered {
			continue
		}
		open = append(open, q)
		if q.Critical {
			needs = true
		}
	}

	profile := domain.RequirementProfile{
		Intent:           intent,
		Complexity:       complexity,
		Inputs:           inputs,
		Outputs:          outputs,
		BusinessRules:    rules,
		IntegrationNeeds: integrations,
		PerformanceNeeds: performance,
		SecurityNeeds:    security,
		Confidence:       confidence(input, intentConfidence, inputs, outputs, rules, generated, answers),
	}

	return Result{Profile: profile, Questions: open, NeedsClarification: needs}
}

// buildCorpus merges the raw request with every collected answer, in a
// stable order, so keyword scans see previously supplied detail.
func buildCorpus(input string, answers map[string]string) string {
	parts := []string{strings.ToLower(input)}
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		parts = append(parts, strings.ToLower(answers[id]))
	}
	return strings.Join(parts, "\n")
}

func deriveComplexity(corpus string, inputs []domain.DataInput, rules, integrations, performance, security []string) domain.Complexity {
	score := 0
	if len(rules) >= 2 {
		score++
	}
	if len(integrations) > 0 {
		score++
	}
	if len(performance) > 0 {
		score++
	}
	if len(security) > 0 {
		score++
	}
	if len(inputs) >= 3 || strings.Contains(corpus, "multiple") || strings.Contains(corpus, "several") {
		score++
	}
	if hasEnterpriseMarker(corpus) {
		score += 2
	}

	switch {
	case score == 0:
		return domain.ComplexitySimple
	case score <= 2:
		return domain.ComplexityModerate
	case score <= 4:
		return domain.ComplexityComplex
	default:
		return domain.ComplexityEnterprise
	}
}

// hasEnterpriseMarker scans for the heavy-complexity vocabulary. "sla" is
// matched as a whole word so it does not fire inside words like
// "translate"; the rest are left-anchored stems ("audit" covers audited
// and auditing, "regulat" covers regulation and regulatory).
func hasEnterpriseMarker(corpus string) bool {
	if containsMarker(corpus, "sla", true) {
		return true
	}
	for _, m := range []string{"enterprise", "compliance", "audit", "regulat"} {
		if containsMarker(corpus, m, false) {
			return true
		}
	}
	return false
}

// containsMarker reports whether marker occurs at the start of a word.
// With wholeWord set, the occurrence must also end at a word boundary.
func containsMarker(corpus, marker string, wholeWord bool) bool {
	for idx := strings.Index(corpus, marker); idx >= 0; {
		startOK := idx == 0 || !isWordByte(corpus[idx-1])
		end := idx + len(marker)
		endOK := !wholeWord || end == len(corpus) || !isWordByte(corpus[end])
		if startOK && endOK {
			return true
		}
		rest := strings.Index(corpus[idx+1:], marker)
		if rest < 0 {
			break
		}
		idx += 1 + rest
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}

// confidence blends a base heuristic with a bonus for answered questions.
// Long answers (>20 chars) add a little extra. Capped at 0.95.
func confidence(input string, intentConfidence float64, inputs []domain.DataInput, outputs []domain.OutputRequirement, rules []string, generated []domain.ClarificationQuestion, answers map[string]string) float64 {
	if strings.TrimSpace(input) == "" {
		return 0.1
	}

	base := 0.3 + 0.4*intentConfidence
	if len(inputs) > 0 {
		base += 0.1
	}
	if len(outputs) > 0 {
		base += 0.05
	}
	if len(rules) > 0 {
		base += 0.05
	}

	if len(generated) > 0 {
		answered := 0
		long := 0
		for _, q := range generated {
			a, ok := answers[q.ID]
			if !ok {
				continue
			}
			answered++
			if len(a) > 20 {
				long++
			}
		}
		base += 0.15 * float64(answered) / float64(len(generated))
		if long > 3 {
			long = 3
		}
		base += 0.05 * float64(long)
	}

	if base > 0.95 {
		base = 0.95
	}
	return base
}
