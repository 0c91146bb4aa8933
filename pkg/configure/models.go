package configure

import (
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

const (
	providerOpenAI = "openai"
	modelCapable   = "gpt-4o"
	modelLight     = "gpt-4o-mini"
)

// taskKind is what a processing node is being asked to do; it drives model
// and temperature selection.
type taskKind int

const (
	taskGeneration taskKind = iota
	taskAnalysis
	taskClassification
)

func taskFor(node *domain.WorkflowNode, profile domain.RequirementProfile) taskKind {
	if node.Type == domain.NodeTypeClassifier {
		return taskClassification
	}
	if strings.Contains(node.ID, "analysis") || profile.Intent == domain.IntentDataAnalysis {
		return taskAnalysis
	}
	return taskGeneration
}

// selectModel picks the higher-capability model for complex tiers and for
// analysis/classification work, and the lighter one otherwise.
func selectModel(node *domain.WorkflowNode, profile domain.RequirementProfile) domain.ModelConfig {
	task := taskFor(node, profile)

	name := modelLight
	if profile.Complexity >= domain.ComplexityComplex || task == taskAnalysis || task == taskClassification {
		name = modelCapable
	}

	// Generation work runs warmer; analysis and classification stay
	// near-deterministic.
	temperature := 0.1
	if task == taskGeneration {
		temperature = 0.3
	}

	return domain.ModelConfig{
		Provider:    providerOpenAI,
		Name:        name,
		Temperature: temperature,
		MaxTokens:   tokenBudget(profile),
	}
}

// tokenBudget starts at 500 and grows with the vocabulary of the request:
// analysis work, comprehensive coverage, and detailed output each add a
// fixed increment.
func tokenBudget(profile domain.RequirementProfile) int {
	corpus := strings.ToLower(strings.Join(profile.BusinessRules, " "))
	for _, out := range profile.Outputs {
		corpus += " " + strings.ToLower(out.Name+" "+out.Description)
	}
	for _, p := range profile.PerformanceNeeds {
		corpus += " " + strings.ToLower(p)
	}

	budget := 500
	if strings.Contains(corpus, "analysis") || profile.Intent == domain.IntentDataAnalysis {
		budget += 700
	}
	if strings.Contains(corpus, "comprehensive") {
		budget += 1000
	}
	if strings.Contains(corpus, "detailed") {
		budget += 500
	}
	return budget
}
