// Package configure enriches a synthesized graph with per-node operational
// configuration: model choice, prompts, retrieval tuning, branch conditions,
// retry policy. Enrichment is pure — it consumes one graph snapshot plus the
// read-only requirement profile and returns a new snapshot. Per-node work is
// independent and reads no other node's in-progress configuration.
package configure

import (
	"fmt"
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// Configure populates every node's configuration payload and returns the
// per-node operational metadata the quality scorer consumes.
func Configure(g domain.WorkflowGraph, profile domain.RequirementProfile) (domain.WorkflowGraph, map[string]domain.NodeMetadata, error) {
	out := g.Clone()
	meta := make(map[string]domain.NodeMetadata)

	for i := range out.Nodes {
		node := &out.Nodes[i]
		switch node.Type {
		case domain.NodeTypeStart:
			node.Config = startConfig(node, profile)
		case domain.NodeTypeEnd:
			node.Config = endConfig(node, &out)
		case domain.NodeTypeLLM:
			cfg := llmConfig(node, &out, profile)
			node.Config = cfg
			meta[node.ID] = nodeMetadata(node.ID, cfg.Model.MaxTokens, cfg.Fallback, cfg.Retry, cfg.ValidationCriteria)
		case domain.NodeTypeClassifier:
			cfg := classifierConfig(node, &out, profile)
			node.Config = cfg
			meta[node.ID] = nodeMetadata(node.ID, cfg.Model.MaxTokens, cfg.Fallback, cfg.Retry, cfg.ValidationCriteria)
		case domain.NodeTypeRetrieval:
			cfg := retrievalConfig(profile)
			node.Config = cfg
			meta[node.ID] = nodeMetadata(node.ID, 0, cfg.Fallback, cfg.Retry, cfg.ValidationCriteria)
		case domain.NodeTypeConditional:
			node.Config = conditionalConfig(node, &out, profile)
		case domain.NodeTypeAggregator:
			node.Config = aggregatorConfig(node)
		case domain.NodeTypeTemplate:
			node.Config = templateConfig(node, &out)
		case domain.NodeTypeCode:
			node.Config = codeConfig(node)
		}
	}

	return out, meta, nil
}

func nodeMetadata(nodeID string, maxTokens int, fallback string, retry domain.RetryPolicy, checks []string) domain.NodeMetadata {
	return domain.NodeMetadata{
		NodeID:          nodeID,
		EstimatedTokens: maxTokens,
		HasFallback:     fallback != "",
		Retry:           retry,
		QualityChecks:   checks,
	}
}

// defaultRetry bounds node retries. The backoff multiplier is fixed; only
// the attempt count is worth varying and even that stays constant for now.
func defaultRetry() domain.RetryPolicy {
	return domain.RetryPolicy{MaxRetries: 3, Backoff: 2.0}
}

// startConfig keeps the slots synthesis declared and attaches the
// type-specific extras: length caps for text, extension and size limits
// for files.
func startConfig(node *domain.WorkflowNode, profile domain.RequirementProfile) domain.StartConfig {
	cfg, ok := node.Config.(domain.StartConfig)
	if !ok || len(cfg.Variables) == 0 {
		cfg = domain.StartConfig{Variables: []domain.StartVariable{{
			Variable: "user_input", Label: "User Input", Type: domain.InputTypeText, Required: true,
		}}}
	} else {
		// Copy before attaching extras so the input snapshot stays intact.
		vars := make([]domain.StartVariable, len(cfg.Variables))
		copy(vars, cfg.Variables)
		cfg.Variables = vars
	}
	for i := range cfg.Variables {
		v := &cfg.Variables[i]
		switch v.Type {
		case domain.InputTypeText:
			v.MaxLength = 500
		case domain.InputTypeParagraph:
			v.MaxLength = 4000
		case domain.InputTypeFile:
			v.AllowedTypes = []string{".pdf", ".docx", ".txt", ".md", ".csv"}
			v.MaxSizeMB = 15
		}
	}
	return cfg
}

// endConfig wires the single string output slot to the end node's first
// upstream producer.
func endConfig(node *domain.WorkflowNode, g *domain.WorkflowGraph) domain.EndConfig {
	out := domain.EndOutput{Variable: "result", Type: "string"}
	if len(node.DependsOn) > 0 {
		out.ValueSelector = []string{node.DependsOn[0].NodeID, "text"}
	}
	return domain.EndConfig{Outputs: []domain.EndOutput{out}}
}

// retrievalBudgets tunes retrieval by complexity tier.
var retrievalBudgets = map[domain.Complexity]struct {
	topK      int
	threshold float64
}{
	domain.ComplexitySimple:     {3, 0.7},
	domain.ComplexityModerate:   {5, 0.6},
	domain.ComplexityComplex:    {8, 0.5},
	domain.ComplexityEnterprise: {10, 0.4},
}

func retrievalConfig(profile domain.RequirementProfile) domain.RetrievalConfig {
	budget := retrievalBudgets[profile.Complexity]
	return domain.RetrievalConfig{
		TopK:           budget.topK,
		ScoreThreshold: budget.threshold,
		Reranking:      profile.Complexity != domain.ComplexitySimple,
		Fallback:       "No relevant knowledge found.",
		Retry:          defaultRetry(),
		ValidationCriteria: []string{
			"at least one chunk retrieved",
			"top result above the score threshold",
		},
	}
}

func conditionalConfig(node *domain.WorkflowNode, g *domain.WorkflowGraph, profile domain.RequirementProfile) domain.ConditionalConfig {
	variable := "class_name"
	if len(node.DependsOn) > 0 {
		variable = node.DependsOn[0].NodeID + ".class_name"
	}

	base := domain.Condition{Variable: variable, Comparison: "contains", Value: primaryCaseValue(profile)}
	cfg := domain.ConditionalConfig{Operator: domain.OperatorAnd, Conditions: []domain.Condition{base}}

	switch profile.Complexity {
	case domain.ComplexitySimple:
		// One case is enough.
	case domain.ComplexityModerate:
		cfg.Operator = domain.OperatorOr
		cfg.Conditions = append(cfg.Conditions,
			domain.Condition{Variable: variable, Comparison: "contains", Value: "urgent"})
	default:
		cfg.Operator = domain.OperatorOr
		cfg.Conditions = append(cfg.Conditions,
			domain.Condition{Variable: variable, Comparison: "contains", Value: "urgent"},
			domain.Condition{Variable: variable, Comparison: "contains", Value: "escalation"})
		if profile.Complexity == domain.ComplexityEnterprise {
			cfg.Groups = []domain.ConditionGroup{{
				Operator: domain.OperatorAnd,
				Conditions: []domain.Condition{
					{Variable: variable, Comparison: "is", Value: "complaint"},
					{Variable: "start.user_input", Comparison: "contains", Value: "refund"},
				},
			}}
		}
	}
	return cfg
}

// primaryCaseValue picks the value the main branch matches on, preferring
// vocabulary from the stated business rules.
func primaryCaseValue(profile domain.RequirementProfile) string {
	corpus := strings.ToLower(strings.Join(profile.BusinessRules, " "))
	for _, candidate := range []string{"negative", "complaint", "refund", "urgent", "question"} {
		if strings.Contains(corpus, candidate) {
			return candidate
		}
	}
	return "matched"
}

func aggregatorConfig(node *domain.WorkflowNode) domain.AggregatorConfig {
	vars := make([][]string, 0, len(node.DependsOn))
	for _, d := range node.DependsOn {
		vars = append(vars, []string{d.NodeID, "text"})
	}
	return domain.AggregatorConfig{OutputType: "string", Variables: vars}
}

func templateConfig(node *domain.WorkflowNode, g *domain.WorkflowGraph) domain.TemplateConfig {
	variable := "user_input"
	if start := g.StartNode(); start != nil {
		if cfg, ok := start.Config.(domain.StartConfig); ok && len(cfg.Variables) > 0 {
			variable = cfg.Variables[0].Variable
		}
	}
	return domain.TemplateConfig{
		Template:  fmt.Sprintf("Search query: {{ %s }}", variable),
		Variables: []string{variable},
	}
}

func codeConfig(node *domain.WorkflowNode) domain.CodeConfig {
	return domain.CodeConfig{
		Language: "python3",
		Code:     "def main(**kwargs):\n    return {\"result\": kwargs}\n",
		Outputs:  []string{"result"},
	}
}
