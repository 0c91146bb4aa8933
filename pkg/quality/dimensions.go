package quality

import (
	"fmt"
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

func checkStructure(g domain.WorkflowGraph, _ domain.RequirementProfile, _ map[string]domain.NodeMetadata) checkResult {
	var r checkResult

	starts := 0
	for _, n := range g.Nodes {
		if n.Type == domain.NodeTypeStart {
			starts++
		}
	}
	switch {
	case starts == 0:
		r.issue(domain.SeverityCritical, "workflow has no start node")
	case starts > 1:
		r.issue(domain.SeverityCritical, fmt.Sprintf("workflow has %d start nodes, expected exactly one", starts))
	}
	if len(g.EndNodes()) == 0 {
		r.issue(domain.SeverityCritical, "workflow has no end node")
	}

	for _, n := range g.Nodes {
		if n.Type == domain.NodeTypeEnd {
			continue
		}
		outgoing := g.Outgoing(n.ID)
		if len(outgoing) == 0 {
			r.issue(domain.SeverityMajor, fmt.Sprintf("node %s has no outgoing edge", n.ID))
		}
		switch n.Type {
		case domain.NodeTypeConditional:
			if len(outgoing) != 2 {
				r.issue(domain.SeverityMajor, fmt.Sprintf("conditional %s has %d branches, expected 2", n.ID, len(outgoing)))
			}
		case domain.NodeTypeAggregator, domain.NodeTypeAssigner:
			if len(g.Incoming(n.ID)) < 2 {
				r.issue(domain.SeverityMajor, fmt.Sprintf("aggregator %s has fewer than two inputs", n.ID))
			}
		}
	}

	if len(g.Nodes) > 15 {
		r.recommend("workflow is large; consider splitting it into smaller workflows")
	}
	return r
}

func checkConfiguration(g domain.WorkflowGraph, _ domain.RequirementProfile, _ map[string]domain.NodeMetadata) checkResult {
	var r checkResult

	for _, n := range g.Nodes {
		if n.Config == nil {
			r.issue(domain.SeverityMajor, fmt.Sprintf("node %s has no configuration", n.ID))
			continue
		}
		switch cfg := n.Config.(type) {
		case domain.StartConfig:
			if len(cfg.Variables) == 0 {
				r.issue(domain.SeverityMajor, "start node declares no input variables")
			}
		case domain.LLMConfig:
			if cfg.SystemPrompt == "" {
				r.issue(domain.SeverityMajor, fmt.Sprintf("llm node %s has an empty system prompt", n.ID))
			}
			if cfg.UserPrompt == "" {
				r.issue(domain.SeverityMajor, fmt.Sprintf("llm node %s has an empty user prompt", n.ID))
			}
			if len(cfg.ValidationCriteria) == 0 {
				r.recommend(fmt.Sprintf("add output validation criteria to node %s", n.ID))
			}
		case domain.ClassifierConfig:
			if len(cfg.Classes) < 2 {
				r.issue(domain.SeverityMajor, fmt.Sprintf("classifier %s needs at least two classes", n.ID))
			}
		case domain.ConditionalConfig:
			if len(cfg.Conditions) == 0 && len(cfg.Groups) == 0 {
				r.issue(domain.SeverityMajor, fmt.Sprintf("conditional %s has no conditions", n.ID))
			}
		case domain.EndConfig:
			if len(cfg.Outputs) == 0 {
				r.issue(domain.SeverityMinor, "end node declares no outputs")
			}
		}
	}
	return r
}

func checkPerformance(g domain.WorkflowGraph, profile domain.RequirementProfile, meta map[string]domain.NodeMetadata) checkResult {
	var r checkResult

	totalTokens := 0
	for _, m := range meta {
		totalTokens += m.EstimatedTokens
	}
	if totalTokens > 10000 {
		r.issue(domain.SeverityMinor, fmt.Sprintf("estimated token usage %d exceeds the per-run budget", totalTokens))
	} else if totalTokens > 6000 {
		r.recommend("trim prompts or lower max_tokens to reduce per-run cost")
	}

	for _, n := range g.Nodes {
		if cfg, ok := n.Config.(domain.RetrievalConfig); ok && cfg.TopK > 8 {
			r.recommend(fmt.Sprintf("retrieval node %s fetches %d chunks; lower top_k for latency", n.ID, cfg.TopK))
		}
	}

	if len(profile.PerformanceNeeds) > 0 && profile.Complexity >= domain.ComplexityComplex {
		r.recommend("performance requirements were stated; load-test this workflow before rollout")
	}
	return r
}

// secretMarkers are substrings that indicate a credential was baked into a
// prompt, template, or code block.
var secretMarkers = []string{"sk-", "api_key=", "apikey=", "password=", "secret=", "token=", "bearer "}

func checkSecurity(g domain.WorkflowGraph, profile domain.RequirementProfile, _ map[string]domain.NodeMetadata) checkResult {
	var r checkResult

	for _, n := range g.Nodes {
		for _, text := range configTexts(n.Config) {
			if marker := findSecret(text); marker != "" {
				r.issue(domain.SeverityCritical, fmt.Sprintf("node %s contains a hardcoded credential (%q)", n.ID, marker))
			}
		}
		if cfg, ok := n.Config.(domain.StartConfig); ok {
			for _, v := range cfg.Variables {
				if v.Type == domain.InputTypeFile && len(v.AllowedTypes) == 0 {
					r.issue(domain.SeverityMajor, fmt.Sprintf("file input %q accepts any file type", v.Variable))
				}
			}
		}
	}

	if len(profile.SecurityNeeds) > 0 {
		r.recommend("security requirements were stated; review data handling in all prompts")
	}
	return r
}

func checkUsability(g domain.WorkflowGraph, _ domain.RequirementProfile, _ map[string]domain.NodeMetadata) checkResult {
	var r checkResult

	for _, n := range g.Nodes {
		if strings.TrimSpace(n.Title) == "" {
			r.issue(domain.SeverityMajor, fmt.Sprintf("node %s has no title", n.ID))
		}
		if cfg, ok := n.Config.(domain.StartConfig); ok {
			for _, v := range cfg.Variables {
				if v.Label == "" {
					r.issue(domain.SeverityMinor, fmt.Sprintf("input %q has no label", v.Variable))
				}
			}
		}
	}
	return r
}

func checkBestPractices(g domain.WorkflowGraph, _ domain.RequirementProfile, meta map[string]domain.NodeMetadata) checkResult {
	var r checkResult

	for _, n := range g.Nodes {
		switch n.Type {
		case domain.NodeTypeLLM, domain.NodeTypeClassifier, domain.NodeTypeRetrieval:
		default:
			continue
		}
		m, ok := meta[n.ID]
		if !ok {
			r.issue(domain.SeverityMinor, fmt.Sprintf("node %s has no operational metadata", n.ID))
			continue
		}
		if !m.HasFallback {
			r.recommend(fmt.Sprintf("add a fallback response to node %s", n.ID))
		}
		if m.Retry.MaxRetries == 0 {
			r.recommend(fmt.Sprintf("enable retries on node %s", n.ID))
		}
		if len(m.QualityChecks) == 0 {
			r.recommend(fmt.Sprintf("attach quality checks to node %s", n.ID))
		}
	}
	return r
}

// configTexts collects the free-text fields of a node configuration that
// could carry a pasted credential.
func configTexts(cfg domain.NodeConfig) []string {
	switch c := cfg.(type) {
	case domain.LLMConfig:
		return []string{c.SystemPrompt, c.UserPrompt}
	case domain.ClassifierConfig:
		return []string{c.Instruction}
	case domain.TemplateConfig:
		return []string{c.Template}
	case domain.CodeConfig:
		return []string{c.Code}
	default:
		return nil
	}
}

// findSecret reports the first marker found at a word boundary, so prose
// like "task-specific" does not trip the "sk-" check.
func findSecret(text string) string {
	lower := strings.ToLower(text)
	for _, marker := range secretMarkers {
		for idx := strings.Index(lower, marker); idx >= 0; {
			if idx == 0 || !isWordByte(lower[idx-1]) {
				return marker
			}
			rest := strings.Index(lower[idx+1:], marker)
			if rest < 0 {
				break
			}
			idx += 1 + rest
		}
	}
	return ""
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}
