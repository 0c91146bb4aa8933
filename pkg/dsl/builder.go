package dsl

import (
	"github.com/flowsmith/flowsmith/pkg/domain"
)

// Build serializes a workflow graph into the external document shape.
// Node payloads are flattened from the typed configuration union into the
// loosely-keyed data maps the runtime expects.
func Build(g domain.WorkflowGraph, app App) Document {
	app.Mode = "workflow"

	nodes := make([]Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, Node{
			ID:   n.ID,
			Type: string(n.Type),
			Position: Position{X: n.Position.X, Y: n.Position.Y},
			Data: nodeData(n),
		})
	}

	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Type:         e.Type,
		})
	}

	return Document{
		App:     app,
		Kind:    KindApp,
		Version: Version,
		Workflow: Workflow{
			EnvironmentVariables: []any{},
			Features:             map[string]any{},
			Graph: Graph{
				Nodes:    nodes,
				Edges:    edges,
				Viewport: Viewport{Zoom: 1},
			},
		},
	}
}

func nodeData(n domain.WorkflowNode) map[string]any {
	data := map[string]any{
		"title": n.Title,
		"type":  string(n.Type),
	}

	switch cfg := n.Config.(type) {
	case domain.StartConfig:
		vars := make([]map[string]any, 0, len(cfg.Variables))
		for _, v := range cfg.Variables {
			entry := map[string]any{
				"variable": v.Variable,
				"label":    v.Label,
				"type":     string(v.Type),
				"required": v.Required,
			}
			if v.MaxLength > 0 {
				entry["max_length"] = v.MaxLength
			}
			if len(v.AllowedTypes) > 0 {
				entry["allowed_file_types"] = v.AllowedTypes
				entry["max_size_mb"] = v.MaxSizeMB
			}
			vars = append(vars, entry)
		}
		data["variables"] = vars

	case domain.EndConfig:
		outputs := make([]map[string]any, 0, len(cfg.Outputs))
		for _, o := range cfg.Outputs {
			outputs = append(outputs, map[string]any{
				"variable":       o.Variable,
				"type":           o.Type,
				"value_selector": o.ValueSelector,
			})
		}
		data["outputs"] = outputs

	case domain.LLMConfig:
		data["model"] = modelData(cfg.Model)
		data["prompt_template"] = []map[string]any{
			{"role": "system", "text": cfg.SystemPrompt},
			{"role": "user", "text": cfg.UserPrompt},
		}
		attachResilience(data, cfg.Fallback, cfg.Retry, cfg.ValidationCriteria)

	case domain.ClassifierConfig:
		classes := make([]map[string]any, 0, len(cfg.Classes))
		for _, c := range cfg.Classes {
			classes = append(classes, map[string]any{"id": c.ID, "name": c.Name})
		}
		data["model"] = modelData(cfg.Model)
		data["classes"] = classes
		data["instruction"] = cfg.Instruction
		attachResilience(data, cfg.Fallback, cfg.Retry, cfg.ValidationCriteria)

	case domain.RetrievalConfig:
		data["top_k"] = cfg.TopK
		data["score_threshold"] = cfg.ScoreThreshold
		data["reranking_enabled"] = cfg.Reranking
		attachResilience(data, cfg.Fallback, cfg.Retry, cfg.ValidationCriteria)

	case domain.ConditionalConfig:
		conditions := make([]map[string]any, 0, len(cfg.Conditions))
		for _, c := range cfg.Conditions {
			conditions = append(conditions, conditionData(c))
		}
		data["logical_operator"] = string(cfg.Operator)
		data["conditions"] = conditions
		if len(cfg.Groups) > 0 {
			groups := make([]map[string]any, 0, len(cfg.Groups))
			for _, grp := range cfg.Groups {
				inner := make([]map[string]any, 0, len(grp.Conditions))
				for _, c := range grp.Conditions {
					inner = append(inner, conditionData(c))
				}
				groups = append(groups, map[string]any{
					"logical_operator": string(grp.Operator),
					"conditions":       inner,
				})
			}
			data["condition_groups"] = groups
		}

	case domain.AggregatorConfig:
		data["output_type"] = cfg.OutputType
		data["variables"] = cfg.Variables

	case domain.TemplateConfig:
		data["template"] = cfg.Template
		data["variables"] = cfg.Variables

	case domain.CodeConfig:
		data["code_language"] = cfg.Language
		data["code"] = cfg.Code
		if len(cfg.Inputs) > 0 {
			data["inputs"] = cfg.Inputs
		}
		if len(cfg.Outputs) > 0 {
			data["outputs"] = cfg.Outputs
		}
	}

	return data
}

func modelData(m domain.ModelConfig) map[string]any {
	return map[string]any{
		"provider": m.Provider,
		"name":     m.Name,
		"completion_params": map[string]any{
			"temperature": m.Temperature,
			"max_tokens":  m.MaxTokens,
		},
	}
}

func conditionData(c domain.Condition) map[string]any {
	return map[string]any{
		"variable":            c.Variable,
		"comparison_operator": c.Comparison,
		"value":               c.Value,
	}
}

func attachResilience(data map[string]any, fallback string, retry domain.RetryPolicy, criteria []string) {
	if fallback != "" {
		data["fallback"] = fallback
	}
	if retry.MaxRetries > 0 {
		data["retry"] = map[string]any{
			"max_retries":        retry.MaxRetries,
			"backoff_multiplier": retry.Backoff,
		}
	}
	if len(criteria) > 0 {
		data["validation_criteria"] = criteria
	}
}
