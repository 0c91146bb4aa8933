package graph

import (
	"testing"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/pattern"
	"github.com/flowsmith/flowsmith/pkg/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMermaid_LinearShapes(t *testing.T) {
	g, err := synth.Synthesize(domain.RequirementProfile{}, pattern.Linear)
	require.NoError(t, err)

	out := Mermaid(g)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, `start(("Start"))`)
	assert.Contains(t, out, `end(("End"))`)
	assert.Contains(t, out, "start --> processor")
}

func TestMermaid_BranchLabels(t *testing.T) {
	g, err := synth.Synthesize(domain.RequirementProfile{}, pattern.Conditional)
	require.NoError(t, err)

	out := Mermaid(g)
	assert.Contains(t, out, `router -- "true" --> handler_true`)
	assert.Contains(t, out, `router -- "false" --> handler_false`)
	assert.Contains(t, out, `router{"`)
}

func TestMermaid_SanitizesIDs(t *testing.T) {
	g := domain.WorkflowGraph{
		Nodes: []domain.WorkflowNode{
			{ID: "analysis-sentiment", Type: domain.NodeTypeLLM, Title: `Say "hi"`},
		},
	}
	out := Mermaid(g)
	assert.Contains(t, out, `analysis_sentiment["Say 'hi'"]`)
	assert.NotContains(t, out, `analysis-sentiment[`)
}
