package synth

import (
	"testing"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_Linear(t *testing.T) {
	profile := domain.RequirementProfile{Intent: domain.IntentTranslation}
	g, err := Synthesize(profile, pattern.Linear)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 3, "start, one processing node, end")
	assert.Equal(t, domain.NodeTypeStart, g.Nodes[0].Type)
	assert.Equal(t, domain.NodeTypeLLM, g.Nodes[1].Type)
	assert.Equal(t, domain.NodeTypeEnd, g.Nodes[2].Type)

	// Edges follow the dependency chain.
	assert.Len(t, g.Edges, 2)
	assert.NotNil(t, findEdge(g, "start", "processor"))
	assert.NotNil(t, findEdge(g, "processor", "end"))
}

func TestSynthesize_DefaultStartInput(t *testing.T) {
	g, err := Synthesize(domain.RequirementProfile{}, pattern.Linear)
	require.NoError(t, err)

	cfg, ok := g.StartNode().Config.(domain.StartConfig)
	require.True(t, ok)
	require.Len(t, cfg.Variables, 1)
	assert.Equal(t, "user_input", cfg.Variables[0].Variable)
	assert.Equal(t, domain.InputTypeText, cfg.Variables[0].Type)
	assert.True(t, cfg.Variables[0].Required)
}

func TestSynthesize_DeclaredInputsBecomeSlots(t *testing.T) {
	profile := domain.RequirementProfile{Inputs: []domain.DataInput{
		{Name: "document", Type: domain.InputTypeFile, Required: true},
		{Name: "notes", Type: domain.InputTypeParagraph},
	}}
	g, err := Synthesize(profile, pattern.Linear)
	require.NoError(t, err)

	cfg := g.StartNode().Config.(domain.StartConfig)
	require.Len(t, cfg.Variables, 2)
	assert.Equal(t, domain.InputTypeFile, cfg.Variables[0].Type)
	assert.Equal(t, "Document", cfg.Variables[0].Label)
	assert.False(t, cfg.Variables[1].Required)
}

func TestSynthesize_ConditionalBranchEdges(t *testing.T) {
	g, err := Synthesize(domain.RequirementProfile{}, pattern.Conditional)
	require.NoError(t, err)

	trueEdge := findEdge(g, "router", "handler-true")
	falseEdge := findEdge(g, "router", "handler-false")
	require.NotNil(t, trueEdge)
	require.NotNil(t, falseEdge)
	assert.Equal(t, domain.PortTrue, trueEdge.SourceHandle)
	assert.Equal(t, domain.PortFalse, falseEdge.SourceHandle)
}

func TestSynthesize_ParallelTopics(t *testing.T) {
	profile := domain.RequirementProfile{
		BusinessRules: []string{"Run sentiment analysis and theme extraction on each review"},
	}
	g, err := Synthesize(profile, pattern.Parallel)
	require.NoError(t, err)

	require.NotNil(t, g.Node("analysis-sentiment"))
	require.NotNil(t, g.Node("analysis-themes"))
	agg := g.Node("aggregator")
	require.NotNil(t, agg)
	assert.Len(t, agg.DependsOn, 2, "aggregator depends on every analysis node")
}

func TestSynthesize_ParallelFallsBackToGenericAnalysis(t *testing.T) {
	g, err := Synthesize(domain.RequirementProfile{}, pattern.Parallel)
	require.NoError(t, err)
	assert.NotNil(t, g.Node("analysis-general"))
}

func TestSynthesize_RetrievalPipelineOrder(t *testing.T) {
	g, err := Synthesize(domain.RequirementProfile{}, pattern.RAGPipeline)
	require.NoError(t, err)

	assert.NotNil(t, findEdge(g, "start", "query-enhancer"))
	assert.NotNil(t, findEdge(g, "query-enhancer", "retriever"))
	assert.NotNil(t, findEdge(g, "retriever", "answer-generator"))
	assert.NotNil(t, findEdge(g, "answer-generator", "end"))
}

func TestSynthesize_HybridLayout(t *testing.T) {
	g, err := Synthesize(domain.RequirementProfile{}, pattern.RAGRouting)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 8)
	// Both branch edges leave the router on their ports.
	assert.Equal(t, domain.PortTrue, findEdge(g, "router", "query-enhancer").SourceHandle)
	assert.Equal(t, domain.PortFalse, findEdge(g, "router", "direct-response").SourceHandle)
	// Horizontal layout: depth grows left to right.
	assert.Less(t, g.Node("start").Position.X, g.Node("router").Position.X)
	assert.Less(t, g.Node("router").Position.X, g.Node("answer-generator").Position.X)
}

func TestSynthesize_UnknownArchetype(t *testing.T) {
	_, err := Synthesize(domain.RequirementProfile{}, "mesh")
	assert.ErrorIs(t, err, domain.ErrUnknownArchetype)
}

func findEdge(g domain.WorkflowGraph, source, target string) *domain.WorkflowEdge {
	for i := range g.Edges {
		if g.Edges[i].Source == source && g.Edges[i].Target == target {
			return &g.Edges[i]
		}
	}
	return nil
}
