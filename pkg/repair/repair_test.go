package repair

import (
	"testing"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/pattern"
	"github.com/flowsmith/flowsmith/pkg/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, t domain.NodeType) domain.WorkflowNode {
	return domain.WorkflowNode{ID: id, Type: t, Title: id}
}

func edge(src, tgt string) domain.WorkflowEdge {
	return domain.WorkflowEdge{
		ID:     src + "-to-" + tgt,
		Source: src,
		Target: tgt,
		Type:   domain.EdgeTypeDefault,
	}
}

func TestRepair_TerminalNodeGetsEdgeToEnd(t *testing.T) {
	g := domain.WorkflowGraph{
		Nodes: []domain.WorkflowNode{
			node("start", domain.NodeTypeStart),
			node("processor", domain.NodeTypeLLM),
			node("end", domain.NodeTypeEnd),
		},
		Edges: []domain.WorkflowEdge{edge("start", "processor")},
	}

	fixed, report := Repair(g)

	e := findEdge(fixed, "processor", "end")
	require.NotNil(t, e)
	assert.Equal(t, "processor-to-end", e.ID)
	assert.Equal(t, domain.PortSource, e.SourceHandle)
	assert.Equal(t, domain.PortTarget, e.TargetHandle)
	assert.Contains(t, report.Issues, "node processor has no outgoing edge")
}

func TestRepair_ConditionalMissingBranch(t *testing.T) {
	g := domain.WorkflowGraph{
		Nodes: []domain.WorkflowNode{
			node("start", domain.NodeTypeStart),
			node("router", domain.NodeTypeConditional),
			node("handler", domain.NodeTypeLLM),
			node("end", domain.NodeTypeEnd),
		},
		Edges: []domain.WorkflowEdge{
			edge("start", "router"),
			{ID: "router-to-handler", Source: "router", Target: "handler", SourceHandle: domain.PortTrue, Type: domain.EdgeTypeDefault},
		},
	}

	fixed, _ := Repair(g)

	// The wired branch is untouched, the missing one routes to end.
	falseEdge := findEdge(fixed, "router", "end")
	require.NotNil(t, falseEdge)
	assert.Equal(t, domain.PortFalse, falseEdge.SourceHandle)
	assert.Equal(t, "router-false-to-end", falseEdge.ID)
	assert.NotNil(t, findEdge(fixed, "handler", "end"))
}

func TestRepair_PortResolution(t *testing.T) {
	g := domain.WorkflowGraph{
		Nodes: []domain.WorkflowNode{
			node("start", domain.NodeTypeStart),
			node("processor", domain.NodeTypeLLM),
			node("end", domain.NodeTypeEnd),
		},
		Edges: []domain.WorkflowEdge{
			edge("start", "processor"),
			edge("processor", "end"),
		},
	}

	fixed, _ := Repair(g)

	for _, e := range fixed.Edges {
		assert.NotEmpty(t, e.SourceHandle, "edge %s", e.ID)
		assert.NotEmpty(t, e.TargetHandle, "edge %s", e.ID)
	}
}

func TestRepair_AggregatorFanIn(t *testing.T) {
	g := domain.WorkflowGraph{
		Nodes: []domain.WorkflowNode{
			node("start", domain.NodeTypeStart),
			node("analysis-sentiment", domain.NodeTypeLLM),
			node("analysis-themes", domain.NodeTypeLLM),
			node("aggregator", domain.NodeTypeAggregator),
			node("end", domain.NodeTypeEnd),
		},
		Edges: []domain.WorkflowEdge{
			edge("start", "analysis-sentiment"),
			edge("start", "analysis-themes"),
			edge("analysis-sentiment", "aggregator"),
			edge("aggregator", "end"),
		},
	}

	fixed, _ := Repair(g)

	incoming := fixed.Incoming("aggregator")
	require.Len(t, incoming, 2)
	assert.NotEqual(t, incoming[0].TargetHandle, incoming[1].TargetHandle, "fan-in edges use distinct input ports")
	for _, e := range incoming {
		assert.Contains(t, domain.AggregatorInputPorts, e.TargetHandle)
	}
}

func TestRepair_PortResolutionSkipsClaimedAggregatorPort(t *testing.T) {
	g := domain.WorkflowGraph{
		Nodes: []domain.WorkflowNode{
			node("start", domain.NodeTypeStart),
			node("analysis-sentiment", domain.NodeTypeLLM),
			node("analysis-themes", domain.NodeTypeLLM),
			node("aggregator", domain.NodeTypeAggregator),
			node("end", domain.NodeTypeEnd),
		},
		Edges: []domain.WorkflowEdge{
			edge("start", "analysis-sentiment"),
			edge("start", "analysis-themes"),
			// The unassigned edge comes first; the pre-assigned claim on
			// input1 must still be honored.
			edge("analysis-themes", "aggregator"),
			{ID: "analysis-sentiment-to-aggregator", Source: "analysis-sentiment", Target: "aggregator", TargetHandle: "input1", Type: domain.EdgeTypeDefault},
			edge("aggregator", "end"),
		},
	}

	fixed, _ := Repair(g)

	themes := findEdge(fixed, "analysis-themes", "aggregator")
	require.NotNil(t, themes)
	assert.Equal(t, "input2", themes.TargetHandle, "claimed input1 must not be reassigned")
}

func TestRepair_ReconnectsOrphan(t *testing.T) {
	g := domain.WorkflowGraph{
		Nodes: []domain.WorkflowNode{
			node("start", domain.NodeTypeStart),
			node("processor", domain.NodeTypeLLM),
			node("stray", domain.NodeTypeTemplate),
			node("end", domain.NodeTypeEnd),
		},
		Edges: []domain.WorkflowEdge{
			edge("start", "processor"),
			edge("processor", "end"),
		},
	}

	fixed, report := Repair(g)

	assert.Contains(t, report.Issues, "orphan node: stray")
	require.NotNil(t, findEdge(fixed, "start", "stray"))
	// Terminal repair then gives the reconnected node an exit.
	assert.NotNil(t, findEdge(fixed, "stray", "end"))
}

func TestRepair_Idempotent(t *testing.T) {
	archetypes := []string{pattern.Linear, pattern.Conditional, pattern.Parallel, pattern.RAGPipeline, pattern.RAGRouting}
	for _, id := range archetypes {
		t.Run(id, func(t *testing.T) {
			g, err := synth.Synthesize(domain.RequirementProfile{}, id)
			require.NoError(t, err)

			once, _ := Repair(g)
			twice, report := Repair(once)

			assert.Empty(t, report.Actions, "second pass must change nothing")
			assert.Len(t, twice.Edges, len(once.Edges))
		})
	}
}

func TestRepair_DoesNotMutateInput(t *testing.T) {
	g := domain.WorkflowGraph{
		Nodes: []domain.WorkflowNode{
			node("start", domain.NodeTypeStart),
			node("processor", domain.NodeTypeLLM),
			node("end", domain.NodeTypeEnd),
		},
		Edges: []domain.WorkflowEdge{edge("start", "processor")},
	}

	_, _ = Repair(g)

	assert.Len(t, g.Edges, 1)
	assert.Empty(t, g.Edges[0].SourceHandle)
}

func findEdge(g domain.WorkflowGraph, source, target string) *domain.WorkflowEdge {
	for i := range g.Edges {
		if g.Edges[i].Source == source && g.Edges[i].Target == target {
			return &g.Edges[i]
		}
	}
	return nil
}
