package configure

import (
	"strings"
	"testing"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/pattern"
	"github.com/flowsmith/flowsmith/pkg/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSynthesize(t *testing.T, profile domain.RequirementProfile, archetype string) domain.WorkflowGraph {
	t.Helper()
	g, err := synth.Synthesize(profile, archetype)
	require.NoError(t, err)
	return g
}

func TestConfigure_ModelSelection(t *testing.T) {
	cases := []struct {
		name    string
		profile domain.RequirementProfile
		want    string
	}{
		{"simple generation uses the light model", domain.RequirementProfile{Intent: domain.IntentContentGeneration}, modelLight},
		{"complex tier upgrades", domain.RequirementProfile{Complexity: domain.ComplexityComplex}, modelCapable},
		{"analysis intent upgrades", domain.RequirementProfile{Intent: domain.IntentDataAnalysis}, modelCapable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustSynthesize(t, tc.profile, pattern.Linear)
			out, _, err := Configure(g, tc.profile)
			require.NoError(t, err)

			cfg := out.Node("processor").Config.(domain.LLMConfig)
			assert.Equal(t, tc.want, cfg.Model.Name)
		})
	}
}

func TestConfigure_Temperature(t *testing.T) {
	analysis := domain.RequirementProfile{Intent: domain.IntentDataAnalysis}
	g := mustSynthesize(t, analysis, pattern.Linear)
	out, _, err := Configure(g, analysis)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, out.Node("processor").Config.(domain.LLMConfig).Model.Temperature, 1e-9)

	creative := domain.RequirementProfile{Intent: domain.IntentContentGeneration}
	g = mustSynthesize(t, creative, pattern.Linear)
	out, _, err = Configure(g, creative)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, out.Node("processor").Config.(domain.LLMConfig).Model.Temperature, 1e-9)

	// Any generation-type task runs warm, not just the creative intents.
	translation := domain.RequirementProfile{Intent: domain.IntentTranslation}
	g = mustSynthesize(t, translation, pattern.Linear)
	out, _, err = Configure(g, translation)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, out.Node("processor").Config.(domain.LLMConfig).Model.Temperature, 1e-9)
}

func TestConfigure_TokenBudget(t *testing.T) {
	profile := domain.RequirementProfile{
		BusinessRules: []string{"Produce a comprehensive analysis with detailed findings"},
	}
	assert.Equal(t, 500+700+1000+500, tokenBudget(profile))
	assert.Equal(t, 500, tokenBudget(domain.RequirementProfile{}))
}

func TestConfigure_RetrievalBudgets(t *testing.T) {
	tiers := []struct {
		tier      domain.Complexity
		topK      int
		threshold float64
		rerank    bool
	}{
		{domain.ComplexitySimple, 3, 0.7, false},
		{domain.ComplexityModerate, 5, 0.6, true},
		{domain.ComplexityComplex, 8, 0.5, true},
		{domain.ComplexityEnterprise, 10, 0.4, true},
	}
	for _, tc := range tiers {
		t.Run(tc.tier.String(), func(t *testing.T) {
			profile := domain.RequirementProfile{Complexity: tc.tier}
			g := mustSynthesize(t, profile, pattern.RAGPipeline)
			out, _, err := Configure(g, profile)
			require.NoError(t, err)

			cfg := out.Node("retriever").Config.(domain.RetrievalConfig)
			assert.Equal(t, tc.topK, cfg.TopK)
			assert.InDelta(t, tc.threshold, cfg.ScoreThreshold, 1e-9)
			assert.Equal(t, tc.rerank, cfg.Reranking)
		})
	}
}

func TestConfigure_ConditionalRichnessByTier(t *testing.T) {
	for tier, wantConditions := range map[domain.Complexity]int{
		domain.ComplexitySimple:     1,
		domain.ComplexityModerate:   2,
		domain.ComplexityComplex:    3,
		domain.ComplexityEnterprise: 3,
	} {
		profile := domain.RequirementProfile{Complexity: tier}
		g := mustSynthesize(t, profile, pattern.Conditional)
		out, _, err := Configure(g, profile)
		require.NoError(t, err)

		cfg := out.Node("router").Config.(domain.ConditionalConfig)
		assert.Len(t, cfg.Conditions, wantConditions, tier.String())
		if tier == domain.ComplexityEnterprise {
			assert.NotEmpty(t, cfg.Groups, "enterprise conditionals nest AND/OR groups")
		} else {
			assert.Empty(t, cfg.Groups)
		}
	}
}

func TestConfigure_PromptsReferenceInputsAndContext(t *testing.T) {
	profile := domain.RequirementProfile{
		Intent:        domain.IntentCustomerService,
		BusinessRules: []string{"Escalate if the customer is angry"},
	}
	g := mustSynthesize(t, profile, pattern.RAGPipeline)
	out, _, err := Configure(g, profile)
	require.NoError(t, err)

	cfg := out.Node("answer-generator").Config.(domain.LLMConfig)
	assert.Contains(t, cfg.UserPrompt, "{{#start.user_input#}}")
	assert.Contains(t, cfg.UserPrompt, "{{#retriever.result#}}")
	assert.Contains(t, cfg.SystemPrompt, "1. ")
	assert.Contains(t, cfg.SystemPrompt, "escalation",
		"escalation rules add an escalation guideline")
	assert.True(t, strings.HasPrefix(cfg.SystemPrompt, roleTemplates[domain.IntentCustomerService]))
}

func TestConfigure_MetadataCoversProcessingNodes(t *testing.T) {
	profile := domain.RequirementProfile{Complexity: domain.ComplexityModerate}
	g := mustSynthesize(t, profile, pattern.RAGRouting)
	out, meta, err := Configure(g, profile)
	require.NoError(t, err)

	for _, n := range out.Nodes {
		switch n.Type {
		case domain.NodeTypeLLM, domain.NodeTypeClassifier, domain.NodeTypeRetrieval:
			m, ok := meta[n.ID]
			require.True(t, ok, "missing metadata for %s", n.ID)
			assert.True(t, m.HasFallback)
			assert.Equal(t, 3, m.Retry.MaxRetries)
			assert.InDelta(t, 2.0, m.Retry.Backoff, 1e-9)
			assert.NotEmpty(t, m.QualityChecks)
		}
	}
}

func TestConfigure_StartExtrasByType(t *testing.T) {
	profile := domain.RequirementProfile{Inputs: []domain.DataInput{
		{Name: "document", Type: domain.InputTypeFile, Required: true},
		{Name: "notes", Type: domain.InputTypeParagraph},
	}}
	g := mustSynthesize(t, profile, pattern.Linear)
	out, _, err := Configure(g, profile)
	require.NoError(t, err)

	cfg := out.StartNode().Config.(domain.StartConfig)
	assert.NotEmpty(t, cfg.Variables[0].AllowedTypes)
	assert.Equal(t, 15, cfg.Variables[0].MaxSizeMB)
	assert.Equal(t, 4000, cfg.Variables[1].MaxLength)
}

func TestConfigure_DoesNotMutateInput(t *testing.T) {
	profile := domain.RequirementProfile{}
	g := mustSynthesize(t, profile, pattern.Linear)
	_, _, err := Configure(g, profile)
	require.NoError(t, err)
	assert.Nil(t, g.Node("processor").Config, "enrichment must not touch the input snapshot")
}
