package pattern

import (
	"testing"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/requirement"
	"github.com/stretchr/testify/assert"
)

func TestSelect_DecisionTable(t *testing.T) {
	cases := []struct {
		name    string
		profile domain.RequirementProfile
		want    string
	}{
		{
			name: "retrieval and routing markers together win over either alone",
			profile: domain.RequirementProfile{
				BusinessRules:    []string{"Escalate if the sentiment is negative"},
				IntegrationNeeds: []string{"knowledge base"},
			},
			want: RAGRouting,
		},
		{
			name: "retrieval alone",
			profile: domain.RequirementProfile{
				IntegrationNeeds: []string{"search our internal documents"},
			},
			want: RAGPipeline,
		},
		{
			name: "parallel markers",
			profile: domain.RequirementProfile{
				BusinessRules: []string{"Run sentiment analysis on every review"},
			},
			want: Parallel,
		},
		{
			name: "more than two outputs implies parallel",
			profile: domain.RequirementProfile{
				Outputs: []domain.OutputRequirement{{Name: "a"}, {Name: "b"}, {Name: "c"}},
			},
			want: Parallel,
		},
		{
			name: "conditional alone",
			profile: domain.RequirementProfile{
				BusinessRules: []string{"Route complaints to a manager"},
			},
			want: Conditional,
		},
		{
			name:    "no markers defaults to linear",
			profile: domain.RequirementProfile{},
			want:    Linear,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Select(tc.profile))
		})
	}
}

func TestSelect_TranslationRequestIsLinear(t *testing.T) {
	res := requirement.Analyze("Translate this paragraph to French", nil)
	assert.Equal(t, Linear, Select(res.Profile))
}

func TestSelect_KnowledgeBaseWithEscalationIsHybrid(t *testing.T) {
	res := requirement.Analyze("Answer customer questions from our knowledge base and escalate if negative", nil)
	assert.Equal(t, RAGRouting, Select(res.Profile))
}

func TestRegistry(t *testing.T) {
	all := All()
	assert.Len(t, all, 5)
	assert.Equal(t, RAGRouting, all[0].ID, "listing follows precedence order")

	for _, a := range all {
		got, err := Get(a.ID)
		assert.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
		assert.NotEmpty(t, a.Label)
		assert.NotEmpty(t, a.NodeKinds)
	}

	_, err := Get("mesh")
	assert.ErrorIs(t, err, domain.ErrUnknownArchetype)
}
