// Package pattern maps a requirement profile to one of a fixed set of
// structural archetypes. The mapping is an explicit, ordered decision table:
// determinism and precedence order are part of the contract, and the
// registry of archetypes is immutable after process start.
package pattern

import (
	"fmt"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// Archetype IDs. These appear in pipeline preferences and in the generated
// app metadata, so they are stable identifiers.
const (
	Linear      = "linear"
	Conditional = "conditional"
	Parallel    = "parallel"
	RAGPipeline = "rag_pipeline"
	RAGRouting  = "rag_routing"
)

// Archetype is a fixed structural template describing which node kinds a
// generated graph contains.
type Archetype struct {
	ID          string
	Label       string
	Advantages  []string
	Limitations []string
	NodeKinds   []domain.NodeType
}

// registry is read-only for the lifetime of the process. No write path
// exists after initialization.
var registry = map[string]Archetype{
	Linear: {
		ID:          Linear,
		Label:       "Linear Processing",
		Advantages:  []string{"Simple to understand and debug", "Predictable execution path"},
		Limitations: []string{"No branching or parallel work"},
		NodeKinds:   []domain.NodeType{domain.NodeTypeStart, domain.NodeTypeLLM, domain.NodeTypeEnd},
	},
	Conditional: {
		ID:          Conditional,
		Label:       "Conditional Routing",
		Advantages:  []string{"Different handling per detected case", "Explicit branch logic"},
		Limitations: []string{"Branch conditions need maintenance as cases evolve"},
		NodeKinds: []domain.NodeType{
			domain.NodeTypeStart, domain.NodeTypeClassifier, domain.NodeTypeConditional,
			domain.NodeTypeLLM, domain.NodeTypeEnd,
		},
	},
	Parallel: {
		ID:          Parallel,
		Label:       "Parallel Analysis",
		Advantages:  []string{"Independent analyses run side by side", "Aggregated single result"},
		Limitations: []string{"Higher token cost per run"},
		NodeKinds: []domain.NodeType{
			domain.NodeTypeStart, domain.NodeTypeLLM, domain.NodeTypeAggregator, domain.NodeTypeEnd,
		},
	},
	RAGPipeline: {
		ID:          RAGPipeline,
		Label:       "Knowledge Retrieval Pipeline",
		Advantages:  []string{"Answers grounded in the knowledge base", "Tunable retrieval quality"},
		Limitations: []string{"Requires a maintained knowledge base"},
		NodeKinds: []domain.NodeType{
			domain.NodeTypeStart, domain.NodeTypeTemplate, domain.NodeTypeRetrieval,
			domain.NodeTypeLLM, domain.NodeTypeEnd,
		},
	},
	RAGRouting: {
		ID:          RAGRouting,
		Label:       "Retrieval with Routing",
		Advantages:  []string{"Knowledge-grounded answers with per-case routing", "Covers escalation paths"},
		Limitations: []string{"Most complex archetype to review"},
		NodeKinds: []domain.NodeType{
			domain.NodeTypeStart, domain.NodeTypeClassifier, domain.NodeTypeConditional,
			domain.NodeTypeTemplate, domain.NodeTypeRetrieval, domain.NodeTypeLLM, domain.NodeTypeEnd,
		},
	},
}

// ids in listing order, most specific first.
var ordered = []string{RAGRouting, RAGPipeline, Parallel, Conditional, Linear}

// Get returns the archetype for an ID.
func Get(id string) (Archetype, error) {
	a, ok := registry[id]
	if !ok {
		return Archetype{}, fmt.Errorf("%w: %q", domain.ErrUnknownArchetype, id)
	}
	return a, nil
}

// All returns every archetype in precedence order.
func All() []Archetype {
	out := make([]Archetype, 0, len(ordered))
	for _, id := range ordered {
		out = append(out, registry[id])
	}
	return out
}
