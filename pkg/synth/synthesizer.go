// Package synth expands a selected archetype into a concrete workflow
// graph: the node list plus edges derived mechanically from each node's
// declared dependencies. Graphs leave this package structurally plausible
// but unrepaired; invariants are restored by pkg/repair.
package synth

import (
	"fmt"
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/pattern"
)

// Well-known node IDs emitted by synthesis. Stable IDs keep edge IDs and
// prompt variable references reproducible across runs.
const (
	NodeStart = "start"
	NodeEnd   = "end"
)

// Synthesize builds the canonical node sequence of an archetype and derives
// the edge list from node dependencies.
func Synthesize(profile domain.RequirementProfile, archetypeID string) (domain.WorkflowGraph, error) {
	if _, err := pattern.Get(archetypeID); err != nil {
		return domain.WorkflowGraph{}, err
	}

	start := domain.WorkflowNode{
		ID:       NodeStart,
		Type:     domain.NodeTypeStart,
		Title:    "Start",
		Config:   startConfig(profile),
		Required: true,
	}
	end := domain.WorkflowNode{
		ID:       NodeEnd,
		Type:     domain.NodeTypeEnd,
		Title:    "End",
		Config:   domain.EndConfig{Outputs: []domain.EndOutput{{Variable: "result", Type: "string"}}},
		Required: true,
	}

	var middle []domain.WorkflowNode
	switch archetypeID {
	case pattern.Linear:
		middle = linearNodes(profile)
	case pattern.Conditional:
		middle = conditionalNodes()
	case pattern.Parallel:
		middle = parallelNodes(profile)
	case pattern.RAGPipeline:
		middle = retrievalNodes()
	case pattern.RAGRouting:
		middle = hybridNodes()
	}

	// The end node depends on every middle node nothing else consumes.
	referenced := map[string]bool{}
	for _, n := range middle {
		for _, d := range n.DependsOn {
			referenced[d.NodeID] = true
		}
	}
	for _, n := range middle {
		if !referenced[n.ID] {
			end.DependsOn = append(end.DependsOn, dep(n.ID))
		}
	}

	nodes := make([]domain.WorkflowNode, 0, len(middle)+2)
	nodes = append(nodes, start)
	nodes = append(nodes, middle...)
	nodes = append(nodes, end)

	graph := domain.WorkflowGraph{Nodes: nodes}
	graph.Edges = deriveEdges(graph)
	layout(&graph)
	return graph, nil
}

func linearNodes(profile domain.RequirementProfile) []domain.WorkflowNode {
	title := "Process Request"
	if profile.Intent == domain.IntentTranslation {
		title = "Translate Text"
	}
	return []domain.WorkflowNode{
		node("processor", domain.NodeTypeLLM, title, true, dep(NodeStart)),
	}
}

func conditionalNodes() []domain.WorkflowNode {
	return []domain.WorkflowNode{
		node("classifier", domain.NodeTypeClassifier, "Classify Request", true, dep(NodeStart)),
		node("router", domain.NodeTypeConditional, "Route by Class", true, dep("classifier")),
		node("handler-true", domain.NodeTypeLLM, "Handle Matched Case", true, branchDep("router", domain.PortTrue)),
		node("handler-false", domain.NodeTypeLLM, "Handle Default Case", true, branchDep("router", domain.PortFalse)),
	}
}

func parallelNodes(profile domain.RequirementProfile) []domain.WorkflowNode {
	topics := analysisTopics(profile)
	nodes := make([]domain.WorkflowNode, 0, len(topics)+1)
	aggDeps := make([]domain.BranchRef, 0, len(topics))
	for _, topic := range topics {
		id := "analysis-" + topic.id
		nodes = append(nodes, node(id, domain.NodeTypeLLM, topic.title, true, dep(NodeStart)))
		aggDeps = append(aggDeps, dep(id))
	}
	nodes = append(nodes, node("aggregator", domain.NodeTypeAggregator, "Combine Results", true, aggDeps...))
	return nodes
}

func retrievalNodes() []domain.WorkflowNode {
	return []domain.WorkflowNode{
		node("query-enhancer", domain.NodeTypeTemplate, "Enhance Query", true, dep(NodeStart)),
		node("retriever", domain.NodeTypeRetrieval, "Retrieve Knowledge", true, dep("query-enhancer")),
		node("answer-generator", domain.NodeTypeLLM, "Generate Answer", true, dep("retriever")),
	}
}

// hybridNodes is the conditional pair followed by the retrieval triple.
// The true branch flows through retrieval; the false branch answers
// directly without a knowledge lookup.
func hybridNodes() []domain.WorkflowNode {
	return []domain.WorkflowNode{
		node("classifier", domain.NodeTypeClassifier, "Classify Request", true, dep(NodeStart)),
		node("router", domain.NodeTypeConditional, "Route by Class", true, dep("classifier")),
		node("query-enhancer", domain.NodeTypeTemplate, "Enhance Query", true, branchDep("router", domain.PortTrue)),
		node("retriever", domain.NodeTypeRetrieval, "Retrieve Knowledge", true, dep("query-enhancer")),
		node("answer-generator", domain.NodeTypeLLM, "Generate Grounded Answer", true, dep("retriever")),
		node("direct-response", domain.NodeTypeLLM, "Answer Directly", true, branchDep("router", domain.PortFalse)),
	}
}

type analysisTopic struct {
	id    string
	title string
}

// analysisTopics picks the parallel analysis nodes from detected topics,
// with a single generic analysis when nothing specific was mentioned.
func analysisTopics(profile domain.RequirementProfile) []analysisTopic {
	corpus := strings.ToLower(strings.Join(append(profile.BusinessRules, profile.IntegrationNeeds...), " "))
	for _, out := range profile.Outputs {
		corpus += " " + strings.ToLower(out.Name)
	}

	var topics []analysisTopic
	if strings.Contains(corpus, "sentiment") {
		topics = append(topics, analysisTopic{id: "sentiment", title: "Sentiment Analysis"})
	}
	if strings.Contains(corpus, "theme") || strings.Contains(corpus, "topic") {
		topics = append(topics, analysisTopic{id: "themes", title: "Theme Extraction"})
	}
	if len(topics) == 0 {
		topics = append(topics, analysisTopic{id: "general", title: "Content Analysis"})
	}
	return topics
}

// typeMapping is the fixed table from declared input types to start-node
// slot types.
var typeMapping = map[domain.InputType]domain.InputType{
	domain.InputTypeText:      domain.InputTypeText,
	domain.InputTypeParagraph: domain.InputTypeParagraph,
	domain.InputTypeNumber:    domain.InputTypeNumber,
	domain.InputTypeFile:      domain.InputTypeFile,
	domain.InputTypeSelect:    domain.InputTypeSelect,
}

// startConfig emits one input slot per declared data input. A profile with
// no declared inputs falls back to a single required text input named
// user_input.
func startConfig(profile domain.RequirementProfile) domain.StartConfig {
	if len(profile.Inputs) == 0 {
		return domain.StartConfig{Variables: []domain.StartVariable{{
			Variable: "user_input",
			Label:    "User Input",
			Type:     domain.InputTypeText,
			Required: true,
		}}}
	}

	vars := make([]domain.StartVariable, 0, len(profile.Inputs))
	for _, in := range profile.Inputs {
		slotType, ok := typeMapping[in.Type]
		if !ok {
			slotType = domain.InputTypeText
		}
		vars = append(vars, domain.StartVariable{
			Variable: in.Name,
			Label:    labelFor(in.Name),
			Type:     slotType,
			Required: in.Required,
		})
	}
	return domain.StartConfig{Variables: vars}
}

func labelFor(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// deriveEdges produces one edge per declared dependency. Branch
// dependencies carry their source port immediately; everything else is left
// for port resolution during repair. The end node implicitly depends on
// every terminal middle node, which repair also guarantees, but wiring the
// obvious ones here keeps synthesized graphs readable.
func deriveEdges(g domain.WorkflowGraph) []domain.WorkflowEdge {
	var edges []domain.WorkflowEdge
	for _, n := range g.Nodes {
		for _, d := range n.DependsOn {
			edges = append(edges, domain.WorkflowEdge{
				ID:           edgeID(d.NodeID, n.ID),
				Source:       d.NodeID,
				Target:       n.ID,
				SourceHandle: d.Port,
				Type:         domain.EdgeTypeDefault,
			})
		}
	}
	return edges
}

func edgeID(source, target string) string {
	return fmt.Sprintf("%s-to-%s", source, target)
}

// -- small constructors --

func node(id string, t domain.NodeType, title string, required bool, deps ...domain.BranchRef) domain.WorkflowNode {
	return domain.WorkflowNode{ID: id, Type: t, Title: title, Required: required, DependsOn: deps}
}

func dep(id string) domain.BranchRef { return domain.BranchRef{NodeID: id} }

func branchDep(id, port string) domain.BranchRef {
	return domain.BranchRef{NodeID: id, Port: port}
}
