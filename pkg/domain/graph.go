package domain

// NodeType tags a workflow node with its behavior in the external runtime.
// The taxonomy is closed: downstream compatibility depends on these exact
// strings appearing in the serialized document.
type NodeType string

const (
	NodeTypeStart       NodeType = "start"
	NodeTypeEnd         NodeType = "end"
	NodeTypeLLM         NodeType = "llm"
	NodeTypeConditional NodeType = "if-else"
	NodeTypeClassifier  NodeType = "question-classifier"
	NodeTypeRetrieval   NodeType = "knowledge-retrieval"
	NodeTypeTemplate    NodeType = "template-transform"
	NodeTypeAggregator  NodeType = "variable-aggregator"
	NodeTypeCode        NodeType = "code"
	NodeTypeAssigner    NodeType = "assigner"
	NodeTypeIteration   NodeType = "iteration"
)

// EdgeTypeDefault is the only edge type emitted by this pipeline.
const EdgeTypeDefault = "custom"

// Position places a node on the canvas of the external editor.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BranchRef declares an upstream dependency on a specific source port.
// Port is empty for ordinary dependencies; conditional upstreams name
// their "true"/"false" branch here.
type BranchRef struct {
	NodeID string `json:"node_id"`
	Port   string `json:"port,omitempty"`
}

// WorkflowNode is one typed unit of work in a generated graph.
// Config starts nil after synthesis and is populated by the configurator.
type WorkflowNode struct {
	ID        string      `json:"id"`
	Type      NodeType    `json:"type"`
	Title     string      `json:"title"`
	Position  Position    `json:"position"`
	Config    NodeConfig  `json:"config,omitempty"`
	DependsOn []BranchRef `json:"depends_on,omitempty"`
	Required  bool        `json:"required"`
}

// WorkflowEdge is a directed connection between two nodes' named ports.
type WorkflowEdge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle"`
	TargetHandle string `json:"targetHandle"`
	Type         string `json:"type"`
}

// WorkflowGraph is the node and edge set of one generation run.
// The structural invariants (single start, reachable nodes, minimum
// fan-in/fan-out) are guaranteed after repair, not after synthesis.
type WorkflowGraph struct {
	Nodes []WorkflowNode `json:"nodes"`
	Edges []WorkflowEdge `json:"edges"`
}

// Node returns the node with the given id, or nil.
func (g *WorkflowGraph) Node(id string) *WorkflowNode {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// StartNode returns the first start-typed node, or nil.
func (g *WorkflowGraph) StartNode() *WorkflowNode {
	for i := range g.Nodes {
		if g.Nodes[i].Type == NodeTypeStart {
			return &g.Nodes[i]
		}
	}
	return nil
}

// EndNodes returns all end-typed nodes in declaration order.
func (g *WorkflowGraph) EndNodes() []WorkflowNode {
	var ends []WorkflowNode
	for _, n := range g.Nodes {
		if n.Type == NodeTypeEnd {
			ends = append(ends, n)
		}
	}
	return ends
}

// Outgoing returns the edges whose source is the given node.
func (g *WorkflowGraph) Outgoing(nodeID string) []WorkflowEdge {
	var out []WorkflowEdge
	for _, e := range g.Edges {
		if e.Source == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// Incoming returns the edges whose target is the given node.
func (g *WorkflowGraph) Incoming(nodeID string) []WorkflowEdge {
	var in []WorkflowEdge
	for _, e := range g.Edges {
		if e.Target == nodeID {
			in = append(in, e)
		}
	}
	return in
}

// Clone returns a deep copy. Repair phases consume one snapshot and return
// a new one, so the input graph is never mutated in place.
func (g *WorkflowGraph) Clone() WorkflowGraph {
	nodes := make([]WorkflowNode, len(g.Nodes))
	copy(nodes, g.Nodes)
	for i := range nodes {
		if nodes[i].DependsOn != nil {
			deps := make([]BranchRef, len(nodes[i].DependsOn))
			copy(deps, nodes[i].DependsOn)
			nodes[i].DependsOn = deps
		}
	}
	edges := make([]WorkflowEdge, len(g.Edges))
	copy(edges, g.Edges)
	return WorkflowGraph{Nodes: nodes, Edges: edges}
}
