package domain

// PortContract is the fixed capability contract of a node type: the named
// source ports it can emit from and the named target ports it can receive
// into. Edge repair assigns the first capability port when an edge is
// missing an explicit handle.
type PortContract struct {
	Sources []string
	Targets []string
}

// Branch port names exposed by conditional nodes.
const (
	PortTrue  = "true"
	PortFalse = "false"
)

// Default port names for single-port node types.
const (
	PortSource = "source"
	PortTarget = "target"
)

// AggregatorInputPorts are the numbered target ports of aggregator and
// assigner nodes, in round-robin assignment order.
var AggregatorInputPorts = []string{"input1", "input2", "input3", "input4"}

// ContractFor returns the port contract of a node type. Unrecognized types
// default to one source and one target port.
func ContractFor(t NodeType) PortContract {
	switch t {
	case NodeTypeStart:
		return PortContract{Sources: []string{PortSource}}
	case NodeTypeEnd:
		return PortContract{Targets: []string{PortTarget}}
	case NodeTypeConditional:
		return PortContract{Sources: []string{PortTrue, PortFalse}, Targets: []string{PortTarget}}
	case NodeTypeAggregator, NodeTypeAssigner:
		return PortContract{Sources: []string{PortSource}, Targets: AggregatorInputPorts}
	case NodeTypeIteration:
		return PortContract{
			Sources: []string{"item_output", "final_output"},
			Targets: []string{PortTarget, "result_input"},
		}
	default:
		return PortContract{Sources: []string{PortSource}, Targets: []string{PortTarget}}
	}
}
