// Package repair checks the structural invariants of a workflow graph and
// deterministically mutates it until they hold: orphans are reconnected,
// every non-end node gets an outgoing edge, conditional nodes get both
// branch edges, aggregators get their minimum fan-in, and every edge ends
// up with resolved port names.
//
// Each phase is a pure transformation: it consumes one graph snapshot and
// returns a new one, which keeps phases independently testable and makes
// the whole pass idempotent — a second application adds nothing.
//
// Phase order matters: connectivity and port resolution run before the
// terminal and fan-in repairs, because those rely on already-resolved port
// names to avoid assigning duplicate ports.
package repair

import (
	"fmt"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// Action kinds recorded in the report.
const (
	ActionReconnectOrphan = "reconnect_orphan"
	ActionAssignPort      = "assign_port"
	ActionAddTerminalEdge = "add_terminal_edge"
	ActionAddBranchEdge   = "add_branch_edge"
	ActionAddFanInEdge    = "add_fanin_edge"
)

// Action is one structural correction. Repairs are silent by design: they
// are reported and counted, never surfaced as errors.
type Action struct {
	Kind   string `json:"kind"`
	EdgeID string `json:"edge_id,omitempty"`
	Detail string `json:"detail"`
}

// Report describes what the pass found and fixed.
type Report struct {
	Issues  []string `json:"issues"`
	Actions []Action `json:"actions"`
}

// Repair applies all phases in order and returns the fixed-point graph.
func Repair(g domain.WorkflowGraph) (domain.WorkflowGraph, Report) {
	var report Report

	g = reconnectOrphans(g, &report)
	g = resolvePorts(g, &report)
	g = repairTerminals(g, &report)
	g = repairFanIn(g, &report)

	return g, report
}

// reconnectOrphans finds non-start/non-end nodes touched by no edge and
// attaches them downstream of the start node, restoring reachability.
func reconnectOrphans(g domain.WorkflowGraph, report *Report) domain.WorkflowGraph {
	out := g.Clone()

	touched := map[string]bool{}
	for _, e := range out.Edges {
		touched[e.Source] = true
		touched[e.Target] = true
	}

	start := out.StartNode()
	for _, n := range out.Nodes {
		if n.Type == domain.NodeTypeStart || n.Type == domain.NodeTypeEnd || touched[n.ID] {
			continue
		}
		report.Issues = append(report.Issues, fmt.Sprintf("orphan node: %s", n.ID))
		if start == nil {
			continue
		}
		edge := domain.WorkflowEdge{
			ID:     edgeID(start.ID, n.ID),
			Source: start.ID,
			Target: n.ID,
			Type:   domain.EdgeTypeDefault,
		}
		out.Edges = append(out.Edges, edge)
		report.Actions = append(report.Actions, Action{
			Kind:   ActionReconnectOrphan,
			EdgeID: edge.ID,
			Detail: fmt.Sprintf("connected orphan %s to %s", n.ID, start.ID),
		})
	}
	return out
}

// resolvePorts fills in missing edge handles from each node type's
// capability contract. Aggregator-style targets distribute their numbered
// input ports across incoming edges in order, skipping ports an edge
// already claims, so later repairs never double-assign a port.
func resolvePorts(g domain.WorkflowGraph, report *Report) domain.WorkflowGraph {
	out := g.Clone()

	// Ports already claimed by pre-assigned handles count as taken.
	aggregatorUsed := map[string]map[string]bool{}
	claim := func(nodeID, port string) {
		if aggregatorUsed[nodeID] == nil {
			aggregatorUsed[nodeID] = map[string]bool{}
		}
		aggregatorUsed[nodeID][port] = true
	}
	for _, e := range out.Edges {
		if e.TargetHandle == "" {
			continue
		}
		if tgt := out.Node(e.Target); tgt != nil &&
			(tgt.Type == domain.NodeTypeAggregator || tgt.Type == domain.NodeTypeAssigner) {
			claim(tgt.ID, e.TargetHandle)
		}
	}
	for i := range out.Edges {
		e := &out.Edges[i]

		if e.SourceHandle == "" {
			if src := out.Node(e.Source); src != nil {
				contract := domain.ContractFor(src.Type)
				if len(contract.Sources) > 0 {
					e.SourceHandle = contract.Sources[0]
					report.Actions = append(report.Actions, Action{
						Kind:   ActionAssignPort,
						EdgeID: e.ID,
						Detail: fmt.Sprintf("source handle %s on %s", e.SourceHandle, e.ID),
					})
				}
			}
		}

		if e.TargetHandle == "" {
			if tgt := out.Node(e.Target); tgt != nil {
				contract := domain.ContractFor(tgt.Type)
				if len(contract.Targets) > 0 {
					port := contract.Targets[0]
					if tgt.Type == domain.NodeTypeAggregator || tgt.Type == domain.NodeTypeAssigner {
						port = nextFreePort(contract.Targets, aggregatorUsed[tgt.ID])
						claim(tgt.ID, port)
					}
					e.TargetHandle = port
					report.Actions = append(report.Actions, Action{
						Kind:   ActionAssignPort,
						EdgeID: e.ID,
						Detail: fmt.Sprintf("target handle %s on %s", port, e.ID),
					})
				}
			}
		}
	}
	return out
}

// repairTerminals gives every dead-end node a path to the end node.
// Conditional nodes are checked per branch port: each missing branch gets
// its own edge to the end node, so a router with one wired branch still
// ends up routing through both ports.
func repairTerminals(g domain.WorkflowGraph, report *Report) domain.WorkflowGraph {
	out := g.Clone()

	ends := out.EndNodes()
	if len(ends) == 0 {
		report.Issues = append(report.Issues, "graph has no end node")
		return out
	}
	end := ends[0]

	for _, n := range out.Nodes {
		if n.Type == domain.NodeTypeEnd {
			continue
		}
		outgoing := out.Outgoing(n.ID)

		if n.Type == domain.NodeTypeConditional {
			for _, port := range domain.ContractFor(n.Type).Sources {
				if hasSourcePort(outgoing, port) {
					continue
				}
				report.Issues = append(report.Issues, fmt.Sprintf("conditional %s missing %q branch", n.ID, port))
				edge := domain.WorkflowEdge{
					ID:           fmt.Sprintf("%s-%s-to-%s", n.ID, port, end.ID),
					Source:       n.ID,
					Target:       end.ID,
					SourceHandle: port,
					TargetHandle: firstTargetPort(end.Type),
					Type:         domain.EdgeTypeDefault,
				}
				out.Edges = append(out.Edges, edge)
				report.Actions = append(report.Actions, Action{
					Kind:   ActionAddBranchEdge,
					EdgeID: edge.ID,
					Detail: fmt.Sprintf("added %q branch of %s to %s", port, n.ID, end.ID),
				})
			}
			continue
		}

		if len(outgoing) > 0 {
			continue
		}
		report.Issues = append(report.Issues, fmt.Sprintf("node %s has no outgoing edge", n.ID))
		edge := domain.WorkflowEdge{
			ID:           edgeID(n.ID, end.ID),
			Source:       n.ID,
			Target:       end.ID,
			SourceHandle: firstSourcePort(n.Type),
			TargetHandle: firstTargetPort(end.Type),
			Type:         domain.EdgeTypeDefault,
		}
		out.Edges = append(out.Edges, edge)
		report.Actions = append(report.Actions, Action{
			Kind:   ActionAddTerminalEdge,
			EdgeID: edge.ID,
			Detail: fmt.Sprintf("connected terminal %s to %s", n.ID, end.ID),
		})
	}
	return out
}

// repairFanIn tops up aggregator-style nodes to their minimum of two
// incoming edges, pulling candidate sources from nodes not yet connected
// to them and distributing the numbered input ports round-robin.
func repairFanIn(g domain.WorkflowGraph, report *Report) domain.WorkflowGraph {
	out := g.Clone()

	for _, n := range out.Nodes {
		if n.Type != domain.NodeTypeAggregator && n.Type != domain.NodeTypeAssigner {
			continue
		}
		incoming := out.Incoming(n.ID)
		if len(incoming) >= 2 {
			continue
		}
		report.Issues = append(report.Issues, fmt.Sprintf("aggregator %s has fan-in %d", n.ID, len(incoming)))

		connected := map[string]bool{}
		usedPorts := map[string]bool{}
		for _, e := range incoming {
			connected[e.Source] = true
			usedPorts[e.TargetHandle] = true
		}

		count := len(incoming)
		for _, candidate := range out.Nodes {
			if count >= 2 {
				break
			}
			if candidate.ID == n.ID || candidate.Type == domain.NodeTypeEnd || connected[candidate.ID] {
				continue
			}
			edge := domain.WorkflowEdge{
				ID:           edgeID(candidate.ID, n.ID),
				Source:       candidate.ID,
				Target:       n.ID,
				SourceHandle: firstSourcePort(candidate.Type),
				TargetHandle: nextFreePort(domain.ContractFor(n.Type).Targets, usedPorts),
				Type:         domain.EdgeTypeDefault,
			}
			usedPorts[edge.TargetHandle] = true
			connected[candidate.ID] = true
			out.Edges = append(out.Edges, edge)
			count++
			report.Actions = append(report.Actions, Action{
				Kind:   ActionAddFanInEdge,
				EdgeID: edge.ID,
				Detail: fmt.Sprintf("added fan-in edge %s for aggregator %s", edge.ID, n.ID),
			})
		}
	}
	return out
}

// -- helpers --

func edgeID(source, target string) string {
	return fmt.Sprintf("%s-to-%s", source, target)
}

func hasSourcePort(edges []domain.WorkflowEdge, port string) bool {
	for _, e := range edges {
		if e.SourceHandle == port {
			return true
		}
	}
	return false
}

func firstSourcePort(t domain.NodeType) string {
	c := domain.ContractFor(t)
	if len(c.Sources) == 0 {
		return ""
	}
	return c.Sources[0]
}

func firstTargetPort(t domain.NodeType) string {
	c := domain.ContractFor(t)
	if len(c.Targets) == 0 {
		return ""
	}
	return c.Targets[0]
}

func nextFreePort(ports []string, used map[string]bool) string {
	for _, p := range ports {
		if !used[p] {
			return p
		}
	}
	if len(ports) == 0 {
		return ""
	}
	return ports[0]
}
