// Package graph renders generated workflow graphs as Mermaid flowcharts
// for terminal preview and documentation.
package graph

import (
	"fmt"
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// Mermaid produces a flowchart from a workflow graph.
// Shapes follow the node's role:
//   - start/end: ((circle))
//   - conditional: {diamond}
//   - classifier: [/parallelogram/]
//   - aggregator/assigner: [[subroutine]]
//   - everything else: [rectangle]
//
// Branch edges are labeled with their source port.
func Mermaid(g domain.WorkflowGraph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes {
		safeID := sanitizeID(node.ID)

		opener, closer := "[", "]"
		switch node.Type {
		case domain.NodeTypeStart, domain.NodeTypeEnd:
			opener, closer = "((", "))"
		case domain.NodeTypeConditional:
			opener, closer = "{", "}"
		case domain.NodeTypeClassifier:
			opener, closer = "[/", "/]"
		case domain.NodeTypeAggregator, domain.NodeTypeAssigner:
			opener, closer = "[[", "]]"
		}

		title := node.Title
		if title == "" {
			title = node.ID
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(title), closer))
	}

	for _, edge := range g.Edges {
		src := sanitizeID(edge.Source)
		tgt := sanitizeID(edge.Target)

		arrow := "-->"
		switch edge.SourceHandle {
		case domain.PortTrue, domain.PortFalse:
			arrow = fmt.Sprintf("-- \"%s\" -->", edge.SourceHandle)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", src, arrow, tgt))
	}

	return sb.String()
}

func sanitizeID(id string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_")
	return replacer.Replace(id)
}

func escapeLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
