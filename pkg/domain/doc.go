// Package domain contains the value types shared by every pipeline stage:
// the requirement profile extracted from a request, the workflow graph with
// its typed nodes and port contracts, and the quality assessment emitted at
// the end of a generation run.
//
// Types here are plain values with no behavior beyond lookups and copies.
// All decision logic lives in the stage packages (requirement, pattern,
// synth, configure, repair, quality).
package domain
