/*
Package flowsmith turns free-text automation requests into validated,
typed workflow graphs serialized as importable workflow documents.

A generation run moves through six strict stages: requirement analysis,
pattern selection, graph synthesis, node configuration, structural repair,
and quality scoring. Structural problems are silently repaired rather than
surfaced as errors; the philosophy is "always produce a structurally valid
graph", with quality degradation reflected only in the score.

# Usage

	engine := flowsmith.New()
	result, err := engine.Generate(ctx, pipeline.Request{
		UserInput: "Translate incoming support emails to English",
	})

When the analyzer cannot classify the request confidently, the run parks
on clarification questions instead of guessing:

	if result.Clarification != nil {
		// collect answers keyed by question ID, then:
		result, err = engine.Resume(ctx, result.RunID, answers)
	}

Pending runs survive process restarts when a shared store is configured:

	engine := flowsmith.New(
		flowsmith.WithStore(redis.New("localhost:6379", "", 0)),
		flowsmith.WithLogger(logger),
	)

The pkg/... packages expose the individual stages for callers that need
finer control; the Engine facade wires them together.
*/
package flowsmith
