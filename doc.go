// Package aktor is an embeddable dataflow engine: flows are trees of
// actors that pass tokens from sources through transformers to sinks,
// driven by directors that own the execution order.
//
// # Model
//
// An actor is the unit of behavior. Sources produce tokens, transformers
// consume one token and produce zero or more, sinks consume tokens.
// Composite actors (Flow, Sequence, Tee, Trigger, Branch) hold child
// actors and delegate ordering to a director:
//
//   - Flow is the root. It owns the shared storage, the observer and the
//     run context, and drives its children sequentially.
//   - Sequence is a reusable sub-pipeline that starts with a consumer.
//   - Tee forwards every input token downstream unchanged while feeding a
//     copy to a side branch, optionally gated by a condition.
//   - Trigger runs an embedded sub-flow for each input token, then
//     forwards the token unchanged.
//   - Branch fans each input token out to all of its children.
//
// Execution is single-threaded and cooperative: one token is walked as far
// through the pipeline as it goes before the next token of a multi-output
// source is taken up. Cancelling the context passed to Run stops the flow
// at the next actor boundary.
//
// # Assembling flows
//
// Flows can be assembled directly from the built-in library in
// pkg/actors, fluently with the FlowBuilder, or from plain Go functions:
//
//	flow := aktor.New("Squares").
//	    Add(actors.NewForLoop("i", 1, 5, 1)).
//	    Transform("square", func(ctx context.Context, in any) (any, error) {
//	        n := in.(int)
//	        return n * n, nil
//	    }).
//	    Add(actors.NewConsole("out", "")).
//	    Build()
//	err := flow.Run(context.Background())
//
// # Storage
//
// Every flow carries a flat string-keyed storage map shared by all of its
// actors. String options may reference entries with @{name} placeholders,
// expanded at execution time; an option that is exactly one placeholder is
// substituted with the live value, whatever its type.
//
// # Serialization
//
// Flows built from registered actor classes round-trip through JSON or
// YAML documents. Reconstruction goes through an explicit Registry; use
// NewRegistry for the built-ins and RegisterClass for your own actors.
// Function-backed actors do not serialize.
//
// # Observability
//
// An Observer receives flow and actor lifecycle callbacks. The package
// ships a slog-backed LoggingObserver, an in-process BasicMetrics
// collector, a PrometheusObserver, and a CompositeObserver to combine
// them. The default observer is a no-op.
package aktor
