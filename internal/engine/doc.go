// Package engine implements the execution runtime of the actor tree: the
// directors (sequential pipeline and branch fan-out), the composite actors
// Flow, Sequence, Tee, Trigger and Branch, and the JSON/YAML document
// codec. External callers use the re-exports in the root aktor package.
//
// Execution is single-threaded and cooperative. The SequentialDirector
// simulates streaming without goroutines: a producer that buffers several
// output tokens is revisited pass after pass until its buffer drains, so
// ordering stays deterministic and strictly left to right. Cancellation
// only sets flags that the directors poll between passes and between
// children; a running actor pass is never interrupted.
package engine
