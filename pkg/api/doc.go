// Package api defines the core model of the aktor dataflow engine: tokens,
// actors and their capability interfaces, the shared storage with @{name}
// placeholder expansion, typed error kinds, the document registry, and the
// Observer callbacks used for logging and metrics.
//
// An actor is a named unit of work. Its capabilities are expressed
// structurally: a source implements Producer but not Consumer, a sink
// implements Consumer but not Producer, and a transformer implements both.
// Concrete actors embed SourceBase, TransformerBase or SinkBase and
// implement DoExecute; the Execute function drives the skip / pre / do /
// post contract and converts panics into *ExecError values.
//
// How the children of a handler are executed is not defined here: that is
// the job of the directors in the engine package, which pull and push
// tokens through the tree strictly sequentially.
package api
