// Package actors provides the built-in actor library: sources that emit
// tokens, transformers that map them, and sinks that consume them.
//
// Every built-in is a small struct embedding one of the api bases, so the
// lifecycle plumbing (input slots, output queues, naming) comes for free
// and only DoExecute carries behavior. Register wires the serializable
// classes into a registry so saved flows can reconstruct them.
//
// The Func* adapters wrap plain Go functions for flows assembled in code;
// they are the quickest way to drop custom behavior into a flow without
// defining a type, at the cost of not being serializable.
package actors
