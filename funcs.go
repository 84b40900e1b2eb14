package aktor

import (
	"github.com/jkivila/aktor/pkg/actors"
)

// Function-backed actors re-exported from pkg/actors, for flows assembled
// in code.
type (
	SourceFunc = actors.SourceFunc
	StepFunc   = actors.StepFunc
	SinkFunc   = actors.SinkFunc
)

// Source adapts fn into a source actor emitting one token per returned
// payload.
func Source(name string, fn SourceFunc) *actors.FuncSource {
	return actors.NewFuncSource(name, fn)
}

// Transform adapts fn into a transformer actor. A nil result drops the
// token.
func Transform(name string, fn StepFunc) *actors.FuncTransform {
	return actors.NewFuncTransform(name, fn)
}

// Sink adapts fn into a sink actor.
func Sink(name string, fn SinkFunc) *actors.FuncSink {
	return actors.NewFuncSink(name, fn)
}
