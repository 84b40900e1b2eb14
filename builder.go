package aktor

import (
	"fmt"

	"github.com/jkivila/aktor/pkg/actors"
)

// FlowBuilder provides a fluent API for assembling flows in code:
//
//	flow := aktor.New("CountDown").
//	    Add(actors.NewForLoop("count", 1, 10, 1)).
//	    Transform("double", func(ctx context.Context, in any) (any, error) {
//	        return in.(int) * 2, nil
//	    }).
//	    Add(actors.NewConsole("print", "")).
//	    Build()
//
//	if err := flow.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
type FlowBuilder struct {
	flow *Flow
}

// New creates a new flow builder with the given name.
func New(name string) *FlowBuilder {
	return &FlowBuilder{flow: NewFlow(name)}
}

// Name returns the flow name.
func (b *FlowBuilder) Name() string {
	return b.flow.Name()
}

// Add appends actors to the flow in order.
func (b *FlowBuilder) Add(acts ...Actor) *FlowBuilder {
	b.flow.Add(acts...)
	return b
}

// Source appends a function-backed source.
func (b *FlowBuilder) Source(name string, fn SourceFunc) *FlowBuilder {
	if fn == nil {
		panic(fmt.Sprintf("aktor: source %q has nil function", name))
	}
	return b.Add(actors.NewFuncSource(name, fn))
}

// Transform appends a function-backed transformer.
func (b *FlowBuilder) Transform(name string, fn StepFunc) *FlowBuilder {
	if fn == nil {
		panic(fmt.Sprintf("aktor: transform %q has nil function", name))
	}
	return b.Add(actors.NewFuncTransform(name, fn))
}

// Sink appends a function-backed sink.
func (b *FlowBuilder) Sink(name string, fn SinkFunc) *FlowBuilder {
	if fn == nil {
		panic(fmt.Sprintf("aktor: sink %q has nil function", name))
	}
	return b.Add(actors.NewFuncSink(name, fn))
}

// Tee appends a tee whose side branch holds the given actors. An empty
// condition forwards every token to the branch.
func (b *FlowBuilder) Tee(name, condition string, acts ...Actor) *FlowBuilder {
	tee := NewTee(name, acts...)
	tee.SetCondition(condition)
	return b.Add(tee)
}

// Trigger appends a trigger running the given sub-flow per input token.
func (b *FlowBuilder) Trigger(name, condition string, acts ...Actor) *FlowBuilder {
	trig := NewTrigger(name, acts...)
	trig.SetCondition(condition)
	return b.Add(trig)
}

// Branch appends a branch fanning tokens out to the given children.
func (b *FlowBuilder) Branch(name string, children ...Actor) *FlowBuilder {
	return b.Add(NewBranch(name, children...))
}

// Observe installs an observer on the flow; multiple calls are combined.
func (b *FlowBuilder) Observe(obs Observer) *FlowBuilder {
	b.flow.SetObserver(NewCompositeObserver(b.flow.Observer(), obs))
	return b
}

// Storage seeds a storage entry before the flow runs.
func (b *FlowBuilder) Storage(name string, value any) *FlowBuilder {
	b.flow.Storage()[name] = value
	return b
}

// Build returns the assembled flow.
func (b *FlowBuilder) Build() *Flow {
	return b.flow
}
