package actors

import (
	"context"

	"github.com/jkivila/aktor/pkg/api"
)

// SourceFunc produces the payloads a FuncSource emits, one token each.
type SourceFunc func(ctx context.Context) ([]any, error)

// StepFunc maps an input payload to an output payload. Returning a nil
// payload from a FuncTransform drops the token.
type StepFunc func(ctx context.Context, input any) (any, error)

// SinkFunc consumes a payload at the end of a branch.
type SinkFunc func(ctx context.Context, input any) error

// runContext returns the context the enclosing flow is running under, or
// context.Background outside of a Run call.
func runContext(a api.Actor) context.Context {
	if cp, ok := api.Root(a).(interface{ RunContext() context.Context }); ok {
		if ctx := cp.RunContext(); ctx != nil {
			return ctx
		}
	}
	return context.Background()
}

// FuncSource adapts a plain Go function into a source actor. Function-backed
// actors cannot be serialized; use them for flows assembled in code.
type FuncSource struct {
	api.SourceBase
	fn SourceFunc
}

// NewFuncSource creates a source emitting one token per payload returned by fn.
func NewFuncSource(name string, fn SourceFunc) *FuncSource {
	f := &FuncSource{SourceBase: api.NewSourceBase("FuncSource"), fn: fn}
	if name != "" {
		f.SetName(name)
	}
	return f
}

func (f *FuncSource) Setup() error {
	if f.fn == nil {
		return api.NewConfigError(f, "function is nil")
	}
	return nil
}

func (f *FuncSource) DoExecute() error {
	payloads, err := f.fn(runContext(f))
	if err != nil {
		return err
	}
	for _, p := range payloads {
		f.AppendOutput(api.NewToken(p))
	}
	return nil
}

// FuncTransform adapts a plain Go function into a transformer actor.
type FuncTransform struct {
	api.TransformerBase
	fn StepFunc
}

// NewFuncTransform creates a transformer applying fn to each payload.
func NewFuncTransform(name string, fn StepFunc) *FuncTransform {
	f := &FuncTransform{TransformerBase: api.NewTransformerBase("FuncTransform"), fn: fn}
	if name != "" {
		f.SetName(name)
	}
	return f
}

func (f *FuncTransform) Setup() error {
	if f.fn == nil {
		return api.NewConfigError(f, "function is nil")
	}
	return nil
}

func (f *FuncTransform) DoExecute() error {
	out, err := f.fn(runContext(f), f.Input().Payload())
	if err != nil {
		return err
	}
	if out != nil {
		f.AppendOutput(api.NewToken(out))
	}
	return nil
}

// FuncSink adapts a plain Go function into a sink actor.
type FuncSink struct {
	api.SinkBase
	fn SinkFunc
}

// NewFuncSink creates a sink feeding each payload to fn.
func NewFuncSink(name string, fn SinkFunc) *FuncSink {
	f := &FuncSink{SinkBase: api.NewSinkBase("FuncSink"), fn: fn}
	if name != "" {
		f.SetName(name)
	}
	return f
}

func (f *FuncSink) Setup() error {
	if f.fn == nil {
		return api.NewConfigError(f, "function is nil")
	}
	return nil
}

func (f *FuncSink) DoExecute() error {
	return f.fn(runContext(f), f.Input().Payload())
}
