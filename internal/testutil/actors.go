// Package testutil provides stub actors shared by the engine and actor
// library tests.
package testutil

import (
	"github.com/jkivila/aktor/pkg/api"
)

// Emit is a source emitting a fixed payload list per pass.
type Emit struct {
	api.SourceBase
	Payloads []any

	// Passes counts how many times DoExecute ran.
	Passes int
}

// NewEmit creates a source emitting the given payloads.
func NewEmit(name string, payloads ...any) *Emit {
	e := &Emit{SourceBase: api.NewSourceBase("Emit"), Payloads: payloads}
	if name != "" {
		e.SetName(name)
	}
	return e
}

func (e *Emit) DoExecute() error {
	e.Passes++
	for _, p := range e.Payloads {
		e.AppendOutput(api.NewToken(p))
	}
	return nil
}

// Apply is a transformer mapping each payload through Fn. A nil Fn forwards
// payloads unchanged.
type Apply struct {
	api.TransformerBase
	Fn func(in any) (any, error)
}

// NewApply creates a transformer applying fn per token.
func NewApply(name string, fn func(in any) (any, error)) *Apply {
	a := &Apply{TransformerBase: api.NewTransformerBase("Apply"), Fn: fn}
	if name != "" {
		a.SetName(name)
	}
	return a
}

func (a *Apply) DoExecute() error {
	payload := a.Input().Payload()
	if a.Fn != nil {
		out, err := a.Fn(payload)
		if err != nil {
			return err
		}
		payload = out
	}
	a.AppendOutput(api.NewToken(payload))
	return nil
}

// Collect is a sink recording every payload it receives.
type Collect struct {
	api.SinkBase
	Got []any
}

// NewCollect creates a recording sink.
func NewCollect(name string) *Collect {
	c := &Collect{SinkBase: api.NewSinkBase("Collect")}
	if name != "" {
		c.SetName(name)
	}
	return c
}

func (c *Collect) DoExecute() error {
	c.Got = append(c.Got, c.Input().Payload())
	return nil
}

// Fail is a sink failing with Err on every pass.
type Fail struct {
	api.SinkBase
	Err error
}

// NewFail creates a sink that always fails.
func NewFail(name string, err error) *Fail {
	f := &Fail{SinkBase: api.NewSinkBase("Fail"), Err: err}
	if name != "" {
		f.SetName(name)
	}
	return f
}

func (f *Fail) DoExecute() error { return f.Err }
