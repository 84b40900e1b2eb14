package aktor

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jkivila/aktor/internal/engine"
	"github.com/jkivila/aktor/pkg/actors"
	"github.com/jkivila/aktor/pkg/api"
)

// Core types re-exported from pkg/api so most users only import the root
// package.
type (
	Actor          = api.Actor
	Consumer       = api.Consumer
	Producer       = api.Producer
	Handler        = api.Handler
	StorageHandler = api.StorageHandler
	Token          = api.Token
	Config         = api.Config
	Storage        = api.Storage
	Spec           = api.Spec
	Registry       = api.Registry

	Observer             = api.Observer
	NoopObserver         = api.NoopObserver
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	PrometheusObserver   = api.PrometheusObserver
)

// Composite actors re-exported from the engine.
type (
	Flow     = engine.Flow
	Sequence = engine.Sequence
	Tee      = engine.Tee
	Trigger  = engine.Trigger
	Branch   = engine.Branch
)

// NewToken wraps a payload in a fresh token.
func NewToken(payload any) *Token { return api.NewToken(payload) }

// NewFlow creates an empty root flow.
func NewFlow(name string) *Flow { return engine.NewFlow(name) }

// NewSequence creates a sequence of consumers.
func NewSequence(name string, acts ...Actor) *Sequence {
	return engine.NewSequence(name, acts...)
}

// NewTee creates a tee forwarding its input both to a side branch and
// downstream.
func NewTee(name string, acts ...Actor) *Tee { return engine.NewTee(name, acts...) }

// NewTrigger creates a trigger running a sub-flow per input token.
func NewTrigger(name string, acts ...Actor) *Trigger {
	return engine.NewTrigger(name, acts...)
}

// NewBranch creates a branch fanning each input token out to every child.
func NewBranch(name string, acts ...Actor) *Branch {
	return engine.NewBranch(name, acts...)
}

// NewLoggingObserver creates an Observer that logs flow / actor lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	return api.NewLoggingObserver(logger)
}

// NewPrometheusObserver creates an Observer registering its collectors with
// reg. If reg is nil, prometheus.DefaultRegisterer is used.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	return api.NewPrometheusObserver(reg)
}

// NewCompositeObserver combines observers, dropping nil entries.
func NewCompositeObserver(obs ...Observer) Observer {
	return api.NewCompositeObserver(obs...)
}

// NewRegistry creates a registry with the engine composites and the
// built-in actor library registered. Additional classes can be added with
// RegisterClass before loading documents that use them.
func NewRegistry() *Registry {
	reg := api.NewRegistry()
	engine.Register(reg)
	actors.Register(reg)
	return reg
}

// ToJSON serializes an actor tree to an indented JSON document.
func ToJSON(a Actor) ([]byte, error) { return engine.ToJSON(a) }

// FromJSON reconstructs an actor tree from a JSON document.
func FromJSON(data []byte, reg *Registry) (Actor, error) {
	return engine.FromJSON(data, reg)
}

// ToYAML serializes an actor tree to a YAML document.
func ToYAML(a Actor) ([]byte, error) { return engine.ToYAML(a) }

// FromYAML reconstructs an actor tree from a YAML document.
func FromYAML(data []byte, reg *Registry) (Actor, error) {
	return engine.FromYAML(data, reg)
}

// Save writes a flow to disk, choosing YAML or JSON by file extension.
func Save(f *Flow, path string) error { return engine.Save(f, path) }

// Load reads a flow from disk, choosing YAML or JSON by file extension.
// The registry defaults to NewRegistry when nil.
func Load(path string, reg *Registry) (*Flow, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	return engine.Load(path, reg)
}

// Run sets up, executes and wraps up a flow under ctx. Cancelling ctx stops
// the flow at the next actor boundary.
func Run(ctx context.Context, f *Flow) error { return f.Run(ctx) }
