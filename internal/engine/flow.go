package engine

import (
	"context"

	"github.com/jkivila/aktor/pkg/api"
)

// Flow is the root actor of a tree. It owns the shared storage for the
// whole flow, the observer, and a SequentialDirector that allows a leading
// source and discards pipeline output.
type Flow struct {
	HandlerBase

	storage  api.Storage
	observer api.Observer

	// runCtx is the context of the current Run, handed to func-backed
	// actors; context.Background outside of Run.
	runCtx context.Context
}

// NewFlow creates an empty flow. An empty name keeps the default.
func NewFlow(name string) *Flow {
	f := &Flow{
		HandlerBase: NewHandlerBase("Flow"),
		storage:     api.Storage{},
		observer:    api.NoopObserver{},
		runCtx:      context.Background(),
	}
	f.bind(f)
	if name != "" {
		f.SetName(name)
	}
	f.director = NewSequentialDirector(f, true, false)
	f.checkActors = f.checkFlowActors
	return f
}

// Storage returns the shared storage map; every actor in the tree resolves
// to this one instance through its nearest storage handler.
func (f *Flow) Storage() api.Storage { return f.storage }

// Observer returns the configured observer, never nil.
func (f *Flow) Observer() api.Observer { return f.observer }

// SetObserver installs the observer notified of flow and actor events.
func (f *Flow) SetObserver(obs api.Observer) {
	if obs == nil {
		obs = api.NoopObserver{}
	}
	f.observer = obs
}

// RunContext returns the context of the current run.
func (f *Flow) RunContext() context.Context { return f.runCtx }

func (f *Flow) checkFlowActors(actors []api.Actor) error {
	for _, a := range actors {
		if !a.Skip() {
			if !api.IsSource(a) {
				return api.NewConfigError(a, "first active actor is not a source")
			}
			return nil
		}
	}
	return nil
}

// Execute runs one full pass of the flow tree.
func (f *Flow) Execute() error {
	return api.Execute(f)
}

// Run is the convenience entry point: Setup, Execute, Wrapup, with
// observer notifications. Cancelling ctx requests a cooperative stop; an
// in-progress actor pass is never interrupted.
func (f *Flow) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f.runCtx = ctx
	defer func() { f.runCtx = context.Background() }()

	f.observer.OnFlowStart(ctx, f)
	if err := f.Setup(); err != nil {
		f.observer.OnFlowFailed(ctx, f, err)
		return err
	}

	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			f.StopExecution()
		case <-watchDone:
		}
	}()

	err := f.Execute()
	f.Wrapup()
	if err != nil {
		f.observer.OnFlowFailed(ctx, f, err)
		return err
	}
	f.observer.OnFlowCompleted(ctx, f)
	return nil
}
