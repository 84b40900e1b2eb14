package engine

import (
	"context"
	"time"

	"github.com/jkivila/aktor/pkg/api"
)

// Director implements how a handler's children are executed. A director is
// a behavior object bound to exactly one owner handler; it has no identity
// of its own and lives as long as the owner does.
type Director interface {
	// Setup validates the owner's children for this execution strategy.
	Setup() error

	// Execute runs the children until finished, stopped or failed.
	Execute() error

	// StopExecution cooperatively cancels the director and its children.
	StopExecution()

	// IsStopping reports whether a stop was requested for the current run.
	IsStopping() bool

	// IsStopped reports whether the current run observed the stop request.
	IsStopped() bool
}

// observerFor resolves the observer and run context of the flow the owner
// belongs to. Owners detached from a flow (as in unit tests driving a
// director directly) get a no-op observer.
func observerFor(owner api.Handler) (api.Observer, context.Context) {
	if flow, ok := api.Root(owner).(*Flow); ok {
		return flow.Observer(), flow.RunContext()
	}
	return api.NoopObserver{}, context.Background()
}

// executeActor runs one pass of a child actor with observer notifications.
func executeActor(owner api.Handler, a api.Actor) error {
	obs, ctx := observerFor(owner)
	obs.OnActorStart(ctx, a)
	start := time.Now()
	err := api.Execute(a)
	obs.OnActorCompleted(ctx, a, err, time.Since(start))
	return err
}

// activeActors returns the owner's non-skipped children in order.
func activeActors(owner api.Handler) []api.Actor {
	var active []api.Actor
	for _, a := range owner.Actors() {
		if !a.Skip() {
			active = append(active, a)
		}
	}
	return active
}
