package engine

import (
	"sync/atomic"

	"github.com/jkivila/aktor/pkg/api"
)

// BranchDirector fans one input token out to every child in declared
// order. The same token is handed to each child by reference; the first
// child error aborts the remaining children. The branch produces no output
// of its own.
type BranchDirector struct {
	owner consumerHandler

	// Stop flags are accessed atomically; the request may arrive from a
	// context-cancel watcher goroutine.
	stopping int32
	stopped  int32
}

// consumerHandler is a handler that itself accepts input, i.e. a Branch.
type consumerHandler interface {
	api.Handler
	api.Consumer
}

// NewBranchDirector creates a director bound to owner.
func NewBranchDirector(owner consumerHandler) *BranchDirector {
	return &BranchDirector{owner: owner}
}

func (d *BranchDirector) StopExecution() {
	if d.IsStopping() || d.IsStopped() {
		return
	}
	for _, a := range d.owner.Actors() {
		a.StopExecution()
	}
	atomic.StoreInt32(&d.stopping, 1)
}

func (d *BranchDirector) IsStopping() bool { return atomic.LoadInt32(&d.stopping) == 1 }

func (d *BranchDirector) IsStopped() bool { return atomic.LoadInt32(&d.stopped) == 1 }

// Setup validates that every non-skipped child accepts input; sources are
// never allowed under a branch.
func (d *BranchDirector) Setup() error {
	for _, a := range activeActors(d.owner) {
		if _, ok := a.(api.Consumer); !ok {
			return api.NewConfigError(a, "does not accept any input")
		}
	}
	return nil
}

// Execute pushes the owner's current input token to each child in turn.
func (d *BranchDirector) Execute() error {
	atomic.StoreInt32(&d.stopped, 0)
	atomic.StoreInt32(&d.stopping, 0)

	for _, a := range d.owner.Actors() {
		if d.IsStopping() || d.IsStopped() {
			break
		}
		if a.Skip() {
			continue
		}
		cons, ok := a.(api.Consumer)
		if !ok {
			return api.NewConfigError(a, "does not accept any input")
		}
		if err := cons.SetInput(d.owner.Input()); err != nil {
			return err
		}
		if err := executeActor(d.owner, a); err != nil {
			return err
		}
	}

	if d.IsStopping() {
		atomic.StoreInt32(&d.stopped, 1)
	}
	return nil
}
