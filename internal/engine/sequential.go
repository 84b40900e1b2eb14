package engine

import (
	"sync/atomic"

	"github.com/jkivila/aktor/pkg/api"
)

// SequentialDirector executes an ordered child list as a pipeline. An
// upstream actor may buffer several output tokens per pass; the director
// keeps a stack of such pending producers and re-enters the walk at the
// top of the stack until every buffered token has been pushed through the
// remaining actors. Execution is strictly single-threaded and ordered
// left to right.
type SequentialDirector struct {
	owner api.Handler

	// allowSource permits the first active child to be a source (only the
	// root flow and Trigger sub-flows want that).
	allowSource bool

	// recordOutput collects tokens that fall out of the last active child,
	// used by containers that surface their result to an enclosing flow.
	recordOutput bool
	recorded     []*api.Token

	// Stop flags are accessed atomically; the request may arrive from a
	// context-cancel watcher goroutine.
	stopping int32
	stopped  int32
}

// NewSequentialDirector creates a director bound to owner.
func NewSequentialDirector(owner api.Handler, allowSource, recordOutput bool) *SequentialDirector {
	return &SequentialDirector{
		owner:        owner,
		allowSource:  allowSource,
		recordOutput: recordOutput,
	}
}

// RecordedOutput returns the tokens recorded from the last active child
// across all passes so far.
func (d *SequentialDirector) RecordedOutput() []*api.Token { return d.recorded }

// ClearRecordedOutput discards the recorded tokens.
func (d *SequentialDirector) ClearRecordedOutput() { d.recorded = nil }

func (d *SequentialDirector) StopExecution() {
	if d.IsStopping() || d.IsStopped() {
		return
	}
	for _, a := range d.owner.Actors() {
		a.StopExecution()
	}
	atomic.StoreInt32(&d.stopping, 1)
}

func (d *SequentialDirector) IsStopping() bool { return atomic.LoadInt32(&d.stopping) == 1 }

func (d *SequentialDirector) IsStopped() bool { return atomic.LoadInt32(&d.stopped) == 1 }

// Setup validates the children: unless sources are allowed, the first
// active child must not be a source, and every following active child must
// accept input.
func (d *SequentialDirector) Setup() error {
	active := activeActors(d.owner)
	if len(active) == 0 {
		return nil
	}
	if !d.allowSource && api.IsSource(active[0]) {
		return api.NewConfigError(active[0], "is a source, but no sources allowed")
	}
	for _, a := range active[1:] {
		if _, ok := a.(api.Consumer); !ok {
			return api.NewConfigError(a, "does not accept any input")
		}
	}
	return nil
}

// Execute runs the multi-pass pipeline loop. The first error from any child
// aborts execution and is returned; a requested stop ends the loop cleanly.
func (d *SequentialDirector) Execute() error {
	atomic.StoreInt32(&d.stopped, 0)
	atomic.StoreInt32(&d.stopping, 0)

	if d.owner.Active() == 0 {
		return nil
	}

	notFinished := d.owner.FirstActive()
	var pending []api.Producer
	finished := false

	for !d.IsStopping() && !d.IsStopped() && !finished {
		// Determine the starting child of this pass: resume at the top of
		// the pending stack, otherwise at the first unconsumed child.
		var startIdx int
		if len(pending) > 0 {
			startIdx = d.owner.IndexOf(pending[len(pending)-1].Name())
		} else {
			if notFinished == nil {
				break
			}
			startIdx = d.owner.IndexOf(notFinished.Name())
			notFinished = nil
		}

		var token *api.Token
		lastActiveIdx := -1
		if last := d.owner.LastActive(); last != nil {
			lastActiveIdx = d.owner.IndexOf(last.Name())
		}

		for i := startIdx; i <= lastActiveIdx; i++ {
			if d.IsStopping() || d.IsStopped() {
				break
			}
			curr := d.owner.Actors()[i]
			if curr.Skip() {
				continue
			}

			if token == nil {
				// No token held yet: drain the producer's buffer if it
				// still has tokens from an earlier pass, otherwise run it.
				if prod, ok := curr.(api.Producer); ok && prod.HasOutput() {
					pending = pending[:len(pending)-1]
				} else {
					if err := executeActor(d.owner, curr); err != nil {
						return err
					}
				}
				if prod, ok := curr.(api.Producer); ok && prod.HasOutput() {
					token = prod.Output()
				} else {
					token = nil
				}
				// Still more buffered? Remember to come back.
				if prod, ok := curr.(api.Producer); ok && prod.HasOutput() {
					pending = append(pending, prod)
				}
			} else {
				cons, ok := curr.(api.Consumer)
				if !ok {
					return api.NewConfigError(curr, "does not accept any input")
				}
				if err := cons.SetInput(token); err != nil {
					return err
				}
				if err := executeActor(d.owner, curr); err != nil {
					return err
				}
				if prod, ok := curr.(api.Producer); ok {
					if prod.HasOutput() {
						token = prod.Output()
					} else {
						token = nil
					}
					if prod.HasOutput() {
						pending = append(pending, prod)
					}
				} else {
					token = nil
				}
			}

			// Token fell out of the last active child: surface it.
			if i == lastActiveIdx && token != nil && d.recordOutput {
				d.recorded = append(d.recorded, token)
			}

			// A producer yielded nothing; the rest of the chain has no
			// input for this pass.
			if _, ok := curr.(api.Producer); ok && token == nil {
				break
			}
		}

		finished = notFinished == nil && len(pending) == 0
	}

	if d.IsStopping() {
		atomic.StoreInt32(&d.stopped, 1)
	}
	return nil
}
