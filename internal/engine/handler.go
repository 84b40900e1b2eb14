package engine

import (
	"strings"

	"github.com/jkivila/aktor/pkg/api"
)

// HandlerBase implements api.Handler: an actor owning an ordered list of
// child actors, delegating their execution to a Director. Composite actors
// (Flow, Sequence, Tee, Trigger, Branch) embed it and install their
// director and child checks at construction.
type HandlerBase struct {
	api.Base

	// self is the outer composite, needed when adopting children and
	// running capability checks against the concrete type.
	self api.Handler

	actors   []api.Actor
	director Director

	// checkActors validates the child list; nil means any children go.
	checkActors func(actors []api.Actor) error
}

// NewHandlerBase creates the embedded handler state for the given class tag.
func NewHandlerBase(class string) HandlerBase {
	return HandlerBase{Base: api.NewBase(class)}
}

// bind wires the outer composite into the embedded base. Every composite
// constructor must call it before anything else touches the handler.
func (h *HandlerBase) bind(self api.Handler) { h.self = self }

func (h *HandlerBase) Actors() []api.Actor { return h.actors }

// SetActors replaces the child list, validating it first.
func (h *HandlerBase) SetActors(actors []api.Actor) error {
	if h.checkActors != nil {
		if err := h.checkActors(actors); err != nil {
			return err
		}
	}
	h.actors = actors
	return nil
}

// Add appends children without validation; the next Setup adopts and
// validates them.
func (h *HandlerBase) Add(actors ...api.Actor) {
	h.actors = append(h.actors, actors...)
}

// Director returns the director executing this handler's children.
func (h *HandlerBase) Director() Director { return h.director }

func (h *HandlerBase) IndexOf(name string) int {
	for i, a := range h.actors {
		if a.Name() == name {
			return i
		}
	}
	return -1
}

func (h *HandlerBase) Active() int {
	count := 0
	for _, a := range h.actors {
		if !a.Skip() {
			count++
		}
	}
	return count
}

func (h *HandlerBase) FirstActive() api.Actor {
	for _, a := range h.actors {
		if !a.Skip() {
			return a
		}
	}
	return nil
}

func (h *HandlerBase) LastActive() api.Actor {
	for i := len(h.actors) - 1; i >= 0; i-- {
		if !h.actors[i].Skip() {
			return h.actors[i]
		}
	}
	return nil
}

// SetParent invalidates the cached full names of the whole subtree, not
// just the handler itself.
func (h *HandlerBase) SetParent(parent api.Handler) {
	h.Base.SetParent(parent)
	for _, a := range h.actors {
		a.SetParent(a.Parent())
	}
}

// adopt links every child to this handler and resolves duplicate names by
// suffixing -1, -2, ... so that no two siblings share a name.
func (h *HandlerBase) adopt() {
	for _, a := range h.actors {
		a.SetName(api.UniqueName(h.self, a.Name(), a))
		a.SetParent(h.self)
	}
}

// Setup adopts the children, validates them, then sets up each non-skipped
// child and finally the director, short-circuiting on the first error.
func (h *HandlerBase) Setup() error {
	h.adopt()
	if h.checkActors != nil {
		if err := h.checkActors(h.actors); err != nil {
			return err
		}
	}
	for _, a := range h.actors {
		if a.Skip() {
			continue
		}
		if err := a.Setup(); err != nil {
			return err
		}
	}
	if h.director != nil {
		return h.director.Setup()
	}
	return nil
}

// DoExecute delegates one pass to the director.
func (h *HandlerBase) DoExecute() error {
	return h.director.Execute()
}

// StopExecution flags the handler itself and forwards the signal to the
// director, which in turn stops the children.
func (h *HandlerBase) StopExecution() {
	h.Base.StopExecution()
	if h.director != nil {
		h.director.StopExecution()
	}
}

func (h *HandlerBase) Wrapup() {
	for _, a := range h.actors {
		if a.Skip() {
			continue
		}
		a.Wrapup()
	}
	h.Base.Wrapup()
}

func (h *HandlerBase) Cleanup() {
	for _, a := range h.actors {
		if a.Skip() {
			continue
		}
		a.Cleanup()
	}
	h.Base.Cleanup()
}

// Tree returns an indented tree rendering of the subtree rooted at this
// handler, one actor per line.
func (h *HandlerBase) Tree() string {
	var sb strings.Builder
	buildTree(h.self, &sb)
	return strings.TrimRight(sb.String(), "\n")
}

func buildTree(a api.Actor, sb *strings.Builder) {
	depth := api.Depth(a)
	for i := 0; i < depth-1; i++ {
		sb.WriteString("| ")
	}
	if depth > 0 {
		sb.WriteString("|-")
	}
	if a.Name() != a.Class() {
		sb.WriteString(a.Class() + " '" + a.Name() + "'")
	} else {
		sb.WriteString(a.Name())
	}
	sb.WriteString("\n")
	if handler, ok := a.(api.Handler); ok {
		for _, child := range handler.Actors() {
			buildTree(child, sb)
		}
	}
}
