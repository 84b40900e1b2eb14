package engine

import (
	"github.com/jkivila/aktor/internal/expr"
	"github.com/jkivila/aktor/pkg/api"
)

func firstActiveOf(actors []api.Actor) api.Actor {
	for _, a := range actors {
		if !a.Skip() {
			return a
		}
	}
	return nil
}

// evalCondition resolves, expands and evaluates the "condition" option of a
// conditional container. Storage placeholders @{name} are substituted
// first; additionally every storage entry is in scope as a variable. An
// empty or unset condition is true.
func evalCondition(a api.Actor) (bool, error) {
	cond := api.OptionString(a, "condition", "")
	if cond == "" {
		return true, nil
	}
	vars := map[string]any{}
	if sh := api.StorageHandlerOf(a); sh != nil {
		expanded, err := sh.Storage().Expand(cond)
		if err != nil {
			return false, err
		}
		cond = expanded
		vars = sh.Storage()
	}
	ok, err := expr.EvalBool(cond, vars)
	if err != nil {
		return false, api.NewConfigError(a, err.Error())
	}
	return ok, nil
}

// Sequence executes its children one after the other, feeding its own
// input token to the first child. It accepts input but produces none.
type Sequence struct {
	HandlerBase
	input *api.Token
}

// NewSequence creates a sequence with the given children.
func NewSequence(name string, actors ...api.Actor) *Sequence {
	s := &Sequence{HandlerBase: NewHandlerBase("Sequence")}
	s.bind(s)
	if name != "" {
		s.SetName(name)
	}
	s.director = NewSequentialDirector(s, false, false)
	s.checkActors = s.checkSequenceActors
	s.actors = actors
	return s
}

func (s *Sequence) SetInput(tok *api.Token) error {
	s.input = tok
	return nil
}

func (s *Sequence) Input() *api.Token { return s.input }

func (s *Sequence) checkSequenceActors(actors []api.Actor) error {
	if first := firstActiveOf(actors); first != nil {
		if _, ok := first.(api.Consumer); !ok {
			return api.NewConfigError(first, "first active actor does not accept input")
		}
	}
	return nil
}

// DoExecute feeds the input token to the first active child and runs the
// pipeline.
func (s *Sequence) DoExecute() error {
	first, ok := s.FirstActive().(api.Consumer)
	if !ok {
		return api.NewConfigError(s, "first active actor does not accept input")
	}
	if err := first.SetInput(s.input); err != nil {
		return err
	}
	return s.director.Execute()
}

// Tee conditionally diverts the input token into its sub-sequence as a
// side channel, then always forwards the original token onward unchanged.
type Tee struct {
	HandlerBase
	input *api.Token
	out   api.TokenQueue

	// requiresActive demands at least one active child; variants that
	// tolerate an empty sub-flow clear it.
	requiresActive bool
}

// NewTee creates a tee with the given children.
func NewTee(name string, actors ...api.Actor) *Tee {
	t := &Tee{
		HandlerBase:    NewHandlerBase("Tee"),
		requiresActive: true,
	}
	t.bind(t)
	if name != "" {
		t.SetName(name)
	}
	t.director = NewSequentialDirector(t, false, false)
	t.checkActors = t.checkTeeActors
	t.actors = actors
	return t
}

// SetCondition sets the boolean expression guarding the tee-off.
func (t *Tee) SetCondition(cond string) { t.Config()["condition"] = cond }

func (t *Tee) SetInput(tok *api.Token) error {
	t.input = tok
	return nil
}

func (t *Tee) Input() *api.Token { return t.input }

func (t *Tee) PreExecute() error {
	t.out.Reset()
	return nil
}

func (t *Tee) HasOutput() bool { return t.out.HasOutput() }

func (t *Tee) Output() *api.Token { return t.out.Output() }

func (t *Tee) checkTeeActors(actors []api.Actor) error {
	first := firstActiveOf(actors)
	if first == nil {
		if t.requiresActive {
			return api.NewConfigError(t, "no active actor")
		}
		return nil
	}
	if _, ok := first.(api.Consumer); !ok {
		return api.NewConfigError(first, "first active actor does not accept input")
	}
	return nil
}

// DoExecute runs the side channel when the condition holds, then forwards
// the original input regardless.
func (t *Tee) DoExecute() error {
	teeoff, err := evalCondition(t)
	if err != nil {
		return err
	}
	if teeoff {
		if first, ok := t.FirstActive().(api.Consumer); ok {
			if err := first.SetInput(t.input); err != nil {
				return err
			}
			if err := t.director.Execute(); err != nil {
				return err
			}
		}
	}
	t.out.Append(t.input)
	return nil
}

// Trigger conditionally runs its entire sub-flow, which must start with a
// source, as a side effect, then always forwards the original input token
// onward unchanged.
type Trigger struct {
	HandlerBase
	input *api.Token
	out   api.TokenQueue
}

// NewTrigger creates a trigger with the given children.
func NewTrigger(name string, actors ...api.Actor) *Trigger {
	t := &Trigger{HandlerBase: NewHandlerBase("Trigger")}
	t.bind(t)
	if name != "" {
		t.SetName(name)
	}
	t.director = NewSequentialDirector(t, true, false)
	t.checkActors = t.checkTriggerActors
	t.actors = actors
	return t
}

// SetCondition sets the boolean expression guarding the sub-flow run.
func (t *Trigger) SetCondition(cond string) { t.Config()["condition"] = cond }

func (t *Trigger) SetInput(tok *api.Token) error {
	t.input = tok
	return nil
}

func (t *Trigger) Input() *api.Token { return t.input }

func (t *Trigger) PreExecute() error {
	t.out.Reset()
	return nil
}

func (t *Trigger) HasOutput() bool { return t.out.HasOutput() }

func (t *Trigger) Output() *api.Token { return t.out.Output() }

func (t *Trigger) checkTriggerActors(actors []api.Actor) error {
	first := firstActiveOf(actors)
	if first == nil {
		return api.NewConfigError(t, "no active actor")
	}
	if !api.IsSource(first) {
		return api.NewConfigError(first, "first active actor is not a source")
	}
	return nil
}

// DoExecute runs the sub-flow when the condition holds, then forwards the
// original input regardless.
func (t *Trigger) DoExecute() error {
	run, err := evalCondition(t)
	if err != nil {
		return err
	}
	if run {
		if err := t.director.Execute(); err != nil {
			return err
		}
	}
	t.out.Append(t.input)
	return nil
}

// Branch fans its input token out to every child in declared order; with
// respect to the rest of the flow it is a sink.
type Branch struct {
	HandlerBase
	input *api.Token
}

// NewBranch creates a branch with the given children.
func NewBranch(name string, actors ...api.Actor) *Branch {
	b := &Branch{HandlerBase: NewHandlerBase("Branch")}
	b.bind(b)
	if name != "" {
		b.SetName(name)
	}
	b.director = NewBranchDirector(b)
	b.checkActors = b.checkBranchActors
	b.actors = actors
	return b
}

func (b *Branch) SetInput(tok *api.Token) error {
	b.input = tok
	return nil
}

func (b *Branch) Input() *api.Token { return b.input }

func (b *Branch) checkBranchActors(actors []api.Actor) error {
	for _, a := range actors {
		if a.Skip() {
			continue
		}
		if _, ok := a.(api.Consumer); !ok {
			return api.NewConfigError(a, "does not accept any input")
		}
	}
	return nil
}
