package api

import (
	"fmt"
	"regexp"
	"runtime/debug"
	"strconv"
	"strings"
	"sync/atomic"
)

// Config holds an actor's options as a flat string-keyed map. Values must be
// plain JSON-able types (strings, numbers, bools, string slices) so that
// flows round-trip through their document form.
type Config map[string]any

// Actor is a named unit of work in a flow tree. Concrete actors embed one of
// SourceBase, TransformerBase or SinkBase and implement DoExecute; everything
// else comes from the embedded base.
//
// The lifecycle is: Setup (validate configuration), then any number of
// Execute passes (PreExecute / DoExecute / PostExecute, driven through the
// Execute function), then Wrapup (soft teardown, may run again) and finally
// Cleanup (destructive teardown).
type Actor interface {
	// Name returns the name of the actor, unique among its siblings.
	Name() string
	SetName(name string)

	// Parent returns the handler that owns this actor, nil for the root.
	Parent() Handler
	SetParent(parent Handler)

	// FullName returns the dot-joined path from the root to this actor.
	// Dots inside individual names are escaped. The value is cached and
	// invalidated whenever the name or parent changes.
	FullName() string

	// Class returns the registry tag used to reconstruct the actor from
	// its document form.
	Class() string

	// Config returns the live option map of the actor.
	Config() Config

	// Skip reports whether the actor is disabled. A skipped actor is a
	// no-op: Execute succeeds without invoking DoExecute.
	Skip() bool
	SetSkip(skip bool)

	Setup() error
	PreExecute() error
	DoExecute() error
	PostExecute() error
	Wrapup()
	Cleanup()

	// StopExecution signals cooperative cancellation. It only sets flags;
	// an in-progress DoExecute is never interrupted.
	StopExecution()
	IsStopped() bool
}

// Consumer is the capability of accepting one input token per pass.
type Consumer interface {
	Actor

	// SetInput accepts the token for the next pass. It returns an
	// *InputError if the payload is incompatible with the actor.
	SetInput(tok *Token) error

	// Input returns the currently held input token, nil if none.
	Input() *Token
}

// Producer is the capability of producing queued output tokens. Output
// tokens are buffered first-in-first-out and drained by the director one
// token per pass.
type Producer interface {
	Actor

	HasOutput() bool

	// Output pops and returns the oldest pending token, nil if none.
	Output() *Token
}

// Handler is an actor that owns an ordered list of child actors.
type Handler interface {
	Actor

	Actors() []Actor
	SetActors(actors []Actor) error

	// IndexOf returns the position of the named child, -1 if absent.
	IndexOf(name string) int

	// Active returns the number of non-skipped children.
	Active() int
	FirstActive() Actor
	LastActive() Actor
}

// StorageHandler is the capability of holding the shared storage map.
// Normally only the root flow implements it.
type StorageHandler interface {
	Storage() Storage
}

// IsSource reports whether the actor only produces tokens.
func IsSource(a Actor) bool {
	_, prod := a.(Producer)
	_, cons := a.(Consumer)
	return prod && !cons
}

// IsTransformer reports whether the actor both consumes and produces tokens.
func IsTransformer(a Actor) bool {
	_, prod := a.(Producer)
	_, cons := a.(Consumer)
	return prod && cons
}

// IsSink reports whether the actor only consumes tokens.
func IsSink(a Actor) bool {
	_, prod := a.(Producer)
	_, cons := a.(Consumer)
	return cons && !prod
}

// Root returns the top-level actor of the tree a belongs to.
func Root(a Actor) Actor {
	for a.Parent() != nil {
		a = a.Parent()
	}
	return a
}

// Depth returns the number of ancestors above a.
func Depth(a Actor) int {
	depth := 0
	for p := a.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}

// StorageHandlerOf returns the nearest storage handler at or above a,
// nil if the tree has none.
func StorageHandlerOf(a Actor) StorageHandler {
	var cur Actor = a
	for cur != nil {
		if sh, ok := cur.(StorageHandler); ok {
			return sh
		}
		if cur.Parent() == nil {
			return nil
		}
		cur = cur.Parent()
	}
	return nil
}

var nameSuffix = regexp.MustCompile(`-[0-9]+$`)

// UniqueName returns name adjusted so that it collides with no sibling in
// parent other than exclude (the actor being renamed). Any trailing -<int>
// suffix is stripped first; the smallest free suffix is appended if the
// bare name is taken.
func UniqueName(parent Handler, name string, exclude Actor) string {
	if parent == nil {
		return name
	}
	taken := make(map[string]bool)
	for _, sibling := range parent.Actors() {
		if sibling == exclude {
			continue
		}
		taken[sibling.Name()] = true
	}
	base := nameSuffix.ReplaceAllString(name, "")
	result := base
	for count := 1; taken[result]; count++ {
		result = base + "-" + strconv.Itoa(count)
	}
	return result
}

// Execute runs one pass of the actor: skip short-circuit, PreExecute,
// DoExecute (with panic recovery) and PostExecute. A panic inside DoExecute
// is converted into an *ExecError carrying the stack trace; it never
// propagates to the caller.
func Execute(a Actor) error {
	if a.Skip() {
		return nil
	}
	if err := a.PreExecute(); err != nil {
		return err
	}
	if err := doExecuteGuarded(a); err != nil {
		return err
	}
	return a.PostExecute()
}

func doExecuteGuarded(a Actor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExecError{
				Actor: a.FullName(),
				Err:   fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
			}
		}
	}()
	if derr := a.DoExecute(); derr != nil {
		if IsExecError(derr) {
			return derr
		}
		return &ExecError{Actor: a.FullName(), Err: derr}
	}
	return nil
}

// Base carries the identity and configuration shared by every actor.
// It implements all of Actor except DoExecute, which concrete actors
// must provide.
type Base struct {
	name     string
	class    string
	parent   Handler
	fullName string
	config   Config
	skip     bool

	// stopped is accessed atomically: the stop request may come from a
	// context-cancel watcher goroutine while the flow is executing.
	stopped int32
}

// NewBase creates a base for the given registry class tag. The initial
// name is the class tag itself, mirroring how flows read when actors are
// left unnamed.
func NewBase(class string) Base {
	return Base{
		name:   class,
		class:  class,
		config: Config{},
	}
}

func (b *Base) Name() string { return b.name }

func (b *Base) SetName(name string) {
	b.name = name
	b.fullName = ""
}

func (b *Base) Parent() Handler { return b.parent }

func (b *Base) SetParent(parent Handler) {
	b.parent = parent
	b.fullName = ""
}

func (b *Base) FullName() string {
	if b.fullName == "" {
		fn := strings.ReplaceAll(b.name, ".", `\.`)
		if b.parent != nil {
			fn = b.parent.FullName() + "." + fn
		}
		b.fullName = fn
	}
	return b.fullName
}

func (b *Base) Class() string { return b.class }

func (b *Base) Config() Config { return b.config }

func (b *Base) Skip() bool { return b.skip }

func (b *Base) SetSkip(skip bool) { b.skip = skip }

func (b *Base) Setup() error { return nil }

func (b *Base) PreExecute() error { return nil }

// DoExecute fails; concrete actors must implement the actual behavior.
func (b *Base) DoExecute() error { return ErrNotImplemented }

func (b *Base) PostExecute() error { return nil }

func (b *Base) Wrapup() {}

func (b *Base) Cleanup() {}

func (b *Base) StopExecution() { atomic.StoreInt32(&b.stopped, 1) }

func (b *Base) IsStopped() bool { return atomic.LoadInt32(&b.stopped) == 1 }

// TokenQueue is the FIFO of pending output tokens behind every producer.
type TokenQueue struct {
	tokens []*Token
}

// Reset discards all pending tokens.
func (q *TokenQueue) Reset() { q.tokens = nil }

// Append queues a token.
func (q *TokenQueue) Append(t *Token) { q.tokens = append(q.tokens, t) }

// HasOutput reports whether any token is pending.
func (q *TokenQueue) HasOutput() bool { return len(q.tokens) > 0 }

// Output pops and returns the oldest pending token, nil if none.
func (q *TokenQueue) Output() *Token {
	if len(q.tokens) == 0 {
		return nil
	}
	t := q.tokens[0]
	q.tokens = q.tokens[1:]
	return t
}

// inputSlot holds the current input token behind an optional check func.
type inputSlot struct {
	token *Token
	check func(tok *Token) error
}

func (s *inputSlot) set(t *Token) error {
	if s.check != nil {
		if err := s.check(t); err != nil {
			return err
		}
	}
	s.token = t
	return nil
}

// SourceBase is the base for actors that produce tokens but accept none.
type SourceBase struct {
	Base
	out TokenQueue
}

func NewSourceBase(class string) SourceBase {
	return SourceBase{Base: NewBase(class)}
}

// PreExecute clears the pending output queue for the next pass.
func (s *SourceBase) PreExecute() error {
	s.out.Reset()
	return nil
}

// AppendOutput queues a token for downstream consumption.
func (s *SourceBase) AppendOutput(t *Token) { s.out.Append(t) }

func (s *SourceBase) HasOutput() bool { return s.out.HasOutput() }

func (s *SourceBase) Output() *Token { return s.out.Output() }

// TransformerBase is the base for actors that consume one token and produce
// zero or more tokens per pass.
type TransformerBase struct {
	Base
	in  inputSlot
	out TokenQueue
}

func NewTransformerBase(class string) TransformerBase {
	return TransformerBase{Base: NewBase(class)}
}

// SetCheckInput installs the input guard invoked by SetInput. The guard
// should return an *InputError for incompatible payloads.
func (t *TransformerBase) SetCheckInput(check func(tok *Token) error) {
	t.in.check = check
}

func (t *TransformerBase) SetInput(tok *Token) error { return t.in.set(tok) }

func (t *TransformerBase) Input() *Token { return t.in.token }

func (t *TransformerBase) PreExecute() error {
	t.out.Reset()
	return nil
}

func (t *TransformerBase) AppendOutput(tok *Token) { t.out.Append(tok) }

func (t *TransformerBase) HasOutput() bool { return t.out.HasOutput() }

func (t *TransformerBase) Output() *Token { return t.out.Output() }

// SinkBase is the base for actors that consume tokens but produce none.
type SinkBase struct {
	Base
	in inputSlot
}

func NewSinkBase(class string) SinkBase {
	return SinkBase{Base: NewBase(class)}
}

// SetCheckInput installs the input guard invoked by SetInput.
func (s *SinkBase) SetCheckInput(check func(tok *Token) error) {
	s.in.check = check
}

func (s *SinkBase) SetInput(tok *Token) error { return s.in.set(tok) }

func (s *SinkBase) Input() *Token { return s.in.token }
