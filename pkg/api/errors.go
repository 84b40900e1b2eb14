package api

import "errors"

// ErrNotImplemented is returned by Base.DoExecute when a concrete actor
// forgot to implement the actual behavior.
var ErrNotImplemented = errors.New("not implemented")

// ConfigError reports an invalid flow definition, raised during Setup or
// the director checks (for example a branch child that accepts no input).
type ConfigError struct {
	Actor string // full name of the offending actor, may be empty
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Actor == "" {
		return e.Msg
	}
	return e.Actor + ": " + e.Msg
}

// NewConfigError creates a ConfigError for the given actor.
func NewConfigError(a Actor, msg string) error {
	name := ""
	if a != nil {
		name = a.FullName()
	}
	return &ConfigError{Actor: name, Msg: msg}
}

// IsConfigError reports whether err is a flow configuration error.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// ExecError wraps an error produced (or a panic recovered) inside an
// actor's DoExecute.
type ExecError struct {
	Actor string
	Err   error
}

func (e *ExecError) Error() string {
	return e.Actor + ": " + e.Err.Error()
}

func (e *ExecError) Unwrap() error { return e.Err }

// IsExecError reports whether err originated inside an actor's DoExecute.
func IsExecError(err error) bool {
	var ee *ExecError
	return errors.As(err, &ee)
}

// InputError reports an incompatible payload handed to a consumer. It
// indicates a structural flow-definition bug, not a runtime data condition,
// and is therefore propagated out of the directors untouched.
type InputError struct {
	Actor string
	Msg   string
}

func (e *InputError) Error() string {
	return e.Actor + ": " + e.Msg
}

// NewInputError creates an InputError for the given actor.
func NewInputError(a Actor, msg string) error {
	return &InputError{Actor: a.FullName(), Msg: msg}
}

// IsInputError reports whether err is an input compatibility error.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// StorageError reports a failed storage lookup during placeholder
// expansion, i.e. a flow misconfiguration.
type StorageError struct {
	Name string // the storage name that was not present
	Str  string // the string being expanded
}

func (e *StorageError) Error() string {
	return "storage value '" + e.Name + "' not present, failed to expand: " + e.Str
}

// IsStorageError reports whether err is a storage lookup error.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
