package actors

import (
	"github.com/jkivila/aktor/pkg/api"
)

// Start emits a single token with a nil payload, used to kick off flows
// whose real work sits behind triggers.
type Start struct {
	api.SourceBase
}

// NewStart creates a start source.
func NewStart(name string) *Start {
	s := &Start{SourceBase: api.NewSourceBase("Start")}
	if name != "" {
		s.SetName(name)
	}
	return s
}

func (s *Start) DoExecute() error {
	s.AppendOutput(api.NewToken(nil))
	return nil
}

// StringConstants emits one token per configured string.
type StringConstants struct {
	api.SourceBase
}

// NewStringConstants creates a source emitting the given strings in order.
func NewStringConstants(name string, values ...string) *StringConstants {
	s := &StringConstants{SourceBase: api.NewSourceBase("StringConstants")}
	if name != "" {
		s.SetName(name)
	}
	s.Config()["strings"] = values
	return s
}

func (s *StringConstants) DoExecute() error {
	for _, v := range api.OptionStrings(s, "strings") {
		s.AppendOutput(api.NewToken(v))
	}
	return nil
}

// FileSupplier emits one token per configured file name. The names are
// passed through as strings; whether they exist is the consumer's concern.
type FileSupplier struct {
	api.SourceBase
}

// NewFileSupplier creates a source emitting the given file names in order.
func NewFileSupplier(name string, files ...string) *FileSupplier {
	f := &FileSupplier{SourceBase: api.NewSourceBase("FileSupplier")}
	if name != "" {
		f.SetName(name)
	}
	f.Config()["files"] = files
	return f
}

func (f *FileSupplier) DoExecute() error {
	for _, file := range api.OptionStrings(f, "files") {
		f.AppendOutput(api.NewToken(file))
	}
	return nil
}

// ForLoop emits the integers of a counted loop, min to max inclusive in
// increments of step.
type ForLoop struct {
	api.SourceBase
}

// NewForLoop creates a loop source over [min, max] with the given step.
func NewForLoop(name string, min, max, step int) *ForLoop {
	f := &ForLoop{SourceBase: api.NewSourceBase("ForLoop")}
	if name != "" {
		f.SetName(name)
	}
	f.Config()["min"] = min
	f.Config()["max"] = max
	f.Config()["step"] = step
	return f
}

func (f *ForLoop) Setup() error {
	if api.OptionInt(f, "step", 1) == 0 {
		return api.NewConfigError(f, "step must not be zero")
	}
	return nil
}

func (f *ForLoop) DoExecute() error {
	min := api.OptionInt(f, "min", 1)
	max := api.OptionInt(f, "max", 10)
	step := api.OptionInt(f, "step", 1)
	if step > 0 {
		for i := min; i <= max; i += step {
			f.AppendOutput(api.NewToken(i))
		}
	} else {
		for i := min; i >= max; i += step {
			f.AppendOutput(api.NewToken(i))
		}
	}
	return nil
}

// GetStorageValue emits the current value of one storage entry.
type GetStorageValue struct {
	api.SourceBase
}

// NewGetStorageValue creates a source reading the named storage entry.
func NewGetStorageValue(name, storageName string) *GetStorageValue {
	g := &GetStorageValue{SourceBase: api.NewSourceBase("GetStorageValue")}
	if name != "" {
		g.SetName(name)
	}
	g.Config()["storage_name"] = storageName
	return g
}

func (g *GetStorageValue) Setup() error {
	if api.OptionString(g, "storage_name", "") == "" {
		return api.NewConfigError(g, "storage_name is required")
	}
	return nil
}

func (g *GetStorageValue) DoExecute() error {
	storage, err := storageOf(g)
	if err != nil {
		return err
	}
	name := api.OptionString(g, "storage_name", "")
	value, ok := storage[api.Extract(name)]
	if !ok {
		return &api.StorageError{Name: api.Extract(name), Str: name}
	}
	g.AppendOutput(api.NewToken(value))
	return nil
}
