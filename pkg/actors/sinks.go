package actors

import (
	"fmt"
	"io"
	"os"

	"github.com/jkivila/aktor/pkg/api"
)

// Console prints each input payload on its own line, optionally preceded by
// a configured prefix. The writer defaults to stdout and can be swapped for
// testing.
type Console struct {
	api.SinkBase
	writer io.Writer
}

// NewConsole creates a console sink with the given line prefix.
func NewConsole(name, prefix string) *Console {
	c := &Console{SinkBase: api.NewSinkBase("Console"), writer: os.Stdout}
	if name != "" {
		c.SetName(name)
	}
	if prefix != "" {
		c.Config()["prefix"] = prefix
	}
	return c
}

// SetWriter redirects output, e.g. to a buffer in tests.
func (c *Console) SetWriter(w io.Writer) { c.writer = w }

func (c *Console) DoExecute() error {
	prefix := api.OptionString(c, "prefix", "")
	_, err := fmt.Fprintf(c.writer, "%s%v\n", prefix, c.Input().Payload())
	return err
}

// DumpFile appends or overwrites a text file with one line per input
// payload. The file name undergoes storage expansion.
type DumpFile struct {
	api.SinkBase
	wrote bool
}

// NewDumpFile creates a file sink writing to path, appending when append is
// set and truncating on the first token otherwise.
func NewDumpFile(name, path string, append bool) *DumpFile {
	d := &DumpFile{SinkBase: api.NewSinkBase("DumpFile")}
	if name != "" {
		d.SetName(name)
	}
	d.Config()["output"] = path
	d.Config()["append"] = append
	return d
}

func (d *DumpFile) Setup() error {
	if api.OptionString(d, "output", "") == "" {
		return api.NewConfigError(d, "output is required")
	}
	d.wrote = false
	return nil
}

func (d *DumpFile) DoExecute() error {
	path := api.OptionString(d, "output", "")
	if sh := api.StorageHandlerOf(d); sh != nil {
		expanded, err := sh.Storage().Expand(path)
		if err != nil {
			return err
		}
		path = expanded
	}
	flags := os.O_CREATE | os.O_WRONLY
	if api.OptionBool(d, "append", false) || d.wrote {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	d.wrote = true
	_, err = fmt.Fprintf(f, "%v\n", d.Input().Payload())
	return err
}

// Null swallows every input token.
type Null struct {
	api.SinkBase
}

// NewNull creates a discarding sink.
func NewNull(name string) *Null {
	n := &Null{SinkBase: api.NewSinkBase("Null")}
	if name != "" {
		n.SetName(name)
	}
	return n
}

func (n *Null) DoExecute() error { return nil }

// Stop halts the enclosing flow as soon as a token reaches it.
type Stop struct {
	api.SinkBase
}

// NewStop creates a flow-stopping sink.
func NewStop(name string) *Stop {
	s := &Stop{SinkBase: api.NewSinkBase("Stop")}
	if name != "" {
		s.SetName(name)
	}
	return s
}

func (s *Stop) DoExecute() error {
	api.Root(s).StopExecution()
	return nil
}
