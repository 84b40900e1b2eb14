package actors

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkivila/aktor/internal/engine"
	"github.com/jkivila/aktor/internal/testutil"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole("print", "got: ")
	console.SetWriter(&buf)

	runFlow(t, testutil.NewEmit("src", 1, "two"), console)
	require.Equal(t, "got: 1\ngot: two\n", buf.String())
}

func TestConsolePrefixFromStorage(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole("print", "@{prefix}")
	console.SetWriter(&buf)

	flow := engine.NewFlow("flow")
	flow.Storage()["prefix"] = ">> "
	flow.Add(testutil.NewEmit("src", "x"), console)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())
	require.Equal(t, ">> x\n", buf.String())
}

func TestDumpFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	runFlow(t, testutil.NewEmit("src", 1, 2), NewDumpFile("dump", path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Stale content replaced, both tokens of this run kept.
	require.Equal(t, "1\n2\n", string(data))
}

func TestDumpFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	runFlow(t, testutil.NewEmit("src", "new"), NewDumpFile("dump", path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "old\nnew\n", string(data))
}

func TestDumpFileExpandsStorage(t *testing.T) {
	dir := t.TempDir()
	flow := engine.NewFlow("flow")
	flow.Storage()["dir"] = dir
	flow.Add(testutil.NewEmit("src", "x"), NewDumpFile("dump", "@{dir}/out.txt", false))

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	require.Equal(t, "x\n", string(data))
}

func TestNull(t *testing.T) {
	runFlow(t, testutil.NewEmit("src", 1, 2, 3), NewNull("discard"))
}

func TestStopHaltsFlow(t *testing.T) {
	collected := testutil.NewCollect("seen")

	flow := engine.NewFlow("flow")
	flow.Add(
		testutil.NewEmit("src", 1, 2, 3),
		engine.NewTee("watch", collected),
		NewStop("halt"),
	)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())

	require.True(t, flow.IsStopped())
	// The first token reached the stop; later tokens never ran.
	require.Equal(t, []any{1}, collected.Got)
}
