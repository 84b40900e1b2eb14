package actors

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkivila/aktor/internal/engine"
	"github.com/jkivila/aktor/internal/testutil"
	"github.com/jkivila/aktor/pkg/api"
)

// runFlow wires the actors into a flow, executes it, and returns the flow
// for storage inspection.
func runFlow(t *testing.T, acts ...api.Actor) *engine.Flow {
	t.Helper()
	flow := engine.NewFlow("flow")
	flow.Add(acts...)
	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())
	return flow
}

func TestStart(t *testing.T) {
	sink := testutil.NewCollect("out")
	runFlow(t, NewStart("go"), sink)
	require.Equal(t, []any{nil}, sink.Got)
}

func TestStringConstants(t *testing.T) {
	sink := testutil.NewCollect("out")
	runFlow(t, NewStringConstants("names", "a", "b", "c"), sink)
	require.Equal(t, []any{"a", "b", "c"}, sink.Got)
}

func TestFileSupplier(t *testing.T) {
	sink := testutil.NewCollect("out")
	runFlow(t, NewFileSupplier("files", "one.txt", "two.txt"), sink)
	require.Equal(t, []any{"one.txt", "two.txt"}, sink.Got)
}

func TestForLoop(t *testing.T) {
	sink := testutil.NewCollect("out")
	runFlow(t, NewForLoop("loop", 1, 7, 2), sink)
	require.Equal(t, []any{1, 3, 5, 7}, sink.Got)
}

func TestForLoopDescending(t *testing.T) {
	sink := testutil.NewCollect("out")
	runFlow(t, NewForLoop("loop", 3, 1, -1), sink)
	require.Equal(t, []any{3, 2, 1}, sink.Got)
}

func TestForLoopRejectsZeroStep(t *testing.T) {
	flow := engine.NewFlow("flow")
	flow.Add(NewForLoop("loop", 1, 10, 0), testutil.NewCollect("out"))
	err := flow.Setup()
	require.Error(t, err)
	require.True(t, api.IsConfigError(err))
}

func TestGetStorageValue(t *testing.T) {
	sink := testutil.NewCollect("out")
	flow := engine.NewFlow("flow")
	flow.Storage()["answer"] = 42
	flow.Add(NewGetStorageValue("get", "answer"), sink)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())
	require.Equal(t, []any{42}, sink.Got)
}

func TestGetStorageValueMissing(t *testing.T) {
	flow := engine.NewFlow("flow")
	flow.Add(NewGetStorageValue("get", "absent"), testutil.NewCollect("out"))

	require.NoError(t, flow.Setup())
	err := flow.Execute()
	require.Error(t, err)
	require.True(t, api.IsStorageError(err))
}
