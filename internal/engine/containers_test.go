package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkivila/aktor/internal/testutil"
	"github.com/jkivila/aktor/pkg/api"
)

func TestSequenceFeedsFirstChild(t *testing.T) {
	sideSink := testutil.NewCollect("side")
	mainSink := testutil.NewCollect("main")

	flow := NewFlow("flow")
	flow.Add(
		testutil.NewEmit("src", 1, 2),
		NewBranch("fan",
			NewSequence("seq",
				testutil.NewApply("inc", func(in any) (any, error) {
					return in.(int) + 10, nil
				}),
				sideSink,
			),
			mainSink,
		),
	)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())

	require.Equal(t, []any{11, 12}, sideSink.Got)
	require.Equal(t, []any{1, 2}, mainSink.Got)
}

func TestTeeForwardsUnchanged(t *testing.T) {
	side := testutil.NewCollect("side")
	main := testutil.NewCollect("main")

	flow := NewFlow("flow")
	flow.Add(
		testutil.NewEmit("src", "a", "b"),
		NewTee("tee", side),
		main,
	)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())

	require.Equal(t, []any{"a", "b"}, side.Got)
	require.Equal(t, []any{"a", "b"}, main.Got)
}

func TestTeeConditionFalseSkipsBranch(t *testing.T) {
	side := testutil.NewCollect("side")
	main := testutil.NewCollect("main")

	flow := NewFlow("flow")
	tee := NewTee("tee", side)
	tee.SetCondition("false")
	flow.Add(testutil.NewEmit("src", 1), tee, main)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())

	// The branch never ran, the token still went downstream.
	require.Empty(t, side.Got)
	require.Equal(t, []any{1}, main.Got)
}

func TestTeeConditionReadsStorage(t *testing.T) {
	side := testutil.NewCollect("side")
	main := testutil.NewCollect("main")

	flow := NewFlow("flow")
	flow.Storage()["threshold"] = 10
	tee := NewTee("tee", side)
	tee.SetCondition("threshold > 5")
	flow.Add(testutil.NewEmit("src", 1), tee, main)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())

	require.Equal(t, []any{1}, side.Got)
	require.Equal(t, []any{1}, main.Got)
}

func TestTeeConditionPlaceholderExpansion(t *testing.T) {
	side := testutil.NewCollect("side")
	main := testutil.NewCollect("main")

	flow := NewFlow("flow")
	flow.Storage()["x"] = 3
	tee := NewTee("tee", side)
	tee.SetCondition("@{x} > 2")
	flow.Add(testutil.NewEmit("src", 1), tee, main)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())

	require.Equal(t, []any{1}, side.Got)
}

func TestTeeBadConditionFails(t *testing.T) {
	flow := NewFlow("flow")
	tee := NewTee("tee", testutil.NewCollect("side"))
	tee.SetCondition("this is not an expression ((")
	flow.Add(testutil.NewEmit("src", 1), tee)

	require.NoError(t, flow.Setup())
	err := flow.Execute()
	require.Error(t, err)
}

func TestTriggerRunsSubFlowPerToken(t *testing.T) {
	sub := testutil.NewCollect("subout")
	main := testutil.NewCollect("main")

	flow := NewFlow("flow")
	flow.Add(
		testutil.NewEmit("src", "t1", "t2"),
		NewTrigger("trig",
			testutil.NewEmit("inner", "fired"),
			sub,
		),
		main,
	)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())

	// Inner pipeline ran once per incoming token.
	require.Equal(t, []any{"fired", "fired"}, sub.Got)
	// The trigger forwarded its own input, not the sub-flow output.
	require.Equal(t, []any{"t1", "t2"}, main.Got)
}

func TestTriggerRequiresSourceChild(t *testing.T) {
	flow := NewFlow("flow")
	flow.Add(
		testutil.NewEmit("src", 1),
		NewTrigger("trig", testutil.NewCollect("notasource")),
	)

	err := flow.Setup()
	require.Error(t, err)
	require.True(t, api.IsConfigError(err))
}

func TestNestedUniqueNames(t *testing.T) {
	flow := NewFlow("flow")
	flow.Add(
		testutil.NewEmit("actor", 1),
		NewTee("actor", testutil.NewCollect("actor")),
		testutil.NewCollect("actor"),
	)

	require.NoError(t, flow.Setup())

	names := make([]string, 0, 3)
	for _, a := range flow.Actors() {
		names = append(names, a.Name())
	}
	require.Equal(t, []string{"actor", "actor-1", "actor-2"}, names)

	// Children of the tee are a separate sibling scope.
	tee := flow.Actors()[1].(*Tee)
	require.Equal(t, "actor", tee.Actors()[0].Name())
	require.Equal(t, "flow.actor-1.actor", tee.Actors()[0].FullName())
}

func TestTreeRendering(t *testing.T) {
	flow := NewFlow("flow")
	flow.Add(
		testutil.NewEmit("src", 1),
		NewTee("tee", testutil.NewCollect("side")),
	)
	require.NoError(t, flow.Setup())

	want := "Flow 'flow'\n" +
		"|-Emit 'src'\n" +
		"|-Tee 'tee'\n" +
		"| |-Collect 'side'"
	require.Equal(t, want, flow.Tree())
}
