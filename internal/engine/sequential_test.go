package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkivila/aktor/internal/testutil"
	"github.com/jkivila/aktor/pkg/api"
)

func TestSequentialPipelineOrdering(t *testing.T) {
	sink := testutil.NewCollect("out")
	flow := NewFlow("flow")
	flow.Add(
		testutil.NewEmit("src", 1, 2, 3),
		testutil.NewApply("double", func(in any) (any, error) {
			return in.(int) * 2, nil
		}),
		sink,
	)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())
	require.Equal(t, []any{2, 4, 6}, sink.Got)
}

func TestSequentialDepthFirstToken(t *testing.T) {
	// Each buffered source token must be walked through the whole
	// pipeline before the next one is taken up.
	var order []string
	flow := NewFlow("flow")
	flow.Add(
		testutil.NewEmit("src", "a", "b"),
		testutil.NewApply("first", func(in any) (any, error) {
			order = append(order, "first:"+in.(string))
			return in, nil
		}),
		testutil.NewApply("second", func(in any) (any, error) {
			order = append(order, "second:"+in.(string))
			return in, nil
		}),
		testutil.NewCollect("out"),
	)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())
	require.Equal(t, []string{"first:a", "second:a", "first:b", "second:b"}, order)
}

func TestSequentialSingleSourcePass(t *testing.T) {
	src := testutil.NewEmit("src", 1, 2, 3)
	flow := NewFlow("flow")
	flow.Add(src, testutil.NewCollect("out"))

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())
	require.Equal(t, 1, src.Passes)
}

func TestSequentialSkipsActors(t *testing.T) {
	skipped := testutil.NewApply("skipme", func(in any) (any, error) {
		return nil, errors.New("must not run")
	})
	skipped.SetSkip(true)
	sink := testutil.NewCollect("out")

	flow := NewFlow("flow")
	flow.Add(testutil.NewEmit("src", 1), skipped, sink)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())
	require.Equal(t, []any{1}, sink.Got)
}

func TestSequentialFirstErrorAborts(t *testing.T) {
	boom := errors.New("boom")

	flow := NewFlow("flow")
	flow.Add(
		testutil.NewEmit("src", 1, 2),
		testutil.NewFail("fail", boom),
	)

	require.NoError(t, flow.Setup())
	err := flow.Execute()
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.True(t, api.IsExecError(err))
}

func TestSequentialTransformerDropsToken(t *testing.T) {
	sink := testutil.NewCollect("out")
	drop := &dropOdd{TransformerBase: api.NewTransformerBase("dropOdd")}
	drop.SetName("filter")

	flow := NewFlow("flow")
	flow.Add(testutil.NewEmit("src", 1, 2, 3, 4), drop, sink)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())
	require.Equal(t, []any{2, 4}, sink.Got)
}

type dropOdd struct {
	api.TransformerBase
}

func (d *dropOdd) DoExecute() error {
	if n := d.Input().Payload().(int); n%2 == 0 {
		d.AppendOutput(api.NewToken(n))
	}
	return nil
}

// Skip flags flipped mid-run take effect from the moment they are set:
// the active-child bounds are recomputed every pass, and skipped actors
// are passed over inside a pass as well.
func TestSequentialSkipMutationMidRun(t *testing.T) {
	sink := testutil.NewCollect("out")
	toggler := testutil.NewApply("toggle", func(in any) (any, error) {
		sink.SetSkip(true)
		return in, nil
	})

	flow := NewFlow("flow")
	flow.Add(testutil.NewEmit("src", 1, 2, 3), toggler, sink)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())
	require.Empty(t, sink.Got)
}

func TestSequentialSetupRejectsMisplacedSource(t *testing.T) {
	seq := NewSequence("seq", testutil.NewEmit("src", 1))
	err := seq.Setup()
	require.Error(t, err)
	require.True(t, api.IsConfigError(err))
}

func TestSequentialSetupRejectsNonConsumer(t *testing.T) {
	flow := NewFlow("flow")
	flow.Add(testutil.NewEmit("src", 1), testutil.NewEmit("src2", 2))
	err := flow.Setup()
	require.Error(t, err)
	require.True(t, api.IsConfigError(err))
}

func TestSequentialRecordsOutput(t *testing.T) {
	flow := NewFlow("flow")
	director := NewSequentialDirector(flow, true, true)
	flow.director = director
	flow.Add(
		testutil.NewEmit("src", 1, 2),
		testutil.NewApply("double", func(in any) (any, error) {
			return in.(int) * 2, nil
		}),
	)

	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())

	recorded := director.RecordedOutput()
	require.Len(t, recorded, 2)
	require.Equal(t, 2, recorded[0].Payload())
	require.Equal(t, 4, recorded[1].Payload())

	director.ClearRecordedOutput()
	require.Empty(t, director.RecordedOutput())
}

func TestSequentialEmptyPipeline(t *testing.T) {
	flow := NewFlow("flow")
	require.NoError(t, flow.Setup())
	require.NoError(t, flow.Execute())
}
