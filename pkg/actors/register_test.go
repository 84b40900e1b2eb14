package actors

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkivila/aktor/internal/engine"
	"github.com/jkivila/aktor/pkg/api"
)

func TestBuiltinsRoundTripAndRun(t *testing.T) {
	reg := api.NewRegistry()
	engine.Register(reg)
	Register(reg)

	flow := engine.NewFlow("greet")
	flow.Add(
		NewStringConstants("names", "ada", "grace"),
		NewConsole("print", "hello "),
	)

	data, err := engine.ToJSON(flow)
	require.NoError(t, err)

	restored, err := engine.FromJSON(data, reg)
	require.NoError(t, err)
	restoredFlow := restored.(*engine.Flow)

	var buf bytes.Buffer
	console := restoredFlow.Actors()[1].(*Console)
	console.SetWriter(&buf)

	require.NoError(t, restoredFlow.Setup())
	require.NoError(t, restoredFlow.Execute())
	require.Equal(t, "hello ada\nhello grace\n", buf.String())
}

func TestEveryBuiltinClassReconstructs(t *testing.T) {
	reg := api.NewRegistry()
	engine.Register(reg)
	Register(reg)

	classes := []string{
		"Start", "StringConstants", "FileSupplier", "ForLoop", "GetStorageValue",
		"PassThrough", "SetStorageValue", "InitStorageValue", "UpdateStorageValue",
		"DeleteStorageValue", "MathExpression", "LoadFile",
		"Console", "DumpFile", "Null", "Stop",
	}
	for _, class := range classes {
		a, err := reg.New(class)
		require.NoError(t, err, class)
		require.Equal(t, class, a.Class(), class)
	}
}
