package engine

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/illogical/pkg/circuit"
	"github.com/fyerfyer/illogical/pkg/utils"
)

func quietLogger() *utils.Logger {
	logger := utils.NewLogger(utils.ErrorLevel)
	logger.SetOutput(io.Discard)
	return logger
}

func newTestEngine() *Engine {
	return New("test", quietLogger(), 0)
}

// wire connects the output of from to input socket i of to
func wire(t *testing.T, e *Engine, from, to circuit.NodeID, i int) {
	t.Helper()

	src, ok := e.Circuit.Node(from)
	require.True(t, ok)
	dst, ok := e.Circuit.Node(to)
	require.True(t, ok)

	out, ok := src.Out()
	require.True(t, ok)
	in, ok := dst.In(i)
	require.True(t, ok)

	require.NoError(t, e.Connect(out, in))
}

func valueOf(results []Result, id circuit.NodeID) (circuit.LogicValue, bool) {
	for _, r := range results {
		if r.Node == id {
			return r.Value, true
		}
	}
	return circuit.X, false
}
