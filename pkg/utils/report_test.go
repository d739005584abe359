package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/illogical/pkg/circuit"
)

func TestWriteValues(t *testing.T) {
	var buf bytes.Buffer
	err := WriteValues(&buf, "tick 1", []NamedValue{
		{Name: "a", Kind: circuit.INPUT, Value: circuit.One},
		{Name: "sum", Kind: circuit.DISPLAY, Value: circuit.X},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "tick 1")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "INPUT")
	assert.Contains(t, out, "sum")
	assert.Contains(t, out, "DISPLAY")
	assert.Contains(t, out, circuit.X.String())
	assert.NotContains(t, out, "no changes")
}

func TestWriteValuesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteValues(&buf, "tick 2", nil))
	assert.Contains(t, buf.String(), "(no changes)")
}

func TestWriteTruthTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTruthTable(&buf, "half_adder",
		[]string{"a", "b"},
		[]string{"sum", "carry"},
		[][]bool{{false, false}, {true, true}},
		[][]circuit.LogicValue{{circuit.Zero, circuit.Zero}, {circuit.Zero, circuit.One}},
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "half_adder")
	for _, header := range []string{"a", "b", "sum", "carry"} {
		assert.Contains(t, out, header)
	}
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "0")
}

func TestWriteTruthTableMismatchedRows(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTruthTable(&buf, "bad", []string{"a"}, []string{"y"},
		[][]bool{{false}, {true}},
		[][]circuit.LogicValue{{circuit.One}},
	)
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}
