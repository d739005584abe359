package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/illogical/pkg/circuit"
)

// buildHalfAdder returns an engine holding a half adder and its node ids
func buildHalfAdder(t *testing.T) (*Engine, map[string]circuit.NodeID) {
	t.Helper()

	e := newTestEngine()
	ids := map[string]circuit.NodeID{
		"a":     e.CreateNode(circuit.INPUT, circuit.Position{}),
		"b":     e.CreateNode(circuit.INPUT, circuit.Position{}),
		"xor":   e.CreateNode(circuit.XOR, circuit.Position{}),
		"and":   e.CreateNode(circuit.AND, circuit.Position{}),
		"sum":   e.CreateNode(circuit.DISPLAY, circuit.Position{}),
		"carry": e.CreateNode(circuit.DISPLAY, circuit.Position{}),
	}

	wire(t, e, ids["a"], ids["xor"], 0)
	wire(t, e, ids["b"], ids["xor"], 1)
	wire(t, e, ids["a"], ids["and"], 0)
	wire(t, e, ids["b"], ids["and"], 1)
	wire(t, e, ids["xor"], ids["sum"], 0)
	wire(t, e, ids["and"], ids["carry"], 0)

	return e, ids
}

func TestTruthTableHalfAdder(t *testing.T) {
	e, ids := buildHalfAdder(t)

	table, err := e.TruthTable(4)
	require.NoError(t, err)

	assert.Equal(t, []circuit.NodeID{ids["a"], ids["b"]}, table.Inputs)
	assert.Equal(t, []circuit.NodeID{ids["sum"], ids["carry"]}, table.Outputs)

	expected := []TruthRow{
		{Inputs: []bool{false, false}, Outputs: []circuit.LogicValue{circuit.Zero, circuit.Zero}},
		{Inputs: []bool{false, true}, Outputs: []circuit.LogicValue{circuit.One, circuit.Zero}},
		{Inputs: []bool{true, false}, Outputs: []circuit.LogicValue{circuit.One, circuit.Zero}},
		{Inputs: []bool{true, true}, Outputs: []circuit.LogicValue{circuit.Zero, circuit.One}},
	}
	assert.Equal(t, expected, table.Rows)
}

func TestTruthTableRestoresInputs(t *testing.T) {
	e, ids := buildHalfAdder(t)
	require.NoError(t, e.ToggleInput(ids["a"]))
	e.Tick()

	_, err := e.TruthTable(4)
	require.NoError(t, err)

	a, _ := e.Circuit.Node(ids["a"])
	b, _ := e.Circuit.Node(ids["b"])
	assert.True(t, a.State())
	assert.False(t, b.State())
	assert.True(t, e.Trigger.IsDirty())

	// Displays are recaptured from the restored inputs
	e.Tick()
	sum, _ := e.Circuit.Node(ids["sum"])
	carry, _ := e.Circuit.Node(ids["carry"])
	assert.True(t, sum.State())
	assert.False(t, carry.State())
}

func TestTruthTableFallsBackToSinks(t *testing.T) {
	e := newTestEngine()
	a := e.CreateNode(circuit.INPUT, circuit.Position{})
	not := e.CreateNode(circuit.NOT, circuit.Position{})
	wire(t, e, a, not, 0)

	table, err := e.TruthTable(4)
	require.NoError(t, err)
	assert.Equal(t, []circuit.NodeID{not}, table.Outputs)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []circuit.LogicValue{circuit.One}, table.Rows[0].Outputs)
	assert.Equal(t, []circuit.LogicValue{circuit.Zero}, table.Rows[1].Outputs)
}

func TestTruthTableTooManyInputs(t *testing.T) {
	e, _ := buildHalfAdder(t)

	_, err := e.TruthTable(1)
	assert.ErrorIs(t, err, ErrTooManyInputs)
}
