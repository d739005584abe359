package engine

import (
	"fmt"

	"github.com/fyerfyer/illogical/pkg/circuit"
)

// TruthRow is one combination of input states and the outputs it produced
type TruthRow struct {
	Inputs  []bool
	Outputs []circuit.LogicValue
}

// TruthTable is the exhaustive behaviour of a circuit's outputs
type TruthTable struct {
	Inputs  []circuit.NodeID
	Outputs []circuit.NodeID
	Rows    []TruthRow
}

// TruthTable enumerates every state of the INPUT nodes and records the value
// of each output. DISPLAY nodes are the outputs; a circuit without any uses
// the nodes that feed nothing. The first input is the most significant bit.
// Input states are restored afterwards and a sweep is requested.
func (e *Engine) TruthTable(limit int) (*TruthTable, error) {
	table := &TruthTable{
		Inputs:  make([]circuit.NodeID, 0),
		Outputs: make([]circuit.NodeID, 0),
		Rows:    make([]TruthRow, 0),
	}

	graph := e.Circuit.Graph()
	sinks := make([]circuit.NodeID, 0)
	original := make(map[circuit.NodeID]bool)

	for _, n := range e.Circuit.Nodes() {
		switch {
		case n.Kind == circuit.INPUT:
			table.Inputs = append(table.Inputs, n.ID)
			original[n.ID] = n.State()
		case n.Kind == circuit.DISPLAY:
			table.Outputs = append(table.Outputs, n.ID)
		case len(graph.Downstream(n.ID)) == 0:
			sinks = append(sinks, n.ID)
		}
	}
	if len(table.Outputs) == 0 {
		table.Outputs = sinks
	}

	if len(table.Inputs) > limit {
		return nil, fmt.Errorf("%w: %d inputs, limit is %d", ErrTooManyInputs, len(table.Inputs), limit)
	}

	e.Logger.Info("Enumerating %d input combinations over %d outputs",
		1<<len(table.Inputs), len(table.Outputs))

	width := len(table.Inputs)
	for combo := 0; combo < 1<<width; combo++ {
		row := TruthRow{
			Inputs:  make([]bool, width),
			Outputs: make([]circuit.LogicValue, len(table.Outputs)),
		}

		for i, id := range table.Inputs {
			bit := combo&(1<<(width-1-i)) != 0
			row.Inputs[i] = bit
			if err := e.Circuit.SetState(id, bit); err != nil {
				return nil, err
			}
		}

		for i, id := range table.Outputs {
			row.Outputs[i] = e.Evaluator.Evaluate(id)
		}

		table.Rows = append(table.Rows, row)
	}

	for id, state := range original {
		if err := e.Circuit.SetState(id, state); err != nil {
			return nil, err
		}
	}
	e.Trigger.MarkDirty(SourceToggleInput)

	return table, nil
}
