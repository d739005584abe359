package circuit

import (
	"fmt"
	"strings"
)

// GateKind represents the type of a circuit node
type GateKind int

const (
	NAND GateKind = iota
	AND
	OR
	XOR
	NOT
	INPUT   // Toggle switch, no inputs
	DISPLAY // Pass-through that records the last value it saw
)

// String returns a string representation of the gate kind
func (k GateKind) String() string {
	switch k {
	case NAND:
		return "NAND"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case XOR:
		return "XOR"
	case NOT:
		return "NOT"
	case INPUT:
		return "INPUT"
	case DISPLAY:
		return "DISPLAY"
	default:
		return "UNKNOWN"
	}
}

// Kinds returns the catalogue of gate kinds in menu order
func Kinds() []GateKind {
	return []GateKind{NAND, AND, OR, XOR, NOT, INPUT, DISPLAY}
}

// ParseGateKind converts a gate kind name to a GateKind
func ParseGateKind(name string) (GateKind, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NAND":
		return NAND, nil
	case "AND":
		return AND, nil
	case "OR":
		return OR, nil
	case "XOR":
		return XOR, nil
	case "NOT", "INV":
		return NOT, nil
	case "INPUT", "SWITCH":
		return INPUT, nil
	case "DISPLAY":
		return DISPLAY, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownGateKind, name)
	}
}

// Inputs returns the number of input sockets a node of this kind has
func (k GateKind) Inputs() int {
	switch k {
	case NAND, AND, OR, XOR:
		return 2
	case NOT, DISPLAY:
		return 1
	default:
		return 0
	}
}

// Outputs returns the number of output sockets a node of this kind has
func (k GateKind) Outputs() int {
	switch k {
	case NAND, AND, OR, XOR, NOT, INPUT, DISPLAY:
		return 1
	default:
		return 0
	}
}

// IsBinary returns true for the two-input gates
func (k GateKind) IsBinary() bool {
	return k.Inputs() == 2
}

// HasPayload returns true for kinds that carry a mutable boolean
func (k GateKind) HasPayload() bool {
	return k == INPUT || k == DISPLAY
}

// ApplyBinary evaluates the truth table of a two-input gate
func (k GateKind) ApplyBinary(a, b bool) (bool, error) {
	switch k {
	case NAND:
		return !(a && b), nil
	case AND:
		return a && b, nil
	case OR:
		return a || b, nil
	case XOR:
		return a != b, nil
	default:
		return false, fmt.Errorf("%w: %s is not a binary gate", ErrNotApplicable, k)
	}
}

// ApplyUnary evaluates the truth table of a one-input logic gate
func (k GateKind) ApplyUnary(a bool) (bool, error) {
	if k != NOT {
		return false, fmt.Errorf("%w: %s is not a unary gate", ErrNotApplicable, k)
	}
	return !a, nil
}

// inputNames returns the labels of the input sockets for a kind
func (k GateKind) inputNames() []string {
	switch k.Inputs() {
	case 2:
		return []string{"a", "b"}
	case 1:
		return []string{"in"}
	default:
		return nil
	}
}
