package circuit

// LogicValue represents the result of evaluating a node
type LogicValue int

const (
	X    LogicValue = iota // Undefined: the value cannot currently be computed
	Zero                   // Logic 0
	One                    // Logic 1
)

// String returns a string representation of the logic value
func (v LogicValue) String() string {
	switch v {
	case X:
		return "X"
	case Zero:
		return "0"
	case One:
		return "1"
	default:
		return "?"
	}
}

// FromBool converts a boolean to Zero or One
func FromBool(b bool) LogicValue {
	if b {
		return One
	}
	return Zero
}

// Bool returns the boolean held by the value. ok is false for X, which is
// never coerced to false.
func (v LogicValue) Bool() (value bool, ok bool) {
	switch v {
	case Zero:
		return false, true
	case One:
		return true, true
	default:
		return false, false
	}
}

// IsAssigned returns true if the value is Zero or One
func (v LogicValue) IsAssigned() bool {
	return v == Zero || v == One
}

// Not returns the complement of the value; X stays X
func (v LogicValue) Not() LogicValue {
	switch v {
	case Zero:
		return One
	case One:
		return Zero
	default:
		return X
	}
}
