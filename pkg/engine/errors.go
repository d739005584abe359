package engine

import "errors"

var (
	// ErrWrongGateKind is returned when a toggle targets a node of another kind.
	ErrWrongGateKind = errors.New("wrong gate kind")

	// ErrTooManyInputs is returned when a truth table would need more rows
	// than the configured limit allows.
	ErrTooManyInputs = errors.New("too many inputs for truth table")
)
