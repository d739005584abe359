package circuit

import "errors"

// Sentinel errors for circuit operations.
var (
	// ErrNotApplicable is returned when a transfer function is requested
	// for a gate kind that does not have one of that shape.
	ErrNotApplicable = errors.New("transfer function not applicable to gate kind")

	// ErrUnknownGateKind is returned when a gate kind name cannot be parsed.
	ErrUnknownGateKind = errors.New("unknown gate kind")

	// ErrNodeNotFound is returned when an operation names a node that is
	// not in the circuit.
	ErrNodeNotFound = errors.New("node not found")

	// ErrSocketNotFound is returned when a socket reference does not resolve
	// to a socket on the referenced node.
	ErrSocketNotFound = errors.New("socket not found")

	// ErrWrongSocketKind is returned by Connect when the source is not an
	// output socket or the target is not an input socket.
	ErrWrongSocketKind = errors.New("wrong socket kind")

	// ErrDuplicateEdge is returned by Connect when the exact edge exists.
	ErrDuplicateEdge = errors.New("edge already exists")

	// ErrInputOccupied is returned by Connect when the target input socket
	// is already driven by another edge.
	ErrInputOccupied = errors.New("input socket already connected")

	// ErrNoPayload is returned when toggling a node whose kind carries no
	// boolean payload.
	ErrNoPayload = errors.New("gate kind has no payload")
)
