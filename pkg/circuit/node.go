package circuit

import (
	"fmt"
	"strings"
)

// Position is where the UI layer placed a node. The core stores it for the
// UI and never reads it.
type Position struct {
	X float64
	Y float64
}

// Node represents one gate in the circuit
type Node struct {
	ID       NodeID
	Kind     GateKind
	Inputs   []Socket
	Outputs  []Socket
	Position Position

	// toggle state for INPUT, last observed value for DISPLAY
	state bool
}

// NewNode creates a node of the given kind with sockets sized by its arity.
// Node and socket ids are drawn from alloc.
func NewNode(alloc *Allocator, kind GateKind, pos Position) *Node {
	n := &Node{
		ID:       alloc.NodeID(),
		Kind:     kind,
		Inputs:   make([]Socket, 0, kind.Inputs()),
		Outputs:  make([]Socket, 0, kind.Outputs()),
		Position: pos,
	}

	for _, name := range kind.inputNames() {
		n.Inputs = append(n.Inputs, Socket{ID: alloc.SocketID(), Name: name, Kind: Input})
	}
	for i := 0; i < kind.Outputs(); i++ {
		n.Outputs = append(n.Outputs, Socket{ID: alloc.SocketID(), Name: "out", Kind: Output})
	}

	return n
}

// State returns the node's payload. It is always false for kinds without one.
func (n *Node) State() bool {
	return n.state
}

// Socket returns the socket with the given id, searching inputs then outputs
func (n *Node) Socket(id SocketID) (Socket, bool) {
	for _, s := range n.Inputs {
		if s.ID == id {
			return s, true
		}
	}
	for _, s := range n.Outputs {
		if s.ID == id {
			return s, true
		}
	}
	return Socket{}, false
}

// SocketByName returns the socket with the given label
func (n *Node) SocketByName(name string) (Socket, bool) {
	for _, s := range n.Inputs {
		if s.Name == name {
			return s, true
		}
	}
	for _, s := range n.Outputs {
		if s.Name == name {
			return s, true
		}
	}
	return Socket{}, false
}

// Ref returns a reference to one of the node's sockets
func (n *Node) Ref(s Socket) SocketRef {
	return SocketRef{Node: n.ID, Socket: s.ID}
}

// Out returns a reference to the node's first output socket
func (n *Node) Out() (SocketRef, bool) {
	if len(n.Outputs) == 0 {
		return SocketRef{}, false
	}
	return n.Ref(n.Outputs[0]), true
}

// In returns a reference to the node's i-th input socket
func (n *Node) In(i int) (SocketRef, bool) {
	if i < 0 || i >= len(n.Inputs) {
		return SocketRef{}, false
	}
	return n.Ref(n.Inputs[i]), true
}

// String returns a string representation of the node
func (n *Node) String() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s(%s", n.ID, n.Kind))
	if n.Kind.HasPayload() {
		builder.WriteString(fmt.Sprintf("=%s", FromBool(n.state)))
	}
	builder.WriteString(")")
	return builder.String()
}
