package circuit

import "fmt"

// SocketKind tells whether a socket consumes or produces a value
type SocketKind int

const (
	Input SocketKind = iota
	Output
)

// String returns a string representation of the socket kind
func (k SocketKind) String() string {
	switch k {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return "unknown"
	}
}

// Socket is one connection point on a node. Its kind never changes after
// the owning node is built.
type Socket struct {
	ID   SocketID
	Name string
	Kind SocketKind
}

// String returns a string representation of the socket
func (s Socket) String() string {
	return fmt.Sprintf("%s(%s %s)", s.Name, s.Kind, s.ID)
}

// SocketRef identifies one socket. The socket id alone is unique; the node
// id is carried so callers can filter by node without a lookup.
type SocketRef struct {
	Node   NodeID
	Socket SocketID
}

// String returns a string representation of the reference
func (r SocketRef) String() string {
	return fmt.Sprintf("%s.%s", r.Node, r.Socket)
}

// Edge is a directed wire from an output socket to an input socket.
// Two edges are equal when both endpoints match.
type Edge struct {
	From SocketRef
	To   SocketRef
}

// String returns a string representation of the edge
func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s", e.From, e.To)
}

// Touches returns true if either endpoint belongs to the given node
func (e Edge) Touches(id NodeID) bool {
	return e.From.Node == id || e.To.Node == id
}
