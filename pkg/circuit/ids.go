package circuit

import "fmt"

// NodeID identifies a node for the lifetime of an Allocator
type NodeID uint64

// SocketID identifies a socket for the lifetime of an Allocator
type SocketID uint64

func (id NodeID) String() string {
	return fmt.Sprintf("n%d", uint64(id))
}

func (id SocketID) String() string {
	return fmt.Sprintf("s%d", uint64(id))
}

// Allocator hands out node and socket identifiers from a single counter.
// Values are never reused, even after the node that held them is removed.
// An Allocator is not safe for concurrent use.
type Allocator struct {
	next uint64
}

// NewAllocator creates an allocator whose first identifier is 0
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns a fresh value and advances the counter
func (a *Allocator) Next() uint64 {
	v := a.next
	a.next++
	return v
}

// NodeID allocates a node identifier
func (a *Allocator) NodeID() NodeID {
	return NodeID(a.Next())
}

// SocketID allocates a socket identifier
func (a *Allocator) SocketID() SocketID {
	return SocketID(a.Next())
}

// Issued returns how many identifiers have been handed out
func (a *Allocator) Issued() uint64 {
	return a.next
}
