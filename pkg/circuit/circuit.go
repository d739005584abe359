package circuit

import (
	"fmt"
	"strings"
)

// Circuit owns the nodes and wiring of one editor session. Nodes live in an
// arena keyed by NodeID; payload writes go through the circuit rather than
// through shared node handles. Every edge mutation rebuilds the dependency
// graph before returning, so the graph always matches the edge set.
//
// A Circuit is not safe for concurrent use.
type Circuit struct {
	Name  string
	alloc *Allocator
	nodes map[NodeID]*Node
	order []NodeID
	edges []Edge
	graph *DependencyGraph
}

// NewCircuit creates an empty circuit drawing ids from alloc
func NewCircuit(name string, alloc *Allocator) *Circuit {
	return &Circuit{
		Name:  name,
		alloc: alloc,
		nodes: make(map[NodeID]*Node),
		order: make([]NodeID, 0),
		edges: make([]Edge, 0),
		graph: BuildDependencyGraph(nil),
	}
}

// AddNode creates a node of the given kind and appends it to the collection
func (c *Circuit) AddNode(kind GateKind, pos Position) *Node {
	n := NewNode(c.alloc, kind, pos)
	c.nodes[n.ID] = n
	c.order = append(c.order, n.ID)
	return n
}

// RemoveNode deletes a node and every edge attached to it
func (c *Circuit) RemoveNode(id NodeID) error {
	if _, exists := c.nodes[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	delete(c.nodes, id)
	for i, nid := range c.order {
		if nid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	c.Disconnect(func(e Edge) bool { return e.Touches(id) })
	return nil
}

// Node returns a node by ID
func (c *Circuit) Node(id NodeID) (*Node, bool) {
	n, ok := c.nodes[id]
	return n, ok
}

// Nodes returns the nodes in collection order
func (c *Circuit) Nodes() []*Node {
	nodes := make([]*Node, 0, len(c.order))
	for _, id := range c.order {
		nodes = append(nodes, c.nodes[id])
	}
	return nodes
}

// NodeCount returns the number of nodes in the circuit
func (c *Circuit) NodeCount() int {
	return len(c.order)
}

// Edges returns a copy of the edge set in insertion order
func (c *Circuit) Edges() []Edge {
	edges := make([]Edge, len(c.edges))
	copy(edges, c.edges)
	return edges
}

// Graph returns the dependency graph built from the current edges
func (c *Circuit) Graph() *DependencyGraph {
	return c.graph
}

// resolve looks up the socket a reference points at
func (c *Circuit) resolve(ref SocketRef) (Socket, error) {
	n, ok := c.nodes[ref.Node]
	if !ok {
		return Socket{}, fmt.Errorf("%w: %s", ErrNodeNotFound, ref.Node)
	}
	s, ok := n.Socket(ref.Socket)
	if !ok {
		return Socket{}, fmt.Errorf("%w: %s", ErrSocketNotFound, ref)
	}
	return s, nil
}

// Connect wires an output socket to an input socket. On error the edge set
// is left unchanged.
func (c *Circuit) Connect(from, to SocketRef) error {
	src, err := c.resolve(from)
	if err != nil {
		return fmt.Errorf("connect source: %w", err)
	}
	dst, err := c.resolve(to)
	if err != nil {
		return fmt.Errorf("connect target: %w", err)
	}

	if src.Kind != Output {
		return fmt.Errorf("%w: source %s is an %s socket", ErrWrongSocketKind, from, src.Kind)
	}
	if dst.Kind != Input {
		return fmt.Errorf("%w: target %s is an %s socket", ErrWrongSocketKind, to, dst.Kind)
	}

	edge := Edge{From: from, To: to}
	if c.HasEdge(edge) {
		return fmt.Errorf("%w: %s", ErrDuplicateEdge, edge)
	}
	if driver, ok := c.graph.Driver(to.Socket); ok {
		return fmt.Errorf("%w: %s is driven by %s", ErrInputOccupied, to, driver)
	}

	c.edges = append(c.edges, edge)
	c.rebuild()
	return nil
}

// Disconnect removes every edge matching pred and returns how many were
// removed. The graph is rebuilt only when the edge set changed.
func (c *Circuit) Disconnect(pred func(Edge) bool) int {
	kept := make([]Edge, 0, len(c.edges))
	for _, e := range c.edges {
		if !pred(e) {
			kept = append(kept, e)
		}
	}

	removed := len(c.edges) - len(kept)
	if removed > 0 {
		c.edges = kept
		c.rebuild()
	}
	return removed
}

// HasEdge returns true if the exact edge is present
func (c *Circuit) HasEdge(edge Edge) bool {
	for _, e := range c.edges {
		if e == edge {
			return true
		}
	}
	return false
}

// rebuild discards the dependency graph and compiles a new one
func (c *Circuit) rebuild() {
	c.graph = BuildDependencyGraph(c.edges)
}

// Toggle flips the payload of an INPUT or DISPLAY node
func (c *Circuit) Toggle(id NodeID) error {
	n, ok := c.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if !n.Kind.HasPayload() {
		return fmt.Errorf("%w: %s is %s", ErrNoPayload, id, n.Kind)
	}
	n.state = !n.state
	return nil
}

// SetState sets the payload of an INPUT or DISPLAY node
func (c *Circuit) SetState(id NodeID, value bool) error {
	n, ok := c.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if !n.Kind.HasPayload() {
		return fmt.Errorf("%w: %s is %s", ErrNoPayload, id, n.Kind)
	}
	n.state = value
	return nil
}

// Capture records the value a DISPLAY node observed. Other kinds and unknown
// ids are ignored.
func (c *Circuit) Capture(id NodeID, value bool) {
	if n, ok := c.nodes[id]; ok && n.Kind == DISPLAY {
		n.state = value
	}
}

// Analyze runs topology analysis over the current wiring
func (c *Circuit) Analyze() *Topology {
	return Analyze(c.Nodes(), c.graph)
}

// String returns a string representation of the circuit state
func (c *Circuit) String() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Circuit: %s\n", c.Name))

	builder.WriteString("Nodes: ")
	for _, n := range c.Nodes() {
		builder.WriteString(fmt.Sprintf("%s ", n))
	}

	builder.WriteString("\nEdges: ")
	for _, e := range c.edges {
		builder.WriteString(fmt.Sprintf("[%s] ", e))
	}

	return builder.String()
}
