package circuit

import (
	"sort"
)

// Neighbor is one entry of a node's adjacency list. Kind tells through which
// side of the neighbor the wire runs: Output for a node feeding this one,
// Input for a node this one feeds.
type Neighbor struct {
	Kind SocketKind
	Node NodeID
}

// DependencyGraph is the adjacency structure derived from a set of edges.
// It reflects the edges at the time it was built and is never patched.
type DependencyGraph struct {
	Adjacency map[NodeID][]Neighbor // node -> neighbors in edge insertion order
	Drivers   map[SocketID]SocketRef // input socket -> output socket feeding it
	edges     int
}

// BuildDependencyGraph compiles a flat edge list into a DependencyGraph.
// For each edge the source node is recorded on the target's list tagged
// Output, and the target on the source's list tagged Input.
func BuildDependencyGraph(edges []Edge) *DependencyGraph {
	g := &DependencyGraph{
		Adjacency: make(map[NodeID][]Neighbor),
		Drivers:   make(map[SocketID]SocketRef),
		edges:     len(edges),
	}

	for _, e := range edges {
		g.Adjacency[e.To.Node] = append(g.Adjacency[e.To.Node], Neighbor{Kind: Output, Node: e.From.Node})
		g.Adjacency[e.From.Node] = append(g.Adjacency[e.From.Node], Neighbor{Kind: Input, Node: e.To.Node})

		// First wire into a socket wins
		if _, exists := g.Drivers[e.To.Socket]; !exists {
			g.Drivers[e.To.Socket] = e.From
		}
	}

	return g
}

// EdgeCount returns the number of edges the graph was built from
func (g *DependencyGraph) EdgeCount() int {
	return g.edges
}

// Neighbors returns the adjacency list of a node
func (g *DependencyGraph) Neighbors(id NodeID) []Neighbor {
	return g.Adjacency[id]
}

// Upstream returns the nodes feeding the given node, in edge order
func (g *DependencyGraph) Upstream(id NodeID) []NodeID {
	return g.filter(id, Output)
}

// Downstream returns the nodes fed by the given node, in edge order
func (g *DependencyGraph) Downstream(id NodeID) []NodeID {
	return g.filter(id, Input)
}

func (g *DependencyGraph) filter(id NodeID, kind SocketKind) []NodeID {
	result := make([]NodeID, 0)
	for _, n := range g.Adjacency[id] {
		if n.Kind == kind {
			result = append(result, n.Node)
		}
	}
	return result
}

// Driver returns the output socket wired into the given input socket
func (g *DependencyGraph) Driver(input SocketID) (SocketRef, bool) {
	ref, ok := g.Drivers[input]
	return ref, ok
}

// Topology contains structural information about a wired circuit
type Topology struct {
	Levels       map[NodeID]int  // Distance from the nearest source; absent for nodes on or behind a cycle
	MaxLevel     int             // Highest assigned level
	FanoutPoints []SocketRef     // Output sockets that drive more than one input
	Cyclic       map[NodeID]bool // Nodes lying on a directed cycle
}

// Analyze computes levels, fanout points and cycles for the given nodes.
// Graph entries that refer to nodes outside the slice are ignored.
func Analyze(nodes []*Node, g *DependencyGraph) *Topology {
	t := &Topology{
		Levels: make(map[NodeID]int),
		Cyclic: make(map[NodeID]bool),
	}

	known := make(map[NodeID]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	t.computeLevels(nodes, g, known)
	t.identifyFanoutPoints(g, known)
	t.identifyCycles(nodes, g, known)

	return t
}

// computeLevels assigns a level to each node whose upstream nodes all have one.
// Nodes with nothing wired in are level 0.
func (t *Topology) computeLevels(nodes []*Node, g *DependencyGraph, known map[NodeID]bool) {
	changed := true
	for changed {
		changed = false

		for _, n := range nodes {
			if _, hasLevel := t.Levels[n.ID]; hasLevel {
				continue
			}

			allUpstreamHaveLevels := true
			maxUpstreamLevel := -1

			for _, up := range g.Upstream(n.ID) {
				if !known[up] {
					continue
				}
				level, exists := t.Levels[up]
				if !exists {
					allUpstreamHaveLevels = false
					break
				}
				if level > maxUpstreamLevel {
					maxUpstreamLevel = level
				}
			}

			if allUpstreamHaveLevels {
				t.Levels[n.ID] = maxUpstreamLevel + 1
				if maxUpstreamLevel+1 > t.MaxLevel {
					t.MaxLevel = maxUpstreamLevel + 1
				}
				changed = true
			}
		}
	}
}

// identifyFanoutPoints collects output sockets wired to several inputs
func (t *Topology) identifyFanoutPoints(g *DependencyGraph, known map[NodeID]bool) {
	counts := make(map[SocketRef]int)
	for _, from := range g.Drivers {
		if known[from.Node] {
			counts[from]++
		}
	}

	t.FanoutPoints = make([]SocketRef, 0)
	for ref, count := range counts {
		if count > 1 {
			t.FanoutPoints = append(t.FanoutPoints, ref)
		}
	}

	sort.Slice(t.FanoutPoints, func(i, j int) bool {
		if t.FanoutPoints[i].Node != t.FanoutPoints[j].Node {
			return t.FanoutPoints[i].Node < t.FanoutPoints[j].Node
		}
		return t.FanoutPoints[i].Socket < t.FanoutPoints[j].Socket
	})
}

// identifyCycles marks every node in a strongly connected component of more
// than one node, and every node wired to itself, using Tarjan's algorithm
func (t *Topology) identifyCycles(nodes []*Node, g *DependencyGraph, known map[NodeID]bool) {
	index := 0
	indices := make(map[NodeID]int)
	lowlink := make(map[NodeID]int)
	onStack := make(map[NodeID]bool)
	stack := make([]NodeID, 0)

	var strongConnect func(v NodeID)
	strongConnect = func(v NodeID) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.Downstream(v) {
			if !known[w] {
				continue
			}
			if w == v {
				t.Cyclic[v] = true
			}
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] != indices[v] {
			return
		}

		component := make([]NodeID, 0)
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		if len(component) > 1 {
			for _, w := range component {
				t.Cyclic[w] = true
			}
		}
	}

	for _, n := range nodes {
		if _, visited := indices[n.ID]; !visited {
			strongConnect(n.ID)
		}
	}
}

// CyclicNodes returns the nodes on a cycle in ascending id order
func (t *Topology) CyclicNodes() []NodeID {
	ids := make([]NodeID, 0, len(t.Cyclic))
	for id := range t.Cyclic {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// HasCycle returns true if any node lies on a cycle
func (t *Topology) HasCycle() bool {
	return len(t.Cyclic) > 0
}
