package engine

import (
	"sort"

	"github.com/fyerfyer/illogical/pkg/circuit"
	"github.com/fyerfyer/illogical/pkg/utils"
)

// DefaultMaxDepth bounds the recursion of a single evaluation
const DefaultMaxDepth = 4096

// Arena is the node store an Evaluator reads nodes and the dependency graph
// from, and writes DISPLAY captures back to.
type Arena interface {
	Node(id circuit.NodeID) (*circuit.Node, bool)
	Graph() *circuit.DependencyGraph
	Capture(id circuit.NodeID, value bool)
}

// EvalStats contains counters about evaluation work
type EvalStats struct {
	Evaluations    int // Node evaluations, including recursive ones
	CycleHits      int // Re-entries into a node already being evaluated
	DepthLimitHits int // Evaluations cut off by MaxDepth
	DanglingRefs   int // Drivers that no longer resolve to a node or socket
}

// Evaluator computes node values by pulling them through the dependency
// graph. Results are not memoized: a node reachable along several paths is
// recomputed on each. Re-entering a node that is already on the evaluation
// stack yields X and marks the nodes on that loop as cyclic.
//
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	Arena    Arena
	Logger   *utils.Logger
	MaxDepth int
	Stats    EvalStats

	graph   *circuit.DependencyGraph
	stack   []circuit.NodeID
	onStack map[circuit.NodeID]int // node -> position in stack
	cycles  map[circuit.NodeID]bool
}

// NewEvaluator creates an evaluator over the given arena
func NewEvaluator(arena Arena, logger *utils.Logger, maxDepth int) *Evaluator {
	if logger == nil {
		logger = utils.DefaultLogger
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Evaluator{
		Arena:    arena,
		Logger:   logger,
		MaxDepth: maxDepth,
		stack:    make([]circuit.NodeID, 0),
		onStack:  make(map[circuit.NodeID]int),
		cycles:   make(map[circuit.NodeID]bool),
	}
}

// Evaluate computes the value of one node. X means the value cannot
// currently be computed: an input is unwired, a driver is dangling, the
// node sits on a cycle, or something upstream is X.
func (e *Evaluator) Evaluate(id circuit.NodeID) circuit.LogicValue {
	e.graph = e.Arena.Graph()
	e.stack = e.stack[:0]
	clear(e.onStack)

	return e.eval(id)
}

func (e *Evaluator) eval(id circuit.NodeID) circuit.LogicValue {
	if pos, visiting := e.onStack[id]; visiting {
		e.recordCycle(pos)
		return circuit.X
	}

	if len(e.stack) >= e.MaxDepth {
		e.Stats.DepthLimitHits++
		depthLimitTotal.Inc()
		e.Logger.Warning("Evaluation of %s exceeded depth %d", id, e.MaxDepth)
		return circuit.X
	}

	n, ok := e.Arena.Node(id)
	if !ok {
		e.Stats.DanglingRefs++
		return circuit.X
	}

	e.Stats.Evaluations++
	nodeEvaluationsTotal.Inc()

	e.onStack[id] = len(e.stack)
	e.stack = append(e.stack, id)
	defer func() {
		e.stack = e.stack[:len(e.stack)-1]
		delete(e.onStack, id)
	}()

	value := e.evalNode(n)
	e.Logger.Evaluation("%s = %s", n, value)
	return value
}

// evalNode applies the node's gate semantics to its operands
func (e *Evaluator) evalNode(n *circuit.Node) circuit.LogicValue {
	switch n.Kind {
	case circuit.INPUT:
		return circuit.FromBool(n.State())

	case circuit.NOT:
		a, ok := e.operand(n, 0).Bool()
		if !ok {
			return circuit.X
		}
		result, err := n.Kind.ApplyUnary(a)
		if err != nil {
			return circuit.X
		}
		return circuit.FromBool(result)

	case circuit.DISPLAY:
		value := e.operand(n, 0)
		if b, ok := value.Bool(); ok {
			e.Arena.Capture(n.ID, b)
		}
		return value

	case circuit.NAND, circuit.AND, circuit.OR, circuit.XOR:
		a, ok := e.operand(n, 0).Bool()
		if !ok {
			return circuit.X
		}
		b, ok := e.operand(n, 1).Bool()
		if !ok {
			return circuit.X
		}
		result, err := n.Kind.ApplyBinary(a, b)
		if err != nil {
			return circuit.X
		}
		return circuit.FromBool(result)

	default:
		return circuit.X
	}
}

// operand evaluates whatever drives the node's i-th input socket
func (e *Evaluator) operand(n *circuit.Node, i int) circuit.LogicValue {
	if i >= len(n.Inputs) {
		return circuit.X
	}

	driver, ok := e.graph.Driver(n.Inputs[i].ID)
	if !ok {
		return circuit.X
	}

	src, ok := e.Arena.Node(driver.Node)
	if !ok {
		e.Stats.DanglingRefs++
		return circuit.X
	}
	if s, ok := src.Socket(driver.Socket); !ok || s.Kind != circuit.Output {
		e.Stats.DanglingRefs++
		return circuit.X
	}

	return e.eval(driver.Node)
}

// recordCycle marks every node from stack position pos to the top as cyclic
func (e *Evaluator) recordCycle(pos int) {
	e.Stats.CycleHits++
	cyclesDetectedTotal.Inc()
	for _, id := range e.stack[pos:] {
		e.cycles[id] = true
	}
}

// Cycles returns the nodes found on a cycle since the last ResetCycles
func (e *Evaluator) Cycles() []circuit.NodeID {
	ids := make([]circuit.NodeID, 0, len(e.cycles))
	for id := range e.cycles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ResetCycles forgets previously detected cycles
func (e *Evaluator) ResetCycles() {
	clear(e.cycles)
}
