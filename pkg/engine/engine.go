package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/fyerfyer/illogical/pkg/circuit"
	"github.com/fyerfyer/illogical/pkg/utils"
)

// Stats contains statistics about the engine's lifetime
type Stats struct {
	Ticks     int           // Calls to Tick
	Sweeps    int           // Ticks that found the flag raised
	Rebuilds  int           // Dependency graph rebuilds caused by wiring changes
	LastSweep time.Duration // Duration of the most recent sweep
}

// Result is the value of one node after a sweep
type Result struct {
	Node  circuit.NodeID
	Kind  circuit.GateKind
	Value circuit.LogicValue
}

// String returns a string representation of the result
func (r Result) String() string {
	return fmt.Sprintf("%s(%s)=%s", r.Node, r.Kind, r.Value)
}

// Engine is the surface the editor's UI layer drives: it creates nodes,
// changes the wiring, flips switches and asks for a sweep once per frame.
// An Engine must be used from a single control loop.
type Engine struct {
	Circuit   *circuit.Circuit
	Logger    *utils.Logger
	Evaluator *Evaluator
	Trigger   *Trigger
	Stats     Stats

	last map[circuit.NodeID]circuit.LogicValue
}

// New creates an engine over an empty circuit with its own id allocator
func New(name string, logger *utils.Logger, maxDepth int) *Engine {
	if logger == nil {
		logger = utils.DefaultLogger
	}

	c := circuit.NewCircuit(name, circuit.NewAllocator())

	return &Engine{
		Circuit:   c,
		Logger:    logger,
		Evaluator: NewEvaluator(c, logger, maxDepth),
		Trigger:   NewTrigger(logger),
		last:      make(map[circuit.NodeID]circuit.LogicValue),
	}
}

// NewFromConfig creates an engine using the name and depth limit of cfg
func NewFromConfig(cfg utils.Config, logger *utils.Logger) *Engine {
	return New(cfg.Name, logger, cfg.MaxDepth)
}

// CreateNode adds a node of the given kind. The new node is reported by the
// next tick.
func (e *Engine) CreateNode(kind circuit.GateKind, pos circuit.Position) circuit.NodeID {
	n := e.Circuit.AddNode(kind, pos)
	e.Logger.Circuit("Created %s with %d inputs, %d outputs", n, len(n.Inputs), len(n.Outputs))
	e.Trigger.MarkDirty(SourceCreate)
	return n.ID
}

// Connect wires an output socket to an input socket
func (e *Engine) Connect(from, to circuit.SocketRef) error {
	if err := e.Circuit.Connect(from, to); err != nil {
		connectErrorsTotal.WithLabelValues(connectErrorReason(err)).Inc()
		e.Logger.Debug("Rejected connection %s -> %s: %v", from, to, err)
		return err
	}

	e.Logger.Circuit("Connected %s -> %s", from, to)
	e.afterRebuild()
	e.Trigger.MarkDirty(SourceConnect)
	return nil
}

// Disconnect removes every edge matching pred and returns how many were removed
func (e *Engine) Disconnect(pred func(circuit.Edge) bool) int {
	removed := e.Circuit.Disconnect(pred)
	if removed == 0 {
		return 0
	}

	e.Logger.Circuit("Disconnected %d edge(s)", removed)
	e.afterRebuild()
	e.Trigger.MarkDirty(SourceDisconnect)
	return removed
}

// RemoveNode deletes a node together with its wiring
func (e *Engine) RemoveNode(id circuit.NodeID) error {
	edges := len(e.Circuit.Edges())
	if err := e.Circuit.RemoveNode(id); err != nil {
		return err
	}

	e.Logger.Circuit("Removed %s", id)
	if len(e.Circuit.Edges()) != edges {
		e.afterRebuild()
	}
	e.Trigger.MarkDirty(SourceRemove)
	return nil
}

// ToggleInput flips the state of an INPUT node
func (e *Engine) ToggleInput(id circuit.NodeID) error {
	if err := e.requireKind(id, circuit.INPUT); err != nil {
		return err
	}
	if err := e.Circuit.Toggle(id); err != nil {
		return err
	}

	e.Trigger.MarkDirty(SourceToggleInput)
	return nil
}

// ToggleDisplay flips the shown state of a DISPLAY node and requests a
// sweep, which overwrites it with the upstream value again
func (e *Engine) ToggleDisplay(id circuit.NodeID) error {
	if err := e.requireKind(id, circuit.DISPLAY); err != nil {
		return err
	}
	if err := e.Circuit.Toggle(id); err != nil {
		return err
	}

	e.Trigger.MarkDirty(SourceToggleDisplay)
	return nil
}

func (e *Engine) requireKind(id circuit.NodeID, kind circuit.GateKind) error {
	n, ok := e.Circuit.Node(id)
	if !ok {
		return fmt.Errorf("%w: %s", circuit.ErrNodeNotFound, id)
	}
	if n.Kind != kind {
		return fmt.Errorf("%w: %s is %s, not %s", ErrWrongGateKind, id, n.Kind, kind)
	}
	return nil
}

// Evaluate computes the current value of one node on demand
func (e *Engine) Evaluate(id circuit.NodeID) circuit.LogicValue {
	return e.Evaluator.Evaluate(id)
}

// Tick sweeps every node once if the dirty flag is raised, then clears it.
// It returns the nodes whose value differs from the previous sweep, or nil
// when nothing was pending.
func (e *Engine) Tick() []Result {
	e.Stats.Ticks++
	ticksTotal.Inc()

	if !e.Trigger.IsDirty() {
		return nil
	}

	start := time.Now()
	e.Logger.Debug("Sweeping %d nodes (raised by %v)", e.Circuit.NodeCount(), e.Trigger.Sources())
	e.Logger.Indent()
	defer e.Logger.Outdent()

	e.Evaluator.ResetCycles()

	results := make([]Result, 0)
	current := make(map[circuit.NodeID]circuit.LogicValue, e.Circuit.NodeCount())

	for _, n := range e.Circuit.Nodes() {
		value := e.Evaluator.Evaluate(n.ID)
		current[n.ID] = value

		if prev, seen := e.last[n.ID]; !seen || prev != value {
			results = append(results, Result{Node: n.ID, Kind: n.Kind, Value: value})
		}
	}

	if cycles := e.Evaluator.Cycles(); len(cycles) > 0 {
		e.Logger.Warning("Nodes on a cycle evaluate to X: %v", cycles)
	}

	e.last = current
	e.Trigger.Clear()

	e.Stats.Sweeps++
	e.Stats.LastSweep = time.Since(start)
	sweepsTotal.Inc()
	sweepDuration.Observe(e.Stats.LastSweep.Seconds())

	e.Logger.Debug("Sweep finished in %v, %d changed", e.Stats.LastSweep, len(results))
	return results
}

// Values returns the node values recorded by the most recent sweep
func (e *Engine) Values() map[circuit.NodeID]circuit.LogicValue {
	values := make(map[circuit.NodeID]circuit.LogicValue, len(e.last))
	for id, v := range e.last {
		values[id] = v
	}
	return values
}

// afterRebuild records a graph rebuild and reports cycles in the new wiring
func (e *Engine) afterRebuild() {
	e.Stats.Rebuilds++
	graphRebuildsTotal.Inc()

	graph := e.Circuit.Graph()
	e.Logger.Graph("Rebuilt dependency graph from %d edges", graph.EdgeCount())

	topo := e.Circuit.Analyze()
	if topo.HasCycle() {
		e.Logger.Warning("Wiring contains a cycle through %v", topo.CyclicNodes())
	}
}

// connectErrorReason maps a Connect error to a metric label
func connectErrorReason(err error) string {
	switch {
	case errors.Is(err, circuit.ErrWrongSocketKind):
		return "wrong_kind"
	case errors.Is(err, circuit.ErrDuplicateEdge):
		return "duplicate"
	case errors.Is(err, circuit.ErrInputOccupied):
		return "occupied"
	case errors.Is(err, circuit.ErrNodeNotFound), errors.Is(err, circuit.ErrSocketNotFound):
		return "not_found"
	default:
		return "other"
	}
}
