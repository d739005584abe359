package engine

import (
	"fmt"

	"github.com/fyerfyer/illogical/pkg/circuit"
	"github.com/fyerfyer/illogical/pkg/utils"
)

// Session replays script commands against an engine, the same calls an
// interactive editor would make, and keeps the script's node names
type Session struct {
	Engine *Engine
	names  map[string]circuit.NodeID
	labels map[circuit.NodeID]string
}

// NewSession creates a session over the given engine
func NewSession(e *Engine) *Session {
	return &Session{
		Engine: e,
		names:  make(map[string]circuit.NodeID),
		labels: make(map[circuit.NodeID]string),
	}
}

// Lookup returns the node bound to a script name
func (s *Session) Lookup(name string) (circuit.NodeID, bool) {
	id, ok := s.names[name]
	return id, ok
}

// Label returns the script name of a node, or its id when it has none
func (s *Session) Label(id circuit.NodeID) string {
	if name, ok := s.labels[id]; ok {
		return name
	}
	return id.String()
}

// Labels maps ids to their script names
func (s *Session) Labels(ids []circuit.NodeID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, s.Label(id))
	}
	return names
}

// Named converts results to report rows
func (s *Session) Named(results []Result) []utils.NamedValue {
	values := make([]utils.NamedValue, 0, len(results))
	for _, r := range results {
		values = append(values, utils.NamedValue{Name: s.Label(r.Node), Kind: r.Kind, Value: r.Value})
	}
	return values
}

// Run applies every command in order. onResult, when non-nil, receives the
// output of tick and eval commands.
func (s *Session) Run(script *utils.Script, onResult func(cmd utils.Command, results []Result)) error {
	s.Engine.Logger.Info("Replaying %d commands from %s", len(script.Commands), script.Name)

	for _, cmd := range script.Commands {
		results, err := s.Apply(cmd)
		if err != nil {
			return fmt.Errorf("%s:%d: %s: %w", script.Name, cmd.Line, cmd.Type, err)
		}
		if onResult != nil && (cmd.Type == utils.CmdTick || cmd.Type == utils.CmdEval) {
			onResult(cmd, results)
		}
	}

	return nil
}

// Apply executes one command
func (s *Session) Apply(cmd utils.Command) ([]Result, error) {
	e := s.Engine

	switch cmd.Type {
	case utils.CmdNode:
		id := e.CreateNode(cmd.Kind, circuit.Position{})
		s.names[cmd.Name] = id
		s.labels[id] = cmd.Name
		if cmd.Initial {
			if err := e.ToggleInput(id); err != nil {
				return nil, err
			}
		}
		return nil, nil

	case utils.CmdConnect:
		from, to, err := s.endpoints(cmd)
		if err != nil {
			return nil, err
		}
		return nil, e.Connect(from, to)

	case utils.CmdDisconnect:
		from, to, err := s.endpoints(cmd)
		if err != nil {
			return nil, err
		}
		target := circuit.Edge{From: from, To: to}
		if e.Disconnect(func(edge circuit.Edge) bool { return edge == target }) == 0 {
			return nil, fmt.Errorf("no edge %s.%s -> %s.%s", cmd.From, cmd.FromOut, cmd.To, cmd.ToIn)
		}
		return nil, nil

	case utils.CmdToggle:
		id, n, err := s.node(cmd.Name)
		if err != nil {
			return nil, err
		}
		if n.Kind == circuit.DISPLAY {
			return nil, e.ToggleDisplay(id)
		}
		return nil, e.ToggleInput(id)

	case utils.CmdRemove:
		id, _, err := s.node(cmd.Name)
		if err != nil {
			return nil, err
		}
		if err := e.RemoveNode(id); err != nil {
			return nil, err
		}
		delete(s.names, cmd.Name)
		delete(s.labels, id)
		return nil, nil

	case utils.CmdTick:
		return e.Tick(), nil

	case utils.CmdEval:
		id, n, err := s.node(cmd.Name)
		if err != nil {
			return nil, err
		}
		return []Result{{Node: id, Kind: n.Kind, Value: e.Evaluate(id)}}, nil

	default:
		return nil, fmt.Errorf("unsupported command %s", cmd.Type)
	}
}

func (s *Session) node(name string) (circuit.NodeID, *circuit.Node, error) {
	id, ok := s.names[name]
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", circuit.ErrNodeNotFound, name)
	}
	n, ok := s.Engine.Circuit.Node(id)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", circuit.ErrNodeNotFound, name)
	}
	return id, n, nil
}

// endpoints resolves the socket labels of a connect or disconnect command
func (s *Session) endpoints(cmd utils.Command) (circuit.SocketRef, circuit.SocketRef, error) {
	_, src, err := s.node(cmd.From)
	if err != nil {
		return circuit.SocketRef{}, circuit.SocketRef{}, err
	}
	_, dst, err := s.node(cmd.To)
	if err != nil {
		return circuit.SocketRef{}, circuit.SocketRef{}, err
	}

	out, ok := src.SocketByName(cmd.FromOut)
	if !ok {
		return circuit.SocketRef{}, circuit.SocketRef{}, fmt.Errorf("%w: %s.%s", circuit.ErrSocketNotFound, cmd.From, cmd.FromOut)
	}
	in, ok := dst.SocketByName(cmd.ToIn)
	if !ok {
		return circuit.SocketRef{}, circuit.SocketRef{}, fmt.Errorf("%w: %s.%s", circuit.ErrSocketNotFound, cmd.To, cmd.ToIn)
	}

	return src.Ref(out), dst.Ref(in), nil
}
