package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/illogical/pkg/circuit"
	"github.com/fyerfyer/illogical/pkg/utils"
)

func parse(t *testing.T, src string) *utils.Script {
	t.Helper()
	script, err := utils.ParseScript(strings.NewReader(src), "test")
	require.NoError(t, err)
	return script
}

func TestSessionRun(t *testing.T) {
	script := parse(t, `
a = INPUT(1)
b = INPUT
g = AND
d = DISPLAY
a -> g.a
b.out -> g.b
g -> d.in
tick
eval d
toggle b
eval d
disconnect a -> g.a
eval g
`)

	s := NewSession(newTestEngine())
	outputs := make([][]Result, 0)
	err := s.Run(script, func(cmd utils.Command, results []Result) {
		outputs = append(outputs, results)
	})
	require.NoError(t, err)
	require.Len(t, outputs, 4)

	assert.Len(t, outputs[0], 4)
	d, ok := s.Lookup("d")
	require.True(t, ok)
	g, ok := s.Lookup("g")
	require.True(t, ok)

	assert.Equal(t, []Result{{Node: d, Kind: circuit.DISPLAY, Value: circuit.Zero}}, outputs[1])
	assert.Equal(t, []Result{{Node: d, Kind: circuit.DISPLAY, Value: circuit.One}}, outputs[2])
	assert.Equal(t, []Result{{Node: g, Kind: circuit.AND, Value: circuit.X}}, outputs[3])

	named := s.Named(outputs[0])
	assert.Equal(t, []string{"a", "b", "g", "d"}, []string{named[0].Name, named[1].Name, named[2].Name, named[3].Name})
}

func TestSessionRemove(t *testing.T) {
	script := parse(t, `
a = INPUT
n = NOT
a -> n.in
remove a
`)

	s := NewSession(newTestEngine())
	require.NoError(t, s.Run(script, nil))

	_, ok := s.Lookup("a")
	assert.False(t, ok)
	n, _ := s.Lookup("n")
	assert.Equal(t, "n", s.Label(n))
	assert.Equal(t, []string{"n", "n99"}, s.Labels([]circuit.NodeID{n, 99}))
	assert.Empty(t, s.Engine.Circuit.Edges())
}

func TestSessionErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target error
		text   string
	}{
		{
			name:   "unknown socket",
			src:    "a = INPUT\nn = NOT\nn -> a.in",
			target: circuit.ErrSocketNotFound,
			text:   "test:3: connect",
		},
		{
			name:   "occupied input",
			src:    "a = INPUT\nb = INPUT\nn = NOT\na -> n.in\nb -> n.in",
			target: circuit.ErrInputOccupied,
			text:   "test:5",
		},
		{
			name:   "toggle gate",
			src:    "g = XOR\ntoggle g",
			target: ErrWrongGateKind,
			text:   "test:2: toggle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(newTestEngine())
			err := s.Run(parse(t, tt.src), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.text)
		})
	}
}

func TestSessionDisconnectMissingEdge(t *testing.T) {
	s := NewSession(newTestEngine())
	err := s.Run(parse(t, "a = INPUT\nn = NOT\ndisconnect a -> n.in"), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no edge a.out -> n.in")
}

func TestSessionToggleDisplay(t *testing.T) {
	s := NewSession(newTestEngine())
	require.NoError(t, s.Run(parse(t, "d = DISPLAY\ntoggle d"), nil))

	id, _ := s.Lookup("d")
	n, _ := s.Engine.Circuit.Node(id)
	assert.True(t, n.State())
	assert.Equal(t, []string{SourceCreate, SourceToggleDisplay}, s.Engine.Trigger.Sources())
}
