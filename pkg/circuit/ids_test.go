package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorIsMonotonic(t *testing.T) {
	alloc := NewAllocator()

	prev := alloc.Next()
	for i := 0; i < 100; i++ {
		next := alloc.Next()
		require.Greater(t, next, prev)
		prev = next
	}
	assert.Equal(t, uint64(101), alloc.Issued())
}

func TestAllocatorSharesCounterBetweenNodesAndSockets(t *testing.T) {
	alloc := NewAllocator()

	seen := make(map[uint64]bool)
	for _, kind := range Kinds() {
		n := NewNode(alloc, kind, Position{})
		ids := []uint64{uint64(n.ID)}
		for _, s := range n.Inputs {
			ids = append(ids, uint64(s.ID))
		}
		for _, s := range n.Outputs {
			ids = append(ids, uint64(s.ID))
		}
		for _, id := range ids {
			assert.False(t, seen[id], "id %d handed out twice", id)
			seen[id] = true
		}
	}
}

func TestIdsAreNotReusedAfterRemoval(t *testing.T) {
	c := newTestCircuit()

	first := c.AddNode(AND, Position{})
	require.NoError(t, c.RemoveNode(first.ID))

	second := c.AddNode(AND, Position{})
	assert.NotEqual(t, first.ID, second.ID)
	for _, s := range second.Inputs {
		for _, old := range first.Inputs {
			assert.NotEqual(t, old.ID, s.ID)
		}
	}
}
