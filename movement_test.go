package roadnet

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometricRightOfWay(t *testing.T) {
	net := newCrossroads(t, 1)
	ComputeTurnDirections(net, nil)
	GuessConnections(net, false, nil)
	row := NewGeometricRightOfWay(net)
	center := net.Node("C")
	from := net.Edge("S_C")

	t.Run("Link directions", func(t *testing.T) {
		assert.Equal(t, LINKDIR_STRAIGHT, row.LinkDirection(center, from, net.Edge("C_N")))
		assert.Equal(t, LINKDIR_LEFT, row.LinkDirection(center, from, net.Edge("C_W")))
		assert.Equal(t, LINKDIR_RIGHT, row.LinkDirection(center, from, net.Edge("C_E")))
		assert.Equal(t, LINKDIR_TURN, row.LinkDirection(center, from, net.Edge("C_S")))
		assert.Equal(t, LINKDIR_NODIR, row.LinkDirection(center, from, nil))
		assert.Equal(t, "l", LINKDIR_LEFT.String())
	})

	t.Run("Left turn waits inside the junction", func(t *testing.T) {
		pos, ok := row.CrossingPosition(center, from, 0, net.Edge("C_W"), 0)
		require.True(t, ok)
		length := lineLength(row.InternalLaneShape(center, from, 0, net.Edge("C_W"), 0))
		assert.Greater(t, pos, positionEps)
		assert.Less(t, pos, length)

		crossed := row.CrossedMovements(center, from, 0, net.Edge("C_W"), 0)
		assert.Contains(t, crossed, Movement{From: "N_C", FromLane: 0, To: "C_S", ToLane: 0})

		_, ok = row.CrossingPosition(center, from, 0, net.Edge("C_N"), 0)
		assert.False(t, ok)
		_, ok = row.CrossingPosition(center, from, 0, net.Edge("C_E"), 0)
		assert.False(t, ok)
	})

	t.Run("Curved shape of turns", func(t *testing.T) {
		shape := row.InternalLaneShape(center, from, 0, net.Edge("C_W"), 0)
		assert.Len(t, shape, curveResolution+2)
		straight := row.InternalLaneShape(center, from, 0, net.Edge("C_N"), 0)
		assert.Len(t, straight, 2)
	})

	t.Run("Priorities", func(t *testing.T) {
		net.Edge("S_C").Priority = 5
		net.Edge("N_C").Priority = 5
		net.Edge("E_C").Priority = 1
		net.Edge("W_C").Priority = 1
		assert.Equal(t, LINKSTATE_MAJOR, row.LinkState(center, from, net.Edge("C_N"), 0, false))
		assert.Equal(t, LINKSTATE_MINOR, row.LinkState(center, net.Edge("E_C"), net.Edge("C_W"), 0, false))
		assert.Equal(t, LINKSTATE_MAJOR, row.LinkState(center, net.Edge("E_C"), net.Edge("C_W"), 0, true))
	})

	t.Run("Junction logic", func(t *testing.T) {
		logic := row.JunctionLogic(center)
		requests := strings.Split(logic, "\n")
		// Every incoming edge has four links
		require.Len(t, requests, 16)
		assert.True(t, strings.HasPrefix(requests[0], `<request index="0" response="`))
		assert.Empty(t, row.JunctionLogic(NewNode("X", orb.Point{})))
	})
}
