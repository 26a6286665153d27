package roadnet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turnDestinations(net *Network) map[EdgeID]EdgeID {
	result := make(map[EdgeID]EdgeID)
	for _, edge := range net.Edges() {
		result[edge.ID] = edge.TurnDestination()
	}
	return result
}

func TestComputeTurnDirections(t *testing.T) {
	t.Run("Four-way intersection", func(t *testing.T) {
		net := newCrossroads(t, 2)
		buf := bytes.Buffer{}
		ComputeTurnDirections(net, NewLogger(&buf, log.WarnLevel))
		for _, arm := range crossroadsArms {
			in := net.Edge(EdgeID(string(arm) + "_C"))
			out := net.Edge(EdgeID("C_" + string(arm)))
			assert.Equal(t, out.ID, in.TurnDestination(), "incoming edge %s", in.ID)
			// Dead ends turn back as well
			assert.Equal(t, in.ID, out.TurnDestination(), "incoming edge %s", out.ID)
		}
		assert.Empty(t, buf.String())
	})

	t.Run("No two incoming edges share turnaround", func(t *testing.T) {
		net := newCrossroads(t, 1)
		ComputeTurnDirections(net, nil)
		for _, node := range net.Nodes() {
			seen := make(map[EdgeID]EdgeID)
			for _, inEdge := range net.IncomingEdges(node) {
				turn := inEdge.TurnDestination()
				if turn == "" {
					continue
				}
				other, ok := seen[turn]
				assert.False(t, ok, "edges %s and %s share turnaround %s", inEdge.ID, other, turn)
				seen[turn] = inEdge.ID
			}
		}
	})

	t.Run("Only wide angles are turnarounds", func(t *testing.T) {
		net := NewNetwork()
		require.NoError(t, net.AddNode(NewNode("A", orb.Point{-100, 0})))
		require.NoError(t, net.AddNode(NewNode("B", orb.Point{0, 100})))
		require.NoError(t, net.AddNode(NewNode("C", orb.Point{0, 0})))
		require.NoError(t, net.AddNode(NewNode("D", orb.Point{-100, 10})))
		addTestEdge(t, net, "A_C", "A", "C", 1, nil)
		addTestEdge(t, net, "C_B", "C", "B", 1, nil)
		// Opposite, but 174 degrees only and without reverse bonus
		addTestEdge(t, net, "C_D", "C", "D", 1, nil)
		ComputeTurnDirections(net, nil)
		assert.Equal(t, EdgeID("C_D"), net.Edge("A_C").TurnDestination())

		net = NewNetwork()
		require.NoError(t, net.AddNode(NewNode("A", orb.Point{-100, 0})))
		require.NoError(t, net.AddNode(NewNode("B", orb.Point{0, 100})))
		require.NoError(t, net.AddNode(NewNode("C", orb.Point{0, 0})))
		addTestEdge(t, net, "A_C", "A", "C", 1, nil)
		addTestEdge(t, net, "C_B", "C", "B", 1, nil)
		ComputeTurnDirections(net, nil)
		assert.Equal(t, EdgeID(""), net.Edge("A_C").TurnDestination())
	})

	t.Run("Reverse edge wins over straighter one", func(t *testing.T) {
		net := NewNetwork()
		require.NoError(t, net.AddNode(NewNode("A", orb.Point{-100, 0})))
		require.NoError(t, net.AddNode(NewNode("C", orb.Point{0, 0})))
		require.NoError(t, net.AddNode(NewNode("D", orb.Point{-100, 1})))
		addTestEdge(t, net, "A_C", "A", "C", 1, nil)
		addTestEdge(t, net, "C_D", "C", "D", 1, nil)
		// Reverse edge deviates from exact opposite direction more than C_D does
		addTestEdge(t, net, "C_A", "C", "A", 1, orb.LineString{{0, 0}, {-50, -10}, {-100, 0}})
		ComputeTurnDirections(net, nil)
		assert.Equal(t, EdgeID("C_A"), net.Edge("A_C").TurnDestination())
	})

	t.Run("Ambiguity is reported once per node", func(t *testing.T) {
		// Both A and C have three candidates sharing the same edge
		net := NewNetwork()
		require.NoError(t, net.AddNode(NewNode("A", orb.Point{-100, 0})))
		require.NoError(t, net.AddNode(NewNode("C", orb.Point{0, 0})))
		addTestEdge(t, net, "A_C_0", "A", "C", 1, nil)
		addTestEdge(t, net, "A_C_1", "A", "C", 1, nil)
		addTestEdge(t, net, "A_C_2", "A", "C", 1, nil)
		addTestEdge(t, net, "C_A", "C", "A", 1, nil)
		buf := bytes.Buffer{}
		ComputeTurnDirections(net, NewLogger(&buf, log.WarnLevel))
		assert.Equal(t, EdgeID("C_A"), net.Edge("A_C_0").TurnDestination())
		assert.Equal(t, EdgeID(""), net.Edge("A_C_1").TurnDestination())
		assert.Equal(t, EdgeID(""), net.Edge("A_C_2").TurnDestination())
		assert.Equal(t, 2, strings.Count(buf.String(), "Ambiguity in turnarounds computation"))
	})

	t.Run("Existing connections restrict candidates", func(t *testing.T) {
		net := newCrossroads(t, 1)
		net.Edge("S_C").AddConnection(&Connection{FromLane: 0, ToEdge: "C_N", ToLane: 0})
		ComputeTurnDirections(net, nil)
		assert.Equal(t, EdgeID(""), net.Edge("S_C").TurnDestination())
		assert.Equal(t, EdgeID("C_N"), net.Edge("N_C").TurnDestination())
	})

	t.Run("Idempotent", func(t *testing.T) {
		net := newCrossroads(t, 2)
		ComputeTurnDirections(net, nil)
		first := turnDestinations(net)
		ComputeTurnDirections(net, nil)
		assert.Equal(t, first, turnDestinations(net))

		GuessConnections(net, false, nil)
		ComputeTurnDirections(net, nil)
		assert.Equal(t, first, turnDestinations(net))
	})
}
