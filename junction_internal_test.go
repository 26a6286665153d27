package roadnet

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRightOfWay splits given movements at fixed offsets and answers the rest with constants
type stubRightOfWay struct {
	crossings map[Movement]float64
	sources   map[Movement][]Movement
	crossed   map[Movement][]Movement
	direction LinkDirection
}

func newStubRightOfWay() *stubRightOfWay {
	return &stubRightOfWay{
		crossings: make(map[Movement]float64),
		sources:   make(map[Movement][]Movement),
		crossed:   make(map[Movement][]Movement),
		direction: LINKDIR_STRAIGHT,
	}
}

func (row *stubRightOfWay) CrossingPosition(node *Node, from *Edge, fromLane int, to *Edge, toLane int) (float64, bool) {
	pos, ok := row.crossings[Movement{From: from.ID, FromLane: fromLane, To: to.ID, ToLane: toLane}]
	return pos, ok
}

func (row *stubRightOfWay) InternalLaneShape(node *Node, from *Edge, fromLane int, to *Edge, toLane int) orb.LineString {
	return nil
}

func (row *stubRightOfWay) CrossingSources(node *Node, from *Edge, fromLane int, to *Edge, toLane int) []Movement {
	return row.sources[Movement{From: from.ID, FromLane: fromLane, To: to.ID, ToLane: toLane}]
}

func (row *stubRightOfWay) CrossedMovements(node *Node, from *Edge, fromLane int, to *Edge, toLane int) []Movement {
	return row.crossed[Movement{From: from.ID, FromLane: fromLane, To: to.ID, ToLane: toLane}]
}

func (row *stubRightOfWay) LinkDirection(node *Node, from *Edge, to *Edge) LinkDirection {
	return row.direction
}

func (row *stubRightOfWay) LinkState(node *Node, from *Edge, to *Edge, toLane int, mayDefinitelyPass bool) LinkState {
	return LINKSTATE_MAJOR
}

func (row *stubRightOfWay) JunctionLogic(node *Node) string {
	return ""
}

func TestSynthesizeInternalLanes(t *testing.T) {
	t.Run("Numbering", func(t *testing.T) {
		net := newCrossroads(t, 1)
		ComputeTurnDirections(net, nil)
		GuessConnections(net, true, nil)
		row := newStubRightOfWay()
		layout, err := SynthesizeInternalLanes(net, net.Node("C"), row, nil)
		require.NoError(t, err)
		require.Len(t, layout.Lanes, 12)
		assert.Equal(t, 12, layout.NoSplits)
		for i, lane := range layout.Lanes {
			assert.Equal(t, i, lane.Index)
			assert.False(t, lane.Split)
			assert.Equal(t, lane.LaneID(), lane.Conn.Via)
			assert.GreaterOrEqual(t, lane.Length, positionEps)
			assert.InDelta(t, testSpeed, lane.Speed, 1e-9)
		}
		// Incoming edges in node order, connections in stored order
		assert.Equal(t, ":C_0", layout.Lanes[0].ID)
		assert.Equal(t, EdgeID("N_C"), layout.Lanes[0].From.ID)
		assert.Equal(t, EdgeID("C_E"), layout.Lanes[0].To.ID)
		assert.Equal(t, EdgeID("S_C"), layout.Lanes[3].From.ID)
		assert.Equal(t, ":C_11_0", layout.Lanes[11].LaneID())

		again, err := SynthesizeInternalLanes(net, net.Node("C"), row, nil)
		require.NoError(t, err)
		for i := range layout.Lanes {
			assert.Equal(t, layout.Lanes[i].ID, again.Lanes[i].ID)
			assert.Equal(t, layout.Lanes[i].Movement(), again.Lanes[i].Movement())
		}
	})

	t.Run("Straight lane geometry", func(t *testing.T) {
		net := newCrossroads(t, 1)
		net.Edge("S_C").AddConnection(&Connection{FromLane: 0, ToEdge: "C_N", ToLane: 0})
		layout, err := SynthesizeInternalLanes(net, net.Node("C"), newStubRightOfWay(), nil)
		require.NoError(t, err)
		require.Len(t, layout.Lanes, 1)
		lane := layout.Lanes[0]
		// From the end of incoming lane to the begin of outgoing one
		assert.Equal(t, orb.LineString{{1.6, -10}, {1.6, 10}}, lane.Shape)
		assert.InDelta(t, 20.0, lane.Length, 1e-9)
	})

	t.Run("Split", func(t *testing.T) {
		net := newCrossroads(t, 1)
		net.Edge("S_C").AddConnection(&Connection{FromLane: 0, ToEdge: "C_N", ToLane: 0})
		net.Edge("S_C").AddConnection(&Connection{FromLane: 0, ToEdge: "C_E", ToLane: 0})
		net.Edge("E_C").AddConnection(&Connection{FromLane: 0, ToEdge: "C_W", ToLane: 0})
		row := newStubRightOfWay()
		row.crossings[Movement{From: "S_C", FromLane: 0, To: "C_N", ToLane: 0}] = 5.0
		layout, err := SynthesizeInternalLanes(net, net.Node("C"), row, nil)
		require.NoError(t, err)
		require.Len(t, layout.Lanes, 3)
		assert.Equal(t, 3, layout.NoSplits)

		lane := layout.LaneFor(Movement{From: "S_C", FromLane: 0, To: "C_N", ToLane: 0})
		require.NotNil(t, lane)
		assert.True(t, lane.Split)
		assert.Equal(t, ":C_0", lane.ID)
		assert.Equal(t, ":C_3", lane.SplitID)
		assert.Equal(t, ":C_0_0", lane.Conn.Via)
		assert.InDelta(t, 5.0, lane.Length, 1e-9)
		assert.InDelta(t, 15.0, lane.SplitLength, 1e-9)
		assert.InDelta(t, 1.6, lane.SplitPos.X(), 1e-9)
		assert.InDelta(t, -5.0, lane.SplitPos.Y(), 1e-9)

		assert.False(t, layout.Lanes[1].Split)
		assert.Equal(t, ":C_1", layout.Lanes[1].ID)
		assert.Equal(t, []string{":C_1_0", ":C_2_0"}, layout.internalLaneIDs([]Movement{
			{From: "S_C", FromLane: 0, To: "C_E", ToLane: 0},
			{From: "S_C", FromLane: 0, To: "C_S", ToLane: 0},
			{From: "E_C", FromLane: 0, To: "C_W", ToLane: 0},
		}))
	})

	t.Run("Unterminated connections are skipped", func(t *testing.T) {
		net := newCrossroads(t, 1)
		net.Edge("S_C").AddConnection(&Connection{FromLane: 0, ToEdge: "", ToLane: 0})
		net.Edge("S_C").AddConnection(&Connection{FromLane: 0, ToEdge: "C_N", ToLane: 0})
		layout, err := SynthesizeInternalLanes(net, net.Node("C"), newStubRightOfWay(), nil)
		require.NoError(t, err)
		require.Len(t, layout.Lanes, 1)
		assert.Equal(t, ":C_0", layout.Lanes[0].ID)
	})

	t.Run("Dangling connection", func(t *testing.T) {
		net := newCrossroads(t, 1)
		net.Edge("S_C").AddConnection(&Connection{FromLane: 0, ToEdge: "C_N", ToLane: 5})
		_, err := SynthesizeInternalLanes(net, net.Node("C"), newStubRightOfWay(), nil)
		assert.ErrorIs(t, err, ErrDanglingConnection)
	})

	t.Run("Zero length lane", func(t *testing.T) {
		net := NewNetwork()
		require.NoError(t, net.AddNode(NewNode("A", orb.Point{0, 0})))
		require.NoError(t, net.AddNode(NewNode("B", orb.Point{100, 0})))
		require.NoError(t, net.AddNode(NewNode("C", orb.Point{200, 0})))
		require.NoError(t, net.AddEdge(NewEdge("A_B", "A", "B", 1, testSpeed, nil)))
		require.NoError(t, net.AddEdge(NewEdge("B_C", "B", "C", 1, testSpeed, nil)))
		net.Edge("A_B").AddConnection(&Connection{FromLane: 0, ToEdge: "B_C", ToLane: 0})
		layout, err := SynthesizeInternalLanes(net, net.Node("B"), newStubRightOfWay(), nil)
		require.NoError(t, err)
		require.Len(t, layout.Lanes, 1)
		assert.InDelta(t, positionEps, layout.Lanes[0].Length, 1e-9)
	})
}
