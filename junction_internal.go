package roadnet

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// InternalLane is synthesized geometry of one link through a junction.
// A link with a crossing point is represented by two internal lanes: the primary one up to the
// crossing point and the split one after it.
type InternalLane struct {
	From     *Edge
	FromLane int
	To       *Edge
	Conn     *Connection

	Index  int    // Position in node traversal
	ID     string // Internal edge identifier, lane identifier is ID + "_0"
	Shape  orb.LineString
	Length float64
	Speed  float64

	Split       bool
	SplitOffset float64
	SplitPos    orb.Point
	SplitID     string
	SplitShape  orb.LineString
	SplitLength float64
}

// LaneID returns identifier of the (single) lane of the primary internal edge
func (lane *InternalLane) LaneID() string {
	return lane.ID + "_0"
}

// SplitLaneID returns identifier of the (single) lane of the split internal edge
func (lane *InternalLane) SplitLaneID() string {
	return lane.SplitID + "_0"
}

// Movement returns the link the internal lane belongs to
func (lane *InternalLane) Movement() Movement {
	return Movement{From: lane.From.ID, FromLane: lane.FromLane, To: lane.To.ID, ToLane: lane.Conn.ToLane}
}

// InternalLayout is every internal lane of a node in traversal order
type InternalLayout struct {
	Node *Node
	// Number of links with real destination edge. Split lanes are numbered starting from it
	NoSplits int
	Lanes    []*InternalLane

	byMovement map[Movement]*InternalLane
}

// LaneFor returns internal lane of given link or nil
func (layout *InternalLayout) LaneFor(m Movement) *InternalLane {
	return layout.byMovement[m]
}

// internalLaneIDs resolves links into identifiers of their primary internal lanes. Unknown links are skipped.
func (layout *InternalLayout) internalLaneIDs(movements []Movement) []string {
	ids := make([]string, 0, len(movements))
	for _, m := range movements {
		if lane := layout.LaneFor(m); lane != nil {
			ids = append(ids, lane.LaneID())
		}
	}
	return ids
}

// countInternalLanes returns number of (incoming lane, connection) pairs with destination edge set
func countInternalLanes(net *Network, node *Node) int {
	count := 0
	for _, inEdge := range net.IncomingEdges(node) {
		for j := 0; j < inEdge.NumLanes(); j++ {
			for _, conn := range inEdge.ConnectionsFromLane(j) {
				if conn.ToEdge == "" {
					continue
				}
				count++
			}
		}
	}
	return count
}

// SynthesizeInternalLanes derives internal lanes of the node.
//
// Traversal order: incoming edges in node order, their lanes by index, connections of each lane in stored order.
// Numbering depends on this order only, so repeated calls on unchanged node return identical identifiers.
// Connections with unset destination are skipped. Destination which is not in the network is an error.
func SynthesizeInternalLanes(net *Network, node *Node, row RightOfWay, logger *log.Logger) (*InternalLayout, error) {
	logger = loggerOrDefault(logger)
	layout := InternalLayout{
		Node:       node,
		NoSplits:   countInternalLanes(net, node),
		Lanes:      make([]*InternalLane, 0),
		byMovement: make(map[Movement]*InternalLane),
	}
	innerID := node.internalID()
	lno := 0
	splitNo := 0
	for _, inEdge := range net.IncomingEdges(node) {
		for j := 0; j < inEdge.NumLanes(); j++ {
			for _, conn := range inEdge.ConnectionsFromLane(j) {
				if conn.ToEdge == "" {
					continue
				}
				toEdge := net.Edge(conn.ToEdge)
				if toEdge == nil || toEdge.Lane(conn.ToLane) == nil {
					return nil, errors.Wrapf(ErrDanglingConnection, "connection from '%s' lane %d to '%s' lane %d", inEdge.ID, j, conn.ToEdge, conn.ToLane)
				}
				lane := InternalLane{
					From:     inEdge,
					FromLane: j,
					To:       toEdge,
					Conn:     conn,
					Index:    lno,
					ID:       fmt.Sprintf("%s_%d", innerID, lno),
					Speed:    internalLaneSpeed(inEdge, j, toEdge, conn.ToLane, logger),
				}
				shape := row.InternalLaneShape(node, inEdge, j, toEdge, conn.ToLane)
				if len(shape) < 2 {
					shape = orb.LineString{laneEnd(inEdge.Lane(j)), laneBegin(toEdge.Lane(conn.ToLane))}
				}
				if cross, ok := row.CrossingPosition(node, inEdge, j, toEdge, conn.ToLane); ok {
					first, second := splitAt(shape, cross)
					lane.Shape = first
					lane.Split = true
					lane.SplitOffset = cross
					lane.SplitPos = positionAtLength(shape, cross)
					lane.SplitID = fmt.Sprintf("%s_%d", innerID, layout.NoSplits+splitNo)
					lane.SplitShape = second
					lane.SplitLength = internalLaneLength(second)
					splitNo++
				} else {
					lane.Shape = shape
				}
				lane.Length = internalLaneLength(lane.Shape)
				conn.Via = lane.LaneID()
				layout.Lanes = append(layout.Lanes, &lane)
				m := lane.Movement()
				if _, ok := layout.byMovement[m]; !ok {
					layout.byMovement[m] = &lane
				}
				lno++
			}
		}
	}
	return &layout, nil
}

// internalLaneSpeed returns mean speed of bordering edges.
// Curvature based bound is reported only: the mean is what gets written.
func internalLaneSpeed(from *Edge, fromLane int, to *Edge, toLane int, logger *log.Logger) float64 {
	mean := (from.Speed + to.Speed) / 2.0
	bound := curvatureSpeedBound(laneEnd(from.Lane(fromLane)), laneBegin(to.Lane(toLane)))
	if bound < mean {
		logger.Debug("Internal lane speed exceeds curvature bound", "from", from.ID, "to", to.ID, "speed", mean, "bound", bound)
	}
	return mean
}

// internalLaneLength returns geometric length floored at positionEps
func internalLaneLength(shape orb.LineString) float64 {
	return math.Max(lineLength(shape), positionEps)
}

func laneEnd(lane *Lane) orb.Point {
	if lane == nil || len(lane.Shape) == 0 {
		return orb.Point{}
	}
	return lane.Shape[len(lane.Shape)-1]
}

func laneBegin(lane *Lane) orb.Point {
	if lane == nil || len(lane.Shape) == 0 {
		return orb.Point{}
	}
	return lane.Shape[0]
}
