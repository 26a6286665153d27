package roadnet

import (
	"github.com/paulmach/orb"
)

type LinkDirection uint16

const (
	LINKDIR_STRAIGHT = LinkDirection(iota + 1)
	LINKDIR_TURN
	LINKDIR_LEFT
	LINKDIR_RIGHT
	LINKDIR_PARTLEFT
	LINKDIR_PARTRIGHT
	LINKDIR_NODIR = LinkDirection(0)
)

func (iotaIdx LinkDirection) String() string {
	return [...]string{"invalid", "s", "t", "l", "r", "L", "R"}[iotaIdx]
}

type LinkState uint16

const (
	LINKSTATE_MAJOR = LinkState(iota + 1)
	LINKSTATE_MINOR
	LINKSTATE_EQUAL
	LINKSTATE_TL_GREEN_MAJOR
	LINKSTATE_TL_GREEN_MINOR
	LINKSTATE_TL_RED
	LINKSTATE_TL_YELLOW
	LINKSTATE_TL_OFF_BLINKING
	LINKSTATE_TL_OFF_NOSIGNAL
	LINKSTATE_DEADEND
)

func (iotaIdx LinkState) String() string {
	return [...]string{"undefined", "M", "m", "=", "G", "g", "r", "y", "o", "O", "-"}[iotaIdx]
}

// Movement identifies a lane-to-lane link through a node
type Movement struct {
	From     EdgeID
	FromLane int
	To       EdgeID
	ToLane   int
}

// RightOfWay is the set of queries the writer needs from a right-of-way engine.
// Every query concerns one node and one (incoming lane, destination lane) link unless stated otherwise.
type RightOfWay interface {
	// CrossingPosition returns offset along the internal lane shape where the link has to wait for foes.
	// False means no internal split is needed.
	CrossingPosition(node *Node, from *Edge, fromLane int, to *Edge, toLane int) (float64, bool)
	// InternalLaneShape returns geometry of the path through the junction
	InternalLaneShape(node *Node, from *Edge, fromLane int, to *Edge, toLane int) orb.LineString
	// CrossingSources returns further links whose internal lanes lead into the crossing point of a split link
	CrossingSources(node *Node, from *Edge, fromLane int, to *Edge, toLane int) []Movement
	// CrossedMovements returns links whose internal lanes are crossed at the crossing point of a split link
	CrossedMovements(node *Node, from *Edge, fromLane int, to *Edge, toLane int) []Movement
	// LinkDirection classifies the movement between two edges
	LinkDirection(node *Node, from *Edge, to *Edge) LinkDirection
	// LinkState returns right-of-way state of the link
	LinkState(node *Node, from *Edge, to *Edge, toLane int, mayDefinitelyPass bool) LinkState
	// JunctionLogic returns serialized right-of-way logic of the node. One element per line, no indentation.
	JunctionLogic(node *Node) string
}
