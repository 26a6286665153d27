package roadnet

import (
	"github.com/paulmach/orb"
)

/* Nodes stuff */

type NodeID string

type NodeType uint16

const (
	NODE_PRIORITY = NodeType(iota + 1)
	NODE_TRAFFIC_LIGHT
	NODE_DEAD_END
	NODE_INTERNAL
)

func (iotaIdx NodeType) String() string {
	return [...]string{"undefined", "priority", "traffic_light", "dead_end", "internal"}[iotaIdx]
}

// Node is an intersection or a network terminus
type Node struct {
	incomingEdges []EdgeID
	outgoingEdges []EdgeID

	ID        NodeID
	Type      NodeType
	TLID      string // Identifier of controlling traffic light (empty if none)
	Pos       orb.Point
	Shape     orb.LineString // Boundary polygon. May be empty
}

// NewNode creates node of priority type at given position
func NewNode(id NodeID, pos orb.Point) *Node {
	return &Node{
		incomingEdges: make([]EdgeID, 0),
		outgoingEdges: make([]EdgeID, 0),
		ID:            id,
		Type:          NODE_PRIORITY,
		Pos:           pos,
	}
}

// IncomingEdges returns identifiers of incoming edges in insertion order
func (node *Node) IncomingEdges() []EdgeID {
	return node.incomingEdges
}

// OutgoingEdges returns identifiers of outgoing edges in insertion order
func (node *Node) OutgoingEdges() []EdgeID {
	return node.outgoingEdges
}

func (node *Node) addIncoming(id EdgeID) {
	for _, existing := range node.incomingEdges {
		if existing == id {
			return
		}
	}
	node.incomingEdges = append(node.incomingEdges, id)
}

func (node *Node) addOutgoing(id EdgeID) {
	for _, existing := range node.outgoingEdges {
		if existing == id {
			return
		}
	}
	node.outgoingEdges = append(node.outgoingEdges, id)
}

// internalID is the prefix for identifiers of internal lanes and junctions which belong to the node
func (node *Node) internalID() string {
	return ":" + string(node.ID)
}
