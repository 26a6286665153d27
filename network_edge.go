package roadnet

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
)

/* Edges stuff */

type EdgeID string

type EdgeFunction uint16

const (
	EDGE_NORMAL = EdgeFunction(iota + 1)
	EDGE_INTERNAL
	EDGE_CONNECTOR
)

func (iotaIdx EdgeFunction) String() string {
	return [...]string{"undefined", "normal", "internal", "connector"}[iotaIdx]
}

type LaneSpread uint16

const (
	SPREAD_RIGHT = LaneSpread(iota + 1)
	SPREAD_CENTER
)

func (iotaIdx LaneSpread) String() string {
	return [...]string{"undefined", "right", "center"}[iotaIdx]
}

// Edge is a directed road segment between two nodes
type Edge struct {
	geom            orb.LineString
	defaultGeometry bool
	lanes           []*Lane
	connections     []*Connection
	turnDestination EdgeID

	ID           EdgeID
	FromNodeID   NodeID
	ToNodeID     NodeID
	Priority     int
	Speed        float64 // Free-flow speed (m/s)
	Function     EdgeFunction
	Spread       LaneSpread
	Name         string
	TypeName     string
	LoadedLength float64
}

// NewEdge creates edge with given number of lanes. Each lane inherits edge speed.
//
// Pass nil geometry to use straight line between node positions
func NewEdge(id EdgeID, from, to NodeID, lanesNum int, speed float64, geom orb.LineString) *Edge {
	edge := Edge{
		ID:         id,
		FromNodeID: from,
		ToNodeID:   to,
		Speed:      speed,
		Function:   EDGE_NORMAL,
		Spread:     SPREAD_RIGHT,
		lanes:      make([]*Lane, 0, lanesNum),
	}
	if len(geom) > 0 {
		edge.geom = geom.Clone()
	}
	for i := 0; i < lanesNum; i++ {
		edge.lanes = append(edge.lanes, &Lane{Index: i, Speed: speed})
	}
	return &edge
}

// Geometry returns polyline of the edge
func (edge *Edge) Geometry() orb.LineString {
	return edge.geom
}

// HasDefaultGeometry returns true when the edge geometry is the straight line between its nodes
func (edge *Edge) HasDefaultGeometry() bool {
	return edge.defaultGeometry
}

// Lanes returns lanes of the edge in index order
func (edge *Edge) Lanes() []*Lane {
	return edge.lanes
}

// Lane returns lane by its index or nil
func (edge *Edge) Lane(index int) *Lane {
	if index < 0 || index >= len(edge.lanes) {
		return nil
	}
	return edge.lanes[index]
}

// NumLanes returns number of lanes
func (edge *Edge) NumLanes() int {
	return len(edge.lanes)
}

// LaneID returns identifier of lane with given index
func (edge *Edge) LaneID(index int) string {
	return fmt.Sprintf("%s_%d", edge.ID, index)
}

// Connections returns outgoing connections in stored order
func (edge *Edge) Connections() []*Connection {
	return edge.connections
}

// AddConnection appends outgoing connection
func (edge *Edge) AddConnection(conn *Connection) {
	edge.connections = append(edge.connections, conn)
}

// ConnectionsFromLane returns connections starting at given lane in stored order
func (edge *Edge) ConnectionsFromLane(lane int) []*Connection {
	result := []*Connection{}
	for _, conn := range edge.connections {
		if conn.FromLane == lane {
			result = append(result, conn)
		}
	}
	return result
}

// IsConnectedTo checks whether any connection of the edge leads to given edge
func (edge *Edge) IsConnectedTo(to EdgeID) bool {
	for _, conn := range edge.connections {
		if conn.ToEdge == to {
			return true
		}
	}
	return false
}

// ConnectionsByLane returns copy of connections stably ordered by source lane index. Stored order is kept
func (edge *Edge) ConnectionsByLane() []*Connection {
	result := make([]*Connection, len(edge.connections))
	copy(result, edge.connections)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].FromLane < result[j].FromLane
	})
	return result
}

// TurnDestination returns turnaround edge (empty if not set)
func (edge *Edge) TurnDestination() EdgeID {
	return edge.turnDestination
}

// SetTurnDestination sets turnaround edge
func (edge *Edge) SetTurnDestination(to EdgeID) {
	edge.turnDestination = to
}

// AngleAt returns bearing (degrees, counter-clockwise from X axis) of the edge where it meets given node.
// Bearing is taken in driving direction in both cases.
func (edge *Edge) AngleAt(node NodeID) float64 {
	if node == edge.FromNodeID {
		return startAngle(edge.geom)
	}
	return endAngle(edge.geom)
}

// Lane is a single lane of an edge
type Lane struct {
	Index     int
	Allowed   VehicleClasses
	Forbidden VehicleClasses
	Preferred VehicleClasses
	Speed     float64
	Width     float64 // 0 means edge default
	EndOffset float64
	Shape     orb.LineString
}

// Connection is a permitted movement from a lane to a lane of another edge
type Connection struct {
	FromLane          int
	ToEdge            EdgeID // Empty means unterminated reference
	ToLane            int
	TLID              string
	TLLinkIndex       int
	MayDefinitelyPass bool
	Via               string // Filled during serialization
}
