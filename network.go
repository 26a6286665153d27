package roadnet

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Network owns every node, edge, district, roundabout and traffic light program of the road network
type Network struct {
	nodes       map[NodeID]*Node
	edges       map[EdgeID]*Edge
	districts   map[string]*District
	roundabouts []*Roundabout
	tlLogics    []*TLLogic

	// Movements which must not be connected (turn restrictions)
	prohibitions map[EdgeID]map[EdgeID]struct{}

	Location Location
}

// NewNetwork creates empty network
func NewNetwork() *Network {
	return &Network{
		nodes:       make(map[NodeID]*Node),
		edges:       make(map[EdgeID]*Edge),
		districts:   make(map[string]*District),
		roundabouts: make([]*Roundabout, 0),
		tlLogics:    make([]*TLLogic, 0),

		prohibitions: make(map[EdgeID]map[EdgeID]struct{}),
	}
}

// AddNode registers node in the network
func (net *Network) AddNode(node *Node) error {
	if _, ok := net.nodes[node.ID]; ok {
		return errors.Wrapf(ErrDuplicateNode, "node '%s'", node.ID)
	}
	net.nodes[node.ID] = node
	return nil
}

// AddEdge registers edge in the network and in incoming/outgoing lists of its nodes
func (net *Network) AddEdge(edge *Edge) error {
	if _, ok := net.edges[edge.ID]; ok {
		return errors.Wrapf(ErrDuplicateEdge, "edge '%s'", edge.ID)
	}
	from, ok := net.nodes[edge.FromNodeID]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "source node '%s' of edge '%s'", edge.FromNodeID, edge.ID)
	}
	to, ok := net.nodes[edge.ToNodeID]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "target node '%s' of edge '%s'", edge.ToNodeID, edge.ID)
	}
	if len(edge.geom) < 2 {
		edge.geom = orb.LineString{from.Pos, to.Pos}
		edge.defaultGeometry = true
	}
	for _, lane := range edge.lanes {
		if len(lane.Shape) < 2 {
			lane.Shape = edge.geom.Clone()
		}
	}
	if edge.LoadedLength == 0 {
		edge.LoadedLength = lineLength(edge.geom)
	}
	net.edges[edge.ID] = edge
	from.addOutgoing(edge.ID)
	to.addIncoming(edge.ID)
	return nil
}

// Node returns node by its identifier or nil
func (net *Network) Node(id NodeID) *Node {
	return net.nodes[id]
}

// Edge returns edge by its identifier or nil
func (net *Network) Edge(id EdgeID) *Edge {
	return net.edges[id]
}

// Nodes returns every node ordered by identifier
func (net *Network) Nodes() []*Node {
	ids := make([]string, 0, len(net.nodes))
	for id := range net.nodes {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		nodes[i] = net.nodes[NodeID(id)]
	}
	return nodes
}

// Edges returns every edge ordered by identifier
func (net *Network) Edges() []*Edge {
	ids := make([]string, 0, len(net.edges))
	for id := range net.edges {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	edges := make([]*Edge, len(ids))
	for i, id := range ids {
		edges[i] = net.edges[EdgeID(id)]
	}
	return edges
}

// IncomingEdges resolves incoming edges of the node in insertion order
func (net *Network) IncomingEdges(node *Node) []*Edge {
	edges := make([]*Edge, 0, len(node.incomingEdges))
	for _, id := range node.incomingEdges {
		if edge, ok := net.edges[id]; ok {
			edges = append(edges, edge)
		}
	}
	return edges
}

// OutgoingEdges resolves outgoing edges of the node in insertion order
func (net *Network) OutgoingEdges(node *Node) []*Edge {
	edges := make([]*Edge, 0, len(node.outgoingEdges))
	for _, id := range node.outgoingEdges {
		if edge, ok := net.edges[id]; ok {
			edges = append(edges, edge)
		}
	}
	return edges
}

// NodesCount returns number of nodes
func (net *Network) NodesCount() int {
	return len(net.nodes)
}

// EdgesCount returns number of edges
func (net *Network) EdgesCount() int {
	return len(net.edges)
}

// AddDistrict registers district. District with the same identifier is replaced.
func (net *Network) AddDistrict(district *District) {
	net.districts[district.ID] = district
}

// Districts returns every district ordered by identifier
func (net *Network) Districts() []*District {
	ids := make([]string, 0, len(net.districts))
	for id := range net.districts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	districts := make([]*District, len(ids))
	for i, id := range ids {
		districts[i] = net.districts[id]
	}
	return districts
}

// AddRoundabout registers roundabout built on given edges
func (net *Network) AddRoundabout(edges ...EdgeID) {
	net.roundabouts = append(net.roundabouts, NewRoundabout(edges...))
}

// Roundabouts returns roundabouts in registration order
func (net *Network) Roundabouts() []*Roundabout {
	return net.roundabouts
}

// AddTLLogic registers computed traffic light program. Program with the same identifier is replaced
func (net *Network) AddTLLogic(logic *TLLogic) {
	for i, existing := range net.tlLogics {
		if existing.ID == logic.ID && existing.ProgramID == logic.ProgramID {
			net.tlLogics[i] = logic
			return
		}
	}
	net.tlLogics = append(net.tlLogics, logic)
}

// TLLogics returns computed traffic light programs in registration order
func (net *Network) TLLogics() []*TLLogic {
	return net.tlLogics
}

// AddProhibition forbids connections from one edge to another
func (net *Network) AddProhibition(from, to EdgeID) {
	if _, ok := net.prohibitions[from]; !ok {
		net.prohibitions[from] = make(map[EdgeID]struct{})
	}
	net.prohibitions[from][to] = struct{}{}
}

// IsProhibited checks whether connections from one edge to another are forbidden
func (net *Network) IsProhibited(from, to EdgeID) bool {
	_, ok := net.prohibitions[from][to]
	return ok
}
