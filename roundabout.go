package roadnet

import (
	"sort"
)

// Roundabout is an unordered set of edges forming a roundabout
type Roundabout struct {
	edges map[EdgeID]struct{}
}

// NewRoundabout creates roundabout from given edges
func NewRoundabout(edges ...EdgeID) *Roundabout {
	r := Roundabout{edges: make(map[EdgeID]struct{}, len(edges))}
	for _, e := range edges {
		r.edges[e] = struct{}{}
	}
	return &r
}

// Edges returns participating edges ordered by identifier
func (r *Roundabout) Edges() []EdgeID {
	ids := make([]EdgeID, 0, len(r.edges))
	for e := range r.edges {
		ids = append(ids, e)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// Nodes returns distinct terminal (target) nodes of participating edges ordered by identifier.
// Edges unknown to the network are ignored.
func (r *Roundabout) Nodes(net *Network) []NodeID {
	seen := make(map[NodeID]struct{})
	nodes := []NodeID{}
	for e := range r.edges {
		edge := net.Edge(e)
		if edge == nil {
			continue
		}
		if _, ok := seen[edge.ToNodeID]; ok {
			continue
		}
		seen[edge.ToNodeID] = struct{}{}
		nodes = append(nodes, edge.ToNodeID)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i] < nodes[j]
	})
	return nodes
}
