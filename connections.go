package roadnet

import (
	"sort"

	"github.com/charmbracelet/log"
)

// GuessConnections creates lane connections for incoming edges which have none.
//
// Every such edge is connected to all outgoing edges of its target node except prohibited ones.
// Lanes are distributed from left to right by the relative angle of outgoing edges. The turnaround edge gets a
// single connection from the leftmost lane unless turnarounds are disabled or it is the only way to leave the node.
// Nodes where every incoming edge leads to the same single outgoing edge are treated as merges.
// Returns number of created connections.
func GuessConnections(net *Network, noTurnarounds bool, logger *log.Logger) int {
	logger = loggerOrDefault(logger)
	step := newProgress(logger, "Guessing lane connections...")
	created := 0
	for _, node := range net.Nodes() {
		created += guessNodeConnections(net, node, noTurnarounds)
	}
	step.done("Lane connections have been guessed", "connections", created)
	return created
}

func guessNodeConnections(net *Network, node *Node, noTurnarounds bool) int {
	pending := []*Edge{}
	for _, inEdge := range net.IncomingEdges(node) {
		if len(inEdge.Connections()) == 0 && inEdge.NumLanes() > 0 {
			pending = append(pending, inEdge)
		}
	}
	if len(pending) == 0 {
		return 0
	}
	targets := make(map[EdgeID][]*Edge, len(pending))
	for _, inEdge := range pending {
		targets[inEdge.ID] = connectionTargets(net, node, inEdge)
	}
	if merged, ok := mergeTarget(pending, targets); ok {
		created := connectSpans(node, merged, pending)
		if !noTurnarounds {
			for _, inEdge := range pending {
				created += connectTurnaround(net, inEdge, targets[inEdge.ID])
			}
		}
		return created
	}
	created := 0
	for _, inEdge := range pending {
		outs := targets[inEdge.ID]
		created += connectIntersection(node, inEdge, outs)
		if !noTurnarounds || len(outs) == 0 {
			created += connectTurnaround(net, inEdge, outs)
		}
	}
	return created
}

// connectionTargets returns outgoing edges the incoming edge may lead to, except its turnaround,
// sorted from left to right
func connectionTargets(net *Network, node *Node, inEdge *Edge) []*Edge {
	outs := []*Edge{}
	for _, outEdge := range net.OutgoingEdges(node) {
		if outEdge.ID == inEdge.TurnDestination() || net.IsProhibited(inEdge.ID, outEdge.ID) || outEdge.NumLanes() == 0 {
			continue
		}
		outs = append(outs, outEdge)
	}
	inAngle := inEdge.AngleAt(node.ID)
	sort.SliceStable(outs, func(i, j int) bool {
		return relAngle(inAngle, outs[i].AngleAt(node.ID)) > relAngle(inAngle, outs[j].AngleAt(node.ID))
	})
	return outs
}

// mergeTarget returns the outgoing edge when several incoming edges have it as the only target
func mergeTarget(pending []*Edge, targets map[EdgeID][]*Edge) (*Edge, bool) {
	if len(pending) < 2 {
		return nil, false
	}
	var merged *Edge
	for _, inEdge := range pending {
		outs := targets[inEdge.ID]
		if len(outs) != 1 {
			return nil, false
		}
		if merged != nil && merged.ID != outs[0].ID {
			return nil, false
		}
		merged = outs[0]
	}
	return merged, true
}

func connectIntersection(node *Node, inEdge *Edge, outs []*Edge) int {
	if len(outs) == 0 {
		return 0
	}
	outLanes := make([]int, len(outs))
	for i, outEdge := range outs {
		outLanes[i] = outEdge.NumLanes()
	}
	created := 0
	for i, pair := range getIntersectionsConnections(inEdge.NumLanes(), outLanes) {
		created += connectLanes(inEdge, outs[i], pair)
	}
	return created
}

func connectSpans(node *Node, outEdge *Edge, incoming []*Edge) int {
	sorted := make([]*Edge, len(incoming))
	copy(sorted, incoming)
	outAngle := outEdge.AngleAt(node.ID)
	// Edge coming from the left turns left to join
	sort.SliceStable(sorted, func(i, j int) bool {
		return relAngle(sorted[i].AngleAt(node.ID), outAngle) > relAngle(sorted[j].AngleAt(node.ID), outAngle)
	})
	inLanes := make([]int, len(sorted))
	for i, inEdge := range sorted {
		inLanes[i] = inEdge.NumLanes()
	}
	created := 0
	for i, pair := range getSpansConnections(outEdge.NumLanes(), inLanes) {
		created += connectLanes(sorted[i], outEdge, pair)
	}
	return created
}

// connectTurnaround connects the leftmost lane of incoming edge with the leftmost lane of its turnaround
func connectTurnaround(net *Network, inEdge *Edge, outs []*Edge) int {
	turn := net.Edge(inEdge.TurnDestination())
	if turn == nil || turn.NumLanes() == 0 || net.IsProhibited(inEdge.ID, turn.ID) {
		return 0
	}
	for _, outEdge := range outs {
		if outEdge.ID == turn.ID {
			return 0
		}
	}
	return connectLanes(inEdge, turn, connectionPair{laneRange{0, 0}, laneRange{0, 0}})
}

// connectLanes adds connections described by pair. Lanes of the source range beyond the size of
// the destination range lead to the last destination lane
func connectLanes(from *Edge, to *Edge, pair connectionPair) int {
	if !pair.from.valid(from.NumLanes()) || !pair.to.valid(to.NumLanes()) {
		return 0
	}
	created := 0
	for k := pair.from.first; k <= pair.from.last; k++ {
		dst := pair.to.first + min(k-pair.from.first, pair.to.last-pair.to.first)
		from.AddConnection(&Connection{
			FromLane: from.NumLanes() - 1 - k,
			ToEdge:   to.ID,
			ToLane:   to.NumLanes() - 1 - dst,
		})
		created++
	}
	return created
}
