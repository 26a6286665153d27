package roadnet

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"
)

const (
	// Pairs with smaller relative angle are never turnarounds
	turnaroundMinAngle = 160.0
	// Bonus for pairs connecting the same nodes in reverse
	turnaroundReverseBonus = 360.0
)

// turnCandidate is a possible turnaround pairing at a node
type turnCandidate struct {
	from  *Edge
	to    *Edge
	angle float64
}

// ComputeTurnDirections assigns turnaround edge for every incoming edge of every node.
// Re-running on unchanged network yields the same assignment.
func ComputeTurnDirections(net *Network, logger *log.Logger) {
	logger = loggerOrDefault(logger)
	for _, node := range net.Nodes() {
		computeNodeTurnDirections(net, node, logger)
	}
}

func computeNodeTurnDirections(net *Network, node *Node, logger *log.Logger) {
	for _, inEdge := range net.IncomingEdges(node) {
		inEdge.SetTurnDestination("")
	}
	candidates := turnCandidates(net, node)
	// Highest angle first. Stable sort keeps enumeration order for ties
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].angle > candidates[j].angle
	})
	seen := make(map[EdgeID]struct{})
	haveWarned := false
	for _, c := range candidates {
		_, fromSeen := seen[c.from.ID]
		_, toSeen := seen[c.to.ID]
		if fromSeen || toSeen {
			if c.angle > turnaroundReverseBonus && !haveWarned {
				logger.Warn("Ambiguity in turnarounds computation", "node", node.ID)
				haveWarned = true
			}
			continue
		}
		seen[c.from.ID] = struct{}{}
		seen[c.to.ID] = struct{}{}
		c.from.SetTurnDestination(c.to.ID)
	}
}

// turnCandidates enumerates (incoming, outgoing) pairs which could be turnarounds
func turnCandidates(net *Network, node *Node) []turnCandidate {
	incoming := net.IncomingEdges(node)
	outgoing := net.OutgoingEdges(node)
	candidates := make([]turnCandidate, 0)
	for _, outEdge := range outgoing {
		for _, inEdge := range incoming {
			// Has connections, but not to outgoing one: it won't be the turn direction
			if len(inEdge.Connections()) != 0 && !inEdge.IsConnectedTo(outEdge.ID) {
				continue
			}
			angle := math.Abs(relAngle(inEdge.AngleAt(node.ID), outEdge.AngleAt(node.ID)))
			if angle < turnaroundMinAngle {
				continue
			}
			if inEdge.FromNodeID == outEdge.ToNodeID {
				// Connect the same nodes in reverse
				angle += turnaroundReverseBonus
			}
			candidates = append(candidates, turnCandidate{from: inEdge, to: outEdge, angle: angle})
		}
	}
	return candidates
}
