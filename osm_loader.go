package roadnet

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

const (
	cutLenMin = 2.0
	// Cut-backs never take more than this share of the edge length
	maxCutShare = 0.4
)

var (
	// Distance (meters) lanes are cut back from a crossing, by number of lanes
	cutLen = [...]float64{2.0, 8.0, 12.0, 14.0, 16.0, 18.0, 20, 22, 24, 25}
)

func cutLength(lanes int) float64 {
	if lanes < 0 {
		lanes = 0
	}
	if lanes >= len(cutLen) {
		lanes = len(cutLen) - 1
	}
	return cutLen[lanes]
}

// fitCuts shrinks cut-backs proportionally when both of them do not fit into the edge
func fitCuts(length, startCut, endCut float64) (float64, float64) {
	total := startCut + endCut
	if total <= 0 {
		return 0, 0
	}
	allowed := length * 2 * maxCutShare
	if total <= allowed {
		return startCut, endCut
	}
	ratio := allowed / total
	return startCut * ratio, endCut * ratio
}

// laneOffset returns signed distance of lane center from edge geometry. Positive values are on the left side.
// Lane 0 is the rightmost one
func laneOffset(index, lanesNum int, width float64, spread LaneSpread) float64 {
	if spread == SPREAD_CENTER {
		return (float64(index) - float64(lanesNum-1)/2.0) * width
	}
	return -(float64(lanesNum-1-index) + 0.5) * width
}

// laneShapes returns center lines of lanes in index order
func laneShapes(geom orb.LineString, lanesNum int, width float64, spread LaneSpread) []orb.LineString {
	shapes := make([]orb.LineString, lanesNum)
	for i := range shapes {
		offset := laneOffset(i, lanesNum, width, spread)
		if offset == 0 {
			shapes[i] = geom.Clone()
			continue
		}
		shapes[i] = offsetCurve(geom, offset)
	}
	return shapes
}

// cutBack removes given lengths from both ends of the line
func cutBack(line orb.LineString, startCut, endCut float64) orb.LineString {
	if startCut <= 0 && endCut <= 0 {
		return line.Clone()
	}
	length := lineLength(line)
	if startCut+endCut >= length {
		return line.Clone()
	}
	return subpart(line, startCut, length-endCut)
}

// nodeBoundary returns polygon around the ends of lanes meeting at the node.
// Points are ordered by angle around node position
func nodeBoundary(net *Network, node *Node) orb.LineString {
	pts := []orb.Point{}
	for _, inEdge := range net.IncomingEdges(node) {
		for _, lane := range inEdge.Lanes() {
			pts = append(pts, laneEnd(lane))
		}
	}
	for _, outEdge := range net.OutgoingEdges(node) {
		for _, lane := range outEdge.Lanes() {
			pts = append(pts, laneBegin(lane))
		}
	}
	if len(pts) == 0 {
		return orb.LineString{}
	}
	center := node.Pos
	sort.SliceStable(pts, func(i, j int) bool {
		ai := math.Atan2(pts[i].Y()-center.Y(), pts[i].X()-center.X())
		aj := math.Atan2(pts[j].Y()-center.Y(), pts[j].X()-center.X())
		return ai < aj
	})
	shape := make(orb.LineString, 0, len(pts)+1)
	for _, pt := range pts {
		if len(shape) > 0 && shape[len(shape)-1] == pt {
			continue
		}
		shape = append(shape, pt)
	}
	if len(shape) >= 3 {
		shape = append(shape, shape[0])
	}
	return shape
}
