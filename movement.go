package roadnet

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	straightThreshold = 15.0
	partialThreshold  = 45.0
	// Number of intermediate points of curved internal lane shapes
	curveResolution = 5
)

// GeometricRightOfWay is a right-of-way engine driven by geometry and edge priorities only.
//
// Left turns are split where they cross straight movements of other approaches.
// A link is major when its incoming edge has the highest priority among node's incoming edges.
type GeometricRightOfWay struct {
	net    *Network
	shapes map[Movement]orb.LineString
}

// NewGeometricRightOfWay creates engine for given network
func NewGeometricRightOfWay(net *Network) *GeometricRightOfWay {
	return &GeometricRightOfWay{
		net:    net,
		shapes: make(map[Movement]orb.LineString),
	}
}

// InternalLaneShape connects end of incoming lane with begin of destination lane.
// Non parallel lanes are joined by quadratic curve with control point at the intersection of lane extensions.
func (row *GeometricRightOfWay) InternalLaneShape(node *Node, from *Edge, fromLane int, to *Edge, toLane int) orb.LineString {
	m := Movement{From: from.ID, FromLane: fromLane, To: to.ID, ToLane: toLane}
	if shape, ok := row.shapes[m]; ok {
		return shape
	}
	inLane := from.Lane(fromLane)
	outLane := to.Lane(toLane)
	begin := laneEnd(inLane)
	end := laneBegin(outLane)
	shape := orb.LineString{begin, end}
	if inLane != nil && outLane != nil && begin != end {
		inAngle := endAngle(inLane.Shape)
		outAngle := startAngle(outLane.Shape)
		turn := math.Abs(relAngle(inAngle, outAngle))
		if turn > straightThreshold/3 && turn < 180-straightThreshold/3 {
			if ctrl, ok := controlPoint(begin, inAngle, end, outAngle); ok {
				shape = bezier(begin, ctrl, end, curveResolution)
			}
		}
	}
	row.shapes[m] = shape
	return shape
}

// controlPoint returns intersection of rays: one leaving 'begin' along inAngle and one arriving to 'end' along outAngle
func controlPoint(begin orb.Point, inAngle float64, end orb.Point, outAngle float64) (orb.Point, bool) {
	inRad := inAngle / pi180Rev
	outRad := outAngle / pi180Rev
	beginAhead := orb.Point{begin.X() + math.Cos(inRad), begin.Y() + math.Sin(inRad)}
	endBehind := orb.Point{end.X() - math.Cos(outRad), end.Y() - math.Sin(outRad)}
	ctrl, err := intersect(begin, beginAhead, endBehind, end)
	if err != nil {
		return orb.Point{}, false
	}
	// Control point must be in front of the incoming lane and behind the destination lane
	if (ctrl.X()-begin.X())*math.Cos(inRad)+(ctrl.Y()-begin.Y())*math.Sin(inRad) <= 0 {
		return orb.Point{}, false
	}
	if (end.X()-ctrl.X())*math.Cos(outRad)+(end.Y()-ctrl.Y())*math.Sin(outRad) <= 0 {
		return orb.Point{}, false
	}
	if planar.Distance(begin, ctrl) > 2*planar.Distance(begin, end) {
		return orb.Point{}, false
	}
	return ctrl, true
}

// bezier samples quadratic curve with given number of intermediate points
func bezier(p0, p1, p2 orb.Point, resolution int) orb.LineString {
	line := make(orb.LineString, 0, resolution+2)
	line = append(line, p0)
	for i := 1; i <= resolution; i++ {
		t := float64(i) / float64(resolution+1)
		a := (1 - t) * (1 - t)
		b := 2 * (1 - t) * t
		c := t * t
		line = append(line, orb.Point{
			a*p0.X() + b*p1.X() + c*p2.X(),
			a*p0.Y() + b*p1.Y() + c*p2.Y(),
		})
	}
	line = append(line, p2)
	return line
}

// LinkDirection classifies movement by relative angle of edges at the node
func (row *GeometricRightOfWay) LinkDirection(node *Node, from *Edge, to *Edge) LinkDirection {
	if from == nil || to == nil {
		return LINKDIR_NODIR
	}
	if from.TurnDestination() == to.ID {
		return LINKDIR_TURN
	}
	angle := relAngle(from.AngleAt(node.ID), to.AngleAt(node.ID))
	absAngle := math.Abs(angle)
	switch {
	case absAngle < straightThreshold:
		return LINKDIR_STRAIGHT
	case absAngle >= turnaroundMinAngle:
		return LINKDIR_TURN
	case absAngle < partialThreshold && angle > 0:
		return LINKDIR_PARTLEFT
	case absAngle < partialThreshold:
		return LINKDIR_PARTRIGHT
	case angle > 0:
		return LINKDIR_LEFT
	default:
		return LINKDIR_RIGHT
	}
}

// LinkState returns major state for links from edges of the highest incoming priority
func (row *GeometricRightOfWay) LinkState(node *Node, from *Edge, to *Edge, toLane int, mayDefinitelyPass bool) LinkState {
	if mayDefinitelyPass {
		return LINKSTATE_MAJOR
	}
	if node.Type == NODE_DEAD_END {
		return LINKSTATE_DEADEND
	}
	maxPriority := math.MinInt32
	for _, inEdge := range row.net.IncomingEdges(node) {
		if inEdge.Priority > maxPriority {
			maxPriority = inEdge.Priority
		}
	}
	if from.Priority >= maxPriority {
		return LINKSTATE_MAJOR
	}
	return LINKSTATE_MINOR
}

// foeCrossing is a straight movement of another approach crossed by a left turn
type foeCrossing struct {
	movement Movement
	offset   float64
}

// crossings returns straight movements of other approaches crossed by the left turn
func (row *GeometricRightOfWay) crossings(node *Node, from *Edge, fromLane int, to *Edge, toLane int) []foeCrossing {
	dir := row.LinkDirection(node, from, to)
	if dir != LINKDIR_LEFT && dir != LINKDIR_PARTLEFT {
		return nil
	}
	shape := row.InternalLaneShape(node, from, fromLane, to, toLane)
	length := lineLength(shape)
	result := []foeCrossing{}
	for _, foeEdge := range row.net.IncomingEdges(node) {
		if foeEdge.ID == from.ID {
			continue
		}
		for j := 0; j < foeEdge.NumLanes(); j++ {
			for _, conn := range foeEdge.ConnectionsFromLane(j) {
				foeTo := row.net.Edge(conn.ToEdge)
				if foeTo == nil || foeTo.Lane(conn.ToLane) == nil {
					continue
				}
				if row.LinkDirection(node, foeEdge, foeTo) != LINKDIR_STRAIGHT {
					continue
				}
				foeShape := row.InternalLaneShape(node, foeEdge, j, foeTo, conn.ToLane)
				offset, ok := firstCrossing(shape, foeShape)
				if !ok || offset <= positionEps || offset >= length-positionEps {
					continue
				}
				result = append(result, foeCrossing{
					movement: Movement{From: foeEdge.ID, FromLane: j, To: foeTo.ID, ToLane: conn.ToLane},
					offset:   offset,
				})
			}
		}
	}
	return result
}

// CrossingPosition returns the first point where a left turn crosses straight movements of other approaches
func (row *GeometricRightOfWay) CrossingPosition(node *Node, from *Edge, fromLane int, to *Edge, toLane int) (float64, bool) {
	found := false
	best := math.Inf(1)
	for _, c := range row.crossings(node, from, fromLane, to, toLane) {
		if c.offset < best {
			best = c.offset
			found = true
		}
	}
	return best, found
}

// CrossingSources returns nothing: waiting positions are never chained by this engine
func (row *GeometricRightOfWay) CrossingSources(node *Node, from *Edge, fromLane int, to *Edge, toLane int) []Movement {
	return nil
}

// CrossedMovements returns straight movements crossed by the left turn
func (row *GeometricRightOfWay) CrossedMovements(node *Node, from *Edge, fromLane int, to *Edge, toLane int) []Movement {
	crossings := row.crossings(node, from, fromLane, to, toLane)
	result := make([]Movement, len(crossings))
	for i, c := range crossings {
		result[i] = c.movement
	}
	return result
}

// nodeLink is a link of the node in internal lane traversal order
type nodeLink struct {
	from     *Edge
	fromLane int
	to       *Edge
	conn     *Connection
	shape    orb.LineString
	state    LinkState
}

func (row *GeometricRightOfWay) nodeLinks(node *Node) []nodeLink {
	links := []nodeLink{}
	for _, inEdge := range row.net.IncomingEdges(node) {
		for j := 0; j < inEdge.NumLanes(); j++ {
			for _, conn := range inEdge.ConnectionsFromLane(j) {
				toEdge := row.net.Edge(conn.ToEdge)
				if toEdge == nil || toEdge.Lane(conn.ToLane) == nil {
					continue
				}
				links = append(links, nodeLink{
					from:     inEdge,
					fromLane: j,
					to:       toEdge,
					conn:     conn,
					shape:    row.InternalLaneShape(node, inEdge, j, toEdge, conn.ToLane),
					state:    row.LinkState(node, inEdge, toEdge, conn.ToLane, conn.MayDefinitelyPass),
				})
			}
		}
	}
	return links
}

func (link nodeLink) conflicts(other nodeLink) bool {
	if link.from.ID == other.from.ID {
		return false
	}
	if link.to.ID == other.to.ID && link.conn.ToLane == other.conn.ToLane {
		return true
	}
	_, ok := firstCrossing(link.shape, other.shape)
	return ok
}

// JunctionLogic writes one request per link: links it has to yield to (response) and conflicting links (foes).
// Bit of link k is at position len-1-k.
func (row *GeometricRightOfWay) JunctionLogic(node *Node) string {
	links := row.nodeLinks(node)
	if len(links) == 0 {
		return ""
	}
	requests := make([]string, len(links))
	for i, link := range links {
		response := make([]byte, len(links))
		foes := make([]byte, len(links))
		for j, other := range links {
			pos := len(links) - 1 - j
			response[pos] = '0'
			foes[pos] = '0'
			if i == j || !link.conflicts(other) {
				continue
			}
			foes[pos] = '1'
			if link.state == LINKSTATE_MINOR && other.state == LINKSTATE_MAJOR {
				response[pos] = '1'
			}
		}
		cont := 0
		if _, ok := row.CrossingPosition(node, link.from, link.fromLane, link.to, link.conn.ToLane); ok {
			cont = 1
		}
		requests[i] = fmt.Sprintf(`<request index="%d" response="%s" foes="%s" cont="%d"/>`, i, response, foes, cont)
	}
	return strings.Join(requests, "\n")
}
