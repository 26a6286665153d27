package roadnet

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// wayNodeKey addresses edges of an OSM way which start or end at given OSM node
type wayNodeKey struct {
	way  osm.WayID
	node osm.NodeID
}

// prepareNetwork converts segments into network nodes and edges
func (data *osmDataRaw) prepareNetwork(importer *Importer, segments []*waySegment) (*Network, error) {
	logger := importer.logger
	step := newProgress(logger, "Cook well-done network...")
	net := NewNetwork()
	if len(segments) == 0 {
		step.done("Network is empty")
		return net, nil
	}

	origBound := orb.Bound{Min: data.nodes[segments[0].source()].pt, Max: data.nodes[segments[0].source()].pt}
	for _, seg := range segments {
		for _, nodeID := range seg.nodes {
			origBound = origBound.Extend(data.nodes[nodeID].pt)
		}
	}
	proj := newProjector(origBound)

	neighbours := make(map[osm.NodeID]map[osm.NodeID]struct{})
	maxLanes := make(map[osm.NodeID]int)
	addNeighbour := func(a, b osm.NodeID, lanes int) {
		if _, ok := neighbours[a]; !ok {
			neighbours[a] = make(map[osm.NodeID]struct{})
		}
		neighbours[a][b] = struct{}{}
		if lanes > maxLanes[a] {
			maxLanes[a] = lanes
		}
	}
	for _, seg := range segments {
		forward, backward := seg.way.lanesPerDirection()
		lanes := forward
		if backward > lanes {
			lanes = backward
		}
		addNeighbour(seg.source(), seg.target(), lanes)
		addNeighbour(seg.target(), seg.source(), lanes)
	}
	nodeCut := func(nodeID osm.NodeID) float64 {
		switch {
		case len(neighbours[nodeID]) <= 1:
			return 0
		case len(neighbours[nodeID]) == 2 && data.nodes[nodeID].controlType != IS_SIGNAL:
			return cutLenMin
		default:
			return cutLength(maxLanes[nodeID])
		}
	}

	convBound := orb.Bound{Min: proj.project(origBound.Min), Max: proj.project(origBound.Min)}
	for _, seg := range segments {
		for _, nodeID := range []osm.NodeID{seg.source(), seg.target()} {
			id := osmNodeID(nodeID)
			if net.Node(id) != nil {
				continue
			}
			osmNode := data.nodes[nodeID]
			node := NewNode(id, proj.project(osmNode.pt))
			if osmNode.controlType == IS_SIGNAL {
				node.Type = NODE_TRAFFIC_LIGHT
				node.TLID = string(id)
			}
			if err := net.AddNode(node); err != nil {
				return nil, errors.Wrap(err, "Can't add node")
			}
			convBound = convBound.Extend(node.Pos)
		}
	}

	incomingByWay := make(map[wayNodeKey][]EdgeID)
	outgoingByWay := make(map[wayNodeKey][]EdgeID)
	buildEdge := func(id EdgeID, seg *waySegment, from, to osm.NodeID, geom orb.LineString, lanesNum int, spread LaneSpread) error {
		way := seg.way
		startCut, endCut := fitCuts(lineLength(geom), nodeCut(from), nodeCut(to))
		edge := NewEdge(id, osmNodeID(from), osmNodeID(to), lanesNum, way.speed(), cutBack(geom, startCut, endCut))
		edge.Priority = defaultsByHighway[way.highwayType].priority
		edge.Name = way.name
		edge.TypeName = "highway." + way.highway
		edge.Spread = spread
		classes := way.vehicleClasses()
		shapes := laneShapes(geom, lanesNum, importer.laneWidth, spread)
		for i, lane := range edge.Lanes() {
			lane.Allowed = classes
			lane.Width = importer.laneWidth
			lane.Shape = cutBack(shapes[i], startCut, endCut)
		}
		if err := net.AddEdge(edge); err != nil {
			return errors.Wrapf(err, "Can't add edge of way %d", way.ID)
		}
		incomingByWay[wayNodeKey{way.ID, to}] = append(incomingByWay[wayNodeKey{way.ID, to}], edge.ID)
		outgoingByWay[wayNodeKey{way.ID, from}] = append(outgoingByWay[wayNodeKey{way.ID, from}], edge.ID)
		return nil
	}

	roundaboutEdges := make(map[osm.WayID][]EdgeID)
	roundaboutOrder := []osm.WayID{}
	for _, seg := range segments {
		way := seg.way
		addRoundaboutEdge := func(id EdgeID) {
			if !way.isRoundabout() {
				return
			}
			if _, ok := roundaboutEdges[way.ID]; !ok {
				roundaboutOrder = append(roundaboutOrder, way.ID)
			}
			roundaboutEdges[way.ID] = append(roundaboutEdges[way.ID], id)
		}
		geom := make(orb.LineString, len(seg.nodes))
		for i, nodeID := range seg.nodes {
			geom[i] = proj.project(data.nodes[nodeID].pt)
			convBound = convBound.Extend(geom[i])
		}
		forward, backward := way.lanesPerDirection()
		spread := SPREAD_RIGHT
		if way.Oneway {
			spread = SPREAD_CENTER
		}
		if !way.IsReversed {
			id := EdgeID(fmt.Sprintf("%d_%d", way.ID, seg.index))
			if err := buildEdge(id, seg, seg.source(), seg.target(), geom, forward, spread); err != nil {
				return nil, err
			}
			addRoundaboutEdge(id)
		}
		if !way.Oneway || way.IsReversed {
			lanes := backward
			if way.IsReversed {
				lanes = forward
			}
			id := EdgeID(fmt.Sprintf("-%d_%d", way.ID, seg.index))
			if err := buildEdge(id, seg, seg.target(), seg.source(), reversedLine(geom), lanes, spread); err != nil {
				return nil, err
			}
			addRoundaboutEdge(id)
		}
	}

	for _, node := range net.Nodes() {
		node.Shape = nodeBoundary(net, node)
	}
	for _, wayID := range roundaboutOrder {
		net.AddRoundabout(roundaboutEdges[wayID]...)
	}

	prohibitions := 0
	for _, restriction := range data.restrictions {
		fromEdges := incomingByWay[wayNodeKey{restriction.from, restriction.via}]
		toEdges := outgoingByWay[wayNodeKey{restriction.to, restriction.via}]
		if len(fromEdges) == 0 || len(toEdges) == 0 {
			logger.Debug("Restriction does not match imported edges", "kind", restriction.kind, "from", restriction.from, "via", restriction.via, "to", restriction.to)
			continue
		}
		if restriction.prohibitive() {
			for _, from := range fromEdges {
				for _, to := range toEdges {
					net.AddProhibition(from, to)
					prohibitions++
				}
			}
			continue
		}
		allowed := make(map[EdgeID]struct{}, len(toEdges))
		for _, to := range toEdges {
			allowed[to] = struct{}{}
		}
		via := net.Node(osmNodeID(restriction.via))
		for _, from := range fromEdges {
			for _, outEdge := range net.OutgoingEdges(via) {
				if _, ok := allowed[outEdge.ID]; ok {
					continue
				}
				net.AddProhibition(from, outEdge.ID)
				prohibitions++
			}
		}
	}

	net.Location = Location{
		NetOffset:     proj.offset,
		ConvBoundary:  convBound,
		OrigBoundary:  origBound,
		ProjParameter: projWebMercator,
	}
	step.done("Network is ready", "nodes", net.NodesCount(), "edges", net.EdgesCount(), "prohibitions", prohibitions)
	return net, nil
}

func osmNodeID(id osm.NodeID) NodeID {
	return NodeID(fmt.Sprintf("%d", id))
}

func reversedLine(line orb.LineString) orb.LineString {
	reversed := line.Clone()
	reversed.Reverse()
	return reversed
}
