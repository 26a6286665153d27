package roadnet

import (
	"github.com/paulmach/osm"
)

// waySegment is a part of the way between two crossings
type waySegment struct {
	way   *wayData
	index int
	nodes []osm.NodeID
}

func (seg *waySegment) source() osm.NodeID {
	return seg.nodes[0]
}

func (seg *waySegment) target() osm.NodeID {
	return seg.nodes[len(seg.nodes)-1]
}

// prepareMedium filters ways, marks crossings and splits ways into segments between crossings
func (data *osmDataRaw) prepareMedium(importer *Importer) ([]*waySegment, error) {
	logger := importer.logger
	step := newProgress(logger, "Cook medium ways...")
	kept := make([]*wayData, 0, len(data.ways))
	for _, way := range data.ways {
		if way.highwayType == HIGHWAY_UNDEFINED || !importer.highwayAllowed(way.highway) {
			continue
		}
		// Ignore ways with `area` tag provided
		if way.isArea() {
			continue
		}
		way.Nodes = dedupeConsecutive(way.Nodes)
		if len(way.Nodes) < 2 {
			logger.Warn("Way has less than two distinct nodes", "way", way.ID, "nodes", len(way.Nodes))
			continue
		}
		missing := false
		for _, nodeID := range way.Nodes {
			if _, ok := data.nodes[nodeID]; !ok {
				missing = true
				break
			}
		}
		if missing {
			// Happens for ways clipped by extract boundary
			logger.Warn("Way references node which is not in the file", "way", way.ID)
			continue
		}
		if way.OnewayDefault {
			// Apply default `oneway` if it hasn't been defined yet
			way.Oneway = defaultsByHighway[way.highwayType].oneway
		}
		way.allowedAgents = importer.agentsIntersection(way.getAllowableAgentType())
		if len(way.allowedAgents) == 0 {
			continue
		}
		kept = append(kept, way)
	}
	data.ways = kept

	for _, way := range data.ways {
		data.nodes[way.Nodes[0]].isCrossing = true
		data.nodes[way.Nodes[len(way.Nodes)-1]].isCrossing = true
		for _, nodeID := range way.Nodes {
			data.nodes[nodeID].useCount++
		}
	}
	for _, node := range data.nodes {
		if node.useCount >= 2 || node.controlType == IS_SIGNAL {
			node.isCrossing = true
		}
	}

	segments := []*waySegment{}
	for _, way := range data.ways {
		segments = append(segments, data.splitWay(way)...)
	}
	step.done("Medium ways are ready", "ways", len(data.ways), "segments", len(segments))
	return segments, nil
}

// splitWay cuts way at crossings. Closed parts are additionally cut in the middle
func (data *osmDataRaw) splitWay(way *wayData) []*waySegment {
	parts := [][]osm.NodeID{}
	current := []osm.NodeID{way.Nodes[0]}
	for _, nodeID := range way.Nodes[1:] {
		current = append(current, nodeID)
		if data.nodes[nodeID].isCrossing {
			parts = append(parts, current)
			current = []osm.NodeID{nodeID}
		}
	}
	result := []*waySegment{}
	for _, part := range parts {
		if part[0] == part[len(part)-1] {
			if len(part) < 3 {
				continue
			}
			middle := len(part) / 2
			data.nodes[part[middle]].isCrossing = true
			result = append(result,
				&waySegment{way: way, index: len(result), nodes: part[:middle+1]},
				&waySegment{way: way, index: len(result) + 1, nodes: part[middle:]},
			)
			continue
		}
		result = append(result, &waySegment{way: way, index: len(result), nodes: part})
	}
	return result
}

func dedupeConsecutive(nodes []osm.NodeID) []osm.NodeID {
	result := make([]osm.NodeID, 0, len(nodes))
	for i, nodeID := range nodes {
		if i > 0 && nodes[i-1] == nodeID {
			continue
		}
		result = append(result, nodeID)
	}
	return result
}
