package roadnet

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/paulmach/osm"
)

// wayData is OSM way with flattened tags
type wayData struct {
	TagMap osm.Tags
	Nodes  []osm.NodeID

	name         string
	highway      string
	junction     string
	area         string
	motorVehicle string
	access       string
	motorcar     string
	service      string
	foot         string
	bicycle      string

	ID            osm.WayID
	lanes         int
	lanesForward  int
	lanesBackward int
	maxSpeed      float64 // km/h, -1 when not provided

	highwayType   HighwayType
	allowedAgents []AgentType
	Oneway        bool
	OnewayDefault bool
	IsReversed    bool
}

var (
	mphRegExp    = regexp.MustCompile(`(\d+\.?\d*)\s*mph`)
	kmhRegExp    = regexp.MustCompile(`^(\d+\.?\d*)\s*(km/h|kmh|kph)?$`)
	numberRegExp = regexp.MustCompile(`\d+`)
)

func newWayData(way *osm.Way) *wayData {
	prepared := &wayData{
		ID:            way.ID,
		Nodes:         make([]osm.NodeID, 0, len(way.Nodes)),
		TagMap:        make(osm.Tags, len(way.Tags)),
		maxSpeed:      -1.0,
		lanes:         -1,
		lanesForward:  -1,
		lanesBackward: -1,
	}
	copy(prepared.TagMap, way.Tags)
	for _, node := range way.Nodes {
		prepared.Nodes = append(prepared.Nodes, node.ID)
	}
	return prepared
}

// processTags flattens tags. Unparsable values are reported and ignored
func (way *wayData) processTags(logger *log.Logger) {
	way.name = way.TagMap.Find("name")
	way.highway = way.TagMap.Find("highway")
	way.highwayType = getHighwayType(way.highway)
	way.junction = way.TagMap.Find("junction")
	way.area = way.TagMap.Find("area")
	way.motorVehicle = way.TagMap.Find("motor_vehicle")
	way.access = way.TagMap.Find("access")
	way.motorcar = way.TagMap.Find("motorcar")
	way.service = way.TagMap.Find("service")
	way.foot = way.TagMap.Find("foot")
	way.bicycle = way.TagMap.Find("bicycle")

	way.lanes = parseLanesTag(way.TagMap.Find("lanes"), "lanes", way.ID, logger)
	way.lanesForward = parseLanesTag(way.TagMap.Find("lanes:forward"), "lanes:forward", way.ID, logger)
	way.lanesBackward = parseLanesTag(way.TagMap.Find("lanes:backward"), "lanes:backward", way.ID, logger)

	maxSpeed := way.TagMap.Find("maxspeed")
	if maxSpeed != "" {
		way.maxSpeed = parseMaxSpeed(maxSpeed)
		if way.maxSpeed < 0 {
			logger.Warn("Unhandled `maxspeed` tag value", "value", maxSpeed, "way", way.ID)
		}
	}

	onewayText := way.TagMap.Find("oneway")
	switch {
	case onewayText == "yes" || onewayText == "1" || onewayText == "true":
		way.Oneway = true
	case onewayText == "no" || onewayText == "0" || onewayText == "false":
		way.Oneway = false
	case onewayText == "-1":
		way.Oneway = true
		way.IsReversed = true
	case onewayText != "":
		// Reversible or alternating ones depend on time conditions
		if _, found := onewayReversible[onewayText]; !found {
			logger.Warn("Unhandled `oneway` tag value", "value", onewayText, "way", way.ID)
		}
		way.Oneway = false
	default:
		if _, ok := junctionTypes[way.junction]; ok {
			way.Oneway = true
		} else {
			way.OnewayDefault = true
		}
	}
}

func parseLanesTag(text string, tag string, wayID osm.WayID, logger *log.Logger) int {
	if text == "" {
		return -1
	}
	lanesNum := numberRegExp.FindString(text)
	if lanesNum == "" {
		logger.Warn("Provided lanes tag value should be an integer", "tag", tag, "value", text, "way", wayID)
		return -1
	}
	lanes, err := strconv.Atoi(lanesNum)
	if err != nil || lanes <= 0 {
		logger.Warn("Provided lanes tag value should be a positive integer", "tag", tag, "value", text, "way", wayID)
		return -1
	}
	return lanes
}

// parseMaxSpeed returns speed in km/h or -1
func parseMaxSpeed(text string) float64 {
	text = strings.TrimSpace(strings.ToLower(text))
	if found := mphRegExp.FindStringSubmatch(text); len(found) > 1 {
		value, err := strconv.ParseFloat(found[1], 64)
		if err != nil {
			return -1
		}
		return value * mphToKmh
	}
	if found := kmhRegExp.FindStringSubmatch(text); len(found) > 1 {
		value, err := strconv.ParseFloat(found[1], 64)
		if err != nil {
			return -1
		}
		return value
	}
	return -1
}

func (way *wayData) isArea() bool {
	_, ok := areaTrue[way.area]
	return ok
}

func (way *wayData) isRoundabout() bool {
	_, ok := junctionTypes[way.junction]
	return ok
}

func (way *wayData) findIncludedAgent(agentType AgentType) bool {
	accessType, ok := agentsAccessIncludeValues[agentType]
	if !ok {
		return false
	}
	switch agentType {
	case AGENT_AUTO:
		if _, ok := accessType[ACCESS_MOTOR_VEHICLE][way.motorVehicle]; ok {
			return true
		}
		if _, ok := accessType[ACCESS_MOTORCAR][way.motorcar]; ok {
			return true
		}
	case AGENT_BIKE:
		if _, ok := accessType[ACCESS_BICYCLE][way.bicycle]; ok {
			return true
		}
	case AGENT_WALK:
		if _, ok := accessType[ACCESS_FOOT][way.foot]; ok {
			return true
		}
	}
	return false
}

// findExcludedAgent checks whether any access tag forbids the agent
func (way *wayData) findExcludedAgent(agentType AgentType) bool {
	accessType, ok := agentsAccessExcludeValues[agentType]
	if !ok {
		return false
	}
	if _, ok := accessType[ACCESS_HIGHWAY][way.highway]; ok {
		return true
	}
	if _, ok := accessType[ACCESS_OSM_ACCESS][way.access]; ok {
		return true
	}
	if _, ok := accessType[ACCESS_SERVICE][way.service]; ok {
		return true
	}
	switch agentType {
	case AGENT_AUTO:
		if _, ok := accessType[ACCESS_MOTOR_VEHICLE][way.motorVehicle]; ok {
			return true
		}
		if _, ok := accessType[ACCESS_MOTORCAR][way.motorcar]; ok {
			return true
		}
	case AGENT_BIKE:
		if _, ok := accessType[ACCESS_BICYCLE][way.bicycle]; ok {
			return true
		}
	case AGENT_WALK:
		if _, ok := accessType[ACCESS_FOOT][way.foot]; ok {
			return true
		}
	}
	return false
}

// getAllowableAgentType returns agents which are explicitly allowed or not forbidden
func (way *wayData) getAllowableAgentType() []AgentType {
	allowedAgents := []AgentType{}
	for _, agentType := range agentTypesAll {
		if way.findIncludedAgent(agentType) || !way.findExcludedAgent(agentType) {
			allowedAgents = append(allowedAgents, agentType)
		}
	}
	return allowedAgents
}

// vehicleClasses returns union of vehicle classes of allowed agents
func (way *wayData) vehicleClasses() VehicleClasses {
	set := VehicleClasses(0)
	for _, agent := range way.allowedAgents {
		set |= agent.vehicleClasses()
	}
	return set
}

// lanesPerDirection returns number of lanes for forward and backward edges
func (way *wayData) lanesPerDirection() (int, int) {
	defaults := defaultsByHighway[way.highwayType]
	defaultLanes := defaults.lanes
	if defaultLanes <= 0 {
		defaultLanes = 1
	}
	if way.Oneway {
		lanes := way.lanes
		if lanes <= 0 {
			lanes = defaultLanes
		}
		return lanes, 0
	}
	forward := way.lanesForward
	backward := way.lanesBackward
	if way.lanes > 0 {
		switch {
		case forward <= 0 && backward <= 0:
			backward = way.lanes / 2
			forward = way.lanes - backward
		case forward <= 0:
			forward = way.lanes - backward
		case backward <= 0:
			backward = way.lanes - forward
		}
	}
	if forward <= 0 {
		forward = defaultLanes
	}
	if backward <= 0 {
		backward = defaultLanes
	}
	return forward, backward
}

// speed returns free-flow speed in m/s
func (way *wayData) speed() float64 {
	if way.maxSpeed > 0 {
		return way.maxSpeed * kmhToMs
	}
	return defaultsByHighway[way.highwayType].speed * kmhToMs
}
