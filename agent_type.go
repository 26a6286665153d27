package roadnet

import (
	"strings"

	"github.com/pkg/errors"
)

type AgentType uint16

const (
	AGENT_AUTO = AgentType(iota + 1)
	AGENT_BIKE
	AGENT_WALK
	AGENT_UNDEFINED = AgentType(0)
)

func (iotaIdx AgentType) String() string {
	return [...]string{"undefined", "auto", "bike", "walk"}[iotaIdx]
}

// ParseAgentTypes converts names like "auto,bike" into agent types
func ParseAgentTypes(names []string) ([]AgentType, error) {
	agents := make([]AgentType, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		agent, ok := agentTypesByName[name]
		if !ok {
			return nil, errors.Errorf("Unknown agent type '%s'", name)
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

// vehicleClasses returns classes lanes get for the agent
func (iotaIdx AgentType) vehicleClasses() VehicleClasses {
	switch iotaIdx {
	case AGENT_AUTO:
		return NewVehicleClasses(VCLASS_PASSENGER, VCLASS_TAXI, VCLASS_BUS, VCLASS_DELIVERY, VCLASS_TRANSPORT, VCLASS_MOTORCYCLE, VCLASS_PUBLIC_EMERGENCY)
	case AGENT_BIKE:
		return NewVehicleClasses(VCLASS_BICYCLE)
	case AGENT_WALK:
		return NewVehicleClasses(VCLASS_PEDESTRIAN)
	default:
		return VehicleClasses(0)
	}
}

var (
	agentTypesAll = []AgentType{AGENT_AUTO, AGENT_BIKE, AGENT_WALK}

	agentTypesByName = map[string]AgentType{
		"auto": AGENT_AUTO,
		"bike": AGENT_BIKE,
		"walk": AGENT_WALK,
	}

	agentsAccessIncludeValues = map[AgentType]map[AccessType]map[string]struct{}{
		AGENT_AUTO: {
			ACCESS_MOTOR_VEHICLE: {
				"yes": struct{}{},
			},
			ACCESS_MOTORCAR: {
				"yes": struct{}{},
			},
		},
		AGENT_BIKE: {
			ACCESS_BICYCLE: {
				"yes": struct{}{},
			},
		},
		AGENT_WALK: {
			ACCESS_FOOT: {
				"yes": struct{}{},
			},
		},
	}

	agentsAccessExcludeValues = map[AgentType]map[AccessType]map[string]struct{}{
		AGENT_AUTO: {
			ACCESS_HIGHWAY: {
				"cycleway":   struct{}{},
				"footway":    struct{}{},
				"pedestrian": struct{}{},
				"steps":      struct{}{},
				"track":      struct{}{},
				"corridor":   struct{}{},
				"elevator":   struct{}{},
				"escalator":  struct{}{},
			},
			ACCESS_MOTOR_VEHICLE: {
				"no": struct{}{},
			},
			ACCESS_MOTORCAR: {
				"no": struct{}{},
			},
			ACCESS_OSM_ACCESS: {
				"private": struct{}{},
				"no":      struct{}{},
			},
			ACCESS_SERVICE: {
				"parking":          struct{}{},
				"parking_aisle":    struct{}{},
				"driveway":         struct{}{},
				"private":          struct{}{},
				"emergency_access": struct{}{},
			},
		},
		AGENT_BIKE: {
			ACCESS_HIGHWAY: {
				"footway":       struct{}{},
				"steps":         struct{}{},
				"corridor":      struct{}{},
				"elevator":      struct{}{},
				"escalator":     struct{}{},
				"motorway":      struct{}{},
				"motorway_link": struct{}{},
			},
			ACCESS_BICYCLE: {
				"no": struct{}{},
			},
			ACCESS_SERVICE: {
				"private": struct{}{},
			},
			ACCESS_OSM_ACCESS: {
				"private": struct{}{},
				"no":      struct{}{},
			},
		},
		AGENT_WALK: {
			ACCESS_HIGHWAY: {
				"cycleway":      struct{}{},
				"motorway":      struct{}{},
				"motorway_link": struct{}{},
				"trunk":         struct{}{},
				"trunk_link":    struct{}{},
			},
			ACCESS_FOOT: {
				"no": struct{}{},
			},
			ACCESS_SERVICE: {
				"private": struct{}{},
			},
			ACCESS_OSM_ACCESS: {
				"private": struct{}{},
				"no":      struct{}{},
			},
		},
	}
)
