package roadnet

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	defaultLaneWidth = 3.2
)

// Importer builds network from OSM data
type Importer struct {
	highways   []string
	agentTypes []AgentType
	laneWidth  float64
	logger     *log.Logger
}

func (importer *Importer) String() string {
	agents := make([]string, len(importer.agentTypes))
	for i, agent := range importer.agentTypes {
		agents[i] = agent.String()
	}
	return fmt.Sprintf(`
Network importer parameters:
	highways: '%s'
	agent_types: '%s'
	lane_width: %f
	`,
		strings.Join(importer.highways, ","),
		strings.Join(agents, ","),
		importer.laneWidth,
	)
}

// NewImporter creates importer. Default highway set, auto agents and 3.2m lanes are used unless options say otherwise
func NewImporter(options ...func(*Importer)) *Importer {
	importer := &Importer{
		laneWidth: defaultLaneWidth,
	}
	for _, option := range options {
		option(importer)
	}
	if len(importer.highways) == 0 {
		importer.highways = defaultHighways
	}
	if len(importer.agentTypes) == 0 {
		importer.agentTypes = []AgentType{AGENT_AUTO}
	}
	if importer.laneWidth <= 0 {
		importer.laneWidth = defaultLaneWidth
	}
	importer.logger = loggerOrDefault(importer.logger)
	return importer
}

// WithHighways sets allowed values of `highway` tag
func WithHighways(highways []string) func(*Importer) {
	return func(importer *Importer) {
		importer.highways = highways
	}
}

// WithAgentTypes sets agents the network is built for
func WithAgentTypes(agentTypes []AgentType) func(*Importer) {
	return func(importer *Importer) {
		importer.agentTypes = agentTypes
	}
}

// WithLaneWidth sets width of a single lane (meters)
func WithLaneWidth(laneWidth float64) func(*Importer) {
	return func(importer *Importer) {
		importer.laneWidth = laneWidth
	}
}

// WithImporterLogger sets diagnostics logger of the importer
func WithImporterLogger(logger *log.Logger) func(*Importer) {
	return func(importer *Importer) {
		importer.logger = logger
	}
}

func (importer *Importer) highwayAllowed(highway string) bool {
	for _, allowed := range importer.highways {
		if allowed == highway {
			return true
		}
	}
	return false
}

// agentsIntersection returns agents allowed both by way and importer in importer's order
func (importer *Importer) agentsIntersection(allowed []AgentType) []AgentType {
	result := []AgentType{}
	for _, agent := range importer.agentTypes {
		for _, wayAgent := range allowed {
			if agent == wayAgent {
				result = append(result, agent)
				break
			}
		}
	}
	return result
}
