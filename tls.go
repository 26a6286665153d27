package roadnet

import (
	"math"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	defaultProgramID      = "0"
	defaultGreenDuration  = 31
	defaultYellowDuration = 4
	// Approaches within this angle (or opposite within it) get green at the same time
	approachGroupAngle = 45.0
)

// BuildTrafficLightPrograms creates static program for every traffic light node.
//
// Links of the node get consecutive link indices in internal lane order and the node identifier as traffic light identifier.
// Approaches are divided into two groups by direction; the program is: first group green, first group yellow,
// second group green, second group yellow. Left turns and turnarounds get minor green.
func BuildTrafficLightPrograms(net *Network, cfg TLSConfig, logger *log.Logger) int {
	logger = loggerOrDefault(logger)
	if cfg.GreenDuration <= 0 {
		cfg.GreenDuration = defaultGreenDuration
	}
	if cfg.YellowDuration <= 0 {
		cfg.YellowDuration = defaultYellowDuration
	}
	row := NewGeometricRightOfWay(net)
	built := 0
	for _, node := range net.Nodes() {
		if node.Type != NODE_TRAFFIC_LIGHT {
			continue
		}
		logic := buildNodeProgram(net, node, row, cfg)
		if logic == nil {
			logger.Warn("Traffic light node has no links", "node", node.ID)
			continue
		}
		node.TLID = logic.ID
		net.AddTLLogic(logic)
		built++
	}
	return built
}

// tlLink is a link controlled by traffic light
type tlLink struct {
	from  *Edge
	to    *Edge
	conn  *Connection
	group int
}

func buildNodeProgram(net *Network, node *Node, row RightOfWay, cfg TLSConfig) *TLLogic {
	incoming := net.IncomingEdges(node)
	groups := approachGroups(node, incoming)
	links := []tlLink{}
	for i, inEdge := range incoming {
		for j := 0; j < inEdge.NumLanes(); j++ {
			for _, conn := range inEdge.ConnectionsFromLane(j) {
				toEdge := net.Edge(conn.ToEdge)
				if toEdge == nil {
					continue
				}
				conn.TLID = string(node.ID)
				conn.TLLinkIndex = len(links)
				links = append(links, tlLink{from: inEdge, to: toEdge, conn: conn, group: groups[i]})
			}
		}
	}
	if len(links) == 0 {
		return nil
	}
	logic := TLLogic{
		ID:        string(node.ID),
		ProgramID: defaultProgramID,
		Offset:    0,
		Phases:    make([]Phase, 0, 4),
	}
	for group := 0; group < 2; group++ {
		if !hasGroup(links, group) {
			continue
		}
		green := make([]string, len(links))
		yellow := make([]string, len(links))
		for i, link := range links {
			if link.group != group {
				green[i] = LINKSTATE_TL_RED.String()
				yellow[i] = LINKSTATE_TL_RED.String()
				continue
			}
			green[i] = LINKSTATE_TL_GREEN_MAJOR.String()
			switch row.LinkDirection(node, link.from, link.to) {
			case LINKDIR_LEFT, LINKDIR_PARTLEFT, LINKDIR_TURN:
				green[i] = LINKSTATE_TL_GREEN_MINOR.String()
			}
			yellow[i] = LINKSTATE_TL_YELLOW.String()
		}
		logic.Phases = append(logic.Phases,
			Phase{Duration: cfg.GreenDuration, State: strings.Join(green, "")},
			Phase{Duration: cfg.YellowDuration, State: strings.Join(yellow, "")},
		)
	}
	return &logic
}

// approachGroups assigns 0 to approaches parallel to the first one and 1 to the others
func approachGroups(node *Node, incoming []*Edge) []int {
	groups := make([]int, len(incoming))
	if len(incoming) == 0 {
		return groups
	}
	base := incoming[0].AngleAt(node.ID)
	for i, inEdge := range incoming {
		diff := math.Abs(relAngle(base, inEdge.AngleAt(node.ID)))
		if diff <= approachGroupAngle || diff >= 180-approachGroupAngle {
			groups[i] = 0
		} else {
			groups[i] = 1
		}
	}
	return groups
}

func hasGroup(links []tlLink, group int) bool {
	for _, link := range links {
		if link.group == group {
			return true
		}
	}
	return false
}
