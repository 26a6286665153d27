package roadnet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// osmNode is OSM node referenced by imported ways
type osmNode struct {
	pt orb.Point // lon, lat

	ID          osm.NodeID
	useCount    int
	controlType ControlType
	isCrossing  bool
}

type ControlType uint16

const (
	NOT_SIGNAL = ControlType(iota + 1)
	IS_SIGNAL
)

func (iotaIdx ControlType) String() string {
	return [...]string{"undefined", "common", "signal"}[iotaIdx]
}
