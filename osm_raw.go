package roadnet

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// turnRestriction is a restriction relation of form "from way - via node - to way"
type turnRestriction struct {
	kind string
	from osm.WayID
	via  osm.NodeID
	to   osm.WayID
}

// prohibitive returns true for "no_*" restrictions and false for "only_*" ones
func (r turnRestriction) prohibitive() bool {
	return strings.HasPrefix(r.kind, "no_")
}

// osmDataRaw is data scanned from OSM file before any filtering
type osmDataRaw struct {
	nodes        map[osm.NodeID]*osmNode
	ways         []*wayData
	restrictions []turnRestriction
}

func newOSMScanner(ctx context.Context, file io.Reader, filename string) (OSMScanner, error) {
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(ctx, file), nil
	case ".pbf":
		return osmpbf.New(ctx, file, 4), nil
	default:
		return nil, errors.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// scanOSM passes every object of the file to the handler. The file is rewound first
func scanOSM(file *os.File, filename string, handler func(obj osm.Object)) error {
	_, err := file.Seek(0, io.SeekStart)
	if err != nil {
		return errors.Wrap(err, "Can't seek file to start")
	}
	scanner, err := newOSMScanner(context.Background(), file, filename)
	if err != nil {
		return err
	}
	defer scanner.Close()
	for scanner.Scan() {
		handler(scanner.Object())
	}
	return scanner.Err()
}

func readOSM(filename string, logger *log.Logger) (*osmDataRaw, error) {
	logger.Info("Opening file", "file", filename)
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open file")
	}
	defer file.Close()

	/* Process ways */
	step := newProgress(logger, "Processing ways...")
	ways := []*wayData{}
	nodesSeen := make(map[osm.NodeID]struct{})
	err = scanOSM(file, filename, func(obj osm.Object) {
		way, ok := obj.(*osm.Way)
		if !ok {
			return
		}
		preparedWay := newWayData(way)
		if preparedWay.TagMap.Find("highway") == "" {
			return
		}
		for _, nodeID := range preparedWay.Nodes {
			nodesSeen[nodeID] = struct{}{}
		}
		preparedWay.processTags(logger)
		ways = append(ways, preparedWay)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Can't scan ways")
	}
	step.done("Ways have been processed", "ways", len(ways))

	/* Process nodes */
	step = newProgress(logger, "Processing nodes...")
	nodes := make(map[osm.NodeID]*osmNode)
	err = scanOSM(file, filename, func(obj osm.Object) {
		node, ok := obj.(*osm.Node)
		if !ok {
			return
		}
		if _, ok := nodesSeen[node.ID]; !ok {
			return
		}
		controlType := NOT_SIGNAL
		if node.Tags.Find("highway") == "traffic_signals" {
			controlType = IS_SIGNAL
		}
		nodes[node.ID] = &osmNode{
			pt:          orb.Point{node.Lon, node.Lat},
			ID:          node.ID,
			controlType: controlType,
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "Can't scan nodes")
	}
	step.done("Nodes have been processed", "nodes", len(nodes))

	/* Process maneuvers (turn restrictions only) */
	step = newProgress(logger, "Processing maneuvers...")
	skippedRestrictions := 0
	restrictions := []turnRestriction{}
	err = scanOSM(file, filename, func(obj osm.Object) {
		relation, ok := obj.(*osm.Relation)
		if !ok {
			return
		}
		tag := relation.Tags.Find("restriction")
		if tag == "" {
			return
		}
		restriction := turnRestriction{kind: tag}
		found := 0
		for _, member := range relation.Members {
			switch {
			case member.Role == "from" && member.Type == osm.TypeWay:
				restriction.from = osm.WayID(member.Ref)
				found++
			case member.Role == "via" && member.Type == osm.TypeNode:
				restriction.via = osm.NodeID(member.Ref)
				found++
			case member.Role == "to" && member.Type == osm.TypeWay:
				restriction.to = osm.WayID(member.Ref)
				found++
			}
		}
		if found != 3 || len(relation.Members) != 3 {
			// Only "way-node-way" restrictions are supported
			skippedRestrictions++
			return
		}
		restrictions = append(restrictions, restriction)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Can't scan relations")
	}
	step.done("Maneuvers have been processed", "restrictions", len(restrictions), "skipped", skippedRestrictions)

	return &osmDataRaw{
		nodes:        nodes,
		ways:         ways,
		restrictions: restrictions,
	}, nil
}
