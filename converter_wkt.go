package roadnet

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// ExportToCSV writes edges and junctions into '<base>_edges.csv' and '<base>_junctions.csv' where base is
// file name without '.csv' extension. Geometries are in WKT format. Empty file name means nothing to do
func ExportToCSV(fname string, net *Network) error {
	if fname == "" {
		return nil
	}
	fnamePart := strings.TrimSuffix(fname, ".csv")
	err := exportEdgesToCSV(fnamePart+"_edges.csv", net)
	if err != nil {
		return errors.Wrap(err, "Can't export edges")
	}
	err = exportJunctionsToCSV(fnamePart+"_junctions.csv", net)
	if err != nil {
		return errors.Wrap(err, "Can't export junctions")
	}
	return nil
}

func exportEdgesToCSV(fname string, net *Network) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	writer.Comma = ';'
	err = writer.Write([]string{"id", "from_node_id", "to_node_id", "lanes", "speed", "length", "priority", "name", "type", "turnaround", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, edge := range net.Edges() {
		err = writer.Write([]string{
			string(edge.ID),
			string(edge.FromNodeID),
			string(edge.ToNodeID),
			fmt.Sprintf("%d", edge.NumLanes()),
			formatFloat(edge.Speed),
			formatFloat(edge.LoadedLength),
			fmt.Sprintf("%d", edge.Priority),
			edge.Name,
			edge.TypeName,
			string(edge.TurnDestination()),
			wkt.MarshalString(net.Location.lineToGeographic(edge.Geometry())),
		})
		if err != nil {
			return errors.Wrapf(err, "Can't write edge '%s'", edge.ID)
		}
	}
	writer.Flush()
	return writer.Error()
}

func exportJunctionsToCSV(fname string, net *Network) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	writer.Comma = ';'
	err = writer.Write([]string{"id", "type", "incoming", "outgoing", "tl", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, node := range net.Nodes() {
		err = writer.Write([]string{
			string(node.ID),
			node.Type.String(),
			joinEdgeIDs(node.IncomingEdges()),
			joinEdgeIDs(node.OutgoingEdges()),
			node.TLID,
			wkt.MarshalString(orb.Point(net.Location.toGeographic(node.Pos))),
		})
		if err != nil {
			return errors.Wrapf(err, "Can't write junction '%s'", node.ID)
		}
	}
	writer.Flush()
	return writer.Error()
}

func joinEdgeIDs(ids []EdgeID) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = string(id)
	}
	return strings.Join(strs, ",")
}
