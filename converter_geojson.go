package roadnet

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// NetworkToGeoJSON returns lanes (LineString) and junctions (Point) of the network.
// Coordinates are converted back to lon/lat when the network has been projected
func NetworkToGeoJSON(net *Network) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, edge := range net.Edges() {
		for _, lane := range edge.Lanes() {
			feature := geojson.NewLineStringFeature(lineToCoordinates(net.Location.lineToGeographic(lane.Shape)))
			feature.ID = edge.LaneID(lane.Index)
			feature.SetProperty("kind", "lane")
			feature.SetProperty("id", edge.LaneID(lane.Index))
			feature.SetProperty("edge", string(edge.ID))
			feature.SetProperty("index", lane.Index)
			feature.SetProperty("speed", lane.Speed)
			feature.SetProperty("length", lineLength(lane.Shape))
			feature.SetProperty("priority", edge.Priority)
			if edge.Name != "" {
				feature.SetProperty("name", edge.Name)
			}
			if !lane.Allowed.Empty() {
				feature.SetProperty("allow", lane.Allowed.String())
			}
			fc.AddFeature(feature)
		}
	}
	for _, node := range net.Nodes() {
		pt := net.Location.toGeographic(node.Pos)
		feature := geojson.NewPointFeature([]float64{pt.X(), pt.Y()})
		feature.ID = string(node.ID)
		feature.SetProperty("kind", "junction")
		feature.SetProperty("id", string(node.ID))
		feature.SetProperty("type", node.Type.String())
		feature.SetProperty("incoming", len(node.IncomingEdges()))
		feature.SetProperty("outgoing", len(node.OutgoingEdges()))
		fc.AddFeature(feature)
	}
	return fc
}

// ExportToGeoJSON writes GeoJSON representation of the network. Empty file name means nothing to do
func ExportToGeoJSON(fname string, net *Network) error {
	if fname == "" {
		return nil
	}
	b, err := NetworkToGeoJSON(net).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't convert network to GeoJSON")
	}
	err = os.WriteFile(fname, b, 0644)
	if err != nil {
		return errors.Wrap(err, "Can't write GeoJSON file")
	}
	return nil
}

func lineToCoordinates(line orb.LineString) [][]float64 {
	pts := make([][]float64, len(line))
	for i, pt := range line {
		pts[i] = []float64{pt.X(), pt.Y()}
	}
	return pts
}
