package roadnet

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	earthR = 20037508.34
	// Projection descriptor written into the location header
	projWebMercator = "EPSG:3857"
)

func epsg4326To3857(lon, lat float64) (float64, float64) {
	x := lon * earthR / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * earthR / 180
	return x, y
}

func pointToEuclidean(pt orb.Point) orb.Point {
	euclideanX, euclideanY := epsg4326To3857(pt.Lon(), pt.Lat())
	return orb.Point{euclideanX, euclideanY}
}

// Location describes coordinates transformation which has been applied to the network
type Location struct {
	NetOffset     orb.Point
	ConvBoundary  orb.Bound
	OrigBoundary  orb.Bound
	ProjParameter string // Empty when no geographic projection has been used
}

// UsingGeoProjection returns true if original coordinates were geographic
func (loc *Location) UsingGeoProjection() bool {
	return loc.ProjParameter != ""
}

// projector converts geographic coordinates into network ones (projected and shifted by offset)
type projector struct {
	offset orb.Point
}

func newProjector(origBound orb.Bound) projector {
	minCorner := pointToEuclidean(origBound.Min)
	return projector{offset: orb.Point{-minCorner.X(), -minCorner.Y()}}
}

func (p projector) project(pt orb.Point) orb.Point {
	euclidean := pointToEuclidean(pt)
	return orb.Point{euclidean.X() + p.offset.X(), euclidean.Y() + p.offset.Y()}
}

func (p projector) projectLine(line orb.LineString) orb.LineString {
	newLine := make(orb.LineString, len(line))
	for i, pt := range line {
		newLine[i] = p.project(pt)
	}
	return newLine
}

func epsg3857To4326(x, y float64) (float64, float64) {
	lon := x * 180 / earthR
	lat := math.Atan(math.Exp(y*math.Pi/earthR))*360/math.Pi - 90
	return lon, lat
}

// toGeographic converts network coordinates back to lon/lat. Coordinates are returned as is when no projection has been used
func (loc *Location) toGeographic(pt orb.Point) orb.Point {
	if !loc.UsingGeoProjection() {
		return pt
	}
	lon, lat := epsg3857To4326(pt.X()-loc.NetOffset.X(), pt.Y()-loc.NetOffset.Y())
	return orb.Point{lon, lat}
}

func (loc *Location) lineToGeographic(line orb.LineString) orb.LineString {
	newLine := make(orb.LineString, len(line))
	for i, pt := range line {
		newLine[i] = loc.toGeographic(pt)
	}
	return newLine
}
