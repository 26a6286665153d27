package roadnet

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	pi180Rev = 180.0 / math.Pi
	// Minimal length of any emitted lane (meters)
	positionEps = 0.1
	// Mean lateral acceleration used to bound speed on internal lanes
	lateralAccelerationMean = 0.3
	gravity                 = 9.80778
)

// radiansTodegrees r = deg  * 180 / pi
func radiansTodegrees(d float64) float64 {
	return d * pi180Rev
}

// startAngle returns direction (degrees) of the first non-degenerate segment of the line
func startAngle(line orb.LineString) float64 {
	if len(line) < 2 {
		return 0
	}
	first := line[0]
	for i := 1; i < len(line); i++ {
		if line[i] != first {
			return radiansTodegrees(math.Atan2(line[i].Y()-first.Y(), line[i].X()-first.X()))
		}
	}
	return 0
}

// endAngle returns direction (degrees) of the last non-degenerate segment of the line
func endAngle(line orb.LineString) float64 {
	if len(line) < 2 {
		return 0
	}
	last := line[len(line)-1]
	for i := len(line) - 2; i >= 0; i-- {
		if line[i] != last {
			return radiansTodegrees(math.Atan2(last.Y()-line[i].Y(), last.X()-line[i].X()))
		}
	}
	return 0
}

// relAngle returns signed difference a2-a1 normalized into (-180, 180]
func relAngle(a1, a2 float64) float64 {
	angle := a2 - a1
	for angle > 180 {
		angle -= 360
	}
	for angle <= -180 {
		angle += 360
	}
	return angle
}

// lineLength returns Euclidean length of the line
func lineLength(line orb.LineString) float64 {
	if len(line) < 2 {
		return 0
	}
	return planar.Length(line)
}

// pointOnSegment returns a point on given segment using distance from its start
func pointOnSegment(p, q orb.Point, distance float64) orb.Point {
	segLength := planar.Distance(p, q)
	if segLength == 0 {
		return p
	}
	fraction := distance / segLength
	return orb.Point{
		(1-fraction)*p.X() + fraction*q.X(),
		(1-fraction)*p.Y() + fraction*q.Y(),
	}
}

// positionAtLength returns point at given distance along the line. Distance is clamped to the line.
func positionAtLength(line orb.LineString, pos float64) orb.Point {
	if len(line) == 0 {
		return orb.Point{}
	}
	if pos <= 0 {
		return line[0]
	}
	seen := 0.0
	for i := 1; i < len(line); i++ {
		segLength := planar.Distance(line[i-1], line[i])
		if seen+segLength >= pos {
			return pointOnSegment(line[i-1], line[i], pos-seen)
		}
		seen += segLength
	}
	return line[len(line)-1]
}

// splitAt cuts the line into two pieces at given distance from its start.
// Both pieces contain the split point.
func splitAt(line orb.LineString, pos float64) (orb.LineString, orb.LineString) {
	if len(line) < 2 {
		return line.Clone(), line.Clone()
	}
	total := lineLength(line)
	if pos <= 0 {
		return orb.LineString{line[0], line[0]}, line.Clone()
	}
	if pos >= total {
		return line.Clone(), orb.LineString{line[len(line)-1], line[len(line)-1]}
	}
	first := orb.LineString{line[0]}
	seen := 0.0
	for i := 1; i < len(line); i++ {
		segLength := planar.Distance(line[i-1], line[i])
		if seen+segLength < pos {
			first = append(first, line[i])
			seen += segLength
			continue
		}
		splitPoint := pointOnSegment(line[i-1], line[i], pos-seen)
		if splitPoint != first[len(first)-1] {
			first = append(first, splitPoint)
		}
		second := orb.LineString{splitPoint}
		for j := i; j < len(line); j++ {
			if line[j] != second[len(second)-1] {
				second = append(second, line[j])
			}
		}
		if len(second) < 2 {
			second = append(second, splitPoint)
		}
		return first, second
	}
	return line.Clone(), orb.LineString{line[len(line)-1], line[len(line)-1]}
}

// subpart returns part of the line between two distances from its start
func subpart(line orb.LineString, begin, end float64) orb.LineString {
	if len(line) < 2 {
		return line.Clone()
	}
	if begin < 0 {
		begin = 0
	}
	if end <= begin {
		pt := positionAtLength(line, begin)
		return orb.LineString{pt, pt}
	}
	_, tail := splitAt(line, begin)
	head, _ := splitAt(tail, end-begin)
	return head
}

// Check if two segments intersects and returns intersections Point
// p1, p2 - first segment
// p3, p4 - second segment
// Note: Euclidean space, segments are treated as infinite lines
func intersect(p1, p2, p3, p4 orb.Point) (orb.Point, error) {
	// Calculate the coefficients of the linear equations
	a1 := p2[1] - p1[1]
	b1 := p1[0] - p2[0]
	c1 := a1*p1[0] + b1*p1[1]
	a2 := p4[1] - p3[1]
	b2 := p3[0] - p4[0]
	c2 := a2*p3[0] + b2*p3[1]

	// Calculate the determinant
	det := a1*b2 - a2*b1
	if det == 0 {
		return orb.Point{}, fmt.Errorf("The lines are parallel")
	}

	// Calculate the intersection point
	x := (b2*c1 - b1*c2) / det
	y := (a1*c2 - a2*c1) / det
	return orb.Point{x, y}, nil
}

// segmentsIntersection returns intersection point of two bounded segments and its fraction along the first one
func segmentsIntersection(p1, p2, p3, p4 orb.Point) (orb.Point, float64, bool) {
	d1x, d1y := p2.X()-p1.X(), p2.Y()-p1.Y()
	d2x, d2y := p4.X()-p3.X(), p4.Y()-p3.Y()
	denominator := d1x*d2y - d1y*d2x
	if denominator == 0 {
		return orb.Point{}, 0, false
	}
	t := ((p3.X()-p1.X())*d2y - (p3.Y()-p1.Y())*d2x) / denominator
	u := ((p3.X()-p1.X())*d1y - (p3.Y()-p1.Y())*d1x) / denominator
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return orb.Point{}, 0, false
	}
	return orb.Point{p1.X() + t*d1x, p1.Y() + t*d1y}, t, true
}

// firstCrossing returns distance along l1 of the first point where it crosses l2
func firstCrossing(l1, l2 orb.LineString) (float64, bool) {
	seen := 0.0
	for i := 1; i < len(l1); i++ {
		segLength := planar.Distance(l1[i-1], l1[i])
		best := math.Inf(1)
		for j := 1; j < len(l2); j++ {
			_, t, ok := segmentsIntersection(l1[i-1], l1[i], l2[j-1], l2[j])
			if ok && t < best {
				best = t
			}
		}
		if !math.IsInf(best, 1) {
			return seen + best*segLength, true
		}
		seen += segLength
	}
	return 0, false
}

func offsetCurve(line orb.LineString, distance float64) orb.LineString {
	// Initialize result list and segment list
	var result orb.LineString
	var segments [][2]orb.Point

	// Iterate over line segments and calculate offset segments
	for i := 1; i < len(line); i++ {
		p1 := line[i-1]
		p2 := line[i]
		vec := [2]float64{p2[0] - p1[0], p2[1] - p1[1]}
		vecLen := math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1])
		if vecLen == 0 {
			continue
		}
		vec = [2]float64{vec[0] / vecLen, vec[1] / vecLen}
		// Rotate the vector by 90 degrees and scale it by the distance
		offset := [2]float64{-vec[1] * distance, vec[0] * distance}
		op1 := orb.Point{p1[0] + offset[0], p1[1] + offset[1]}
		op2 := orb.Point{p2[0] + offset[0], p2[1] + offset[1]}
		segments = append(segments, [2]orb.Point{op1, op2})
	}
	if len(segments) == 0 {
		return line.Clone()
	}

	result = append(result, segments[0][0])
	for i := 1; i < len(segments); i++ {
		seg1 := segments[i-1]
		seg2 := segments[i]
		intersection, err := intersect(seg1[0], seg1[1], seg2[0], seg2[1])
		if err != nil {
			continue
		}
		result = append(result, intersection)
	}
	result = append(result, segments[len(segments)-1][1])
	return result
}

// curvatureSpeedBound returns speed limit for a turn that spans given gap between lanes
func curvatureSpeedBound(laneEnd, nextLaneBegin orb.Point) float64 {
	return lateralAccelerationMean * gravity * planar.Distance(laneEnd, nextLaneBegin) / 2.0 / math.Pi
}
