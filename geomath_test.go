package roadnet

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

func lineAsString(l orb.LineString) string {
	agg := []string{}
	for _, pt := range l {
		agg = append(agg, fmt.Sprintf("[%f, %f]", pt.X(), pt.Y()))
	}
	return "[" + strings.Join(agg, ",") + "]"
}

func TestOffset(t *testing.T) {
	line := orb.LineString{{10.0, 10.0}, {15.0, 10.0}, {18.0, 15.0}, {18.0, 20.0}, {15.0, 24.0}, {12.0, 24.0}, {10.0, 18.0}, {10.0, 15.0}, {13.0, 12.0}, {15.0, 16.0}}
	distance := 1.0

	leftL := lineAsString(offsetCurve(line, distance))
	rightL := lineAsString(offsetCurve(line, -distance))

	correctLeft := "[[10.000000, 11.000000],[14.433810, 11.000000],[17.000000, 15.276984],[17.000000, 19.666667],[14.500000, 23.000000],[12.720759, 23.000000],[11.000000, 17.837722],[11.000000, 15.414214],[12.726049, 13.688165],[14.105573, 16.447214]]"
	if leftL != correctLeft {
		t.Errorf("Left offset line should be '%s' but got '%s'", correctLeft, leftL)
	}
	correctRight := "[[10.000000, 9.000000],[15.566190, 9.000000],[19.000000, 14.723016],[19.000000, 20.333333],[15.500000, 25.000000],[11.279241, 25.000000],[9.000000, 18.162278],[9.000000, 14.585786],[13.273951, 10.311835],[15.894427, 15.552786]]"
	if rightL != correctRight {
		t.Errorf("Right offset line should be '%s' but got '%s'", correctRight, rightL)
	}
}

func TestOffsetDegenerateSegments(t *testing.T) {
	line := orb.LineString{{0, 0}, {0, 0}, {10, 0}}
	offset := lineAsString(offsetCurve(line, 1.0))
	correct := "[[0.000000, 1.000000],[10.000000, 1.000000]]"
	if offset != correct {
		t.Errorf("Offset line should be '%s' but got '%s'", correct, offset)
	}
}

func TestRelAngle(t *testing.T) {
	cases := []struct {
		a1, a2 float64
		want   float64
	}{
		{0, 90, 90},
		{90, 0, -90},
		{170, -170, 20},
		{-170, 170, -20},
		{90, -90, 180},
		{-90, 90, 180},
		{45, 45, 0},
	}
	for _, c := range cases {
		got := relAngle(c.a1, c.a2)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Relative angle between %f and %f should be %f, but got %f", c.a1, c.a2, c.want, got)
		}
	}
}

func TestLineAngles(t *testing.T) {
	line := orb.LineString{{0, 0}, {0, 0}, {10, 0}, {10, 10}, {10, 10}}
	if start := startAngle(line); math.Abs(start) > 1e-9 {
		t.Errorf("Start angle should be 0, but got %f", start)
	}
	if end := endAngle(line); math.Abs(end-90) > 1e-9 {
		t.Errorf("End angle should be 90, but got %f", end)
	}
}

func TestSplitAt(t *testing.T) {
	line := orb.LineString{{0, 0}, {10, 0}, {10, 10}}
	first, second := splitAt(line, 15)
	correctFirst := "LINESTRING(0 0,10 0,10 5)"
	correctSecond := "LINESTRING(10 5,10 10)"
	if wkt.MarshalString(first) != correctFirst {
		t.Errorf("First part should be '%s', but got '%s'", correctFirst, wkt.MarshalString(first))
	}
	if wkt.MarshalString(second) != correctSecond {
		t.Errorf("Second part should be '%s', but got '%s'", correctSecond, wkt.MarshalString(second))
	}

	// Split exactly at the vertex keeps it in both parts
	first, second = splitAt(line, 10)
	if wkt.MarshalString(first) != "LINESTRING(0 0,10 0)" {
		t.Errorf("Unexpected first part '%s'", wkt.MarshalString(first))
	}
	if wkt.MarshalString(second) != "LINESTRING(10 0,10 10)" {
		t.Errorf("Unexpected second part '%s'", wkt.MarshalString(second))
	}
}

func TestSubpart(t *testing.T) {
	line := orb.LineString{{0, 0}, {100, 0}}
	part := subpart(line, 0, 90)
	correct := "LINESTRING(0 0,90 0)"
	if wkt.MarshalString(part) != correct {
		t.Errorf("Subpart should be '%s', but got '%s'", correct, wkt.MarshalString(part))
	}
	part = subpart(line, 20, 30)
	correct = "LINESTRING(20 0,30 0)"
	if wkt.MarshalString(part) != correct {
		t.Errorf("Subpart should be '%s', but got '%s'", correct, wkt.MarshalString(part))
	}
}

func TestPositionAtLength(t *testing.T) {
	line := orb.LineString{{0, 0}, {10, 0}, {10, 10}}
	if pt := positionAtLength(line, 12); math.Abs(pt.X()-10) > 1e-9 || math.Abs(pt.Y()-2) > 1e-9 {
		t.Errorf("Position should be [10, 2], but got %v", pt)
	}
	if pt := positionAtLength(line, 100); pt != (orb.Point{10, 10}) {
		t.Errorf("Position beyond the line should be clamped to its end, but got %v", pt)
	}
}

func TestFirstCrossing(t *testing.T) {
	l1 := orb.LineString{{0, 0}, {10, 0}, {20, 0}}
	l2 := orb.LineString{{15, -5}, {15, 5}}
	pos, ok := firstCrossing(l1, l2)
	if !ok {
		t.Errorf("Lines should cross")
		return
	}
	if math.Abs(pos-15) > 1e-9 {
		t.Errorf("Crossing should be at 15, but got %f", pos)
	}
	_, ok = firstCrossing(l1, orb.LineString{{0, 1}, {20, 1}})
	if ok {
		t.Errorf("Parallel lines should not cross")
	}
}
