package roadnet

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
)

func newTestWay(logger *log.Logger, tags ...string) *wayData {
	way := osm.Way{ID: 42, Nodes: osm.WayNodes{{ID: 1}, {ID: 2}}}
	for i := 0; i+1 < len(tags); i += 2 {
		way.Tags = append(way.Tags, osm.Tag{Key: tags[i], Value: tags[i+1]})
	}
	prepared := newWayData(&way)
	prepared.processTags(loggerOrDefault(logger))
	return prepared
}

func TestParseMaxSpeed(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"60", 60},
		{"50 km/h", 50},
		{"20 mph", 20 * mphToKmh},
		{"15mph", 15 * mphToKmh},
		{"none", -1},
		{"signals", -1},
		{"", -1},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, parseMaxSpeed(c.text), 1e-9, "maxspeed '%s'", c.text)
	}
}

func TestWayTags(t *testing.T) {
	t.Run("Lanes tag", func(t *testing.T) {
		buf := bytes.Buffer{}
		logger := NewLogger(&buf, log.WarnLevel)
		assert.Equal(t, 3, parseLanesTag("3", "lanes", 1, logger))
		assert.Equal(t, 2, parseLanesTag("2;3", "lanes", 1, logger))
		assert.Equal(t, -1, parseLanesTag("", "lanes", 1, logger))
		assert.Empty(t, buf.String())
		assert.Equal(t, -1, parseLanesTag("many", "lanes", 1, logger))
		assert.Equal(t, -1, parseLanesTag("0", "lanes", 1, logger))
		assert.Contains(t, buf.String(), "Provided lanes tag value should be")
	})

	t.Run("Lanes per direction", func(t *testing.T) {
		way := newTestWay(nil, "highway", "primary", "lanes", "4")
		forward, backward := way.lanesPerDirection()
		assert.Equal(t, []int{2, 2}, []int{forward, backward})

		way = newTestWay(nil, "highway", "primary", "lanes", "3")
		forward, backward = way.lanesPerDirection()
		assert.Equal(t, []int{2, 1}, []int{forward, backward})

		way = newTestWay(nil, "highway", "primary", "lanes", "3", "lanes:backward", "2")
		forward, backward = way.lanesPerDirection()
		assert.Equal(t, []int{1, 2}, []int{forward, backward})

		way = newTestWay(nil, "highway", "residential", "oneway", "yes", "lanes", "2")
		forward, backward = way.lanesPerDirection()
		assert.Equal(t, []int{2, 0}, []int{forward, backward})

		// Defaults of highway type
		way = newTestWay(nil, "highway", "primary")
		forward, backward = way.lanesPerDirection()
		assert.Equal(t, []int{2, 2}, []int{forward, backward})
	})

	t.Run("Oneway", func(t *testing.T) {
		buf := bytes.Buffer{}
		logger := NewLogger(&buf, log.WarnLevel)
		way := newTestWay(logger, "highway", "residential", "oneway", "-1")
		assert.True(t, way.Oneway)
		assert.True(t, way.IsReversed)

		way = newTestWay(logger, "highway", "residential", "junction", "roundabout")
		assert.True(t, way.Oneway)
		assert.True(t, way.isRoundabout())

		way = newTestWay(logger, "highway", "residential")
		assert.False(t, way.Oneway)
		assert.True(t, way.OnewayDefault)

		way = newTestWay(logger, "highway", "residential", "oneway", "reversible")
		assert.False(t, way.Oneway)
		assert.Empty(t, buf.String())

		newTestWay(logger, "highway", "residential", "oneway", "sometimes")
		assert.Contains(t, buf.String(), "Unhandled `oneway` tag value")
	})

	t.Run("Speed", func(t *testing.T) {
		way := newTestWay(nil, "highway", "residential", "maxspeed", "20 mph")
		assert.InDelta(t, 20*mphToKmh*kmhToMs, way.speed(), 1e-9)
		way = newTestWay(nil, "highway", "primary")
		assert.InDelta(t, 80*kmhToMs, way.speed(), 1e-9)
	})

	t.Run("Agents", func(t *testing.T) {
		way := newTestWay(nil, "highway", "residential", "access", "private")
		assert.NotContains(t, way.getAllowableAgentType(), AGENT_AUTO)

		way = newTestWay(nil, "highway", "residential", "access", "private", "motor_vehicle", "yes")
		assert.Contains(t, way.getAllowableAgentType(), AGENT_AUTO)

		way = newTestWay(nil, "highway", "primary")
		way.allowedAgents = []AgentType{AGENT_AUTO}
		assert.True(t, way.vehicleClasses().Has(VCLASS_PASSENGER))
		assert.False(t, way.vehicleClasses().Has(VCLASS_PEDESTRIAN))
	})
}
