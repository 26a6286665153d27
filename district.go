package roadnet

import (
	"github.com/paulmach/orb"
)

// District is a traffic assignment zone with weighted source and sink edges
type District struct {
	ID            string
	Shape         orb.LineString
	Sources       []EdgeID
	SourceWeights []float64
	Sinks         []EdgeID
	SinkWeights   []float64
}

// NewDistrict creates empty district
func NewDistrict(id string) *District {
	return &District{
		ID:            id,
		Sources:       make([]EdgeID, 0),
		SourceWeights: make([]float64, 0),
		Sinks:         make([]EdgeID, 0),
		SinkWeights:   make([]float64, 0),
	}
}

// AddSource appends source edge with raw weight
func (district *District) AddSource(edge EdgeID, weight float64) {
	district.Sources = append(district.Sources, edge)
	district.SourceWeights = append(district.SourceWeights, weight)
}

// AddSink appends sink edge with raw weight
func (district *District) AddSink(edge EdgeID, weight float64) {
	district.Sinks = append(district.Sinks, edge)
	district.SinkWeights = append(district.SinkWeights, weight)
}

// NormalizedSourceWeights returns source weights scaled to sum up to 1
func (district *District) NormalizedSourceWeights() []float64 {
	return normaliseSum(district.SourceWeights, 1.0)
}

// NormalizedSinkWeights returns sink weights scaled to sum up to 1
func (district *District) NormalizedSinkWeights() []float64 {
	return normaliseSum(district.SinkWeights, 1.0)
}

// normaliseSum returns copy of values scaled so they sum up to given total.
// Zero-sum input is returned unchanged.
func normaliseSum(values []float64, total float64) []float64 {
	result := make([]float64, len(values))
	copy(result, values)
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if sum == 0 {
		return result
	}
	for i := range result {
		result[i] = result[i] * total / sum
	}
	return result
}
