package roadnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundabout(t *testing.T) {
	net := newCrossroads(t, 1)
	r := NewRoundabout("C_N", "N_C", "C_E", "C_N")
	assert.Equal(t, []EdgeID{"C_E", "C_N", "N_C"}, r.Edges())
	assert.Equal(t, []NodeID{"C", "E", "N"}, r.Nodes(net))

	unknown := NewRoundabout("X_Y", "C_S")
	assert.Equal(t, []NodeID{"S"}, unknown.Nodes(net))

	net.AddRoundabout("C_S", "S_C")
	assert.Len(t, net.Roundabouts(), 1)
	assert.Equal(t, []NodeID{"C", "S"}, net.Roundabouts()[0].Nodes(net))
}
