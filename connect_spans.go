package roadnet

// getSpansConnections distributes lanes of outgoing edge among incoming edges merging into it.
// Incoming edges are given by their lanes number and sorted from left to right.
// Leftmost edge feeds left lanes of the outgoing edge with its right lanes, the others feed right lanes with their left lanes.
func getSpansConnections(outgoingLanes int, incomingLanes []int) []connectionPair {
	connections := make([]connectionPair, len(incomingLanes))
	if len(incomingLanes) == 0 || outgoingLanes <= 0 {
		return connections
	}
	leftLanes := incomingLanes[0]
	minConnections := min(outgoingLanes, leftLanes)
	connections[0] = connectionPair{laneRange{leftLanes - minConnections, leftLanes - 1}, laneRange{0, minConnections - 1}}
	for i, lanes := range incomingLanes[1:] {
		minConnections := min(outgoingLanes, lanes)
		connections[i+1] = connectionPair{laneRange{0, minConnections - 1}, laneRange{outgoingLanes - minConnections, outgoingLanes - 1}}
	}
	return connections
}
