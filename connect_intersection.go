package roadnet

const (
	defaultRightMostLanes = 1
	defaultLeftMostLanes  = 1
)

// laneRange is inclusive range of lanes. Lanes are counted from the left side here: 0 is the leftmost lane
type laneRange struct {
	first int
	last  int
}

func (r laneRange) valid(lanesNum int) bool {
	return r.first >= 0 && r.first <= r.last && r.last < lanesNum
}

// connectionPair says which lanes of incoming edge lead to which lanes of outgoing edge
type connectionPair struct {
	from laneRange
	to   laneRange
}

// getIntersectionsConnections distributes lanes of incoming edge among outgoing edges.
// Outgoing edges are given by their lanes number and sorted from left to right.
// Leftmost edge gets left lane(s), rightmost edge gets right lane(s), middle ones share the rest.
func getIntersectionsConnections(incomingLanes int, outgoingLanes []int) []connectionPair {
	connections := make([]connectionPair, len(outgoingLanes))
	if len(outgoingLanes) == 0 || incomingLanes <= 0 {
		return connections
	}
	if len(outgoingLanes) == 1 { // Full connection
		connections[0] = connectionPair{laneRange{0, incomingLanes - 1}, laneRange{0, outgoingLanes[0] - 1}}
		return connections
	}
	if incomingLanes == 1 {
		connections[0] = connectionPair{laneRange{0, 0}, laneRange{0, 0}}
		for i, lanes := range outgoingLanes[1:] {
			connections[i+1] = connectionPair{laneRange{0, 0}, laneRange{lanes - 1, lanes - 1}}
		}
		return connections
	}
	rightIdx := len(outgoingLanes) - 1
	rightLanes := outgoingLanes[rightIdx]
	connections[rightIdx] = connectionPair{
		laneRange{incomingLanes - defaultRightMostLanes, incomingLanes - 1},
		laneRange{rightLanes - defaultRightMostLanes, rightLanes - 1},
	}
	if len(outgoingLanes) == 2 { // Default right, remaining left
		minConnections := min(incomingLanes-defaultRightMostLanes, outgoingLanes[0])
		connections[0] = connectionPair{laneRange{0, minConnections - 1}, laneRange{0, minConnections - 1}}
		return connections
	}

	// >= 3: default left, default right, remaining middle
	connections[0] = connectionPair{laneRange{0, defaultLeftMostLanes - 1}, laneRange{0, defaultLeftMostLanes - 1}}
	middleLanes := outgoingLanes[1:rightIdx]
	leftLanesNum := incomingLanes - defaultLeftMostLanes - defaultRightMostLanes
	switch {
	case leftLanesNum <= 0:
		// Middle edges are reachable from every lane
		for i, lanes := range middleLanes {
			connections[i+1] = connectionPair{laneRange{0, incomingLanes - 1}, laneRange{max(0, lanes-incomingLanes), lanes - 1}}
		}
	case leftLanesNum < len(middleLanes):
		for i, lanes := range middleLanes {
			lane := defaultLeftMostLanes + min(i, leftLanesNum-1)
			connections[i+1] = connectionPair{laneRange{lane, lane}, laneRange{lanes - 1, lanes - 1}}
		}
	default:
		assigned := make([]int, len(middleLanes))
		capacity := make([]int, len(middleLanes))
		copy(capacity, middleLanes)
		for leftLanesNum > 0 && total(capacity) > 0 {
			for idx := range middleLanes {
				if capacity[idx] == 0 || leftLanesNum == 0 {
					continue
				}
				capacity[idx]--
				assigned[idx]++
				leftLanesNum--
			}
		}
		// Lanes which have not fit lead to the rightmost middle edge as well
		assigned[len(assigned)-1] += leftLanesNum
		startLaneNumber := defaultLeftMostLanes
		for idx, lanes := range middleLanes {
			connections[idx+1] = connectionPair{
				laneRange{startLaneNumber, startLaneNumber + assigned[idx] - 1},
				laneRange{max(0, lanes-assigned[idx]), lanes - 1},
			}
			startLaneNumber += assigned[idx]
		}
	}
	return connections
}

func total(slice []int) int {
	sum := 0
	for _, val := range slice {
		sum += val
	}
	return sum
}
