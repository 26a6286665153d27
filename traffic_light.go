package roadnet

// Phase is a single phase of a static traffic light program
type Phase struct {
	Duration int    // seconds
	State    string // One signal character per link index
}

// TLLogic is a computed traffic light program
type TLLogic struct {
	ID        string
	ProgramID string
	Offset    int
	Phases    []Phase
}
