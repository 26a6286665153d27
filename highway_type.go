package roadnet

type HighwayType uint16

const (
	HIGHWAY_MOTORWAY = HighwayType(iota + 1)
	HIGHWAY_MOTORWAY_LINK
	HIGHWAY_TRUNK
	HIGHWAY_TRUNK_LINK
	HIGHWAY_PRIMARY
	HIGHWAY_PRIMARY_LINK
	HIGHWAY_SECONDARY
	HIGHWAY_SECONDARY_LINK
	HIGHWAY_TERTIARY
	HIGHWAY_TERTIARY_LINK
	HIGHWAY_RESIDENTIAL
	HIGHWAY_LIVING_STREET
	HIGHWAY_SERVICE
	HIGHWAY_CYCLEWAY
	HIGHWAY_FOOTWAY
	HIGHWAY_PEDESTRIAN
	HIGHWAY_STEPS
	HIGHWAY_TRACK
	HIGHWAY_UNCLASSIFIED
	HIGHWAY_UNDEFINED = HighwayType(0)
)

func (iotaIdx HighwayType) String() string {
	return [...]string{"undefined", "motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link", "secondary", "secondary_link", "tertiary", "tertiary_link", "residential", "living_street", "service", "cycleway", "footway", "pedestrian", "steps", "track", "unclassified"}[iotaIdx]
}

func getHighwayType(str string) HighwayType {
	if found, ok := highwaysTypes[str]; ok {
		return found
	}
	return HIGHWAY_UNDEFINED
}

// highwayDefaults is a set of attributes applied when OSM tags say nothing
type highwayDefaults struct {
	lanes    int     // Per direction
	speed    float64 // km/h
	priority int
	oneway   bool
}

var (
	highwaysTypes = map[string]HighwayType{
		"motorway":       HIGHWAY_MOTORWAY,
		"motorway_link":  HIGHWAY_MOTORWAY_LINK,
		"trunk":          HIGHWAY_TRUNK,
		"trunk_link":     HIGHWAY_TRUNK_LINK,
		"primary":        HIGHWAY_PRIMARY,
		"primary_link":   HIGHWAY_PRIMARY_LINK,
		"secondary":      HIGHWAY_SECONDARY,
		"secondary_link": HIGHWAY_SECONDARY_LINK,
		"tertiary":       HIGHWAY_TERTIARY,
		"tertiary_link":  HIGHWAY_TERTIARY_LINK,
		"residential":    HIGHWAY_RESIDENTIAL,
		"living_street":  HIGHWAY_LIVING_STREET,
		"service":        HIGHWAY_SERVICE,
		"services":       HIGHWAY_SERVICE,
		"cycleway":       HIGHWAY_CYCLEWAY,
		"footway":        HIGHWAY_FOOTWAY,
		"pedestrian":     HIGHWAY_PEDESTRIAN,
		"steps":          HIGHWAY_STEPS,
		"track":          HIGHWAY_TRACK,
		"unclassified":   HIGHWAY_UNCLASSIFIED,
	}

	defaultsByHighway = map[HighwayType]highwayDefaults{
		HIGHWAY_MOTORWAY:       {lanes: 2, speed: 120, priority: 13, oneway: true},
		HIGHWAY_MOTORWAY_LINK:  {lanes: 1, speed: 80, priority: 12, oneway: true},
		HIGHWAY_TRUNK:          {lanes: 2, speed: 100, priority: 11},
		HIGHWAY_TRUNK_LINK:     {lanes: 1, speed: 80, priority: 10},
		HIGHWAY_PRIMARY:        {lanes: 2, speed: 80, priority: 9},
		HIGHWAY_PRIMARY_LINK:   {lanes: 1, speed: 80, priority: 8},
		HIGHWAY_SECONDARY:      {lanes: 1, speed: 60, priority: 7},
		HIGHWAY_SECONDARY_LINK: {lanes: 1, speed: 60, priority: 6},
		HIGHWAY_TERTIARY:       {lanes: 1, speed: 40, priority: 6},
		HIGHWAY_TERTIARY_LINK:  {lanes: 1, speed: 40, priority: 5},
		HIGHWAY_UNCLASSIFIED:   {lanes: 1, speed: 30, priority: 5},
		HIGHWAY_RESIDENTIAL:    {lanes: 1, speed: 30, priority: 4},
		HIGHWAY_LIVING_STREET:  {lanes: 1, speed: 10, priority: 3},
		HIGHWAY_SERVICE:        {lanes: 1, speed: 20, priority: 2},
		HIGHWAY_TRACK:          {lanes: 1, speed: 20, priority: 1},
		HIGHWAY_CYCLEWAY:       {lanes: 1, speed: 20, priority: 1, oneway: true},
		HIGHWAY_FOOTWAY:        {lanes: 1, speed: 5, priority: 1},
		HIGHWAY_PEDESTRIAN:     {lanes: 1, speed: 5, priority: 1},
		HIGHWAY_STEPS:          {lanes: 1, speed: 5, priority: 1},
	}

	// Used when no highway filter has been provided
	defaultHighways = []string{
		"motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link",
		"secondary", "secondary_link", "tertiary", "tertiary_link", "unclassified", "residential", "living_street",
	}
)
