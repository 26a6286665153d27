package roadnet

const (
	mphToKmh = 1.609344
	kmhToMs  = 1.0 / 3.6
)

var (
	junctionTypes = map[string]struct{}{
		"circular":   {},
		"roundabout": {},
	}

	// See ref.: https://wiki.openstreetmap.org/wiki/Tag:oneway%3Dreversible
	onewayReversible = map[string]struct{}{
		"reversible":  {},
		"alternating": {},
	}

	// Ways with such `area` values are polygons, not roads
	areaTrue = map[string]struct{}{
		"yes": {},
		"1":   {},
	}
)
