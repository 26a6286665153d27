package roadnet

import (
	"strings"
)

type VehicleClass uint16

const (
	VCLASS_PRIVATE = VehicleClass(iota + 1)
	VCLASS_PUBLIC_TRANSPORT
	VCLASS_PUBLIC_EMERGENCY
	VCLASS_PUBLIC_AUTHORITY
	VCLASS_PUBLIC_ARMY
	VCLASS_VIP
	VCLASS_PASSENGER
	VCLASS_HOV
	VCLASS_TAXI
	VCLASS_BUS
	VCLASS_DELIVERY
	VCLASS_TRANSPORT
	VCLASS_LIGHTRAIL
	VCLASS_CITYRAIL
	VCLASS_RAIL_SLOW
	VCLASS_RAIL_FAST
	VCLASS_MOTORCYCLE
	VCLASS_BICYCLE
	VCLASS_PEDESTRIAN
	VCLASS_UNKNOWN = VehicleClass(0)
)

func (iotaIdx VehicleClass) String() string {
	return [...]string{"unknown", "private", "public_transport", "public_emergency", "public_authority", "public_army", "vip", "passenger", "hov", "taxi", "bus", "delivery", "transport", "lightrail", "cityrail", "rail_slow", "rail_fast", "motorcycle", "bicycle", "pedestrian"}[iotaIdx]
}

// VehicleClasses is a set of vehicle classes
type VehicleClasses uint32

// NewVehicleClasses creates set from given classes
func NewVehicleClasses(classes ...VehicleClass) VehicleClasses {
	set := VehicleClasses(0)
	for _, class := range classes {
		set = set.With(class)
	}
	return set
}

// With returns set extended by given class
func (set VehicleClasses) With(class VehicleClass) VehicleClasses {
	if class == VCLASS_UNKNOWN {
		return set
	}
	return set | 1<<(class-1)
}

// Has checks whether given class is in the set
func (set VehicleClasses) Has(class VehicleClass) bool {
	if class == VCLASS_UNKNOWN {
		return false
	}
	return set&(1<<(class-1)) != 0
}

// Empty checks whether set contains no classes
func (set VehicleClasses) Empty() bool {
	return set == 0
}

// Classes returns members of the set in declaration order
func (set VehicleClasses) Classes() []VehicleClass {
	classes := []VehicleClass{}
	for class := VCLASS_PRIVATE; class <= VCLASS_PEDESTRIAN; class++ {
		if set.Has(class) {
			classes = append(classes, class)
		}
	}
	return classes
}

// String returns space-joined class names
func (set VehicleClasses) String() string {
	classes := set.Classes()
	names := make([]string, len(classes))
	for i, class := range classes {
		names[i] = class.String()
	}
	return strings.Join(names, " ")
}
