package kernel

import (
	"dispatch/internal/pkg/errs"
)

// TransportType enumerates how a courier moves. The type determines both
// the carrying capacity (maximum total order weight per delivery run) and
// the earnings efficiency multiplier via static lookup.
type TransportType string

const (
	// TransportFoot is a courier on foot: capacity 10, efficiency 2.
	TransportFoot TransportType = "foot"
	// TransportBike is a courier on a bike: capacity 15, efficiency 5.
	TransportBike TransportType = "bike"
	// TransportCar is a courier with a car: capacity 50, efficiency 9.
	TransportCar TransportType = "car"
)

// ErrTransportTypeIsInvalid is returned for a transport type outside the
// foot/bike/car enumeration.
var ErrTransportTypeIsInvalid = errs.NewValueIsInvalidError("transport type must be foot, bike or car")

var transportCapacities = map[TransportType]float64{
	TransportFoot: 10,
	TransportBike: 15,
	TransportCar:  50,
}

var transportEfficiencies = map[TransportType]int64{
	TransportFoot: 2,
	TransportBike: 5,
	TransportCar:  9,
}

// TransportTypeFromString parses and validates a transport type.
func TransportTypeFromString(s string) (TransportType, error) {
	t := TransportType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks the transport type belongs to the enumeration.
func (t TransportType) Validate() error {
	switch t {
	case TransportFoot, TransportBike, TransportCar:
		return nil
	default:
		return ErrTransportTypeIsInvalid
	}
}

// Capacity returns the maximum total order weight the transport can carry.
func (t TransportType) Capacity() float64 {
	return transportCapacities[t]
}

// Efficiency returns the earnings multiplier applied per completed run.
func (t TransportType) Efficiency() int64 {
	return transportEfficiencies[t]
}

// String returns the wire representation of the transport type.
func (t TransportType) String() string {
	return string(t)
}
