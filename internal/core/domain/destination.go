package domain

import "fmt"

// Destination is one of the six fixed routes served by the station.
// The zero value is not a valid destination.
type Destination int

// Destinations in menu order. Selector values 1..6 map onto these directly.
const (
	DestinationMoscow Destination = iota + 1
	DestinationSaintPetersburg
	DestinationEkaterinburg
	DestinationNovosibirsk
	DestinationSochi
	DestinationKrasnodar
)

// DestinationCount is the number of destinations the station serves.
const DestinationCount = 6

type destinationInfo struct {
	label string
	key   string
}

// destinationTable is the only place destination labels live.
// Index 0 is unused so that the table can be indexed by Destination.
var destinationTable = [DestinationCount + 1]destinationInfo{
	{},
	{label: "Moscow", key: "moscow"},
	{label: "Saint Petersburg", key: "saint_petersburg"},
	{label: "Ekaterinburg", key: "ekaterinburg"},
	{label: "Novosibirsk", key: "novosibirsk"},
	{label: "Sochi", key: "sochi"},
	{label: "Krasnodar", key: "krasnodar"},
}

// AllDestinations returns every destination in enumeration order.
func AllDestinations() []Destination {
	result := make([]Destination, 0, DestinationCount)
	for d := DestinationMoscow; d <= DestinationKrasnodar; d++ {
		result = append(result, d)
	}
	return result
}

// IsValid returns true if the destination is one of the six known routes.
func (d Destination) IsValid() bool {
	return d >= DestinationMoscow && d <= DestinationKrasnodar
}

// Label returns the human-readable city name.
func (d Destination) Label() string {
	if !d.IsValid() {
		return unknownDescription
	}
	return destinationTable[d].label
}

// Key returns the snake_case identifier used in configuration files and tool arguments.
func (d Destination) Key() string {
	if !d.IsValid() {
		return ""
	}
	return destinationTable[d].key
}

// String implements fmt.Stringer.
func (d Destination) String() string {
	return d.Label()
}

// Selector returns the 1-based menu number for the destination.
func (d Destination) Selector() int {
	return int(d)
}

// DestinationFromSelector converts a 1-based menu number into a Destination.
func DestinationFromSelector(n int) (Destination, error) {
	d := Destination(n)
	if !d.IsValid() {
		return 0, fmt.Errorf("%w: destination selector must be between 1 and %d, got %d",
			ErrInvalidInput, DestinationCount, n)
	}
	return d, nil
}

// ParseDestinationKey looks up a destination by its configuration key.
func ParseDestinationKey(key string) (Destination, error) {
	for _, d := range AllDestinations() {
		if d.Key() == key {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown destination %q", ErrInvalidInput, key)
}
