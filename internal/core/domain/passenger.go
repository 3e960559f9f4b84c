package domain

import "fmt"

// PassengerID is the stable position of a passenger in the registry.
// Passengers are never removed, so an ID stays valid for the life of a cashbox.
type PassengerID int

// Passenger is a registered traveller.
type Passenger struct {
	ID        PassengerID `json:"id"`
	Passport  string      `json:"passport"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
}

// FullName returns "First Last".
func (p Passenger) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}
