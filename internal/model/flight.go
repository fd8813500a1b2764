package model

import "time"

// BasePriceCents is the base fare for every flight, in cents.  The
// final ticket price is the base fare times the seat class multiplier.
const BasePriceCents uint32 = 20000

// Seat classes as stored in tickets.seat_class.
const (
	ClassEconomy  = "ECONOMY"
	ClassBusiness = "BUSINESS"
	ClassFirst    = "FIRST"
)

// ClassMultiplier returns the fare multiplier for a seat class and
// whether the class name is valid.  Multipliers: ECONOMY 1.0,
// BUSINESS 2.5, FIRST 4.0.
func ClassMultiplier(class string) (float64, bool) {
	switch class {
	case ClassEconomy:
		return 1.0, true
	case ClassBusiness:
		return 2.5, true
	case ClassFirst:
		return 4.0, true
	}
	return 0, false
}

// TicketPriceCents computes the per-ticket fare in cents for the given
// seat class.  The bool result is false for unknown classes.
func TicketPriceCents(class string) (uint32, bool) {
	m, ok := ClassMultiplier(class)
	if !ok {
		return 0, false
	}
	return uint32(float64(BasePriceCents) * m), true
}

// Flight represents a row in the `flights` table.  Flights are keyed
// by their flight number.  Available seats are not stored; they are
// derived as aircraft capacity minus the count of ACTIVE tickets.
//
// Fields:
//  FlightNumber     – unique flight number (e.g. SL204).
//  AirlineID        – operating airline (FK -> airlines.id).
//  AircraftID       – assigned aircraft (FK -> aircraft.id).
//  DepartureAirport – origin airport code (FK -> airports.code).
//  ArrivalAirport   – destination airport code (FK -> airports.code).
//  DepartureTime    – scheduled departure timestamp (UTC).
//  ArrivalTime      – scheduled arrival timestamp (UTC).
//  DurationMinutes  – flight duration in minutes (nullable).
type Flight struct {
	FlightNumber     string    // flights.flight_number
	AirlineID        uint64    // flights.airline_id
	AircraftID       uint64    // flights.aircraft_id
	DepartureAirport string    // flights.departure_airport
	ArrivalAirport   string    // flights.arrival_airport
	DepartureTime    time.Time // flights.departure_time
	ArrivalTime      time.Time // flights.arrival_time
	DurationMinutes  *uint32   // flights.duration_minutes (nullable)
}
