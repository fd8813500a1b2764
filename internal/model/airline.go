package model

// Airline represents a row in the `airlines` table.  The name is
// unique across carriers.
//
// Fields:
//  ID   – primary key identifier of the airline.
//  Name – unique carrier name.
type Airline struct {
	ID   uint64 // airlines.id
	Name string // airlines.name
}

// Aircraft represents a row in the `aircraft` table.  Every aircraft
// belongs to exactly one airline and carries the seating capacity
// from which a flight's available seats are derived.
//
// Fields:
//  ID        – primary key identifier.
//  Model     – manufacturer model designation (e.g. A320, B737).
//  Capacity  – total number of seats on board.
//  AirlineID – owning airline (FK -> airlines.id).
type Aircraft struct {
	ID        uint64 // aircraft.id
	Model     string // aircraft.model
	Capacity  uint32 // aircraft.capacity
	AirlineID uint64 // aircraft.airline_id
}
