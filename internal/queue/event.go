// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketBookedEvent is published after a reservation commits.  It
// carries enough information for downstream consumers to log, notify
// or feed analytics without querying the primary database.
type TicketBookedEvent struct {
	BookingRef    string   `json:"booking_ref"`
	PassengerID   uint64   `json:"passenger_id"`
	FlightNumber  string   `json:"flight_number"`
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureTime string   `json:"departure_time"`
	SeatClass     string   `json:"seat_class"`
	Seats         []string `json:"seats"`
	TotalCents    uint32   `json:"total_cents"`
	BookedAt      string   `json:"booked_at"`
}
