package model

import "time"

// Ticket statuses as stored in tickets.status.  RESCHEDULED is part
// of the schema but no workflow currently produces it.
const (
	TicketActive      = "ACTIVE"
	TicketCanceled    = "CANCELED"
	TicketRescheduled = "RESCHEDULED"
)

// Payment methods as stored in payments.method.
const (
	PayCard   = "CARD"
	PayWallet = "WALLET"
	PayCash   = "CASH"
)

// Ticket represents a row in the `tickets` table.  One booking may
// create several tickets; they share a booking reference so they can
// be traced back to the reservation that produced them.  Seat numbers
// are unique per flight among ACTIVE tickets.
//
// Fields:
//  TicketNumber – primary key identifier.
//  PassengerID  – owning passenger (FK -> passengers.id).
//  FlightNumber – booked flight (FK -> flights.flight_number).
//  SeatNumber   – allocated seat (e.g. 07C).
//  SeatClass    – ECONOMY, BUSINESS or FIRST.
//  PriceCents   – per-ticket fare in cents.
//  BookingRef   – UUID shared by all tickets of one reservation.
//  BookingDate  – timestamp of the booking.
//  Status       – ACTIVE, CANCELED or RESCHEDULED.
type Ticket struct {
	TicketNumber uint64    // tickets.ticket_number
	PassengerID  uint64    // tickets.passenger_id
	FlightNumber string    // tickets.flight_number
	SeatNumber   string    // tickets.seat_number
	SeatClass    string    // tickets.seat_class
	PriceCents   uint32    // tickets.price_cents
	BookingRef   string    // tickets.booking_ref
	BookingDate  time.Time // tickets.booking_date
	Status       string    // tickets.status
}

// Payment represents a row in the `payments` table.  Each payment
// settles exactly one ticket (unique ticket_number).  No workflow in
// this service captures payments yet; the read side is exposed on the
// ticket detail endpoint.
type Payment struct {
	ID           uint64    // payments.id
	TicketNumber uint64    // payments.ticket_number (unique)
	PaymentDate  time.Time // payments.payment_date
	AmountCents  uint32    // payments.amount_cents
	Method       string    // payments.method
}

// TicketChange represents a row in the `ticket_changes` audit table.
// It is append-only; the booking and cancellation workflows do not
// write to it today, but the history is surfaced read-only.
type TicketChange struct {
	ID           uint64    // ticket_changes.id
	TicketNumber uint64    // ticket_changes.ticket_number
	ChangeDate   time.Time // ticket_changes.change_date
	NewStatus    string    // ticket_changes.new_status
}
