package repository

import (
	"context"
	"database/sql"
	"time"
)

// TicketRepo provides CRUD operations for tickets and the read side
// of their payments and change history.  Multi-ticket bookings are
// written through the *Tx methods inside one transaction so that a
// reservation is all-or-nothing.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *TicketRepo) DB() *sql.DB { return r.db }

// TicketRecord carries the fields needed to insert one ticket.
type TicketRecord struct {
	PassengerID  uint64
	FlightNumber string
	SeatNumber   string
	SeatClass    string
	PriceCents   uint32
	BookingRef   string
}

// ActiveSeatNumbersTx returns the set of seat numbers currently held
// by ACTIVE tickets on a flight, read within the transaction.  The
// caller holds the flight row lock, so the set is stable for the
// duration of the booking.
func (r *TicketRepo) ActiveSeatNumbersTx(ctx context.Context, tx *sql.Tx, flightNumber string) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT seat_number FROM tickets WHERE flight_number = ? AND status = 'ACTIVE'`,
		flightNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	taken := make(map[string]struct{})
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		taken[s] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return taken, nil
}

// CreateBulkTx inserts all tickets of one booking in a single
// statement, status ACTIVE, booking date now.  A duplicate
// (flight_number, seat_number) key maps to ErrSeatTaken so callers
// can surface the conflict as retryable.  Passing an empty slice has
// no effect and returns nil.
func (r *TicketRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, tickets []TicketRecord) error {
	if len(tickets) == 0 {
		return nil
	}
	query := `INSERT INTO tickets (passenger_id, flight_number, seat_number, seat_class, price_cents, booking_ref, booking_date, status) VALUES `
	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	args := make([]interface{}, 0, len(tickets)*8)
	for i, t := range tickets {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, 'ACTIVE')"
		args = append(args, t.PassengerID, t.FlightNumber, t.SeatNumber, t.SeatClass, t.PriceCents, t.BookingRef, now)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateKey(err) {
			return ErrSeatTaken
		}
		return err
	}
	return nil
}

// BookedTicket is the slim view of a freshly created ticket returned
// from the reservation endpoint.
type BookedTicket struct {
	TicketNumber uint64 `json:"ticket_number"`
	SeatNumber   string `json:"seat_number"`
	PriceCents   uint32 `json:"price_cents"`
}

// ByBookingRefTx reads back the tickets created under one booking
// reference, ordered by seat number, within the same transaction.
func (r *TicketRepo) ByBookingRefTx(ctx context.Context, tx *sql.Tx, bookingRef string) ([]BookedTicket, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT ticket_number, seat_number, price_cents FROM tickets WHERE booking_ref = ? ORDER BY seat_number`,
		bookingRef)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookedTicket, 0)
	for rows.Next() {
		var b BookedTicket
		if err := rows.Scan(&b.TicketNumber, &b.SeatNumber, &b.PriceCents); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOwnerAndStatusTx loads a ticket's owner and status with the row
// locked for the rest of the transaction.  Unknown ticket numbers map
// to ErrTicketNotFound.
func (r *TicketRepo) GetOwnerAndStatusTx(ctx context.Context, tx *sql.Tx, ticketNumber uint64) (uint64, string, error) {
	const q = `SELECT passenger_id, status FROM tickets WHERE ticket_number = ? FOR UPDATE`
	var (
		passengerID uint64
		status      string
	)
	err := tx.QueryRowContext(ctx, q, ticketNumber).Scan(&passengerID, &status)
	if err == sql.ErrNoRows {
		return 0, "", ErrTicketNotFound
	}
	if err != nil {
		return 0, "", err
	}
	return passengerID, status, nil
}

// CancelTx flips a ticket from ACTIVE to CANCELED with a
// compare-and-swap on the status column.  It reports whether a row
// was actually transitioned; false means the ticket was no longer
// ACTIVE, which callers treat as an idempotent no-op.
func (r *TicketRepo) CancelTx(ctx context.Context, tx *sql.Tx, ticketNumber uint64) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE tickets SET status = 'CANCELED' WHERE ticket_number = ? AND status = 'ACTIVE'`,
		ticketNumber)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// TicketDetail is a ticket joined with its flight route, plus the
// payment (if one exists) and the append-only change history on the
// single-ticket endpoint.
type TicketDetail struct {
	TicketNumber  uint64          `json:"ticket_number"`
	PassengerID   uint64          `json:"-"`
	FlightNumber  string          `json:"flight_number"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	DepartureTime string          `json:"departure_time"`
	SeatNumber    string          `json:"seat_number"`
	SeatClass     string          `json:"seat_class"`
	PriceCents    uint32          `json:"price_cents"`
	Price         float64         `json:"price"`
	BookingRef    string          `json:"booking_ref"`
	BookingDate   string          `json:"booking_date"`
	Status        string          `json:"status"`
	Payment       *PaymentInfo    `json:"payment,omitempty"`
	Changes       []TicketHistory `json:"changes,omitempty"`
}

// PaymentInfo is the read-only payment view attached to a ticket.
type PaymentInfo struct {
	PaymentDate string  `json:"payment_date"`
	AmountCents uint32  `json:"amount_cents"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
}

// TicketHistory is one row of the ticket_changes audit trail.
type TicketHistory struct {
	ChangeDate string `json:"change_date"`
	NewStatus  string `json:"new_status"`
}

const ticketSelect = `SELECT t.ticket_number, t.passenger_id, t.flight_number,
		f.departure_airport, f.arrival_airport, f.departure_time,
		t.seat_number, t.seat_class, t.price_cents, t.booking_ref, t.booking_date, t.status
	FROM tickets t
	JOIN flights f ON f.flight_number = t.flight_number`

// ListByPassenger returns all tickets of a passenger, newest booking
// first.  An empty slice is returned when the passenger has none.
func (r *TicketRepo) ListByPassenger(ctx context.Context, passengerID uint64) ([]TicketDetail, error) {
	query := ticketSelect + ` WHERE t.passenger_id = ? ORDER BY t.booking_date DESC, t.ticket_number DESC`
	rows, err := r.db.QueryContext(ctx, query, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TicketDetail, 0)
	for rows.Next() {
		d, err := scanTicketDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDetailForPassenger loads one ticket with payment and change
// history, enforcing ownership: ErrTicketNotFound when the number is
// unknown, ErrForbidden when the ticket belongs to someone else.
func (r *TicketRepo) GetDetailForPassenger(ctx context.Context, ticketNumber, passengerID uint64) (*TicketDetail, error) {
	query := ticketSelect + ` WHERE t.ticket_number = ?`
	rows, err := r.db.QueryContext(ctx, query, ticketNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrTicketNotFound
	}
	d, err := scanTicketDetail(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()
	if d.PassengerID != passengerID {
		return nil, ErrForbidden
	}

	// Payment is 1:1 with ticket; absence is normal (no capture flow).
	var (
		payDate time.Time
		amount  uint32
		method  string
	)
	err = r.db.QueryRowContext(ctx,
		`SELECT payment_date, amount_cents, method FROM payments WHERE ticket_number = ? LIMIT 1`,
		ticketNumber).Scan(&payDate, &amount, &method)
	switch err {
	case nil:
		d.Payment = &PaymentInfo{
			PaymentDate: payDate.UTC().Format(time.RFC3339),
			AmountCents: amount,
			Amount:      float64(amount) / 100.0,
			Method:      method,
		}
	case sql.ErrNoRows:
	default:
		return nil, err
	}

	hrows, err := r.db.QueryContext(ctx,
		`SELECT change_date, new_status FROM ticket_changes WHERE ticket_number = ? ORDER BY change_date ASC`,
		ticketNumber)
	if err != nil {
		return nil, err
	}
	defer hrows.Close()
	for hrows.Next() {
		var (
			cd time.Time
			ns string
		)
		if err := hrows.Scan(&cd, &ns); err != nil {
			return nil, err
		}
		d.Changes = append(d.Changes, TicketHistory{ChangeDate: cd.UTC().Format(time.RFC3339), NewStatus: ns})
	}
	if err := hrows.Err(); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanTicketDetail(rows *sql.Rows) (TicketDetail, error) {
	var (
		d        TicketDetail
		dep, bkd time.Time
	)
	if err := rows.Scan(
		&d.TicketNumber, &d.PassengerID, &d.FlightNumber,
		&d.Origin, &d.Destination, &dep,
		&d.SeatNumber, &d.SeatClass, &d.PriceCents, &d.BookingRef, &bkd, &d.Status,
	); err != nil {
		return d, err
	}
	d.DepartureTime = dep.UTC().Format(time.RFC3339)
	d.BookingDate = bkd.UTC().Format(time.RFC3339)
	d.Price = float64(d.PriceCents) / 100.0
	return d, nil
}
