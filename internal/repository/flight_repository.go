package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/skylane/flight-booking-api/internal/model"
)

// FlightRepo provides read access to flights joined with their
// airline, aircraft and airports, plus the row lock used by the
// booking workflow.  Available seats are always computed as aircraft
// capacity minus the count of ACTIVE tickets; they are never stored.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo returns a FlightRepo bound to the given database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning several repositories.
func (r *FlightRepo) DB() *sql.DB { return r.db }

// FlightSearchQuery holds the optional search filters.  All supplied
// filters are conjunctive.  Origin and Destination match the airport
// code or city by case-insensitive substring; Date (YYYY-MM-DD)
// matches the departure timestamp truncated to its date.
type FlightSearchQuery struct {
	Origin      string
	Destination string
	Date        string
}

// FlightDetail is the flight view returned to clients.  Price is the
// economy base fare; class multipliers are applied at booking time.
type FlightDetail struct {
	FlightNumber    string  `json:"flight_number"`
	Airline         string  `json:"airline"`
	AircraftModel   string  `json:"aircraft_model"`
	Capacity        uint32  `json:"capacity"`
	Origin          string  `json:"origin"`
	OriginCity      string  `json:"origin_city"`
	Destination     string  `json:"destination"`
	DestinationCity string  `json:"destination_city"`
	DepartureTime   string  `json:"departure_time"`
	ArrivalTime     string  `json:"arrival_time"`
	DurationMinutes *uint32 `json:"duration_minutes,omitempty"`
	AvailableSeats  int32   `json:"available_seats"`
	PriceCents      uint32  `json:"price_cents"`
	Price           float64 `json:"price"`
}

const flightSelect = `SELECT f.flight_number, al.name, ac.model, ac.capacity,
		f.departure_airport, dep.city, f.arrival_airport, arr.city,
		f.departure_time, f.arrival_time, f.duration_minutes,
		ac.capacity - COUNT(t.ticket_number) AS available_seats
	FROM flights f
	JOIN airlines al ON al.id = f.airline_id
	JOIN aircraft ac ON ac.id = f.aircraft_id
	JOIN airports dep ON dep.code = f.departure_airport
	JOIN airports arr ON arr.code = f.arrival_airport
	LEFT JOIN tickets t ON t.flight_number = f.flight_number AND t.status = 'ACTIVE'`

const flightGroup = ` GROUP BY f.flight_number, al.name, ac.model, ac.capacity,
		f.departure_airport, dep.city, f.arrival_airport, arr.city,
		f.departure_time, f.arrival_time, f.duration_minutes`

// Search returns flights matching the query that still have seats
// available, ordered by departure time.  With no filters it returns
// every bookable flight.
func (r *FlightRepo) Search(ctx context.Context, q FlightSearchQuery) ([]FlightDetail, error) {
	where := []string{}
	args := []any{}

	if o := strings.TrimSpace(q.Origin); o != "" {
		where = append(where, "(LOWER(f.departure_airport) LIKE ? OR LOWER(dep.city) LIKE ?)")
		pat := "%" + strings.ToLower(o) + "%"
		args = append(args, pat, pat)
	}
	if d := strings.TrimSpace(q.Destination); d != "" {
		where = append(where, "(LOWER(f.arrival_airport) LIKE ? OR LOWER(arr.city) LIKE ?)")
		pat := "%" + strings.ToLower(d) + "%"
		args = append(args, pat, pat)
	}
	if q.Date != "" {
		where = append(where, "DATE(f.departure_time) = ?")
		args = append(args, q.Date)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	query := flightSelect + " WHERE " + cond + flightGroup +
		" HAVING available_seats > 0 ORDER BY f.departure_time ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]FlightDetail, 0)
	for rows.Next() {
		d, err := scanFlightDetail(rows)
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

// GetByNumber returns a single flight with its computed availability.
// Unknown flight numbers map to ErrFlightNotFound.
func (r *FlightRepo) GetByNumber(ctx context.Context, flightNumber string) (*FlightDetail, error) {
	query := flightSelect + " WHERE f.flight_number = ?" + flightGroup
	rows, err := r.db.QueryContext(ctx, query, flightNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrFlightNotFound
	}
	d, err := scanFlightDetail(rows)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetForUpdateTx locks the flight row within the given transaction
// and returns the aircraft capacity.  Every reservation on a flight
// acquires this lock first, so availability checks and seat inserts
// for one flight are serialized and cannot jointly overbook it.
func (r *FlightRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, flightNumber string) (uint32, error) {
	const q = `SELECT ac.capacity
		FROM flights f
		JOIN aircraft ac ON ac.id = f.aircraft_id
		WHERE f.flight_number = ?
		FOR UPDATE`
	var capacity uint32
	err := tx.QueryRowContext(ctx, q, flightNumber).Scan(&capacity)
	if err == sql.ErrNoRows {
		return 0, ErrFlightNotFound
	}
	if err != nil {
		return 0, err
	}
	return capacity, nil
}

// scanFlightDetail reads one joined flight row.  DB timestamps are
// returned as RFC3339 UTC strings for clients.
func scanFlightDetail(rows *sql.Rows) (FlightDetail, error) {
	var (
		d        FlightDetail
		dep, arr time.Time
		dur      sql.NullInt64
	)
	if err := rows.Scan(
		&d.FlightNumber, &d.Airline, &d.AircraftModel, &d.Capacity,
		&d.Origin, &d.OriginCity, &d.Destination, &d.DestinationCity,
		&dep, &arr, &dur, &d.AvailableSeats,
	); err != nil {
		return d, err
	}
	d.DepartureTime = dep.UTC().Format(time.RFC3339)
	d.ArrivalTime = arr.UTC().Format(time.RFC3339)
	if dur.Valid {
		m := uint32(dur.Int64)
		d.DurationMinutes = &m
	}
	d.PriceCents = model.BasePriceCents
	d.Price = float64(model.BasePriceCents) / 100.0
	return d, nil
}
