package repository

import (
	"context"
	"database/sql"
)

// StaffRepo provides read access to staff and their flight
// assignments via the flight_staff join table.
type StaffRepo struct {
	db *sql.DB
}

// NewStaffRepo returns a StaffRepo bound to the given database.
func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{db: db} }

// CrewMember is a staff member assigned to a particular flight.
type CrewMember struct {
	StaffID      uint64 `json:"staff_id"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	RoleOnFlight string `json:"role_on_flight"`
	Airline      string `json:"airline"`
}

// CrewForFlight returns the crew assigned to a flight, pilots first.
// An empty slice means no crew has been assigned yet.
func (r *StaffRepo) CrewForFlight(ctx context.Context, flightNumber string) ([]CrewMember, error) {
	const q = `SELECT s.id, s.full_name, s.role, fs.role_on_flight, al.name
		FROM flight_staff fs
		JOIN staff s ON s.id = fs.staff_id
		JOIN airlines al ON al.id = s.airline_id
		WHERE fs.flight_number = ?
		ORDER BY FIELD(fs.role_on_flight, 'PILOT', 'COPILOT', 'CREW'), s.full_name`
	rows, err := r.db.QueryContext(ctx, q, flightNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CrewMember, 0)
	for rows.Next() {
		var m CrewMember
		if err := rows.Scan(&m.StaffID, &m.FullName, &m.Role, &m.RoleOnFlight, &m.Airline); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
