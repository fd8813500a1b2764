package repository

import (
	"context"
	"database/sql"
)

// AirlineRepo provides read access to airlines and their fleets.
type AirlineRepo struct {
	db *sql.DB
}

// NewAirlineRepo returns an AirlineRepo bound to the given database.
func NewAirlineRepo(db *sql.DB) *AirlineRepo { return &AirlineRepo{db: db} }

// AirlineSummary is an airline with its aggregate fleet size.
type AirlineSummary struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	FleetSize uint32 `json:"fleet_size"`
}

// ListAll returns every airline with the number of aircraft it
// operates, ordered by name.
func (r *AirlineRepo) ListAll(ctx context.Context) ([]AirlineSummary, error) {
	const q = `SELECT al.id, al.name, COUNT(ac.id)
		FROM airlines al
		LEFT JOIN aircraft ac ON ac.airline_id = al.id
		GROUP BY al.id, al.name
		ORDER BY al.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AirlineSummary, 0)
	for rows.Next() {
		var a AirlineSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.FleetSize); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
