package repository

import (
	"context"
	"database/sql"

	"github.com/skylane/flight-booking-api/internal/model"
)

// AirportRepo provides read access to the airports table.  Airports
// are seeded reference data; the API only lists them.
type AirportRepo struct {
	db *sql.DB
}

// NewAirportRepo returns an AirportRepo bound to the given database.
func NewAirportRepo(db *sql.DB) *AirportRepo { return &AirportRepo{db: db} }

// ListAll returns every airport ordered by code.
func (r *AirportRepo) ListAll(ctx context.Context) ([]model.Airport, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code, city, country FROM airports ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Airport, 0)
	for rows.Next() {
		var a model.Airport
		if err := rows.Scan(&a.Code, &a.City, &a.Country); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
