package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/skylane/flight-booking-api/internal/model"
	"github.com/skylane/flight-booking-api/internal/utils"
)

// PassengerRepo provides access to the passengers table.  Passengers
// double as authentication principals, so this repo also owns the
// bcrypt hashing of their passwords.
type PassengerRepo struct{ DB *sql.DB }

func NewPassengerRepo(db *sql.DB) *PassengerRepo { return &PassengerRepo{DB: db} }

// Create hashes the password and inserts a new passenger, returning
// its generated ID.  A duplicate email maps to ErrEmailExists.
func (r *PassengerRepo) Create(ctx context.Context, p *model.Passenger, password string, cost int) (uint64, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO passengers (full_name, date_of_birth, nationality, phone, email, password_hash) VALUES (?,?,?,?,?,?)",
		p.FullName, p.DateOfBirth.Format("2006-01-02"), p.Nationality, p.Phone, email, hash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a passenger by normalized email.  The caller
// receives sql.ErrNoRows untranslated so that login can collapse
// "no such account" and "bad password" into one generic failure.
func (r *PassengerRepo) GetByEmail(ctx context.Context, email string) (model.Passenger, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id, full_name, date_of_birth, nationality, phone, email, password_hash, created_at FROM passengers WHERE email=? LIMIT 1",
		email))
}

// GetByID fetches a passenger by primary key.
func (r *PassengerRepo) GetByID(ctx context.Context, id uint64) (model.Passenger, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id, full_name, date_of_birth, nationality, phone, email, password_hash, created_at FROM passengers WHERE id=? LIMIT 1",
		id))
}

func (r *PassengerRepo) scanOne(row *sql.Row) (model.Passenger, error) {
	var (
		p     model.Passenger
		phone sql.NullString
	)
	// date_of_birth is a DATE column; parseTime=true in the DSN makes
	// the driver hand it back as a time.Time at midnight UTC.
	err := row.Scan(&p.ID, &p.FullName, &p.DateOfBirth, &p.Nationality, &phone, &p.Email, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		return p, err
	}
	if phone.Valid {
		ph := phone.String
		p.Phone = &ph
	}
	return p, nil
}
