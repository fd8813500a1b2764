package repository

import (
	"errors"
	"strings"
)

// Sentinel errors shared across repositories.  Handlers compare with
// errors.Is and translate them to HTTP status codes.
var (
	ErrEmailExists    = errors.New("email already exists")
	ErrFlightNotFound = errors.New("flight not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrForbidden      = errors.New("forbidden")
	ErrSeatTaken      = errors.New("seat already taken")
)

// isDuplicateKey reports whether err is a MySQL duplicate-entry
// violation (error 1062), which the unique keys on passengers.email
// and (flight_number, seat_number) surface on conflicting writes.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
