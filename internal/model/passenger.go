package model

import "time"

// Passenger represents a row in the `passengers` table.  A passenger
// is also the authentication principal: the email is unique and the
// password is stored only as a bcrypt hash.
//
// Fields:
//  ID           – primary key identifier.
//  FullName     – passenger's full name.
//  DateOfBirth  – date of birth (date component only).
//  Nationality  – passenger's nationality.
//  Phone        – contact phone (nullable).
//  Email        – unique email address used for login.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of registration.
type Passenger struct {
	ID           uint64    // passengers.id
	FullName     string    // passengers.full_name
	DateOfBirth  time.Time // passengers.date_of_birth
	Nationality  string    // passengers.nationality
	Phone        *string   // passengers.phone (nullable)
	Email        string    // passengers.email
	PasswordHash string    // passengers.password_hash
	CreatedAt    time.Time // passengers.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only
// the SHA-256 hash of the token is stored; the raw value is returned
// to the client once and never persisted.
//
// Fields:
//  ID          – primary key identifier.
//  PassengerID – owner of the token.
//  TokenHash   – SHA-256 hex digest of the token value.
//  ExpiresAt   – expiration timestamp.
//  RevokedAt   – when the token was revoked (null if still active).
//  CreatedAt   – timestamp of creation.
type RefreshToken struct {
	ID          uint64     // refresh_tokens.id
	PassengerID uint64     // refresh_tokens.passenger_id
	TokenHash   string     // refresh_tokens.token_hash
	ExpiresAt   time.Time  // refresh_tokens.expires_at
	RevokedAt   *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt   time.Time  // refresh_tokens.created_at
}
