package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/flight-booking-api/internal/config"
	"github.com/skylane/flight-booking-api/internal/repository"
	"github.com/skylane/flight-booking-api/internal/utils"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	cfg := config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 30,
		BcryptCost:     4, // min cost keeps tests fast
	}
	h := NewAuthHandler(cfg, repository.NewPassengerRepo(db), repository.NewTokenRepo(db))
	return h, mock, func() { db.Close() }
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "missing fields",
			body:    `{"email":"a@b.com","password":"secret1","confirm_password":"secret1"}`,
			wantMsg: "please fill in all required fields",
		},
		{
			name:    "password mismatch",
			body:    `{"full_name":"Ada","email":"a@b.com","password":"secret1","confirm_password":"secret2","date_of_birth":"1990-01-01"}`,
			wantMsg: "passwords do not match",
		},
		{
			name:    "password too short",
			body:    `{"full_name":"Ada","email":"a@b.com","password":"abc","confirm_password":"abc","date_of_birth":"1990-01-01"}`,
			wantMsg: "password must be at least 6 characters long",
		},
		{
			name:    "bad date of birth",
			body:    `{"full_name":"Ada","email":"a@b.com","password":"secret1","confirm_password":"secret1","date_of_birth":"01/01/1990"}`,
			wantMsg: "invalid date format, use YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mock, done := newAuthHandler(t)
			defer done()

			c, rec := postJSON("/v1/auth/register", tt.body)
			require.NoError(t, h.Register(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp["error"])
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectExec(`INSERT INTO passengers`).
		WillReturnResult(sqlmock.NewResult(5, 1))

	c, rec := postJSON("/v1/auth/register",
		`{"full_name":"Ada Lovelace","email":"Ada@Example.com","password":"secret1","confirm_password":"secret1","date_of_birth":"1990-01-01"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Passenger struct {
			ID    uint64 `json:"id"`
			Email string `json:"email"`
		} `json:"passenger"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(5), resp.Passenger.ID)
	assert.Equal(t, "ada@example.com", resp.Passenger.Email) // normalized
	assert.Equal(t, "registration successful, please log in", resp.Message)
	// Registration never hands out tokens.
	assert.NotContains(t, rec.Body.String(), "access")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectExec(`INSERT INTO passengers`).
		WillReturnError(sqlErr1062())

	c, rec := postJSON("/v1/auth/register",
		`{"full_name":"Ada","email":"a@b.com","password":"secret1","confirm_password":"secret1","date_of_birth":"1990-01-01"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")
	require.NoError(t, mock.ExpectationsWereMet())
}

func sqlErr1062() error {
	return &mysqlLikeError{msg: "Error 1062 (23000): Duplicate entry 'a@b.com' for key 'passengers.email'"}
}

type mysqlLikeError struct{ msg string }

func (e *mysqlLikeError) Error() string { return e.msg }

func passengerRows(hash string) *sqlmock.Rows {
	dob := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{"id", "full_name", "date_of_birth", "nationality", "phone", "email", "password_hash", "created_at"}).
		AddRow(uint64(5), "Ada Lovelace", dob, "USA", nil, "a@b.com", hash, time.Now().UTC())
}

func TestAuthHandler_Login_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse", 4)
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		h, mock, done := newAuthHandler(t)
		defer done()
		mock.ExpectQuery(`SELECT id, full_name, date_of_birth`).
			WithArgs("ghost@b.com").
			WillReturnError(sql.ErrNoRows)

		c, rec := postJSON("/v1/auth/login", `{"email":"ghost@b.com","password":"whatever"}`)
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid email or password")
	})

	t.Run("wrong password", func(t *testing.T) {
		h, mock, done := newAuthHandler(t)
		defer done()
		mock.ExpectQuery(`SELECT id, full_name, date_of_birth`).
			WithArgs("a@b.com").
			WillReturnRows(passengerRows(hash))

		c, rec := postJSON("/v1/auth/login", `{"email":"a@b.com","password":"wrong"}`)
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid email or password")
	})
}

func TestAuthHandler_Login_Success(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse", 4)
	require.NoError(t, err)

	h, mock, done := newAuthHandler(t)
	defer done()
	mock.ExpectQuery(`SELECT id, full_name, date_of_birth`).
		WithArgs("a@b.com").
		WillReturnRows(passengerRows(hash))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := postJSON("/v1/auth/login", `{"email":"a@b.com","password":"correct-horse"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Passenger struct {
			ID uint64 `json:"id"`
		} `json:"passenger"`
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
		Refresh struct {
			Token string `json:"token"`
		} `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(5), resp.Passenger.ID)
	assert.NotEmpty(t, resp.Access.Token)
	assert.Len(t, resp.Refresh.Token, 96)
	require.NoError(t, mock.ExpectationsWereMet())
}
