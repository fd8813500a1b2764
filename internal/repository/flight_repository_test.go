package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flightCols = []string{
	"flight_number", "name", "model", "capacity",
	"departure_airport", "dep_city", "arrival_airport", "arr_city",
	"departure_time", "arrival_time", "duration_minutes", "available_seats",
}

func flightRow(number string, available int32) *sqlmock.Rows {
	dep := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	arr := dep.Add(6 * time.Hour)
	return sqlmock.NewRows(flightCols).
		AddRow(number, "SkyLane Air", "A320", uint32(180),
			"JFK", "New York", "LAX", "Los Angeles",
			dep, arr, int64(360), available)
}

func TestFlightRepo_Search_NoFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewFlightRepo(db)

	mock.ExpectQuery(`(?s)SELECT f\.flight_number.+HAVING available_seats > 0 ORDER BY f\.departure_time ASC`).
		WillReturnRows(flightRow("SL204", 150))

	out, err := repo.Search(context.Background(), FlightSearchQuery{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "SL204", out[0].FlightNumber)
	assert.Equal(t, "New York", out[0].OriginCity)
	assert.Equal(t, int32(150), out[0].AvailableSeats)
	assert.Equal(t, uint32(20000), out[0].PriceCents)
	assert.Equal(t, 200.0, out[0].Price)
	assert.Equal(t, "2026-09-15T08:00:00Z", out[0].DepartureTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightRepo_Search_AppliesConjunctiveFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewFlightRepo(db)

	mock.ExpectQuery(`(?s)LOWER\(f\.departure_airport\) LIKE \? OR LOWER\(dep\.city\) LIKE \?.+LOWER\(f\.arrival_airport\) LIKE \? OR LOWER\(arr\.city\) LIKE \?.+DATE\(f\.departure_time\) = \?`).
		WithArgs("%jfk%", "%jfk%", "%los angeles%", "%los angeles%", "2026-09-15").
		WillReturnRows(sqlmock.NewRows(flightCols))

	out, err := repo.Search(context.Background(), FlightSearchQuery{
		Origin:      "JFK",
		Destination: "Los Angeles",
		Date:        "2026-09-15",
	})
	require.NoError(t, err)
	assert.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightRepo_GetByNumber_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewFlightRepo(db)

	mock.ExpectQuery(`WHERE f\.flight_number = \?`).
		WithArgs("XX000").
		WillReturnRows(sqlmock.NewRows(flightCols))

	_, err = repo.GetByNumber(context.Background(), "XX000")
	assert.ErrorIs(t, err, ErrFlightNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightRepo_GetForUpdateTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewFlightRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT ac\.capacity.+FOR UPDATE`).
		WithArgs("SL204").
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(uint32(180)))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	capacity, err := repo.GetForUpdateTx(context.Background(), tx, "SL204")
	require.NoError(t, err)
	assert.Equal(t, uint32(180), capacity)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightRepo_GetForUpdateTx_UnknownFlight(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewFlightRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT ac\.capacity.+FOR UPDATE`).
		WithArgs("XX000").
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	_, err = repo.GetForUpdateTx(context.Background(), tx, "XX000")
	assert.ErrorIs(t, err, ErrFlightNotFound)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}
