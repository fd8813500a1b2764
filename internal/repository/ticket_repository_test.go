package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRepo_ActiveSeatNumbersTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTicketRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT seat_number FROM tickets WHERE flight_number = \? AND status = 'ACTIVE'`).
		WithArgs("SL204").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("01A").AddRow("01B").AddRow("02C"))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	taken, err := repo.ActiveSeatNumbersTx(context.Background(), tx, "SL204")
	require.NoError(t, err)
	assert.Len(t, taken, 3)
	assert.Contains(t, taken, "01A")
	assert.Contains(t, taken, "02C")
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepo_CreateBulkTx_InsertsAllTickets(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTicketRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO tickets .+VALUES \(\?, \?, \?, \?, \?, \?, \?, 'ACTIVE'\),\(\?, \?, \?, \?, \?, \?, \?, 'ACTIVE'\)`).
		WillReturnResult(sqlmock.NewResult(10, 2))
	mock.ExpectCommit()

	tickets := []TicketRecord{
		{PassengerID: 1, FlightNumber: "SL204", SeatNumber: "01A", SeatClass: "ECONOMY", PriceCents: 20000, BookingRef: "ref-1"},
		{PassengerID: 1, FlightNumber: "SL204", SeatNumber: "01B", SeatClass: "ECONOMY", PriceCents: 20000, BookingRef: "ref-1"},
	}

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.CreateBulkTx(context.Background(), tx, tickets))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepo_CreateBulkTx_DuplicateSeatMapsToErrSeatTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTicketRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO tickets`).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'SL204-01A' for key 'uk_flight_seat'"))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	err = repo.CreateBulkTx(context.Background(), tx, []TicketRecord{
		{PassengerID: 1, FlightNumber: "SL204", SeatNumber: "01A", SeatClass: "ECONOMY", PriceCents: 20000, BookingRef: "ref-1"},
	})
	assert.ErrorIs(t, err, ErrSeatTaken)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepo_CreateBulkTx_EmptySliceIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTicketRepo(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.CreateBulkTx(context.Background(), tx, nil))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepo_CancelTx_TransitionsActiveTicket(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTicketRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE tickets SET status = 'CANCELED' WHERE ticket_number = \? AND status = 'ACTIVE'`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	changed, err := repo.CancelTx(context.Background(), tx, 7)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepo_CancelTx_AlreadyCanceledIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTicketRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE tickets SET status = 'CANCELED'`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	changed, err := repo.CancelTx(context.Background(), tx, 7)
	require.NoError(t, err)
	assert.False(t, changed)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepo_GetOwnerAndStatusTx_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTicketRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT passenger_id, status FROM tickets WHERE ticket_number = \? FOR UPDATE`).
		WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"passenger_id", "status"}))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	_, _, err = repo.GetOwnerAndStatusTx(context.Background(), tx, 999)
	assert.ErrorIs(t, err, ErrTicketNotFound)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}
