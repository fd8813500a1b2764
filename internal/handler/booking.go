package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skylane/flight-booking-api/internal/model"
	"github.com/skylane/flight-booking-api/internal/queue"
	"github.com/skylane/flight-booking-api/internal/repository"
	queue_publisher "github.com/skylane/flight-booking-api/internal/service"
	"github.com/skylane/flight-booking-api/internal/utils"
)

// BookingHandler groups the repositories used to reserve, list and
// cancel tickets.  JWT authentication has already run by the time any
// of these methods is invoked.  Every mutation executes inside a
// single transaction opened and closed here so that a multi-ticket
// reservation is all-or-nothing.
type BookingHandler struct {
	Flights *repository.FlightRepo // flight lookups and the per-flight row lock
	Tickets *repository.TicketRepo // ticket persistence
}

// NewBookingHandler constructs a BookingHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewBookingHandler(flights *repository.FlightRepo, tickets *repository.TicketRepo) *BookingHandler {
	if flights == nil || tickets == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Flights: flights, Tickets: tickets}
}

type reserveReq struct {
	NumPassengers int    `json:"num_passengers"`
	SeatClass     string `json:"seat_class"`
}

// Reserve handles POST /v1/flights/:number/reserve.  It books
// num_passengers seats in one seat class on the flight.  The flight
// row is locked for the duration of the transaction, so the
// availability check, the seat allocation and the ticket inserts see
// a stable view and two concurrent bookings can never jointly
// overbook the aircraft.
func (h *BookingHandler) Reserve(c echo.Context) error {
	passengerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	flightNumber := c.Param("number")
	if flightNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight number"})
	}

	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.NumPassengers < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number of passengers must be at least 1"})
	}
	seatClass := strings.ToUpper(strings.TrimSpace(req.SeatClass))
	if seatClass == "" {
		seatClass = model.ClassEconomy
	}
	priceCents, ok := model.TicketPriceCents(seatClass)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown seat class"})
	}

	// Bounded transaction: a stuck booking must not hold the flight
	// row lock past the request.
	ctx, cancelCtx := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancelCtx()
	tx, err := h.Flights.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	capacity, err := h.Flights.GetForUpdateTx(ctx, tx, flightNumber)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	taken, err := h.Tickets.ActiveSeatNumbersTx(ctx, tx, flightNumber)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check seat availability"})
	}
	available := int(capacity) - len(taken)
	if req.NumPassengers > available {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":     "not enough seats available",
			"available": available,
		})
	}

	seats := utils.AllocateSeats(taken, req.NumPassengers)
	bookingRef := uuid.NewString()
	records := make([]repository.TicketRecord, 0, len(seats))
	for _, seat := range seats {
		records = append(records, repository.TicketRecord{
			PassengerID:  passengerID,
			FlightNumber: flightNumber,
			SeatNumber:   seat,
			SeatClass:    seatClass,
			PriceCents:   priceCents,
			BookingRef:   bookingRef,
		})
	}
	if err := h.Tickets.CreateBulkTx(ctx, tx, records); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			// Unique key violation on (flight, seat): another booking
			// slipped in. Retryable by the client.
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat conflict, please retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create tickets"})
	}
	booked, err := h.Tickets.ByBookingRefTx(ctx, tx, bookingRef)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tickets"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	totalCents := priceCents * uint32(req.NumPassengers)

	// Best-effort event after commit; the booking stands even if the
	// broker is down.
	flight, ferr := h.Flights.GetByNumber(ctx, flightNumber)
	go func() {
		ev := queue.TicketBookedEvent{
			BookingRef:   bookingRef,
			PassengerID:  passengerID,
			FlightNumber: flightNumber,
			SeatClass:    seatClass,
			Seats:        seats,
			TotalCents:   totalCents,
			BookedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		if ferr == nil {
			ev.Origin = flight.Origin
			ev.Destination = flight.Destination
			ev.DepartureTime = flight.DepartureTime
		}
		pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishTicketBooked(pctx, ev)
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_ref":   bookingRef,
		"flight_number": flightNumber,
		"seat_class":    seatClass,
		"tickets":       booked,
		"total_cents":   totalCents,
		"total":         float64(totalCents) / 100.0,
	})
}

// MyTickets handles GET /v1/my-tickets and returns the passenger's
// tickets newest-first.
func (h *BookingHandler) MyTickets(c echo.Context) error {
	passengerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	items, err := h.Tickets.ListByPassenger(ctx, passengerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tickets"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetTicket handles GET /v1/tickets/:number.  It returns one ticket
// with its payment (if any) and change history; 403 when the ticket
// belongs to another passenger.
func (h *BookingHandler) GetTicket(c echo.Context) error {
	passengerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ticketNumber, err := strconv.ParseUint(c.Param("number"), 10, 64)
	if err != nil || ticketNumber == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket number"})
	}
	ctx := c.Request().Context()
	item, err := h.Tickets.GetDetailForPassenger(ctx, ticketNumber, passengerID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load ticket"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// Cancel handles POST /v1/tickets/:number/cancel.  Only the owning
// passenger may cancel.  Cancelling an already-cancelled ticket is an
// idempotent no-op.  The status flip is a compare-and-swap on
// status=ACTIVE inside a transaction, so a double-cancel race
// degrades to the no-op path rather than an error.
func (h *BookingHandler) Cancel(c echo.Context) error {
	passengerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ticketNumber, err := strconv.ParseUint(c.Param("number"), 10, 64)
	if err != nil || ticketNumber == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket number"})
	}

	ctx, cancelCtx := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancelCtx()
	tx, err := h.Tickets.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	owner, status, err := h.Tickets.GetOwnerAndStatusTx(ctx, tx, ticketNumber)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if owner != passengerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if status == model.TicketCanceled {
		return c.JSON(http.StatusOK, echo.Map{"message": "ticket is already cancelled"})
	}

	changed, err := h.Tickets.CancelTx(ctx, tx, ticketNumber)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel ticket"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	if !changed {
		// Lost the compare-and-swap: someone else cancelled first.
		return c.JSON(http.StatusOK, echo.Map{"message": "ticket is already cancelled"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ticket cancelled successfully"})
}
