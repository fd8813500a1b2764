// This file defines the public browse and search endpoints.  These
// routes require no authentication so travellers can compare flights
// before creating an account; booking itself is gated by JWT.

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skylane/flight-booking-api/internal/repository"
)

// FlightHandler aggregates the read-side repositories for browsing
// airports, airlines, flights and crews.
type FlightHandler struct {
	Flights  *repository.FlightRepo
	Airports *repository.AirportRepo
	Airlines *repository.AirlineRepo
	Staff    *repository.StaffRepo
}

// NewFlightHandler constructs a FlightHandler; all dependencies must
// be non-nil.
func NewFlightHandler(f *repository.FlightRepo, ap *repository.AirportRepo, al *repository.AirlineRepo, st *repository.StaffRepo) *FlightHandler {
	if f == nil || ap == nil || al == nil || st == nil {
		panic("nil repository passed to NewFlightHandler")
	}
	return &FlightHandler{Flights: f, Airports: ap, Airlines: al, Staff: st}
}

// ListFlights handles GET /v1/flights.  It returns every flight that
// still has seats available.
func (h *FlightHandler) ListFlights(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.Flights.Search(ctx, repository.FlightSearchQuery{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// SearchFlights handles GET /v1/flights/search.  Query parameters
// origin, destination and date are optional and conjunctive: origin
// and destination substring-match the airport code or city case
// insensitively, date must equal the departure date.  Flights with no
// seats left are excluded.
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	q := repository.FlightSearchQuery{
		Origin:      c.QueryParam("origin"),
		Destination: c.QueryParam("destination"),
		Date:        c.QueryParam("date"),
	}
	if q.Date != "" {
		if _, err := time.Parse("2006-01-02", q.Date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format, use YYYY-MM-DD"})
		}
	}
	ctx := c.Request().Context()
	items, err := h.Flights.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	resp := echo.Map{"items": items}
	if len(items) == 0 {
		resp["message"] = "no flights found matching your criteria"
	}
	return c.JSON(http.StatusOK, resp)
}

// GetFlight handles GET /v1/flights/:number and returns one flight
// with its computed seat availability.
func (h *FlightHandler) GetFlight(c echo.Context) error {
	number := c.Param("number")
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight number"})
	}
	ctx := c.Request().Context()
	item, err := h.Flights.GetByNumber(ctx, number)
	if err != nil {
		if err == repository.ErrFlightNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// GetFlightCrew handles GET /v1/flights/:number/crew and lists the
// staff assigned to the flight.
func (h *FlightHandler) GetFlightCrew(c echo.Context) error {
	number := c.Param("number")
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight number"})
	}
	ctx := c.Request().Context()
	// Validate the flight exists so unknown numbers give 404, not an
	// empty crew list.
	if _, err := h.Flights.GetByNumber(ctx, number); err != nil {
		if err == repository.ErrFlightNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	crew, err := h.Staff.CrewForFlight(ctx, number)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": crew})
}

// ListAirports handles GET /v1/airports.
func (h *FlightHandler) ListAirports(c echo.Context) error {
	ctx := c.Request().Context()
	airports, err := h.Airports.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type airportOut struct {
		Code    string `json:"code"`
		City    string `json:"city"`
		Country string `json:"country"`
	}
	out := make([]airportOut, 0, len(airports))
	for _, a := range airports {
		out = append(out, airportOut{Code: a.Code, City: a.City, Country: a.Country})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListAirlines handles GET /v1/airlines.
func (h *FlightHandler) ListAirlines(c echo.Context) error {
	ctx := c.Request().Context()
	airlines, err := h.Airlines.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": airlines})
}
