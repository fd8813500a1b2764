// Package router maps HTTP routes onto handlers and wires the
// per-group middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/skylane/flight-booking-api/internal/handler"
	"github.com/skylane/flight-booking-api/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication and no
// handler state.  Currently that is only the health check used by
// load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login, refresh and logout live under /v1/auth and need no session;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token and issues a fresh pair.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes either a refresh token in the body (ends that
	// session) or a bearer token (ends all sessions), so it is not
	// behind JWTAuth.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Authenticated alias: with a bearer token and no body this
	// revokes every session the passenger has.
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse and search
// endpoints.  Travellers can compare flights before creating an
// account, so none of these routes require a token.  The caching
// middleware (a pass-through when Redis is absent) sits in front of
// all of them.
func RegisterPublic(e *echo.Echo, f *handler.FlightHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	g.GET("/airports", f.ListAirports)
	g.GET("/airlines", f.ListAirlines)
	g.GET("/flights", f.ListFlights)
	g.GET("/flights/search", f.SearchFlights)
	g.GET("/flights/:number", f.GetFlight)
	g.GET("/flights/:number/crew", f.GetFlightCrew)
}

// RegisterBooking registers the passenger-scoped reservation
// endpoints under /v1.  Every route requires a valid access token;
// ownership of individual tickets is enforced in the handlers.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	g.POST("/flights/:number/reserve", b.Reserve)
	g.GET("/my-tickets", b.MyTickets)
	g.GET("/tickets/:number", b.GetTicket)
	g.POST("/tickets/:number/cancel", b.Cancel)
}
