package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/skylane/flight-booking-api/internal/config"
	"github.com/skylane/flight-booking-api/internal/database"
	"github.com/skylane/flight-booking-api/internal/handler"
	"github.com/skylane/flight-booking-api/internal/middleware"
	"github.com/skylane/flight-booking-api/internal/queue"
	"github.com/skylane/flight-booking-api/internal/repository"
	"github.com/skylane/flight-booking-api/internal/router"
)

func main() {
	// .env is optional; in containers configuration arrives through
	// real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	passengers := repository.NewPassengerRepo(db)
	tokens := repository.NewTokenRepo(db)
	flights := repository.NewFlightRepo(db)
	tickets := repository.NewTicketRepo(db)
	airports := repository.NewAirportRepo(db)
	airlines := repository.NewAirlineRepo(db)
	staff := repository.NewStaffRepo(db)

	authHandler := handler.NewAuthHandler(cfg, passengers, tokens)
	flightHandler := handler.NewFlightHandler(flights, airports, airlines, staff)
	bookingHandler := handler.NewBookingHandler(flights, tickets)

	e := echo.New()
	e.HideBanner = true

	// Redis backs rate limiting and the search cache.  When it is
	// unreachable both middlewares become pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, flightHandler, cache)
	router.RegisterBooking(e, bookingHandler, cfg.JWTSecret)

	// Booking audit consumer; runs its own reconnect loop.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
