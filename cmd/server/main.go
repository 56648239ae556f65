package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env file loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/hawkerhub/hawker-reserve/internal/config"     // Internal config loader
	"github.com/hawkerhub/hawker-reserve/internal/database"   // MySQL connection helper
	"github.com/hawkerhub/hawker-reserve/internal/handler"    // HTTP handlers
	"github.com/hawkerhub/hawker-reserve/internal/middleware" // Rate limit and cache middleware
	"github.com/hawkerhub/hawker-reserve/internal/queue"      // Background event consumers
	"github.com/hawkerhub/hawker-reserve/internal/repository" // Data access layer
	"github.com/hawkerhub/hawker-reserve/internal/router"     // Route registration
)

func main() {
	// Load a .env file when present; real deployments set env vars directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	cfg := config.Load() // Load environment config

	// Connect to MySQL and verify the connection before serving traffic.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Redis backs rate limiting and the GET-response cache.  A nil client
	// turns both middlewares into pass-throughs.
	rdb := config.NewRedisClient()

	// Repositories share the single pooled *sql.DB.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	venues := repository.NewVenueRepo(db)
	stalls := repository.NewStallRepo(db)
	tables := repository.NewTableRepo(db)
	reservations := repository.NewReservationRepo(db)
	points := repository.NewPointsRepo(db)
	vouchers := repository.NewVoucherRepo(db)

	// Handlers own request binding and error mapping.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(venues, stalls, tables, reservations, vouchers)
	reservationH := handler.NewReservationHandler(reservations, tables)
	pointsH := handler.NewPointsHandler(points, vouchers)
	adminH := handler.NewAdminHandler(venues, stalls, tables, vouchers, points)

	e := echo.New() // Create Echo instance

	// Global middleware: token-bucket rate limiting first, then the
	// response cache for configured GET routes.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)                                         // Health check
	router.RegisterAuth(e, authH, cfg.JWTSecret)                     // Register/login/refresh/logout + /v1/me
	router.RegisterPublic(e, publicH)                                // Guest browse endpoints
	router.RegisterCustomer(e, reservationH, pointsH, cfg.JWTSecret) // Reservations, points, vouchers
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)                   // Catalog management

	// Consume confirmation and points events in the background; each
	// consumer runs its own reconnect loop.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()
	go func() {
		if err := queue.StartPointsConsumer(); err != nil {
			log.Printf("points consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
