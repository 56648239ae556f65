package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/hawkerhub/hawker-reserve/internal/handler"    // import the handlers that implement business logic
	"github.com/hawkerhub/hawker-reserve/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while the authenticated profile endpoint lives under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session (register, login, refresh, logout).
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)
	// Register a POST endpoint to refresh access tokens at /v1/auth/refresh. This rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Register a POST endpoint to log out using a refresh token.  The handler
	// accepts a JSON body containing a `refresh_token` and invalidates it, so
	// no JWT is required on this route.
	g.POST("/logout", a.Logout)

	// Create another group for routes that require a valid access token.
	auth := e.Group("/v1")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Both CUSTOMER and ADMIN roles may read their own profile.
	auth.Use(middleware.RequireRole("CUSTOMER", "ADMIN"))
	// Register a GET endpoint at /v1/me that returns the authenticated user's information.
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The PublicHandler returns sanitized data for venues,
// stalls, tables, availability and the voucher catalog.  These routes do
// not apply any JWT or role middleware and are intended for guest users.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	// Expose the list of all active hawker centres.
	e.GET("/v1/venues", p.ListVenues)
	// List stalls of a specific venue.
	e.GET("/v1/venues/:id/stalls", p.ListStalls)
	// List bookable tables of a specific venue.
	e.GET("/v1/venues/:id/tables", p.ListTables)
	// List a table's confirmed reservations on a given date (?date=YYYY-MM-DD).
	e.GET("/v1/tables/:id/reservations", p.ListTableReservations)
	// Availability grid for a table on a given date: every half-hour slot
	// between opening and closing with an available flag.
	e.GET("/v1/tables/:id/slots", p.ListTableSlots)
	// Expose the active voucher catalog so guests can see what points buy.
	e.GET("/v1/vouchers", p.ListVouchers)
}

// RegisterCustomer registers the authenticated customer endpoints:
// reservations, the points ledger and voucher redemption.  Both CUSTOMER
// and ADMIN tokens are accepted.
func RegisterCustomer(e *echo.Echo, r *handler.ReservationHandler, p *handler.PointsHandler, jwtSecret string) {
	// All customer endpoints live under /v1 behind JWT auth and a role check.
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("CUSTOMER", "ADMIN"))

	// Book a table for a date and time window.
	g.POST("/reservations", r.Create)
	// Cancel one of the caller's reservations (soft cancel, idempotent).
	g.DELETE("/reservations/:id", r.Cancel)
	// List the caller's active reservations, newest first.
	g.GET("/my-reservations", r.ListMine)

	// Current points balance; never 404s, a fresh user simply sees zero.
	g.GET("/points", p.GetBalance)
	// Full append-only points history, newest first.
	g.GET("/points/history", p.ListHistory)
	// Earn points for a photo upload or an upvote.  The grant amounts are
	// fixed server-side policy.
	g.POST("/points/award", p.Award)
	// Exchange points for a voucher code.
	g.POST("/vouchers/:id/redeem", p.Redeem)
	// Consume a voucher code at the point of sale.
	g.POST("/vouchers/use", p.Use)
	// List the caller's redeemed voucher codes.
	g.GET("/my-vouchers", p.ListMyVouchers)
}

// RegisterAdmin registers catalog management endpoints under /v1/admin.
// Every route requires a valid JWT carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	// Hawker centre management.
	g.POST("/venues", a.CreateVenue)
	g.PATCH("/venues/:id", a.UpdateVenue)
	g.DELETE("/venues/:id", a.DeleteVenue)

	// Stall management.
	g.POST("/stalls", a.CreateStall)
	g.PATCH("/stalls/:id", a.UpdateStall)
	g.DELETE("/stalls/:id", a.DeleteStall)

	// Table management.  Deleting is a soft deactivate so history survives.
	g.POST("/tables", a.CreateTable)
	g.PATCH("/tables/:id", a.UpdateTable)
	g.DELETE("/tables/:id", a.DeleteTable)

	// Voucher catalog management.
	g.POST("/vouchers", a.CreateVoucher)
	g.PATCH("/vouchers/:id", a.UpdateVoucher)

	// Manual points correction with a mandatory description.
	g.POST("/points/adjust", a.AdjustPoints)
}
