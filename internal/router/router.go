package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/welcome-service/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/welcome-service/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the welcome root plus liveness and readiness probes.
// The response cache middleware is applied to the root route only: admin
// responses must never be replayed to anonymous clients, and the probes have
// to reflect the current database state, not a cached one.
func RegisterRoutes(e *echo.Echo, g *handler.GreetingHandler, db *sql.DB, rdb *redis.Client, cache echo.MiddlewareFunc) {
	// The entire purpose of the service: GET / returns the active welcome
	// message from the database.
	if cache != nil {
		e.GET("/", g.Root, cache)
	} else {
		e.GET("/", g.Root)
	}
	// Liveness: is the process up.  Used by load balancers and monitoring
	// systems to verify that the service is running.
	e.GET("/healthz", handler.Health)
	// Readiness: can the process serve traffic (database reachable).
	e.GET("/readyz", handler.Ready(db, rdb))
}

// RegisterAdmin registers the message management routes and applies the
// necessary middleware.  The login endpoint lives under /v1/admin and does
// not require a token; everything else in the group is protected by JWT
// authentication plus an ADMIN role check.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	// Login exchanges the operator credentials for an access token.
	e.POST("/v1/admin/login", a.Login)

	// Protected group: every handler registered here executes the JWTAuth
	// middleware and the role gate before being invoked.
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))
	// List all welcome messages, active or not.
	g.GET("/messages", a.ListMessages)
	// Create a new (inactive) welcome message.
	g.POST("/messages", a.CreateMessage)
	// Switch the active welcome message.
	g.PUT("/messages/:id/activate", a.ActivateMessage)
}
