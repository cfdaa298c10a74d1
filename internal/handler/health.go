package handler // declare the package name; contains HTTP handlers

import (
    "context"      // timeouts for the readiness DB ping
    "database/sql" // DB handle used by the readiness probe
    "net/http"     // net/http provides status codes and response helpers
    "time"

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
    "github.com/redis/go-redis/v9"
)

// Health is a simple health‑check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It returns
// a plain text "ok" message with an HTTP 200 status code.
func Health(c echo.Context) error { // Health handler signature accepts an echo context and returns an error
    return c.String(http.StatusOK, "ok") // write "ok" with a 200 OK status; String writes plain text
}

// Ready returns a readiness handler that pings the database before
// reporting the service as able to take traffic.  Redis is optional, so its
// state is reported but never fails the probe.
func Ready(db *sql.DB, rdb *redis.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"status":   "unavailable",
				"database": "down",
			})
		}

		redisState := "disabled"
		if rdb != nil {
			redisState = "up"
			if err := rdb.Ping(ctx).Err(); err != nil {
				redisState = "down"
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"status":   "ok",
			"database": "up",
			"redis":    redisState,
		})
	}
}
