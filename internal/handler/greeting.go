package handler

import (
    "context"  // provides context with cancellation for DB calls
    "errors"   // sentinel error comparisons
    "net/http" // HTTP status codes and primitives
    "time"     // timeouts for DB calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/welcome-service/internal/repository" // DB repositories
)

// GreetingHandler serves the root endpoint. It holds the message repository
// so the welcome text always comes from the database, never from a constant
// baked into the binary.
type GreetingHandler struct {
	Messages *repository.MessageRepo
}

func NewGreetingHandler(m *repository.MessageRepo) *GreetingHandler {
	return &GreetingHandler{Messages: m}
}

// Root handles GET /. It fetches the active welcome message and writes it
// as plain text. A database failure is translated into a 503 JSON response
// instead of being allowed to kill the request.
func (h *GreetingHandler) Root(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	body, err := h.Messages.Active(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no active message"})
		}
		c.Logger().Errorf("fetch active message: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "database unavailable"})
	}
	return c.String(http.StatusOK, body)
}
