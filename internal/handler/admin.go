package handler

import (
    "context"  // provides context with cancellation for DB calls
    "errors"   // sentinel error comparisons
    "net/http" // HTTP status codes and primitives
    "strconv"  // string-to-int conversion for path params
    "strings"  // string manipulation utilities
    "time"     // timeouts for DB calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/welcome-service/internal/config"     // app configuration
    "github.com/iliyamo/welcome-service/internal/queue"      // event payloads
    "github.com/iliyamo/welcome-service/internal/repository" // DB repositories
    "github.com/iliyamo/welcome-service/internal/service"    // queue publisher
    "github.com/iliyamo/welcome-service/internal/utils"      // helper functions (hashing, token issuing)
)

// AdminHandler bundles dependencies for the message management endpoints.
// There is a single operator account configured through the environment, so
// no users table is involved: login checks the configured username and the
// bcrypt hash of the password.
type AdminHandler struct {
	Cfg      config.Config
	Messages *repository.MessageRepo
}

func NewAdminHandler(cfg config.Config, m *repository.MessageRepo) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Messages: m}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type loginResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type createMessageReq struct {
	Body string `json:"body"`
}
type messageResp struct {
	ID        uint64 `json:"id"`
	Body      string `json:"body"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toMessageResp(m *repository.Message) messageResp {
	return messageResp{ID: m.ID, Body: m.Body, IsActive: m.IsActive, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// Login: verify the operator credentials and return a short-lived access token.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	// Both checks run before answering so a wrong username costs the same
	// as a wrong password.
	passOK := utils.VerifyPassword(h.Cfg.AdminPassHash, req.Password)
	if req.Username != h.Cfg.AdminUser || !passOK {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.Cfg.AdminUser, "ADMIN", h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, loginResp{Token: access.Token, Expires: access.Exp})
}

// ListMessages returns every message, active or not.
func (h *AdminHandler) ListMessages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	msgs, err := h.Messages.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list messages failed"})
	}
	out := make([]messageResp, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResp(m))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateMessage inserts a new inactive message. Activation is a separate
// step so a typo never goes live by accident.
func (h *AdminHandler) CreateMessage(c echo.Context) error {
	var req createMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := &repository.Message{Body: req.Body}
	if err := h.Messages.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create message failed"})
	}
	return c.JSON(http.StatusCreated, toMessageResp(m))
}

// ActivateMessage makes the given message the one served by GET / and
// publishes a message.activated event. Publishing is best-effort: a broker
// outage must not fail the activation.
func (h *AdminHandler) ActivateMessage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Messages.Activate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "activate message failed"})
	}

	m, err := h.Messages.GetByID(ctx, id)
	if err == nil {
		ev := queue.MessageActivatedEvent{
			MessageID:   m.ID,
			Body:        m.Body,
			ActivatedBy: h.Cfg.AdminUser,
			ActivatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		_ = service.PublishMessageActivated(ctx, ev) // errors already logged by the publisher
	}

	return c.JSON(http.StatusOK, echo.Map{"activated": id})
}
