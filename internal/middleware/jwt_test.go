package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/welcome-service/internal/middleware"
	"github.com/iliyamo/welcome-service/internal/utils"
)

const jwtSecret = "unit-test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/messages", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, middleware.JWTAuth(jwtSecret)(next)(c))
	return rec, called, c
}

func TestJWTAuth(t *testing.T) {
	t.Parallel()

	t.Run("Valid token passes and exposes claims", func(t *testing.T) {
		tok, err := utils.NewAccessToken(jwtSecret, "admin", "ADMIN", 5)
		require.NoError(t, err)

		rec, called, c := runJWT(t, "Bearer "+tok.Token)
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin", c.Get("subject"))
		assert.Equal(t, "ADMIN", c.Get("role"))
	})

	t.Run("Missing header rejected", func(t *testing.T) {
		rec, called, _ := runJWT(t, "")
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		rec, called, _ := runJWT(t, "Bearer not-a-jwt")
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Token signed with another secret rejected", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other-secret", "admin", "ADMIN", 5)
		require.NoError(t, err)

		rec, called, _ := runJWT(t, "Bearer "+tok.Token)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Expired token rejected", func(t *testing.T) {
		tok, err := utils.NewAccessToken(jwtSecret, "admin", "ADMIN", -5)
		require.NoError(t, err)

		rec, called, _ := runJWT(t, "Bearer "+tok.Token)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	run := func(role any) (*httptest.ResponseRecorder, bool) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}

		called := false
		next := func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		}
		_ = middleware.RequireRole("ADMIN")(next)(c)
		return rec, called
	}

	t.Run("Allowed role", func(t *testing.T) {
		rec, called := run("ADMIN")
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Unknown role", func(t *testing.T) {
		rec, called := run("CUSTOMER")
		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Missing role", func(t *testing.T) {
		rec, called := run(nil)
		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Role of wrong type", func(t *testing.T) {
		rec, called := run(42)
		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
