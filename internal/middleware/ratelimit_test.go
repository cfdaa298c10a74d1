package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/welcome-service/internal/config"
	"github.com/iliyamo/welcome-service/internal/utils"
)

func limiterContext(t *testing.T, authHeader string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/messages", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/admin/messages")
	return c
}

func TestCurrentSubject(t *testing.T) {
	t.Parallel()

	t.Run("From context when JWTAuth already ran", func(t *testing.T) {
		c := limiterContext(t, "")
		c.Set("subject", "admin")
		assert.Equal(t, "admin", currentSubject(c))
	})

	t.Run("From bearer token before JWTAuth runs", func(t *testing.T) {
		// The limiter is global middleware and executes ahead of the
		// group-level JWTAuth, so the sub claim must come straight from
		// the header.
		tok, err := utils.NewAccessToken("any-secret", "operator", "ADMIN", 5)
		require.NoError(t, err)

		c := limiterContext(t, "Bearer "+tok.Token)
		assert.Equal(t, "operator", currentSubject(c))
	})

	t.Run("Anonymous without header", func(t *testing.T) {
		assert.Equal(t, "anon", currentSubject(limiterContext(t, "")))
	})

	t.Run("Garbage token falls back to anon", func(t *testing.T) {
		assert.Equal(t, "anon", currentSubject(limiterContext(t, "Bearer not-a-jwt")))
	})
}

func TestBuildRateKeySubjectStrategy(t *testing.T) {
	t.Parallel()

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "subject"}

	tok, err := utils.NewAccessToken("any-secret", "operator", "ADMIN", 5)
	require.NoError(t, err)

	authed := buildRateKey(cfg, limiterContext(t, "Bearer "+tok.Token))
	anon := buildRateKey(cfg, limiterContext(t, ""))

	assert.Equal(t, "rl:sub:operator", authed)
	assert.Equal(t, "rl:sub:anon", anon)
	assert.NotEqual(t, authed, anon, "authenticated callers must not share the anonymous bucket")
}
