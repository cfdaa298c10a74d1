package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/welcome-service/internal/utils"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewAccessToken("secret", "admin", "ADMIN", 15)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 5*time.Second)

	sub, role, err := utils.ParseAccessToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
	assert.Equal(t, "ADMIN", role)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewAccessToken("secret", "admin", "ADMIN", 15)
	require.NoError(t, err)

	_, _, err = utils.ParseAccessToken("different", tok.Token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewAccessToken("secret", "admin", "ADMIN", -1)
	require.NoError(t, err)

	_, _, err = utils.ParseAccessToken("secret", tok.Token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, _, err := utils.ParseAccessToken("secret", "header.payload.signature")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}
