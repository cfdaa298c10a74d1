package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/welcome-service/internal/utils"
)

func TestPasswordHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := utils.HashPassword("s3cret!", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, utils.VerifyPassword(hash, "s3cret!"))
	assert.False(t, utils.VerifyPassword(hash, "S3cret!"))
	assert.False(t, utils.VerifyPassword("not-a-hash", "s3cret!"))
}
