package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("S3cure!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "S3cure!pass", hashed)
	assert.True(t, CheckPassword(hashed, "S3cure!pass"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}
