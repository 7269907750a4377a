package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long-enough"))
}

func TestAdminCredentials_Verify(t *testing.T) {
	creds, err := NewAdminCredentials("admin", "change-this-password")
	require.NoError(t, err)

	assert.True(t, creds.Verify("admin", "change-this-password"))
	assert.False(t, creds.Verify("admin", "wrong"))
	assert.False(t, creds.Verify("root", "change-this-password"))
	assert.False(t, creds.Verify("", ""))
	assert.Equal(t, "admin", creds.Username())
}

func TestNewAdminCredentials_RequiresBoth(t *testing.T) {
	_, err := NewAdminCredentials("", "pass")
	assert.Error(t, err)

	_, err = NewAdminCredentials("admin", "")
	assert.Error(t, err)
}

func TestAdminCredentials_LongPassword(t *testing.T) {
	long := strings.Repeat("x", 80)
	creds, err := NewAdminCredentials("admin", long)
	require.NoError(t, err)

	assert.True(t, creds.Verify("admin", long))
	// bcrypt сам по себе видит только первые 72 байта
	assert.False(t, creds.Verify("admin", strings.Repeat("x", 72)))
	assert.False(t, creds.Verify("admin", strings.Repeat("x", 79)+"y"))
}
