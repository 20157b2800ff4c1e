package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("password123")
	require.NoError(t, err)
	require.NotEmpty(t, h)
	require.NotEqual(t, "password123", h)

	assert.True(t, CheckPassword(h, "password123"))
	assert.False(t, CheckPassword(h, "password124"))
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("password123")
	require.NoError(t, err)
	h2, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword(h1, "password123"))
	assert.True(t, CheckPassword(h2, "password123"))
}

func TestCheckPassword_MutatedHash(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("password123")
	require.NoError(t, err)

	mutated := []byte(h)
	mutated[len(mutated)-1] ^= 0x01
	assert.False(t, CheckPassword(string(mutated), "password123"))
}

func TestCheckPasswordErr(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("password123")
	require.NoError(t, err)

	ok, err := CheckPasswordErr(h, "password123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPasswordErr(h, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = CheckPasswordErr("not-a-bcrypt-hash", "password123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptCredential)
	assert.False(t, ok)
}
