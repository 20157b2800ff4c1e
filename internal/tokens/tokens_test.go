package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	svc, err := New([]byte("test-access-secret"), []byte("test-refresh-secret"), 0, 0)
	require.NoError(t, err)
	return svc
}

func TestNew_MissingSecret(t *testing.T) {
	t.Parallel()

	_, err := New(nil, []byte("refresh"), 0, 0)
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = New([]byte("access"), nil, 0, 0)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestSignAccess_ParseAccess_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	userID := uuid.NewString()

	token, exp, err := svc.SignAccess(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(DefaultAccessTTL), exp, time.Second)

	got, err := svc.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestSignRefresh_ParseRefresh_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	userID := uuid.NewString()

	token, exp, err := svc.SignRefresh(userID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultRefreshTTL), exp, time.Second)

	claims, err := svc.ParseRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID())
	assert.Equal(t, "refresh", claims.Typ)
	assert.NotEmpty(t, claims.ID)
}

func TestParseAccess_TamperedSignature(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	token, _, err := svc.SignAccess(uuid.NewString())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = svc.ParseAccess(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccess_Expired(t *testing.T) {
	t.Parallel()

	svc, err := New([]byte("a"), []byte("r"), time.Millisecond, time.Millisecond)
	require.NoError(t, err)

	token, _, err := svc.SignAccess(uuid.NewString())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.ParseAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRefresh_Expired(t *testing.T) {
	t.Parallel()

	svc, err := New([]byte("a"), []byte("r"), time.Millisecond, time.Millisecond)
	require.NoError(t, err)

	token, _, err := svc.SignRefresh(uuid.NewString())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.ParseRefresh(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_NotInterchangeable(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	userID := uuid.NewString()

	access, _, err := svc.SignAccess(userID)
	require.NoError(t, err)
	refresh, _, err := svc.SignRefresh(userID)
	require.NoError(t, err)

	// Different secrets: an access token can never pass refresh
	// verification, and vice versa.
	_, err = svc.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRefresh_Garbage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.ParseRefresh("not-a-valid-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
