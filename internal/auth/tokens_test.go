package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summerplanapp/summerplan-server/internal/errors"
)

func newTestService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	key, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)
	svc, err := NewTokenService(key, ttl)
	require.NoError(t, err)
	return svc
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.GenerateAccessToken("acc-1", "Sam")
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "Sam", claims.DisplayName)
	assert.Equal(t, "acc-1", claims.Subject)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestService(t, -time.Minute)

	token, err := svc.GenerateAccessToken("acc-1", "Sam")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := newTestService(t, time.Hour)
	_, err := svc.VerifyAccessToken("v4.local.not-a-token")
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestWrongKeyRejected(t *testing.T) {
	a := newTestService(t, time.Hour)
	b := newTestService(t, time.Hour)

	token, err := a.GenerateAccessToken("acc-1", "Sam")
	require.NoError(t, err)

	_, err = b.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestLoadOrGenerateKeyIsStable(t *testing.T) {
	dir := t.TempDir()
	first, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	second, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
