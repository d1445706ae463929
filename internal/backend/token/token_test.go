package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "dcert/pkg/domain-errors"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-signing-key", "dcert-backend", "dcert-wallet")

	tokenString, err := svc.GenerateAccessToken("did:dcert:palex", "session-1", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "did:dcert:palex", claims.DID)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.NotEmpty(t, claims.ID)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewService("test-signing-key", "dcert-backend", "dcert-wallet")

	tokenString, err := svc.GenerateAccessToken("did:dcert:palex", "session-1", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestForeignSigningKeyRejected(t *testing.T) {
	svc := NewService("test-signing-key", "dcert-backend", "dcert-wallet")
	other := NewService("other-signing-key", "dcert-backend", "dcert-wallet")

	tokenString, err := other.GenerateAccessToken("did:dcert:palex", "session-1", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewService("test-signing-key", "dcert-backend", "dcert-wallet")

	_, err := svc.ValidateToken("not-a-jwt")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
