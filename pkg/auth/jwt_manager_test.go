package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerifyRoundtrip(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)

	userID := uuid.New()
	token, err := mgr.Generate(userID.String(), "admin")
	require.NoError(t, err)

	claims, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := mgr.Generate(uuid.New().String(), "user")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	mgr := NewJWTManager("test-secret", -time.Minute)

	token, err := mgr.Generate(uuid.New().String(), "user")
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	assert.Error(t, err)
}

func TestVerifierResolvesIdentity(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)
	verifier := NewVerifier(mgr, nil)

	userID := uuid.New()
	token, err := mgr.Generate(userID.String(), "user")
	require.NoError(t, err)

	identity, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "user", identity.Role)
}

func TestVerifierRejectsMissingToken(t *testing.T) {
	verifier := NewVerifier(NewJWTManager("test-secret", time.Hour), nil)

	_, err := verifier.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestVerifierRejectsGarbageToken(t *testing.T) {
	verifier := NewVerifier(NewJWTManager("test-secret", time.Hour), nil)

	_, err := verifier.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifierRejectsNonUUIDSubject(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)
	verifier := NewVerifier(mgr, nil)

	token, err := mgr.Generate("not-a-uuid", "user")
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
