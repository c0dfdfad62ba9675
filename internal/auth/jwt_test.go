package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unifit_backend/pkg/apperrors"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate("user-1", "student@uni.ac.kr")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "student@uni.ac.kr", claims.Email)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, err := tm.Generate("user-1", "student@uni.ac.kr")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Generate("user-1", "student@uni.ac.kr")
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
