package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

func newTestManager() *Manager {
	return NewManager("test-secret", 30*time.Minute, 7*24*time.Hour)
}

func TestGenerateTokenPair_ParseAccess(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateTokenPair(42, "ADMIN")
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, int64(1800), pair.ExpiresIn)

	claims, err := m.Parse(pair.AccessToken, TypeAccess)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, TypeAccess, claims.Type)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, float64(30*time.Minute), float64(claims.TTL(time.Now())), float64(5*time.Second))
}

func TestParse_TypeMismatch(t *testing.T) {
	m := newTestManager()
	pair, err := m.GenerateTokenPair(1, "USER")
	require.NoError(t, err)

	_, err = m.Parse(pair.AccessToken, TypeRefresh)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	_, err = m.Parse(pair.RefreshToken, TypeAccess)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	_, err = m.Parse(pair.RefreshToken, TypeRefresh)
	assert.NoError(t, err)
}

func TestParse_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, time.Hour)
	pair, err := m.GenerateTokenPair(1, "USER")
	require.NoError(t, err)

	_, err = m.Parse(pair.AccessToken, TypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestParse_BadSignature(t *testing.T) {
	pair, err := newTestManager().GenerateTokenPair(1, "USER")
	require.NoError(t, err)

	other := NewManager("another-secret", time.Minute, time.Hour)
	_, err = other.Parse(pair.AccessToken, TypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = other.Parse("not-a-token", TypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
