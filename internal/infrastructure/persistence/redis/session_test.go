package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-api/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// unreachableStore 指向一个不会有服务监听的端口，所有调用都会立即失败
func unreachableStore() *SessionStore {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	return NewSessionStore(client)
}

func TestSessionStore_BreakerOpensOnRepeatedFailures(t *testing.T) {
	store := unreachableStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.IsRevoked(ctx, "jti")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
	}
	assert.Equal(t, circuitbreaker.StateOpen, store.breaker.State())

	_, err := store.IsRevoked(ctx, "jti")
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
}

func TestSessionStore_RevokeWithExpiredTTLIsNoop(t *testing.T) {
	store := unreachableStore()
	assert.NoError(t, store.Revoke(context.Background(), "jti", 0))
}

func TestNoopSessionStore(t *testing.T) {
	var store NoopSessionStore
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti", time.Minute))
	revoked, err := store.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.NoError(t, store.SaveSession(ctx, 1, map[string]interface{}{"email": "a@b.c"}, time.Minute))
	session, err := store.GetSession(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, session)
	assert.NoError(t, store.DeleteSession(ctx, 1))
}

func TestSessionStore_GetSessionUnreachable(t *testing.T) {
	_, err := unreachableStore().GetSession(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
	assert.False(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "session:42", sessionKey(42))
	assert.Equal(t, "blacklist:abc", blacklistKey("abc"))
}
