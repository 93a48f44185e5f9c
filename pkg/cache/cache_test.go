package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 内存redis，FastForward 用来推进key的过期时间
func testClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestFirstView(t *testing.T) {
	mr, client := testClient(t)
	ctx := context.Background()
	vc := NewViewCache(client, time.Minute)
	video, user := uuid.NewString(), uuid.NewString()

	first, err := vc.FirstView(ctx, video, user)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := vc.FirstView(ctx, video, user)
	require.NoError(t, err)
	assert.False(t, again)

	other, err := vc.FirstView(ctx, video, uuid.NewString())
	require.NoError(t, err)
	assert.True(t, other)

	assert.Equal(t, time.Minute, mr.TTL("view:"+video+":"+user))

	// 窗口过后再次观看重新计数
	mr.FastForward(time.Minute + time.Second)
	later, err := vc.FirstView(ctx, video, user)
	require.NoError(t, err)
	assert.True(t, later)

	require.NoError(t, vc.Forget(ctx, video, user))
	assert.False(t, mr.Exists("view:"+video+":"+user))
}

func TestFirstViewRedisDown(t *testing.T) {
	mr, client := testClient(t)
	vc := NewViewCache(client, time.Minute)
	mr.Close()

	_, err := vc.FirstView(context.Background(), uuid.NewString(), uuid.NewString())
	assert.Error(t, err)
}

func TestTokenBlacklist(t *testing.T) {
	mr, client := testClient(t)
	ctx := context.Background()
	tb := NewTokenBlacklist(client)
	token := "token-" + uuid.NewString()

	revoked, err := tb.IsRevoked(ctx, token)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, tb.Revoke(ctx, token, time.Now().Add(time.Minute)))
	revoked, err = tb.IsRevoked(ctx, token)
	require.NoError(t, err)
	assert.True(t, revoked)

	// 记录随token一起过期
	mr.FastForward(2 * time.Minute)
	revoked, err = tb.IsRevoked(ctx, token)
	require.NoError(t, err)
	assert.False(t, revoked)

	// 已过期的token无需记录
	expired := "expired-" + uuid.NewString()
	require.NoError(t, tb.Revoke(ctx, expired, time.Now().Add(-time.Minute)))
	revoked, err = tb.IsRevoked(ctx, expired)
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, mr.Keys())
}

func TestTokenKeyHidesToken(t *testing.T) {
	key := tokenKey("my-secret-token")
	assert.NotContains(t, key, "my-secret-token")
	assert.Equal(t, key, tokenKey("my-secret-token"))
}
