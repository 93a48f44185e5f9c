package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist 登出后的token在过期前都留在黑名单中
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf(RevokedTokenKey, hex.EncodeToString(sum[:]))
}

// Revoke 将token加入黑名单直到expireAt
func (tb *TokenBlacklist) Revoke(ctx context.Context, token string, expireAt time.Time) error {
	ttl := time.Until(expireAt)
	if ttl <= 0 {
		return nil
	}
	if err := tb.client.Set(ctx, tokenKey(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (tb *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := tb.client.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return n > 0, nil
}
