package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 缓存键名常量
const (
	// 用户观看视频的去重键
	ViewKey = "view:%s:%s"
	// 已注销token的黑名单键
	RevokedTokenKey = "token:revoked:%s"
)

// ViewCache 播放量去重，同一用户在ttl内重复观看只计一次
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	return &ViewCache{client: client, ttl: ttl}
}

// FirstView 返回true表示ttl窗口内的第一次观看
func (vc *ViewCache) FirstView(ctx context.Context, videoID, userID string) (bool, error) {
	ok, err := vc.client.SetNX(ctx, fmt.Sprintf(ViewKey, videoID, userID), 1, vc.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark view: %w", err)
	}
	return ok, nil
}

// Forget 清除单个用户的去重标记
func (vc *ViewCache) Forget(ctx context.Context, videoID, userID string) error {
	return vc.client.Del(ctx, fmt.Sprintf(ViewKey, videoID, userID)).Err()
}
