package infras

import (
	"context"
	"io"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"

	"videotube.com/config"
	"videotube.com/pkg/cache"
	"videotube.com/pkg/mq"
	"videotube.com/pkg/oss"
)

// ViewRecorder 播放去重，返回true时计入播放量
type ViewRecorder interface {
	FirstView(ctx context.Context, videoID, userID string) (bool, error)
}

// TokenStore 已注销token的黑名单
type TokenStore interface {
	Revoke(ctx context.Context, token string, expireAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// 外部依赖，Init时按配置创建；为nil表示未配置
var (
	Storage  oss.ObjectStorage
	Producer mq.MessageProducer
	Views    ViewRecorder
	Tokens   TokenStore

	closers []io.Closer
)

// Init 初始化redis、minio与rabbitmq，连接失败只记录日志，API仍可启动
func Init(ctx context.Context) {
	if config.ConfigInfo.Redis.Addr != "" {
		if client, err := cache.NewClient(ctx); err != nil {
			hlog.Warnf("redis unavailable, views are not de-duplicated and logout is disabled: %v", err)
		} else {
			Views = cache.NewViewCache(client, config.ConfigInfo.Redis.ViewTTL)
			Tokens = cache.NewTokenBlacklist(client)
			closers = append(closers, redisCloser{client})
		}
	}

	if config.ConfigInfo.Minio.Endpoint != "" {
		if storage, err := oss.NewMinioStorage(ctx); err != nil {
			hlog.Errorf("minio unavailable, uploads will fail: %v", err)
		} else {
			Storage = storage
		}
	}

	if config.ConfigInfo.RabbitMq.URL != "" {
		if producer, err := mq.NewProducer(config.ConfigInfo.RabbitMq.URL); err != nil {
			hlog.Warnf("rabbitmq unavailable, media cleanup runs inline: %v", err)
		} else {
			Producer = producer
			closers = append(closers, producer)
		}
	}
}

// Close 释放连接
func Close() {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			hlog.Warnf("close infra failed: %v", err)
		}
	}
	closers = nil
}

type redisCloser struct{ client *redis.Client }

func (r redisCloser) Close() error { return r.client.Close() }
