package cache

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"videotube.com/config"
)

// NewClient 按配置创建redis连接，并Ping确认可用
func NewClient(ctx context.Context) (*redis.Client, error) {
	c := config.ConfigInfo.Redis
	client := redis.NewClient(&redis.Options{
		Addr:        c.Addr,
		Password:    c.Password,
		DB:          c.DB,
		DialTimeout: 3 * time.Second,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "connect to redis %s failed", c.Addr)
	}
	hlog.Info("Connected to redis : ", pong)
	return client, nil
}
