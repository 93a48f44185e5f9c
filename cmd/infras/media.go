package infras

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"

	"videotube.com/pkg/mq"
)

// CleanupMedia 删除不再被引用的对象存储文件
// 配置了RabbitMQ时投递MediaCleanupEvent由consumer处理，否则直接删除；失败只记录日志
func CleanupMedia(ctx context.Context, videoID, reason string, urls ...string) {
	urls = nonEmpty(urls)
	if len(urls) == 0 {
		return
	}

	if Producer != nil {
		event := &mq.MediaCleanupEvent{
			EventID:   uuid.NewString(),
			VideoID:   videoID,
			URLs:      urls,
			Reason:    reason,
			Timestamp: time.Now(),
		}
		err := Producer.PublishMediaCleanup(ctx, event)
		if err == nil {
			return
		}
		hlog.CtxWarnf(ctx, "publish media cleanup failed, removing inline: %v", err)
	}

	if Storage == nil {
		hlog.CtxWarnf(ctx, "no object storage configured, %d objects left behind", len(urls))
		return
	}
	for _, url := range urls {
		if err := Storage.Remove(ctx, url); err != nil {
			hlog.CtxWarnf(ctx, "remove object %s failed: %v", url, err)
		}
	}
}

func nonEmpty(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}
