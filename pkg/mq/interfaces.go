package mq

import "context"

// MessageProducer 消息生产者接口，未配置RabbitMQ时为nil
type MessageProducer interface {
	PublishMediaCleanup(ctx context.Context, event *MediaCleanupEvent) error
	Close() error
}

type MediaCleanupHandler interface {
	HandleMediaCleanup(ctx context.Context, event *MediaCleanupEvent) error
}

// MediaCleanupHandlerFunc 允许普通函数作为处理器
type MediaCleanupHandlerFunc func(ctx context.Context, event *MediaCleanupEvent) error

func (f MediaCleanupHandlerFunc) HandleMediaCleanup(ctx context.Context, event *MediaCleanupEvent) error {
	return f(ctx, event)
}
