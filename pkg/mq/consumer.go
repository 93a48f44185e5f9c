package mq

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	err = ch.Qos(
		10,    // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if err = setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Consumer{conn: conn, channel: ch}, nil
}

// ConsumeMediaCleanup 阻塞消费直到ctx取消或连接关闭
func (c *Consumer) ConsumeMediaCleanup(ctx context.Context, handler MediaCleanupHandler) error {
	msgs, err := c.channel.Consume(
		MediaCleanupQueue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			hlog.Info("Media cleanup consumer context cancelled")
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				hlog.Info("Media cleanup consumer channel closed")
				return nil
			}
			dispatch(ctx, d, handler)
		}
	}
}

func dispatch(ctx context.Context, d amqp091.Delivery, handler MediaCleanupHandler) {
	event, err := decodeMediaCleanup(d.Body)
	if err != nil {
		hlog.Errorf("Failed to decode media cleanup event: %v", err)
		d.Nack(false, false) // 拒绝消息，不重新入队
		return
	}

	if err := handler.HandleMediaCleanup(ctx, event); err != nil {
		// 已重投递过的消息不再入队
		requeue := !d.Redelivered
		hlog.Errorf("Failed to handle media cleanup event %s (requeue=%v): %v", event.EventID, requeue, err)
		d.Nack(false, requeue)
		return
	}

	d.Ack(false) // 确认消息
	hlog.CtxInfof(ctx, "Successfully processed media cleanup event: %s", event.EventID)
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
