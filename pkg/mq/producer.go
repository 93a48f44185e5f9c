package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewProducer(rabbitmqURL string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	producer := &Producer{
		conn:    conn,
		channel: ch,
	}

	// 声明exchange和queue
	if err := setupTopology(ch); err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return producer, nil
}

// setupTopology 生产者与消费者都会调用，声明是幂等的
func setupTopology(ch *amqp091.Channel) error {
	err := ch.ExchangeDeclare(
		MediaCleanupExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare media cleanup exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		MediaCleanupQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare media cleanup queue: %w", err)
	}

	// 绑定队列到交换机
	err = ch.QueueBind(
		MediaCleanupQueue,
		"",
		MediaCleanupExchange,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to bind media cleanup queue: %w", err)
	}
	return nil
}

func (p *Producer) PublishMediaCleanup(ctx context.Context, event *MediaCleanupEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal media cleanup event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		MediaCleanupExchange,
		"",
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.EventID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish media cleanup event: %w", err)
	}

	hlog.CtxInfof(ctx, "Published media cleanup event: %s, %d objects", event.EventID, len(event.URLs))
	return nil
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
