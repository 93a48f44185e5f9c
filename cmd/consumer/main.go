package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"videotube.com/config"
	"videotube.com/pkg/mq"
	"videotube.com/pkg/oss"
)

func main() {
	config.Init()
	if config.ConfigInfo.RabbitMq.URL == "" {
		logrus.Fatal("rabbitmq.url is required for the media cleanup consumer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage, err := oss.NewMinioStorage(ctx)
	if err != nil {
		logrus.Fatalf("Failed to connect to object storage: %v", err)
	}
	consumer, err := mq.NewConsumer(config.ConfigInfo.RabbitMq.URL)
	if err != nil {
		logrus.Fatalf("Failed to create media cleanup consumer: %v", err)
	}
	defer consumer.Close()

	done := make(chan error, 1)
	go func() {
		done <- consumer.ConsumeMediaCleanup(ctx, &cleanupHandler{storage: storage})
	}()
	logrus.Info("Media cleanup consumer started, waiting for messages...")

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		logrus.Info("Shutting down media cleanup consumer...")
		cancel()
		<-done
	case err := <-done:
		if err != nil {
			logrus.Errorf("Media cleanup consumer stopped: %v", err)
		}
	}
}
