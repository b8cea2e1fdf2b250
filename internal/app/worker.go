package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/messaging/kafka"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/messaging/kafka/producer"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/connection"

	"go.uber.org/zap"
)

func kafkaBrokerFromEnv() (string, error) {
	broker := os.Getenv("KAFKA_BROKERS")
	if broker == "" {
		return "", fmt.Errorf("KAFKA_BROKERS is required")
	}
	return broker, nil
}

func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker, err := kafkaBrokerFromEnv()
	if err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
