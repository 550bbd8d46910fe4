// Command notifier consumes follow-up events from RabbitMQ and appends
// them to a log file for the staff who call clients back.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/tutor-booking/internal/app"
	"github.com/iliyamo/tutor-booking/internal/config"
	"github.com/iliyamo/tutor-booking/internal/queue"
)

func main() {
	logPath := flag.String("log", "logs/followup.log", "file the follow-up lines are appended to")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	logger := app.NewLogger(os.Getenv("APP_ENV"))
	defer func() { _ = logger.Sync() }()

	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	if url == "" {
		logger.Fatal("RABBITMQ_URL is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("notifier starting", zap.String("queue", queue.FollowupQueue), zap.String("log", *logPath))
	err := queue.NewConsumer(url, *logPath, logger).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("notifier stopped", zap.Error(err))
	}
	logger.Info("notifier stopped")
}
