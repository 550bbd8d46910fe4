package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/tutor-booking/internal/app"
	"github.com/iliyamo/tutor-booking/internal/config"
	"github.com/iliyamo/tutor-booking/internal/database"
	"github.com/iliyamo/tutor-booking/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := app.NewLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}
	logger.Info("database ready", zap.String("driver", db.Driver), zap.Int("migrations_applied", applied))

	var publisher queue.Publisher = queue.NopPublisher{}
	if cfg.RabbitURL != "" {
		publisher = queue.NewAMQPPublisher(cfg.RabbitURL, logger)
	} else {
		logger.Info("RABBITMQ_URL not set, follow-up events disabled")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Info("redis not available, rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	e, err := app.NewServer(cfg, app.Deps{DB: db, Log: logger, Publisher: publisher, Redis: rdb})
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env),
			zap.Bool("allow_overbook", cfg.AllowOverbooking))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
