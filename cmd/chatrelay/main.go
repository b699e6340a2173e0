package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nyssa-notify/internal/application/relay"
	"github.com/nyssa-notify/internal/config"
	"github.com/nyssa-notify/internal/infrastructure/chatapi"
	"github.com/nyssa-notify/internal/infrastructure/dynamo"
	"github.com/nyssa-notify/internal/logging"
	transporthttp "github.com/nyssa-notify/internal/transport/http"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal("dynamodb client", zap.Error(err))
	}
	if cfg.DynamoBootstrap {
		dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables, logger)
	}

	relaySvc := relay.NewService(relay.ServiceDeps{
		ChatAPI:         chatapi.NewClient(cfg.ChatAPIURL, cfg.ChatAPITimeout),
		Notifications:   dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		DeeplinkBaseURL: cfg.DeeplinkBaseURL,
		Logger:          logger.Named("relay"),
	})

	serverCtx, stopServer := context.WithCancel(ctx)
	defer stopServer()
	router := transporthttp.NewRelayRouter(serverCtx, cfg, &transporthttp.RelayDeps{
		Relay:  relaySvc,
		Logger: logger.Named("http"),
	})

	// The write timeout leaves room for a full chat API round trip.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ChatAPITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("chat relay starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down chat relay")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return
	}
	logger.Info("chat relay stopped")
}
