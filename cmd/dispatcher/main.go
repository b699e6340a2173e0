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

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/nyssa-notify/internal/application/dispatch"
	"github.com/nyssa-notify/internal/config"
	"github.com/nyssa-notify/internal/infrastructure/dynamo"
	"github.com/nyssa-notify/internal/infrastructure/sns"
	"github.com/nyssa-notify/internal/logging"
	transporthttp "github.com/nyssa-notify/internal/transport/http"
	"github.com/nyssa-notify/internal/transport/stream"
	"go.uber.org/zap"
)

// notificationKey is the hash key of the notifications table.
const notificationKey = "notificationId"

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
	snsClient, err := sns.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal("sns client", zap.Error(err))
	}
	if cfg.SNSPlatformApplication == "" {
		logger.Warn("SNS_PLATFORM_APPLICATION_ARN is empty; every push will fail")
	}

	svc := dispatch.NewService(dispatch.ServiceDeps{
		Notifications: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		Users:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		Errors:        dynamo.NewErrorRepo(dynamoClient, cfg.DynamoTables.Errors),
		Push:          sns.NewPushSender(snsClient, cfg.SNSPlatformApplication),
		Logger:        logger.Named("dispatch"),
	})

	if cfg.DispatcherMode == "lambda" {
		logger.Info("dispatcher starting in lambda mode")
		lambda.Start(stream.NewHandler(svc, notificationKey, logger.Named("stream")).Handle)
		return
	}
	serveHTTP(cfg, svc, logger)
}

func serveHTTP(cfg *config.Config, svc stream.Dispatcher, logger *zap.Logger) {
	router := transporthttp.NewDispatcherRouter(&transporthttp.DispatcherDeps{
		Dispatcher: svc,
		Logger:     logger.Named("http"),
	})
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("dispatcher starting in http mode", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down dispatcher")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
