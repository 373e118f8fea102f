package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rmenoli/finance-track-webapp-sub000/config"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/cache"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/handlers"
	pgrepo "github.com/rmenoli/finance-track-webapp-sub000/internal/repository/postgres"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/service"
)

func main() {
	cfg := config.MustLoad()

	logger := logrus.New()
	setLogLevel(logger, cfg.LogLevel)

	db, err := pgrepo.NewClient(cfg, logger)
	if err != nil {
		logger.Fatalf("postgres setup failed: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatalf("redis connect failed: %v", err)
	}
	logger.Info("redis connected")

	svc := service.New(
		pgrepo.NewTransactionRepo(db, logger),
		pgrepo.NewPositionValueRepo(db, logger),
		pgrepo.NewOtherAssetRepo(db, logger),
		pgrepo.NewSnapshotRepo(db, logger),
		pgrepo.NewSettingsRepo(db),
		cache.NewRedisCache(redisClient, cfg.Cache.SummaryExpiration),
		logger,
	)

	h := handlers.NewHandler(svc, logger)
	r := gin.Default()
	handlers.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: r,
	}

	go func() {
		logger.Infof("server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown failed: %v", err)
	}
}

func setLogLevel(logger *logrus.Logger, level string) {
	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warning":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
}
