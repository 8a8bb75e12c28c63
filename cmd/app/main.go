package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"orders/cmd"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := cmd.NewLogger(configs.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error getting database handle: %v", err)
	}
	defer sqlDB.Close()

	var redisClient *redis.Client
	if configs.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
		defer redisClient.Close()
	}

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startWebServer(ctx, app, sqlDB, configs.HTTPPort, logger)
}

func startWebServer(
	ctx context.Context,
	app cmd.CompositionRoot,
	sqlDB interface{ PingContext(context.Context) error },
	port string,
	logger *zap.Logger,
) {
	e := echo.New()
	e.HideBanner = true
	app.CreateHTTPServer(sqlDB).Register(e)

	go func() {
		logger.Info("starting http server", zap.String("port", port))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
}
