// Command taskkeep-server starts the task tracker HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/and161185/taskkeep/internal/config"
	"github.com/and161185/taskkeep/internal/limiter"
	"github.com/and161185/taskkeep/internal/migrate"
	"github.com/and161185/taskkeep/internal/repository/mongodb"
	"github.com/and161185/taskkeep/internal/repository/postgres"
	"github.com/and161185/taskkeep/internal/server/httpapi"
	"github.com/and161185/taskkeep/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, connects both stores, and
// serves HTTP until a termination signal.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		logger.Fatal("unknown signing algorithm", zap.String("algorithm", cfg.Algorithm))
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// Relational pool (users, limiter)
	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("postgres connect", zap.Error(err))
	}
	defer db.Close()

	// Document store (tasks)
	mopts := options.Client().
		ApplyURI(cfg.MongoURL).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(5 * time.Second).
		SetMaxPoolSize(10).
		SetRetryWrites(true)
	mcli, err := mongo.Connect(ctx, mopts)
	if err != nil {
		logger.Fatal("mongo.Connect", zap.Error(err))
	}
	defer func() { _ = mcli.Disconnect(context.Background()) }()

	if err := mcli.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal("mongo ping", zap.Error(err))
	}

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	taskRepo := mongodb.NewTaskRepo(mcli.Database(cfg.MongoDB))

	// Missing indexes degrade performance, not correctness.
	if err := taskRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("ensure indexes", zap.Error(err))
	}

	lim := limiter.NewPGWithQuerier(db.Pool, 15*time.Minute, 5, 15*time.Minute)

	// Services
	accessTTL := time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute
	authSvc := service.NewAuthService(userRepo, lim, []byte(cfg.SecretKey), method, accessTTL)
	taskSvc := service.NewTaskService(taskRepo)

	srv := httpapi.New(cfg.Addr, authSvc, taskSvc, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.Start()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
