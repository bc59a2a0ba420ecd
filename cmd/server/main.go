// Command photoshare-server starts the photo-sharing HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jackc/pgx/v5/pgxpool"

	"photoshare/internal/config"
	"photoshare/internal/limiter"
	"photoshare/internal/migrate"
	"photoshare/internal/repository/postgres"
	"photoshare/internal/server/httpapi"
	"photoshare/internal/service"
	"photoshare/internal/storage"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and starts the HTTP server.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
		zap.String("storage", cfg.Storage),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("pgxpool.New", zap.Error(err))
	}
	defer pool.Close()

	// Repositories
	db := &postgres.DB{Pool: pool}
	accountRepo := postgres.NewAccountRepo(db)
	photoRepo := postgres.NewPhotoRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)

	lim := limiter.NewPG(pool, 15*time.Minute, 5, 15*time.Minute)

	// Photo file storage
	var files storage.FileStore
	var imageDir string
	switch cfg.Storage {
	case config.StorageS3:
		files, err = storage.NewS3(ctx, storage.S3Config{
			User:         cfg.S3User,
			Password:     cfg.S3Password,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			logger.Fatal("init s3 storage", zap.Error(err))
		}
	default:
		local, err := storage.NewLocal(cfg.ImageDir)
		if err != nil {
			logger.Fatal("init local storage", zap.Error(err))
		}
		files = local
		imageDir = cfg.ImageDir
	}

	// Services
	authSvc := service.NewAuthService(accountRepo, sessionRepo, cfg.SessionTTL, lim)
	photoSvc := service.NewPhotoService(photoRepo, accountRepo, files)

	api := httpapi.New(logger, authSvc, photoSvc, imageDir)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
