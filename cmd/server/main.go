package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/catalogapp/catalog-api/app/config"
	"github.com/catalogapp/catalog-api/app/database"
	"github.com/catalogapp/catalog-api/app/server"
	"github.com/catalogapp/catalog-api/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("Unknown LOG_LEVEL %q, keeping %s", cfg.LogLevel, logger.GetLevel())
	}

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if cfg.Database.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			logger.Fatalf("Failed to migrate schema: %v", err)
		}
		logger.Info("Schema migrated")
	}

	repo := models.NewCatalogRepository(db, logger)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: server.NewRouter(server.Options{
			Repo:           repo,
			Ping:           func(ctx context.Context) error { return database.Ping(ctx, db) },
			AuthSecret:     []byte(cfg.Auth.Secret),
			AuthIssuer:     cfg.Auth.Issuer,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Logger:         logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Starting server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
	closeQuietly(db, logger)
}

func closeQuietly(db *gorm.DB, logger *logrus.Logger) {
	if err := database.Close(db); err != nil {
		logger.Warnf("Failed to close database: %v", err)
	}
}
