package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"personal-site-service/internal/auth"
	redis_cache "personal-site-service/internal/cache/redis"
	delivery_http "personal-site-service/internal/delivery/http"
	metrics_server "personal-site-service/internal/delivery/metrics"
	"personal-site-service/internal/infrastructure/config"
	"personal-site-service/internal/logger"
	prometheus_metrics "personal-site-service/internal/metrics/prometheus"
	bookmark_postgres "personal-site-service/internal/repository/bookmark/postgres"
	category_postgres "personal-site-service/internal/repository/category/postgres"
	photo_postgres "personal-site-service/internal/repository/photo/postgres"
	post_postgres "personal-site-service/internal/repository/post/postgres"
	"personal-site-service/internal/repository/postgres"
	tag_postgres "personal-site-service/internal/repository/tag/postgres"
	bookmark_service "personal-site-service/internal/service/bookmark"
	photo_service "personal-site-service/internal/service/photo"
	post_service "personal-site-service/internal/service/post"
	tagcloud_service "personal-site-service/internal/service/tagcloud"
)

func main() {
	cfg := config.MustLoad()
	ctx := context.Background()
	log := logger.New(cfg.Env)

	migrateDSN := fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName)

	if err := runMigrations(migrateDSN, cfg.Database.MigrationsPath, log); err != nil {
		log.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	log.Info("Connecting to Redis",
		slog.String("address", cfg.Redis.Address),
		slog.Int("port", cfg.Redis.Port),
		slog.Int("db", cfg.Redis.DB))
	redisClient, err := redis_cache.NewClient(cfg.Redis, log)
	if err != nil {
		log.Error("Failed to create Redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
		}
	}()

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, 15*time.Minute)
	if err != nil {
		log.Error("Failed to create token service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metrics := prometheus_metrics.NewProvider()
	metrics.SetServiceHealth(true)

	unitOfWork := postgres.NewPostgresUOW(pool, log)
	postRepo := post_postgres.NewPostRepository(pool, log)
	bookmarkRepo := bookmark_postgres.NewBookmarkRepository(pool, log)
	categoryRepo := category_postgres.NewCategoryRepository(pool, log)
	photoRepo := photo_postgres.NewPhotoRepository(pool, log)
	tagRepo := tag_postgres.NewTagRepository(pool, log)

	tagCloudService := tagcloud_service.NewCacheDecorator(
		tagcloud_service.NewTagCloudService(tagRepo, log),
		redisClient,
		log,
		metrics,
	)

	postService := post_service.NewPostService(postRepo, tagRepo, unitOfWork, tagCloudService, log, metrics)
	photoService := photo_service.NewPhotoService(photoRepo, tagRepo, unitOfWork, tagCloudService, log, metrics)
	bookmarkService := bookmark_service.NewBookmarkService(bookmarkRepo, categoryRepo, log, metrics)

	httpServer := delivery_http.NewServer(
		delivery_http.Handlers{
			Post:     delivery_http.NewPostHandler(postService, log),
			Photo:    delivery_http.NewPhotoHandler(photoService, log),
			Bookmark: delivery_http.NewBookmarkHandler(bookmarkService, log),
			TagCloud: delivery_http.NewTagCloudHandler(tagCloudService, log),
		},
		tokens,
		cfg.HTTPServer.Address,
		cfg.HTTPServer.Port,
		log,
		metrics,
	)

	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone

	log.Info("Server exited")
}

func runMigrations(dsn, path string, log *logger.Logger) error {
	m, err := migrate.New("file://"+path, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	log.Info("Migrations applied")
	return nil
}
