package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "contacts_api/docs"
	"contacts_api/internal/config"
	"contacts_api/internal/handlers"
	"contacts_api/internal/logger"
	"contacts_api/internal/repository"
	"contacts_api/internal/repository/db"
	"contacts_api/internal/server"
	"contacts_api/internal/service"
)

const (
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title                       Contacts API
// @version                     1.0
// @description                 Contact book with user registration, login and an audit log.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml, .env and environment overrides
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel, logger.FormatFor(cfg.Env))
	defer func() { _ = log.Sync() }()

	// open DB, apply migrations, ping
	conn, dialect, err := openDB(cfg)
	if err != nil {
		log.Fatalw("failed to open store", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close store", "err", cerr)
		}
	}()
	log.Infow("store ready", "dialect", dialect)

	rdb := openRedis(cfg, log)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	// wire dependencies
	repos := repository.NewRepository(conn, dialect)
	services := service.NewService(repos, service.Options{
		SigningKey: cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
	}, log)
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		ProtectContacts:    cfg.ProtectContacts,
		HideStackTrace:     cfg.IsProduction(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Redis:              rdb,
		AuthRateLimit:      cfg.AuthRateLimit,
		RateLimitWindow:    cfg.RateLimitWindow,
	})

	// start HTTP server
	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// openDB opens the configured store and fails if it cannot be migrated or reached.
func openDB(cfg *config.Config) (*sql.DB, db.Dialect, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	return db.Open(ctx, cfg.DSN, cfg.MaxOpenConns)
}

// openRedis returns nil when no address is configured or the server is
// unreachable; rate limiting is then disabled.
func openRedis(cfg *config.Config, log *logger.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unavailable; rate limiting disabled", "addr", cfg.RedisAddr, "err", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
