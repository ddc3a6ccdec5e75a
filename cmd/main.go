package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "littlewins/docs"
	"littlewins/internal/catalog"
	"littlewins/internal/config"
	"littlewins/internal/handlers"
	"littlewins/internal/logger"
	"littlewins/internal/repository"
	"littlewins/internal/repository/db"
	"littlewins/internal/server"
	"littlewins/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configs/config.yml + LITTLEWINS_* env
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	if err := seedCatalog(cfg, repos.Activities, log); err != nil {
		log.Fatalw("failed to seed activity catalog", "err", err, "path", cfg.CatalogPath)
	}
	services := service.NewService(repos, service.AuthConfig{
		SigningKey: cfg.SigningKey,
		TokenTTL:   cfg.TokenTTL,
	})
	apiHandler := handlers.NewHandler(services, log, handlers.WithAllowedOrigins(cfg.AllowedOrigins))

	srv := server.New(server.Timeouts{
		ReadHeader: cfg.ReadHeaderTimeout,
		Write:      cfg.WriteTimeout,
		Idle:       cfg.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", cfg.DBPath)
	return db.InitDB(cfg.DBPath)
}

// seedCatalog upserts the configured (or built-in) activity catalog.
func seedCatalog(cfg config.Config, store catalog.Upserter, log *logger.Logger) error {
	acts, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := catalog.Seed(ctx, store, acts); err != nil {
		return err
	}
	log.Infow("activity catalog seeded", "activities", len(acts), "path", cfg.CatalogPath)
	return nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
