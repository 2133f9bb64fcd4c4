package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/api"
	"github.com/Danielmituku/solar-challenge-week0/internal/config"
	"github.com/Danielmituku/solar-challenge-week0/internal/database"
	"github.com/Danielmituku/solar-challenge-week0/internal/dataset"
	"github.com/Danielmituku/solar-challenge-week0/internal/middleware"
	"github.com/Danielmituku/solar-challenge-week0/internal/repository"
	"github.com/Danielmituku/solar-challenge-week0/internal/scheduler"
	"github.com/Danielmituku/solar-challenge-week0/internal/service"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openSource returns the configured observation source and a closer for it
func openSource(ctx context.Context, cfg *config.Config) (service.Source, io.Closer, error) {
	switch cfg.DataSource {
	case config.SourceCSV:
		return dataset.NewLoader(cfg.DataDir), closerFunc(func() error { return nil }), nil
	case config.SourceSQLite:
		db, err := database.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewObservationRepository(db), db, nil
	case config.SourceClickHouse:
		ch := cfg.ClickHouse
		db, err := database.NewClickHouseDB(ctx, ch.Addr, ch.Database, ch.Username, ch.Password, ch.Table)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	default:
		return nil, nil, errors.Errorf("unknown DATA_SOURCE %q (csv, sqlite, clickhouse)", cfg.DataSource)
	}
}

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closer, err := openSource(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open data source: %v", err)
	}
	defer closer.Close()

	store := service.NewDatasetStore(source)
	if err := store.Reload(ctx); err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	dashboardService := service.NewDashboardService(store)

	var reloads api.ReloadStatus
	if cfg.ReloadSchedule != "" {
		sched, err := scheduler.New(cfg.ReloadSchedule, store, 5*time.Minute)
		if err != nil {
			log.Fatalf("Failed to configure reload schedule: %v", err)
		}
		sched.Start()
		defer sched.Stop()
		reloads = sched
	}

	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET not set, admin API disabled")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	router := api.SetupRouter(cfg, dashboardService, limiter, reloads)
	server := &http.Server{
		Addr:         cfg.Port,
		Handler:      api.NewHTTPHandler(cfg, router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (source %s)", cfg.Port, source.Name())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
