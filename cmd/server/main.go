package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wine-classifier-service/internal/adapters/primary/http/handlers"
	"wine-classifier-service/internal/adapters/primary/http/middleware"
	"wine-classifier-service/internal/adapters/secondary/filestore"
	"wine-classifier-service/internal/adapters/secondary/metrics"
	"wine-classifier-service/internal/adapters/secondary/postgres"
	"wine-classifier-service/internal/adapters/secondary/predictionlog"
	"wine-classifier-service/internal/config"
	output "wine-classifier-service/internal/core/ports/output"
	"wine-classifier-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	config.InitLogger(cfg.Logger)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Secondary Adapters
	store := filestore.NewModelStore(cfg.Model.Path)

	predictionLog := predictionlog.NewFileLogger(&cfg.PredictionLog)
	defer predictionLog.Close()

	recorders := []output.PredictionRecorder{predictionLog}

	// Postgres prediction history (Optional - based on config)
	if cfg.Database.Enabled {
		pool, err := newPool(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("create db pool: %v", err)
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("ensure schema: %v", err)
		}
		recorders = append(recorders, postgres.NewPredictionRepository(pool))
		log.Info("prediction history enabled")
	} else {
		log.Info("prediction history disabled")
	}

	metricsRecorder := metrics.NewRecorder()
	recorders = append(recorders, metricsRecorder)

	// Core Services
	predictionSvc := services.NewPredictionService(store, recorders...)
	metricsRecorder.TrackModel(predictionSvc.ModelLoaded)

	// A missing or broken artifact does not stop the server; /health reports it.
	if err := predictionSvc.LoadModel(ctx); err != nil {
		log.WithError(err).Warn("could not load model, serving without one")
	}

	if cfg.Model.Watch {
		watcher := filestore.NewWatcher(cfg.Model.Path, cfg.Model.WatchDebounce, predictionSvc.Reload)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.WithError(err).Warn("model watcher stopped")
			}
		}()
		log.WithField("path", cfg.Model.Path).Info("watching model artifact")
	}

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(predictionSvc, metricsRecorder)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())
	h.RegisterRoutes(router)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func newPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	log.Info("database connection established")
	return pool, nil
}
