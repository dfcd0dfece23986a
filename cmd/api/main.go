package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/Chibschibs-tech/fitnest/internal/auth"
	"github.com/Chibschibs-tech/fitnest/internal/config"
	"github.com/Chibschibs-tech/fitnest/internal/database"
	"github.com/Chibschibs-tech/fitnest/internal/handlers"
	"github.com/Chibschibs-tech/fitnest/internal/logger"
	"github.com/Chibschibs-tech/fitnest/internal/metrics"
	"github.com/Chibschibs-tech/fitnest/internal/routes"
	"github.com/Chibschibs-tech/fitnest/internal/scheduling"
	"github.com/Chibschibs-tech/fitnest/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 0. --- Configuration & Logging ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration wasn't loaded due to %s", err)
	}
	if err := logger.Initialize(cfg.LogLevel, cfg.Env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}
	defer logger.Log.Sync()
	if !cfg.EnvFileLoaded {
		logger.Log.Warn("could not find or load .env file, relying on system environment variables")
	}
	if cfg.Env != config.EnvDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. --- Database ---
	db, err := database.OpenDB(ctx, cfg.DSN)
	if err != nil {
		logger.Log.Fatal("failed to connect to primary database", zap.Error(err))
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DSN, logger.Log); err != nil {
			logger.Log.Fatal("migrations weren't run", zap.Error(err))
		}
	}

	// 2. --- Engine ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	engine := scheduling.New(database.NewStore(db),
		scheduling.WithLocation(cfg.Location),
		scheduling.WithLogger(logger.Log.Named("scheduling")),
		scheduling.WithMetrics(metrics.New(reg)),
		scheduling.WithSyntheticFallback(cfg.SyntheticFallback),
	)

	// 3. --- Background Workers (Cron) ---
	var dispatcher *worker.Dispatcher
	if cfg.DispatchCron != "" {
		dispatcher, err = worker.NewDispatcher(engine, cfg.DispatchCron, cfg.Location, logger.Log.Named("dispatcher"))
		if err != nil {
			logger.Log.Fatal("dispatcher wasn't created", zap.Error(err))
		}
		dispatcher.Start()
	}

	// 4. --- Router & Server ---
	router := routes.SetupRouter(handlers.New(engine, logger.Log.Named("http")), routes.Options{
		Tokens:     auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL),
		CORSOrigin: cfg.CORSOrigin,
		Gatherer:   reg,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("starting fitnest API server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server shutdown", zap.Error(err))
	}
	if dispatcher != nil {
		if err := dispatcher.Stop(shutdownCtx); err != nil {
			logger.Log.Error("dispatcher shutdown", zap.Error(err))
		}
	}
}
