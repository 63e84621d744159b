package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/odontoflow/odontoflow/internal/config"
	v1 "github.com/odontoflow/odontoflow/internal/handler/v1"
	"github.com/odontoflow/odontoflow/internal/service"
	"github.com/odontoflow/odontoflow/internal/session"
	"github.com/odontoflow/odontoflow/internal/store"
	"github.com/odontoflow/odontoflow/pkg/auth"
	"github.com/odontoflow/odontoflow/pkg/database"
	"github.com/odontoflow/odontoflow/pkg/logger"
	"github.com/odontoflow/odontoflow/pkg/metrics"
	"github.com/odontoflow/odontoflow/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	collector := metrics.NewCollector("odontoflow")

	recordStore := store.NewRecordStore(db)
	cache := store.NewCache(cfg.Cache.Dir, cfg.Cache.Namespace, log)
	recordSvc := service.NewRecordService(recordStore, cache, log)
	recordSvc.OnCacheFallback(collector.CacheFallbacksTotal.Inc)

	tokens := auth.NewTokenManager(cfg.JWT)
	provider := session.NewLocalProvider(store.NewUserStore(db), tokens, log)

	// The session gate drives record state: the first authenticated
	// session triggers the initial load, sign-out wipes it.
	gate := session.NewGate(provider, log)
	gate.OnAuthenticated(func() {
		if err := recordSvc.Load(context.Background()); err != nil {
			log.Error("initial record load failed", zap.Error(err))
		}
	})
	gate.OnUnauthenticated(recordSvc.Clear)
	gate.Start()
	defer gate.Stop()

	handlers := v1.Handlers{
		Auth:      v1.NewAuthHandler(provider, collector, log),
		Records:   v1.NewRecordHandler(recordSvc, collector, log),
		Dashboard: v1.NewDashboardHandler(recordSvc, collector, log),
	}
	router := v1.NewRouter(cfg, provider, handlers, collector, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown did not finish cleanly", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Warn("tracer shutdown did not finish cleanly", zap.Error(err))
	}

	return nil
}
