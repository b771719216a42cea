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

	"ems/internal/auth"
	"ems/internal/config"
	"ems/internal/http/router"
	"ems/internal/logger"
	"ems/internal/repo"
	"ems/internal/view"
)

func main() {
	cfg, found, cfgErr := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if cfgErr != nil {
		log.Fatal("invalid configuration", zap.Error(cfgErr))
	}
	if !found {
		log.Info("no .env file found, using environment and defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := repo.InitDB(ctx, cfg.Database, log); err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer repo.CloseDB()

	auth.InitAuth(cfg)
	if err := view.InitTemplates(); err != nil {
		log.Fatal("template parsing failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", zap.Duration("grace", cfg.ShutdownGrace))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
