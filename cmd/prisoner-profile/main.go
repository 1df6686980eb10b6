package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prisoner-profile/internal/audit"
	"prisoner-profile/internal/config"
	httpapi "prisoner-profile/internal/http"
	"prisoner-profile/internal/logger"
	"prisoner-profile/internal/metrics"
	"prisoner-profile/internal/service"
	"prisoner-profile/internal/store"
	"prisoner-profile/internal/upstream"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "prisoner-profile")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		// sessions are unavailable until redis comes up; /health reports it
		log.Warn("Redis not reachable at startup", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	pingCancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	factory := upstream.NewFactory(cfg.Upstream, log, m)
	services := func(token string) *service.Services {
		c := factory.ForToken(token)
		return service.NewServices(c.Prison, c.Whereabouts, c.CaseNotes, log)
	}

	sessions := store.NewSessionStore(store.NewRedisKV(redisClient), cfg.Session.KeyPrefix)

	var auditor *audit.Publisher
	if cfg.Audit.Enabled {
		auditor = audit.NewPublisher(redisClient, cfg.Audit.Stream, log)
	}

	health := httpapi.NewHealthHandler(log)
	health.AddCheck("redis", func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })

	router := httpapi.NewRouter(log)
	router.RegisterPrisonerRoutes(httpapi.NewPrisonerHandler(sessions, cfg.Session.CookieName, services, auditor, m, log))
	router.RegisterOpsRoutes(health, reg)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("HTTP server stopped", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
}
