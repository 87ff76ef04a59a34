// Package main is the entry point for the engagecms API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"engagecms/internal/auth"
	"engagecms/internal/cache"
	"engagecms/internal/config"
	"engagecms/internal/database"
	"engagecms/internal/events"
	"engagecms/internal/graph"
	"engagecms/internal/handlers"
	"engagecms/internal/logger"
	"engagecms/internal/metrics"
	"engagecms/internal/router"
	"engagecms/internal/service"
	"engagecms/internal/store"
	"engagecms/internal/tasks"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger, JSON or text, optionally mirrored to a rotating file.
	log, logCloser, err := logger.New(logger.Options{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		FilePath: cfg.LogFile,
	})
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(log)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"auth_mode", cfg.AuthMode,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN(), database.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(context.Background(), db, database.SeedOptions{}); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey when configured. It backs the query cache and
	// session tokens; the API works without it.
	var valkeyClient *redis.Client
	if addr := cfg.ValkeyAddr(); addr != "" {
		valkeyClient, err = cache.ConnectValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
	} else {
		slog.Warn("valkey not configured, query cache and sessions disabled")
	}

	// Bearer credential resolution.
	var resolver auth.Resolver
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		jwtResolver, err := auth.NewJWTResolver(cfg.JWTSecret)
		if err != nil {
			slog.Error("failed to initialize jwt resolver", "error", err)
			os.Exit(1)
		}
		resolver = jwtResolver
	case config.AuthModeSession:
		if valkeyClient == nil {
			slog.Error("AUTH_MODE=session requires valkey")
			os.Exit(1)
		}
		resolver = auth.NewSessionResolver(valkeyClient, auth.DefaultSessionTTL)
	}

	// Domain events go to Kafka when brokers are configured.
	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		slog.Warn("kafka not configured, domain events discarded")
	}

	m := metrics.New(nil)
	st := store.New(db)
	svc := service.New(st, service.Options{
		DefaultCategoryID: cfg.DefaultCategoryID,
		Events:            publisher,
	})

	// Query cache, cleared after every successful mutation.
	var responseCache handlers.ResponseCache
	var onMutation func(ctx context.Context, op string)
	if valkeyClient != nil && cfg.QueryCacheTTL > 0 {
		queryCache := cache.NewQueryCache(valkeyClient, cfg.QueryCacheTTL)
		responseCache = queryCache
		onMutation = func(ctx context.Context, op string) {
			queryCache.InvalidateAll(context.WithoutCancel(ctx))
		}
	}

	exec := graph.NewExecutor(svc, graph.Options{
		Dev:        !cfg.IsProd(),
		Metrics:    m,
		OnMutation: onMutation,
	})

	// Background workers share a context cancelled on shutdown.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	// Comment moderation decisions from Kafka are applied as updateComment.
	if len(cfg.KafkaBrokers) > 0 {
		consumer, err := events.NewModerationConsumer(cfg.KafkaBrokers, cfg.KafkaModerationTopic, cfg.KafkaGroupID, exec)
		if err != nil {
			slog.Error("failed to initialize moderation consumer", "error", err)
			os.Exit(1)
		}
		defer consumer.Close()
		go consumer.Run(workerCtx)
	}

	// Scheduled like counter reconciliation.
	var reconciler *tasks.LikeReconciler
	if cfg.ReconcileSchedule != "" {
		reconciler = tasks.NewLikeReconciler(st.Counters, m.Reconciled)
		if err := reconciler.Start(cfg.ReconcileSchedule); err != nil {
			slog.Error("failed to schedule reconciliation", "error", err)
			os.Exit(1)
		}
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		GraphQL:  handlers.NewGraphQL(exec, responseCache, m),
		Health:   handlers.Health(st),
		Metrics:  m.Handler(),
		Resolver: resolver,
		Timeout:  cfg.RequestTimeout,
	})

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	stopWorkers()
	if reconciler != nil {
		reconciler.Stop(ctx)
	}

	slog.Info("server stopped gracefully")
}
