package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/trebol/go/internal/config"
	"github.com/mcdev12/trebol/go/internal/database"
	"github.com/mcdev12/trebol/go/internal/logger"
	"github.com/mcdev12/trebol/go/internal/outbox"
	outboxdb "github.com/mcdev12/trebol/go/internal/outbox/db"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.New(cfg.Log)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// JetStream publisher
	jsConfig := outbox.DefaultJetStreamConfig()
	jsConfig.URL = cfg.NATS.URL
	publisher, err := outbox.NewJetStreamPublisher(ctx, jsConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create JetStream publisher")
	}
	defer publisher.Close()

	// Listener config
	listenerConfig := outbox.DefaultListenerConfig()
	listenerConfig.DatabaseURL = cfg.Database.DSN()
	listenerConfig.FallbackInterval = cfg.Outbox.FallbackInterval

	repo := outbox.NewRepository(outboxdb.New(db))
	relay := outbox.NewRelay(repo, publisher, listenerConfig)
	listener, err := outbox.NewListener(relay, listenerConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create listener")
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", outbox.NewHealthChecker(relay, db, repo, publisher, 2*listenerConfig.FallbackInterval))
	healthServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Outbox.HealthPort),
		Handler:     mux,
		ReadTimeout: 5 * time.Second,
	}

	log.Info().
		Str("nats_url", jsConfig.URL).
		Str("stream", jsConfig.StreamName).
		Str("health_addr", healthServer.Addr).
		Msg("starting outbox worker")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listener.Start(gctx)
	})
	g.Go(func() error {
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return healthServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("outbox worker stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("outbox worker stopped")
}
