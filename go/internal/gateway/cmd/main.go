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

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/trebol/go/internal/auth"
	"github.com/mcdev12/trebol/go/internal/config"
	"github.com/mcdev12/trebol/go/internal/database"
	"github.com/mcdev12/trebol/go/internal/gateway"
	"github.com/mcdev12/trebol/go/internal/leagues"
	"github.com/mcdev12/trebol/go/internal/logger"
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

	connConfig := gateway.DefaultConnectionConfig()
	origins := cors.New(cors.Options{AllowedOrigins: cfg.Server.AllowedOrigins})
	connConfig.CheckOrigin = func(r *http.Request) bool {
		return r.Header.Get("Origin") == "" || origins.OriginAllowed(r)
	}
	manager := gateway.NewConnectionManager(connConfig)

	jsConfig := gateway.DefaultJetStreamConsumerConfig()
	jsConfig.URL = cfg.NATS.URL
	consumer, err := gateway.NewEventConsumer(ctx, manager, jsConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event consumer")
	}
	defer consumer.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, clockwork.NewRealClock())
	mux := http.NewServeMux()
	gateway.NewHandler(manager, tokens, leagues.NewRepository(db)).RegisterRoutes(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Gateway.Port),
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		manager.Start(gctx)
		return nil
	})
	g.Go(func() error {
		return consumer.Start(gctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("gateway listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("gateway stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("gateway stopped")
}
