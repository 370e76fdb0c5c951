package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/trebol/go/internal/auth"
	"github.com/mcdev12/trebol/go/internal/config"
	"github.com/mcdev12/trebol/go/internal/middleware"
)

func runServer(lc fx.Lifecycle, services *Services, tokens *auth.TokenManager, cfg *config.Config, db *sql.DB, logger zerolog.Logger) {
	srv := setupServer(services, tokens, cfg, db, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}

func setupServer(services *Services, tokens *auth.TokenManager, cfg *config.Config, db *sql.DB, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	registerServices(mux, services, tokens)
	setupHealthCheck(mux, db, logger)

	handler := middleware.RequestID(logger)(c.Handler(mux))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}

func registerServices(mux *http.ServeMux, services *Services, tokens *auth.TokenManager) {
	authn := tokens.Middleware
	member := services.Leagues.Member()

	services.Users.RegisterRoutes(mux, authn)
	services.Leagues.RegisterRoutes(mux, authn)
	services.Players.RegisterRoutes(mux, authn)
	services.Roster.RegisterRoutes(mux, authn, member)
	services.Market.RegisterRoutes(mux, authn, member)
	services.Transfers.RegisterRoutes(mux, authn, member)
}

func setupHealthCheck(mux *http.ServeMux, db *sql.DB, logger zerolog.Logger) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Warn().Err(err).Msg("health check failed")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
