package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/mcdev12/trebol/go/internal/auth"
	"github.com/mcdev12/trebol/go/internal/config"
	"github.com/mcdev12/trebol/go/internal/database"
	"github.com/mcdev12/trebol/go/internal/lock"
	"github.com/mcdev12/trebol/go/internal/logger"
)

// Module provides the process wide infrastructure and the domain services
var Module = fx.Options(
	fx.Provide(loadConfig),
	fx.Provide(newLogger),
	fx.Provide(openDatabase),
	fx.Provide(newClock),
	fx.Provide(newTokenManager),
	fx.Provide(newLockManager),
	fx.Provide(setupServices),
)

func loadConfig() (*config.Config, error) {
	return config.Load("")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(cfg.Log)
}

func openDatabase(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (*sql.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
	return db, nil
}

func newClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func newTokenManager(cfg *config.Config, clock clockwork.Clock) *auth.TokenManager {
	return auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, clock)
}

// newLockManager picks the per-league refresh lock. The local lock only
// serialises refreshes inside this process.
func newLockManager(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (lock.Manager, error) {
	switch cfg.Lock.Backend {
	case "local":
		return lock.NewLocalLock(time.Duration(cfg.Lock.Retries) * cfg.Lock.Backoff), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Lock.RedisAddr,
			Password: cfg.Lock.RedisPassword,
			DB:       cfg.Lock.RedisDB,
		})
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := client.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("failed to reach redis: %w", err)
				}
				log.Info().Str("addr", cfg.Lock.RedisAddr).Msg("using redis refresh lock")
				return nil
			},
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
		return lock.NewRedisLock(client, cfg.Lock.TTL, cfg.Lock.Retries, cfg.Lock.Backoff), nil
	default:
		return nil, fmt.Errorf("unknown lock backend %q", cfg.Lock.Backend)
	}
}
