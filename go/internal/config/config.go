// Package config loads process configuration once at start. Values come
// from defaults, then an optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/trebol/go/internal/dbconfig"
)

type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Auth     AuthConfig      `yaml:"auth"`
	Economy  EconomyConfig   `yaml:"economy"`
	Lock     LockConfig      `yaml:"lock"`
	NATS     NATSConfig      `yaml:"nats"`
	Gateway  GatewayConfig   `yaml:"gateway"`
	Outbox   OutboxConfig    `yaml:"outbox"`
	Log      LogConfig       `yaml:"log"`
	Database dbconfig.Config `yaml:"-"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type EconomyConfig struct {
	StartingBalance   int64         `yaml:"starting_balance"`
	DefaultMaxMembers int           `yaml:"default_max_members"`
	MarketSize        int           `yaml:"market_size"`
	MarketTTL         time.Duration `yaml:"market_ttl"`
}

type LockConfig struct {
	Backend       string        `yaml:"backend"` // local or redis
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
	Retries       int           `yaml:"retries"`
	Backoff       time.Duration `yaml:"backoff"`
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type GatewayConfig struct {
	Port int `yaml:"port"`
}

type OutboxConfig struct {
	HealthPort       int           `yaml:"health_port"`
	FallbackInterval time.Duration `yaml:"fallback_interval"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			AllowedOrigins:  []string{"http://localhost:3000"},
			ShutdownTimeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL: 30 * time.Minute,
		},
		Economy: EconomyConfig{
			StartingBalance:   1_000_000,
			DefaultMaxMembers: 10,
			MarketSize:        20,
			MarketTTL:         24 * time.Hour,
		},
		Lock: LockConfig{
			Backend:   "local",
			RedisAddr: "localhost:6379",
			TTL:       30 * time.Second,
			Retries:   20,
			Backoff:   100 * time.Millisecond,
		},
		NATS: NATSConfig{
			URL: "nats://127.0.0.1:4222",
		},
		Gateway: GatewayConfig{
			Port: 8081,
		},
		Outbox: OutboxConfig{
			HealthPort:       8082,
			FallbackInterval: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads .env, the YAML file named by path (or CONFIG_FILE when path is
// empty) and the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	cfg.Database = dbconfig.NewConfigFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvAsInt("PORT", c.Server.Port)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}
	c.Server.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.TokenTTL = getEnvAsDuration("TOKEN_TTL", c.Auth.TokenTTL)

	c.Economy.StartingBalance = int64(getEnvAsInt("STARTING_BALANCE", int(c.Economy.StartingBalance)))
	c.Economy.DefaultMaxMembers = getEnvAsInt("DEFAULT_MAX_MEMBERS", c.Economy.DefaultMaxMembers)
	c.Economy.MarketSize = getEnvAsInt("MARKET_SIZE", c.Economy.MarketSize)
	c.Economy.MarketTTL = getEnvAsDuration("MARKET_TTL", c.Economy.MarketTTL)

	c.Lock.Backend = getEnv("LOCK_BACKEND", c.Lock.Backend)
	c.Lock.RedisAddr = getEnv("REDIS_ADDR", c.Lock.RedisAddr)
	c.Lock.RedisPassword = getEnv("REDIS_PASSWORD", c.Lock.RedisPassword)
	c.Lock.RedisDB = getEnvAsInt("REDIS_DB", c.Lock.RedisDB)
	c.Lock.TTL = getEnvAsDuration("LOCK_TTL", c.Lock.TTL)
	c.Lock.Retries = getEnvAsInt("LOCK_RETRIES", c.Lock.Retries)
	c.Lock.Backoff = getEnvAsDuration("LOCK_BACKOFF", c.Lock.Backoff)

	c.NATS.URL = getEnv("NATS_URL", c.NATS.URL)
	c.Gateway.Port = getEnvAsInt("GATEWAY_PORT", c.Gateway.Port)
	c.Outbox.HealthPort = getEnvAsInt("OUTBOX_HEALTH_PORT", c.Outbox.HealthPort)
	c.Outbox.FallbackInterval = getEnvAsDuration("FALLBACK_INTERVAL", c.Outbox.FallbackInterval)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Pretty = getEnvAsBool("LOG_PRETTY", c.Log.Pretty)
}

// Validate rejects configurations the services cannot start with
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("token TTL must be positive"))
	}
	if c.Economy.StartingBalance < 0 {
		errs = append(errs, errors.New("starting balance must not be negative"))
	}
	if c.Economy.MarketSize <= 0 {
		errs = append(errs, errors.New("market size must be positive"))
	}
	if c.Economy.MarketTTL <= 0 {
		errs = append(errs, errors.New("market TTL must be positive"))
	}
	if c.Lock.Backend != "local" && c.Lock.Backend != "redis" {
		errs = append(errs, fmt.Errorf("unknown lock backend %q", c.Lock.Backend))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("ignoring non-integer value")
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("ignoring invalid duration")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
