// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/dbconfig"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNATS   = "nats"

	BroadcastLocal    = "local"
	BroadcastNATS     = "nats"
	BroadcastPostgres = "postgres"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	SupabaseURL            string `env:"SUPABASE_URL,required"`
	SupabaseServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY,required"`
	JWTSecret              string `env:"SUPABASE_JWT_SECRET,required"`
	JWTAudience            string `env:"JWT_AUDIENCE" envDefault:"authenticated"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	CacheBackend     string `env:"CACHE_BACKEND" envDefault:"memory"`
	RedisURL         string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	NATSURL          string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NATSKVBucket     string `env:"NATS_KV_BUCKET" envDefault:"opengym_cache"`
	BroadcastBackend string `env:"BROADCAST_BACKEND" envDefault:"local"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MigrateOnStart  bool          `env:"MIGRATE_ON_START" envDefault:"false"`

	SportsCatalogFile string `env:"SPORTS_CATALOG_FILE"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}
	return parse(env.Options{})
}

// LoadFrom parses configuration from the given variables only.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DatabaseURL = dbconfig.ResolveDSN(cfg.DatabaseURL)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings and durations.
func (c Config) Validate() error {
	switch c.CacheBackend {
	case CacheMemory, CacheRedis, CacheNATS:
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of memory, redis, nats; got %q", c.CacheBackend)
	}
	switch c.BroadcastBackend {
	case BroadcastLocal, BroadcastNATS, BroadcastPostgres:
	default:
		return fmt.Errorf("BROADCAST_BACKEND must be one of local, nats, postgres; got %q", c.BroadcastBackend)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json; got %q", c.LogFormat)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
