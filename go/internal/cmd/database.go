package main

import (
	"context"
	"fmt"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/broadcast"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/cache"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/config"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/db"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/health"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

func setupDatabase(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.DatabaseURL, "up"); err != nil {
			return nil, err
		}
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

// Backends are the cache store and broadcaster picked by configuration.
type Backends struct {
	Store      cache.Store
	Publisher  broadcast.Publisher // nil means publish into the local registry
	Subscriber broadcast.Subscriber
	Postgres   *broadcast.PostgresBroker

	closers []func()
}

// Close releases backend connections in reverse order of opening.
func (b *Backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func setupBackends(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, checker *health.Checker) (*Backends, error) {
	b := &Backends{}

	var nc *nats.Conn
	connectNATS := func() (*nats.Conn, error) {
		if nc != nil {
			return nc, nil
		}
		conn, err := broadcast.ConnectNATS(broadcast.DefaultNATSConfig(cfg.NATSURL))
		if err != nil {
			return nil, err
		}
		nc = conn
		b.closers = append(b.closers, conn.Close)
		checker.Add("nats", func(context.Context) error {
			if !conn.IsConnected() {
				return fmt.Errorf("nats status %s", conn.Status())
			}
			return nil
		})
		log.Info().Str("url", cfg.NATSURL).Msg("connected to NATS")
		return conn, nil
	}

	switch cfg.CacheBackend {
	case config.CacheRedis:
		store, err := cache.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Store = store
		b.closers = append(b.closers, func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close redis client")
			}
		})
	case config.CacheNATS:
		conn, err := connectNATS()
		if err != nil {
			b.Close()
			return nil, err
		}
		store, err := cache.NewNATSKVStore(ctx, conn, cfg.NATSKVBucket)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Store = store
	default:
		b.Store = cache.NewMemoryStore()
	}
	checker.Add("cache", b.Store.Ping)

	switch cfg.BroadcastBackend {
	case config.BroadcastNATS:
		conn, err := connectNATS()
		if err != nil {
			b.Close()
			return nil, err
		}
		broker := broadcast.NewNATSBroker(conn)
		b.Publisher = broker
		b.Subscriber = broker
		checker.Add("broadcast", broker.Ping)
	case config.BroadcastPostgres:
		broker := broadcast.NewPostgresBroker(pool, cfg.DatabaseURL)
		b.Publisher = broker
		b.Subscriber = broker
		b.Postgres = broker
		checker.Add("broadcast", broker.Ping)
	}

	log.Info().
		Str("cache_backend", cfg.CacheBackend).
		Str("broadcast_backend", cfg.BroadcastBackend).
		Msg("backends ready")
	return b, nil
}
