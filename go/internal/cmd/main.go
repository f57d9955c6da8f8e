package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/config"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/health"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg config.Config) error {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	pool, err := setupDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	checker := health.NewChecker(cfg.UpstreamTimeout)
	checker.Add("database", pool.Ping)

	backends, err := setupBackends(ctx, cfg, pool, checker)
	if err != nil {
		return err
	}
	defer backends.Close()

	m := metrics.NewPrometheusMetrics()
	services := setupServices(cfg, pool, backends, catalog, m)
	srv := setupServer(cfg, services, checker, m)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return services.Gateway.Start(gctx)
	})

	if backends.Postgres != nil {
		g.Go(func() error {
			return backends.Postgres.Run(gctx)
		})
	}

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
