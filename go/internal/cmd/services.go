package main

import (
	"github.com/Paolo-ittapuppy/OpenGymBE/go/clients/gotrue"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/auth"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/broadcast"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/cache"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/config"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/games"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/gateway"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/metrics"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/sessions"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/sports"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/teams"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

type Services struct {
	Verifier *auth.Verifier
	Sessions *sessions.Service
	Teams    *teams.Service
	Games    *games.Service
	Users    *users.Service
	Gateway  *gateway.Service
}

func setupServices(cfg config.Config, pool *pgxpool.Pool, backends *Backends, catalog *sports.Catalog, m *metrics.PrometheusMetrics) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer
	clock := clockwork.NewRealClock()

	gatewayService := gateway.NewService(gateway.DefaultConfig(), backends.Subscriber, m)

	publisher := backends.Publisher
	if publisher == nil {
		publisher = broadcast.NewLocalPublisher(gatewayService.Registry())
	}

	// Sessions
	sessionsRepo := sessions.NewRepository(pool)
	sessionsApp := sessions.NewApp(sessionsRepo, catalog, cfg.UpstreamTimeout)
	sessionsService := sessions.NewService(sessionsApp)

	// Teams
	teamsRepo := teams.NewRepository(pool)
	teamsApp := teams.NewApp(
		teamsRepo,
		cache.NewView(backends.Store, cache.ViewTeams, m),
		publisher,
		teams.Config{Timeout: cfg.UpstreamTimeout, Clock: clock, Recorder: m},
	)
	teamsService := teams.NewService(teamsApp)

	// Games
	gamesRepo := games.NewRepository(pool)
	gamesApp := games.NewApp(
		gamesRepo,
		cache.NewView(backends.Store, cache.ViewGames, m),
		publisher,
		games.Config{Timeout: cfg.UpstreamTimeout, Clock: clock, Recorder: m},
	)
	gamesService := games.NewService(gamesApp)

	// Users
	provider := gotrue.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
	usersRepo := users.NewRepository(pool)
	usersApp := users.NewApp(usersRepo, provider, cfg.UpstreamTimeout)
	usersService := users.NewService(usersApp)

	return &Services{
		Verifier: auth.NewVerifier(cfg.JWTSecret, cfg.JWTAudience, clock),
		Sessions: sessionsService,
		Teams:    teamsService,
		Games:    gamesService,
		Users:    usersService,
		Gateway:  gatewayService,
	}
}
