package main

import (
	"net/http"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/config"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/health"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/httpx"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(cfg config.Config, services *Services, checker *health.Checker, m *metrics.PrometheusMetrics) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpx.RequestLogger)
	r.Use(middleware.Recoverer)

	registerServices(r, services)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"hello": "world"})
	})
	r.Method(http.MethodGet, "/health", checker)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return &http.Server{
		Addr:    cfg.Addr(),
		Handler: h2c.NewHandler(c.Handler(r), &http2.Server{}),
	}
}

func registerServices(r chi.Router, services *Services) {
	requireAuth := services.Verifier.Require

	r.Route("/api", func(r chi.Router) {
		services.Users.RegisterRoutes(r, requireAuth)

		r.Route("/session", func(r chi.Router) {
			services.Sessions.RegisterRoutes(r, requireAuth)
			services.Teams.RegisterRoutes(r, requireAuth)
			services.Games.RegisterRoutes(r, requireAuth)
		})
	})

	services.Gateway.RegisterRoutes(r)
}
