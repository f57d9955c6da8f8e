package gateway

import (
	"context"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/broadcast"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Service bundles the registry, the WebSocket handler and, for shared
// brokers, the relay that feeds the registry.
type Service struct {
	registry  *Registry
	wsHandler *WebSocketHandler
	relay     *Relay
}

// Config holds configuration for the gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
	DeliveryBuffer   int
}

// DefaultConfig returns default configuration for the gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		DeliveryBuffer:   1000,
	}
}

// NewService creates a gateway. subscriber is nil when events are published
// straight into this instance's registry.
func NewService(config Config, subscriber broadcast.Subscriber, recorder ConnectionRecorder) *Service {
	registry := NewRegistry(config.DeliveryBuffer)

	var relay *Relay
	if subscriber != nil {
		relay = NewRelay(subscriber, registry)
		registry.SetWatcher(relay)
	}

	return &Service{
		registry:  registry,
		wsHandler: NewWebSocketHandler(registry, config.ConnectionConfig, recorder),
		relay:     relay,
	}
}

// Registry is the local delivery target.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Start runs the registry dispatcher until ctx is done
func (s *Service) Start(ctx context.Context) error {
	log.Info().Bool("relay", s.relay != nil).Msg("starting realtime gateway")
	s.registry.Start(ctx)
	log.Info().Msg("realtime gateway stopped")
	return nil
}

// RegisterRoutes registers the WebSocket HTTP routes
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/ws", s.wsHandler.HandleConnection)
	r.Get("/ws/stats", s.wsHandler.HandleConnectionStats)
}
