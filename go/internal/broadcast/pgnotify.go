package broadcast

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Execer runs a statement. *pgxpool.Pool satisfies it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresBroker publishes with pg_notify and receives on a dedicated
// LISTEN connection.
type PostgresBroker struct {
	db           Execer
	listener     *pq.Listener
	pingInterval time.Duration

	mu       sync.RWMutex
	handlers map[string]func([]byte)
}

// NewPostgresBroker opens the LISTEN connection for dsn in the background.
func NewPostgresBroker(db Execer, dsn string) *PostgresBroker {
	l := pq.NewListener(
		dsn,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	return &PostgresBroker{
		db:           db,
		listener:     l,
		pingInterval: 90 * time.Second,
		handlers:     make(map[string]func([]byte)),
	}
}

func (b *PostgresBroker) Publish(ctx context.Context, event ChangeEvent) error {
	payload, err := event.Encode()
	if err != nil {
		return err
	}
	if _, err := b.db.Exec(ctx, "SELECT pg_notify($1, $2)", Channel(event.SessionID), string(payload)); err != nil {
		return fmt.Errorf("pg_notify: %w", err)
	}
	return nil
}

func (b *PostgresBroker) Subscribe(sessionID uuid.UUID, handler func([]byte)) (Subscription, error) {
	channel := Channel(sessionID)
	if err := b.listener.Listen(channel); err != nil && !errors.Is(err, pq.ErrChannelAlreadyOpen) {
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}
	b.mu.Lock()
	b.handlers[channel] = handler
	b.mu.Unlock()
	return &pgSubscription{broker: b, channel: channel}, nil
}

// Run dispatches notifications until ctx is done.
func (b *PostgresBroker) Run(ctx context.Context) error {
	pingTicker := time.NewTicker(b.pingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("postgres broker shutting down")
			return b.listener.Close()
		case note := <-b.listener.Notify:
			if note == nil {
				// nil notification means the connection was lost and re-established
				continue
			}
			b.mu.RLock()
			handler := b.handlers[note.Channel]
			b.mu.RUnlock()
			if handler != nil {
				handler([]byte(note.Extra))
			}
		case <-pingTicker.C:
			if err := b.listener.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

// Ping checks the notify side (pool) of the broker.
func (b *PostgresBroker) Ping(ctx context.Context) error {
	_, err := b.db.Exec(ctx, "SELECT 1")
	return err
}

type pgSubscription struct {
	broker  *PostgresBroker
	channel string
	once    sync.Once
}

func (s *pgSubscription) Unsubscribe() error {
	var err error
	s.once.Do(func() {
		s.broker.mu.Lock()
		delete(s.broker.handlers, s.channel)
		s.broker.mu.Unlock()
		if uerr := s.broker.listener.Unlisten(s.channel); uerr != nil && !errors.Is(uerr, pq.ErrChannelNotOpen) {
			err = fmt.Errorf("failed to unlisten channel: %w", uerr)
		}
	})
	return err
}
