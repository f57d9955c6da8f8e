package broadcast

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Publisher sends an event to every current subscriber of its session channel.
type Publisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}

// Subscription is an active channel subscription.
type Subscription interface {
	Unsubscribe() error
}

// Subscriber delivers raw payloads published on a session's channel.
type Subscriber interface {
	Subscribe(sessionID uuid.UUID, handler func(payload []byte)) (Subscription, error)
}

// PublishRecorder counts publish outcomes.
type PublishRecorder interface {
	RecordPublish(kind string, success bool)
}

// Announce publishes event and swallows the failure after logging it:
// a mutation's outcome never depends on notification delivery.
func Announce(ctx context.Context, pub Publisher, event ChangeEvent, recorder PublishRecorder) {
	err := pub.Publish(ctx, event)
	if recorder != nil {
		recorder.RecordPublish(string(event.Type), err == nil)
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("event_type", string(event.Type)).
			Str("session_id", event.SessionID.String()).
			Msg("failed to publish change event")
		return
	}
	log.Debug().
		Str("event_type", string(event.Type)).
		Str("session_id", event.SessionID.String()).
		Msg("change event published")
}
