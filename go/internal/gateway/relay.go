package gateway

import (
	"sync"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/broadcast"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Relay subscribes to a session's broadcast channel while this instance has at
// least one connection for it and forwards every payload to the registry.
//
// mu guards the watched map and reference counts only. Subscribe and
// Unsubscribe run under the session's own watch lock, so a slow broker
// stalls that session and nothing else. Lock order is watch.mu then mu.
type Relay struct {
	subscriber broadcast.Subscriber
	sink       broadcast.Sink

	mu      sync.Mutex
	watched map[uuid.UUID]*watch
}

type watch struct {
	refs int // guarded by Relay.mu

	mu  sync.Mutex
	sub broadcast.Subscription
}

// NewRelay creates a relay from subscriber into sink
func NewRelay(subscriber broadcast.Subscriber, sink broadcast.Sink) *Relay {
	return &Relay{
		subscriber: subscriber,
		sink:       sink,
		watched:    make(map[uuid.UUID]*watch),
	}
}

// Watch subscribes on the first connection for sessionID.
func (r *Relay) Watch(sessionID uuid.UUID) {
	r.mu.Lock()
	w, ok := r.watched[sessionID]
	if !ok {
		w = &watch{}
		r.watched[sessionID] = w
	}
	w.refs++
	r.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sub != nil {
		return
	}

	sub, err := r.subscriber.Subscribe(sessionID, func(payload []byte) {
		r.sink.Deliver(sessionID, payload)
	})
	if err != nil {
		// Connections still work; they just miss updates until the next watch.
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to subscribe to session channel")
		return
	}
	w.sub = sub
	log.Debug().Str("session_id", sessionID.String()).Msg("subscribed to session channel")
}

// Unwatch unsubscribes when the last connection for sessionID goes away.
func (r *Relay) Unwatch(sessionID uuid.UUID) {
	r.mu.Lock()
	w, ok := r.watched[sessionID]
	if !ok || w.refs == 0 {
		r.mu.Unlock()
		return
	}
	w.refs--
	last := w.refs == 0
	r.mu.Unlock()
	if !last {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// A Watch may have arrived while we waited for the session lock.
	if r.refs(w) > 0 {
		return
	}
	if w.sub != nil {
		err := w.sub.Unsubscribe()
		w.sub = nil
		if err != nil {
			log.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to unsubscribe from session channel")
		} else {
			log.Debug().Str("session_id", sessionID.String()).Msg("unsubscribed from session channel")
		}
	}

	r.mu.Lock()
	if w.refs == 0 && r.watched[sessionID] == w {
		delete(r.watched, sessionID)
	}
	r.mu.Unlock()
}

func (r *Relay) refs(w *watch) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return w.refs
}

// Watched reports how many sessions currently have connections.
func (r *Relay) Watched() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, w := range r.watched {
		if w.refs > 0 {
			n++
		}
	}
	return n
}
