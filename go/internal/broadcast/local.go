package broadcast

import (
	"context"

	"github.com/google/uuid"
)

// Sink receives payloads for local fanout. The gateway registry implements it.
type Sink interface {
	Deliver(sessionID uuid.UUID, payload []byte)
}

// LocalPublisher hands events straight to this instance's connections.
type LocalPublisher struct {
	sink Sink
}

func NewLocalPublisher(sink Sink) *LocalPublisher {
	return &LocalPublisher{sink: sink}
}

func (p *LocalPublisher) Publish(_ context.Context, event ChangeEvent) error {
	payload, err := event.Encode()
	if err != nil {
		return err
	}
	p.sink.Deliver(event.SessionID, payload)
	return nil
}
