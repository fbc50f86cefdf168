// Package events provides the outbound domain event port. Publishing is
// fire-and-forget; the facade flushes an aggregate's pending events after a
// successful save and no acknowledgment is awaited.
package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/article-publishing-api/internal/domain"
)

// Publisher delivers domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// PublishAll delivers events in order.
func PublishAll(ctx context.Context, publisher Publisher, events []domain.Event) {
	for _, event := range events {
		publisher.Publish(ctx, event)
	}
}

// LogPublisher writes each event to the structured log. It stands in for a
// message broker in the single-process deployment.
type LogPublisher struct {
	log zerolog.Logger
}

// NewLogPublisher creates a publisher that logs events.
func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With().Str("component", "events").Logger()}
}

// Publish implements Publisher.
func (p *LogPublisher) Publish(ctx context.Context, event domain.Event) {
	p.log.Info().
		Str("event", event.EventName()).
		Interface("payload", event).
		Msg("Domain event published")
}

// NopPublisher discards events.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(ctx context.Context, event domain.Event) {}
