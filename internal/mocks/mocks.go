// Package mocks provides hand-written test doubles for the facade's
// external collaborators. Repositories use the real in-memory
// implementations; only the event publisher and user context need doubles.
package mocks

import (
	"context"
	"sync"

	"github.com/article-publishing-api/internal/auth"
	"github.com/article-publishing-api/internal/domain"
)

// RecordingPublisher captures published events in order.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []domain.Event
}

// NewRecordingPublisher creates an empty recording publisher.
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

// Publish implements events.Publisher.
func (p *RecordingPublisher) Publish(ctx context.Context, event domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

// OfName returns the captured events with the given name.
func (p *RecordingPublisher) OfName(name string) []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var matched []domain.Event
	for _, e := range p.Events {
		if e.EventName() == name {
			matched = append(matched, e)
		}
	}
	return matched
}

// StaticUserContext returns a fixed user, switchable per test step.
type StaticUserContext struct {
	mu   sync.Mutex
	user *auth.User
}

// NewStaticUserContext creates a user context acting as the given user.
func NewStaticUserContext(user *auth.User) *StaticUserContext {
	return &StaticUserContext{user: user}
}

// ActAs switches the current user. Pass nil for an unauthenticated caller.
func (c *StaticUserContext) ActAs(user *auth.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
}

// AuthenticatedUserOrNil implements auth.UserContext.
func (c *StaticUserContext) AuthenticatedUserOrNil(ctx context.Context) *auth.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}
