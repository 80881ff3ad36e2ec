package ports

import (
	"context"

	"pizzeria/internal/core/domain/events"
)

// EventPublisher hands committed domain events to the fan-out layer.
// Publishing is fire-and-forget relative to the triggering request: the
// implementation must not block on subscriber delivery, and delivery
// failures are never surfaced to the publishing caller.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}
