package broadcast

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/domain/model/kernel"
)

// Identity is the authenticated principal attached to a websocket session.
type Identity struct {
	UserID  kernel.UUID
	IsAdmin bool
}

// OrderOwnership answers whether a customer owns an order. Backed by the
// orders table; the lookup runs once per subscription attempt, not per event.
type OrderOwnership interface {
	IsOwner(ctx context.Context, orderID, userID kernel.UUID) (bool, error)
}

// Authorizer decides per topic whether an identity may subscribe.
//
// Denial is silent by contract: callers simply skip the topic, the client
// receives no error, and nothing discloses whether the topic exists.
type Authorizer struct {
	ownership OrderOwnership
	logger    *slog.Logger
}

// NewAuthorizer creates an authorizer over the given ownership lookup.
func NewAuthorizer(ownership OrderOwnership, logger *slog.Logger) *Authorizer {
	return &Authorizer{
		ownership: ownership,
		logger:    logger.With("component", "broadcast_authorizer"),
	}
}

// CanSubscribe reports whether the identity may attach to the topic.
// The dashboard and driver topics are admin-only; drivers receive dispatch
// data through their order topics. Order topics admit the owning customer or
// an admin. Personal user topics admit only that exact user, admins included:
// an admin reads a customer's orders through the order topics, never through
// the customer's personal feed. Lookup failures deny.
func (a *Authorizer) CanSubscribe(ctx context.Context, identity Identity, topic Topic) bool {
	switch topic.Class() {
	case classAdmin:
		return identity.IsAdmin
	case classOrders:
		if identity.IsAdmin {
			return true
		}

		orderID, err := kernel.UUIDFromString(topic.Suffix())
		if err != nil {
			return false
		}

		owns, err := a.ownership.IsOwner(ctx, orderID, identity.UserID)
		if err != nil {
			a.logger.WarnContext(ctx, "Ownership lookup failed, denying subscription",
				"topic", topic.String(), "error", err)
			return false
		}
		return owns
	case classUsers:
		return topic.Suffix() == identity.UserID.String()
	case classDrivers:
		return identity.IsAdmin
	default:
		return false
	}
}
