package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/review"
)

// ReviewRepository defines the persistence contract for reviews.
type ReviewRepository interface {
	// Add persists a new review. At most one review exists per order; the
	// duplicate check happens in the application layer before Add.
	Add(ctx context.Context, aggregate *review.Review) error

	// GetByOrderID retrieves the review left for an order.
	// Returns an ObjectNotFoundError when the order has no review.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*review.Review, error)
}
