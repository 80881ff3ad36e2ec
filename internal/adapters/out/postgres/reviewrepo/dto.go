// Package reviewrepo provides data transfer objects and mapping functions
// for review persistence.
package reviewrepo

import (
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/review"

	"github.com/google/uuid"
)

// ReviewDTO represents the database structure for persisting reviews.
type ReviewDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CustomerID     uuid.UUID `gorm:"type:uuid;index"`
	PizzaID        uuid.UUID `gorm:"type:uuid;index"`
	Rating         int
	FoodRating     *int
	DeliveryRating *int
	Comment        string
	CreatedAt      time.Time
}

// TableName overrides GORM's default naming to use "reviews".
func (ReviewDTO) TableName() string {
	return "reviews"
}

// fromDomain converts a review to its database representation.
func fromDomain(aggregate *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:             aggregate.ID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		CustomerID:     aggregate.CustomerID().Bytes(),
		PizzaID:        aggregate.PizzaID().Bytes(),
		Rating:         aggregate.Rating(),
		FoodRating:     aggregate.FoodRating(),
		DeliveryRating: aggregate.DeliveryRating(),
		Comment:        aggregate.Comment(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a review using RestoreReview.
func toDomain(dto ReviewDTO) (*review.Review, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	pizzaID, err := kernel.UUIDFromBytes(dto.PizzaID[:])
	if err != nil {
		return nil, err
	}

	return review.RestoreReview(
		id,
		orderID,
		customerID,
		pizzaID,
		dto.Rating,
		dto.FoodRating,
		dto.DeliveryRating,
		dto.Comment,
		dto.CreatedAt,
	)
}
