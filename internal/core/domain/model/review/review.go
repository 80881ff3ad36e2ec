// Package review provides the review entity left by a customer for a
// delivered order. At most one review exists per order and it can only be
// created by the owning customer after delivery.
package review

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

const (
	// RatingMin is the lowest allowed rating value.
	RatingMin = 1
	// RatingMax is the highest allowed rating value.
	RatingMax = 5
	// CommentMaxLength bounds the free-text comment.
	CommentMaxLength = 500
)

var (
	// ErrReviewIsNotConstructed is returned when a Review instance was not
	// created through the NewReview or RestoreReview factory functions.
	ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")
)

// Review is a customer's rating of a delivered order. The overall rating is
// mandatory; food and delivery sub-ratings are optional. The review
// references the first pizza of the order.
type Review struct {
	id             kernel.UUID
	orderID        kernel.UUID
	customerID     kernel.UUID
	pizzaID        kernel.UUID
	rating         int
	foodRating     *int
	deliveryRating *int
	comment        string
	createdAt      time.Time

	isConstructed bool
}

// NewReview creates a review with validated ratings and comment length.
func NewReview(
	id, orderID, customerID, pizzaID kernel.UUID,
	rating int,
	foodRating, deliveryRating *int,
	comment string,
	now time.Time,
) (*Review, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		customerID.Validate(),
		pizzaID.Validate(),
	); err != nil {
		return nil, err
	}
	if rating < RatingMin || rating > RatingMax {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}
	if foodRating != nil && (*foodRating < RatingMin || *foodRating > RatingMax) {
		return nil, errs.NewValueIsOutOfRangeError("food rating", *foodRating, RatingMin, RatingMax)
	}
	if deliveryRating != nil && (*deliveryRating < RatingMin || *deliveryRating > RatingMax) {
		return nil, errs.NewValueIsOutOfRangeError("delivery rating", *deliveryRating, RatingMin, RatingMax)
	}
	if len(comment) > CommentMaxLength {
		return nil, errs.NewValueIsOutOfRangeError("comment length", len(comment), 0, CommentMaxLength)
	}

	return &Review{
		id:             id,
		orderID:        orderID,
		customerID:     customerID,
		pizzaID:        pizzaID,
		rating:         rating,
		foodRating:     foodRating,
		deliveryRating: deliveryRating,
		comment:        comment,
		createdAt:      now,
		isConstructed:  true,
	}, nil
}

// RestoreReview reconstructs a review from persistence.
func RestoreReview(
	id, orderID, customerID, pizzaID kernel.UUID,
	rating int,
	foodRating, deliveryRating *int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	return NewReview(id, orderID, customerID, pizzaID, rating, foodRating, deliveryRating, comment, createdAt)
}

// Validate ensures the review was created through a factory function.
func (r *Review) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReviewIsNotConstructed
	}
	return nil
}

// ID returns the review's unique identifier.
func (r *Review) ID() kernel.UUID { return r.id }

// OrderID returns the reviewed order.
func (r *Review) OrderID() kernel.UUID { return r.orderID }

// CustomerID returns the reviewing customer.
func (r *Review) CustomerID() kernel.UUID { return r.customerID }

// PizzaID returns the referenced pizza.
func (r *Review) PizzaID() kernel.UUID { return r.pizzaID }

// Rating returns the overall rating.
func (r *Review) Rating() int { return r.rating }

// FoodRating returns the optional food sub-rating.
func (r *Review) FoodRating() *int { return r.foodRating }

// DeliveryRating returns the optional delivery sub-rating.
func (r *Review) DeliveryRating() *int { return r.deliveryRating }

// Comment returns the optional free-text comment.
func (r *Review) Comment() string { return r.comment }

// CreatedAt returns the creation timestamp.
func (r *Review) CreatedAt() time.Time { return r.createdAt }
