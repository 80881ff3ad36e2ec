package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/review"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrSubmitReviewCommandIsNotConstructed = errors.New(
		"SubmitReviewCommand must be created via NewSubmitReviewCommand constructor",
	)
)

// SubmitReviewCommand represents a customer's review of a delivered order.
// Only the owning customer may review, only after delivery, and at most once
// per order.
type SubmitReviewCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	customerID     kernel.UUID
	rating         int
	foodRating     *int
	deliveryRating *int
	comment        string

	guard guard.ConstructorGuard
}

// NewSubmitReviewCommand creates a command to submit an order review.
// Rating bounds and comment length mirror the review entity's rules so that
// malformed requests are rejected before any lookup.
func NewSubmitReviewCommand(
	orderID, customerID kernel.UUID,
	rating int,
	foodRating, deliveryRating *int,
	comment string,
) (SubmitReviewCommand, error) {
	command := SubmitReviewCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setRating(rating),
	); err != nil {
		return SubmitReviewCommand{}, err
	}

	if len(comment) > review.CommentMaxLength {
		return SubmitReviewCommand{}, errs.NewValueIsOutOfRangeError(
			"comment length", len(comment), 0, review.CommentMaxLength)
	}

	command.foodRating = foodRating
	command.deliveryRating = deliveryRating
	command.comment = comment
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitReviewCommandIsNotConstructed if validation fails.
func (c SubmitReviewCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReviewCommandIsNotConstructed)
}

// OrderID returns the reviewed order.
func (c SubmitReviewCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the reviewing customer.
func (c SubmitReviewCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Rating returns the overall rating.
func (c SubmitReviewCommand) Rating() int {
	return c.rating
}

// FoodRating returns the optional food sub-rating.
func (c SubmitReviewCommand) FoodRating() *int {
	return c.foodRating
}

// DeliveryRating returns the optional delivery sub-rating.
func (c SubmitReviewCommand) DeliveryRating() *int {
	return c.deliveryRating
}

// Comment returns the optional free-text comment.
func (c SubmitReviewCommand) Comment() string {
	return c.comment
}

func (c *SubmitReviewCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitReviewCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *SubmitReviewCommand) setRating(rating int) error {
	if rating < review.RatingMin || rating > review.RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, review.RatingMin, review.RatingMax)
	}

	c.rating = rating
	return nil
}
