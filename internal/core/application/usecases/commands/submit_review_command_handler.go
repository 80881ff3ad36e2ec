package commands

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/review"
	"pizzeria/internal/pkg/errs"
)

// SubmitReviewCommandHandler handles review submission for delivered orders.
// The review references the first pizza of the order, matching how the
// storefront surfaces ratings on the menu.
type SubmitReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
}

// NewSubmitReviewCommandHandler creates a handler for review submission.
func NewSubmitReviewCommandHandler(uowFactory ReviewUoWFactory) SubmitReviewCommandHandler {
	return SubmitReviewCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review submission.
// Fails unauthorized when the requester does not own the order, with a
// conflict when the order is not yet delivered or already reviewed.
func (h SubmitReviewCommandHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.CustomerID().IsEqual(cmd.CustomerID()) {
		return errs.NewUnauthorizedError("review order")
	}
	if aggregate.Status() != order.Delivered {
		return errs.NewConflictError("order has not been delivered yet")
	}

	reviewRepo := uow.ReviewRepository()
	_, err = reviewRepo.GetByOrderID(ctx, cmd.OrderID())
	if err == nil {
		return errs.NewConflictError("order already has a review")
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	record, err := review.NewReview(
		kernel.NewUUID(),
		cmd.OrderID(),
		cmd.CustomerID(),
		aggregate.FirstPizzaID(),
		cmd.Rating(),
		cmd.FoodRating(),
		cmd.DeliveryRating(),
		cmd.Comment(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = reviewRepo.Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
