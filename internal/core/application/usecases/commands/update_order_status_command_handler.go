package commands

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/events"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/locker"
)

// UpdateOrderStatusCommandHandler applies admin-driven order transitions.
// A successful transition publishes OrderStatusUpdated after commit, carrying
// the previous status, the new progress percentage and the delivery estimate.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	orderLocks *locker.KeyedMutex
	publisher  ports.EventPublisher
	users      ports.UserDirectory
}

// NewUpdateOrderStatusCommandHandler creates a handler for order transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	orderLocks *locker.KeyedMutex,
	publisher ports.EventPublisher,
	users ports.UserDirectory,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		orderLocks: orderLocks,
		publisher:  publisher,
		users:      users,
	}
}

// Handle processes the status update command.
// Requires the actor to be an admin, serializes with other mutations of the
// same order and leaves the order untouched on any failed transition.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor, err := h.users.Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return errs.NewUnauthorizedError("update order status")
	}

	h.orderLocks.Lock(cmd.OrderID().String())
	defer h.orderLocks.Unlock(cmd.OrderID().String())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	previous := aggregate.Status()
	if err = aggregate.UpdateStatus(cmd.Status(), cmd.Reason(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, newOrderStatusUpdated(aggregate, previous))
	return nil
}

// newOrderStatusUpdated builds the OrderStatusUpdated payload from committed
// aggregate state. Shared by the admin transition, cancellation and the
// payment-window expiry job.
func newOrderStatusUpdated(aggregate *order.Order, previous order.Status) events.OrderStatusUpdated {
	return events.OrderStatusUpdated{
		OrderID:               aggregate.ID(),
		OrderNumber:           aggregate.OrderNumber(),
		Status:                aggregate.Status().String(),
		PreviousStatus:        previous.String(),
		StatusLabel:           aggregate.Status().Label(),
		ProgressPercentage:    aggregate.ProgressPercentage(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		UpdatedAt:             aggregate.UpdatedAt(),
		CustomerID:            aggregate.CustomerID(),
	}
}
