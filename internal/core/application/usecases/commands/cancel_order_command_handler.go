package commands

import (
	"context"
	"time"

	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/locker"
)

// CancelOrderCommandHandler handles customer-initiated cancellations.
// Ownership is checked against the stored order before any mutation, and a
// successful cancellation publishes OrderStatusUpdated after commit.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	orderLocks *locker.KeyedMutex
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	orderLocks *locker.KeyedMutex,
	publisher ports.EventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		orderLocks: orderLocks,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
// Fails with an unauthorized error when the requester does not own the order
// and with an invalid transition error once the order can no longer be
// cancelled.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.orderLocks.Lock(cmd.OrderID().String())
	defer h.orderLocks.Unlock(cmd.OrderID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if !aggregate.CustomerID().IsEqual(cmd.CustomerID()) {
		return errs.NewUnauthorizedError("cancel order")
	}

	previous := aggregate.Status()
	if err = aggregate.Cancel(cmd.Reason(), time.Now().UTC()); err != nil {
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
