package commands

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/locker"
)

// ExpiryReason is stored as the cancellation reason on orders whose payment
// window ran out.
const ExpiryReason = "payment window expired"

// ExpirePendingOrdersCommandHandler sweeps pending orders whose payment
// window ran out and cancels them. Each order is cancelled in its own
// transaction under its own lock, so a failure on one order does not block
// the rest of the sweep.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	orderLocks *locker.KeyedMutex
	publisher  ports.EventPublisher
}

// NewExpirePendingOrdersCommandHandler creates a handler for the payment
// window expiry sweep.
func NewExpirePendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	orderLocks *locker.KeyedMutex,
	publisher ports.EventPublisher,
) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		orderLocks: orderLocks,
		publisher:  publisher,
	}
}

// Handle processes the expiry sweep.
// Lists stale pending orders, then cancels each one individually, publishing
// OrderStatusUpdated per cancelled order. Orders that moved on between the
// listing and the per-order transaction are skipped.
func (h ExpirePendingOrdersCommandHandler) Handle(ctx context.Context, cmd ExpirePendingOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-cmd.TTL())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.OrderRepository().GetAllPendingBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	var sweepErr error
	for _, aggregate := range stale {
		if cancelErr := h.expireOne(ctx, aggregate.ID()); cancelErr != nil {
			sweepErr = errors.Join(sweepErr, cancelErr)
		}
	}

	return sweepErr
}

func (h ExpirePendingOrdersCommandHandler) expireOne(ctx context.Context, orderID kernel.UUID) error {
	h.orderLocks.Lock(orderID.String())
	defer h.orderLocks.Unlock(orderID.String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	// Something else won the race: payment arrived or the customer cancelled.
	if aggregate.Status() != order.Pending {
		return nil
	}

	previous := aggregate.Status()
	if err = aggregate.Cancel(ExpiryReason, time.Now().UTC()); err != nil {
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
