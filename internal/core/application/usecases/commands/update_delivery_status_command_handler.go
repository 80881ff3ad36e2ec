package commands

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/locker"
)

// UpdateDeliveryStatusCommandHandler handles delivery sub-status updates by
// the assigned driver or an admin. No broadcast event is attached to this
// track; customers observe it through the order view.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
	orderLocks *locker.KeyedMutex
	users      ports.UserDirectory
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery
// sub-status updates.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory UoWFactory,
	orderLocks *locker.KeyedMutex,
	users ports.UserDirectory,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		orderLocks: orderLocks,
		users:      users,
	}
}

// Handle processes the delivery status update.
// Only the assigned driver or an admin may update. The per-order lock is
// taken before the delivery is read, so the update serializes with driver
// reassignment on the same order and authorizes against the current driver.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor, err := h.users.Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	orderID, err := orderIDOfDelivery(ctx, h.uowFactory, cmd.DeliveryID())
	if err != nil {
		return err
	}

	h.orderLocks.Lock(orderID.String())
	defer h.orderLocks.Unlock(orderID.String())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	record, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && !record.DriverID().IsEqual(actor.ID) {
		return errs.NewUnauthorizedError("update delivery status")
	}

	if err = record.UpdateStatus(cmd.Status(), time.Now().UTC()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// orderIDOfDelivery resolves the order owning a delivery with a plain read
// outside any transaction. The delivery to order link never changes, so the
// result stays valid once the per-order lock is held; the delivery itself is
// re-read under the lock.
func orderIDOfDelivery(ctx context.Context, uowFactory UoWFactory, deliveryID kernel.UUID) (kernel.UUID, error) {
	record, err := uowFactory.Create().DeliveryRepository().Get(ctx, deliveryID)
	if err != nil {
		return kernel.UUID{}, err
	}

	return record.OrderID(), nil
}
