package commands

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/events"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/locker"
)

// UpdateDeliveryLocationCommandHandler records driver positions for active
// deliveries. Each successful update publishes DeliveryLocationUpdated after
// commit; the event reaches only the order topic and the owning customer.
type UpdateDeliveryLocationCommandHandler struct {
	uowFactory UoWFactory
	orderLocks *locker.KeyedMutex
	publisher  ports.EventPublisher
	users      ports.UserDirectory
}

// NewUpdateDeliveryLocationCommandHandler creates a handler for driver
// location reports.
func NewUpdateDeliveryLocationCommandHandler(
	uowFactory UoWFactory,
	orderLocks *locker.KeyedMutex,
	publisher ports.EventPublisher,
	users ports.UserDirectory,
) UpdateDeliveryLocationCommandHandler {
	return UpdateDeliveryLocationCommandHandler{
		uowFactory: uowFactory,
		orderLocks: orderLocks,
		publisher:  publisher,
		users:      users,
	}
}

// Handle processes the location report.
// Only the assigned driver or an admin may report; coordinates overwrite the
// previous position. The per-order lock is taken before the delivery is
// read, so the report serializes with driver reassignment on the same order
// and authorizes against the current driver.
func (h UpdateDeliveryLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryLocationCommand) error {
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
		return errs.NewUnauthorizedError("update delivery location")
	}

	aggregate, err := uow.OrderRepository().Get(ctx, record.OrderID())
	if err != nil {
		return err
	}

	if err = record.UpdateLocation(cmd.Location(), time.Now().UTC()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	driverName := ""
	if driver, lookupErr := h.users.Get(ctx, record.DriverID()); lookupErr == nil {
		driverName = driver.Name
	}

	h.publisher.Publish(ctx, events.DeliveryLocationUpdated{
		DeliveryID: record.ID(),
		OrderID:    record.OrderID(),
		Latitude:   cmd.Location().Latitude(),
		Longitude:  cmd.Location().Longitude(),
		Status:     record.Status().String(),
		DriverName: driverName,
		UpdatedAt:  record.UpdatedAt(),
		CustomerID: aggregate.CustomerID(),
	})

	return nil
}
