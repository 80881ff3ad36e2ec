package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/events"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/locker"
)

// AssignDriverCommandHandler attaches a driver to an order, creating the
// delivery record on first assignment and reassigning on subsequent calls.
// DeliveryAssigned is published after commit in both cases.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	orderLocks *locker.KeyedMutex
	publisher  ports.EventPublisher
	users      ports.UserDirectory
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(
	uowFactory UoWFactory,
	orderLocks *locker.KeyedMutex,
	publisher ports.EventPublisher,
	users ports.UserDirectory,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		orderLocks: orderLocks,
		publisher:  publisher,
		users:      users,
	}
}

// Handle processes the driver assignment command.
// Requires an admin actor and a driver-role assignee. Assignment is refused
// once the order reached a terminal status.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor, err := h.users.Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return errs.NewUnauthorizedError("assign driver")
	}

	driver, err := h.users.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}
	if driver.Role != ports.RoleDriver {
		return errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("user %s does not have the driver role", cmd.DriverID()))
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if aggregate.Status().IsTerminal() {
		return errs.NewConflictError("cannot assign a driver to a finished order")
	}

	now := time.Now().UTC()
	deliveryRepo := uow.DeliveryRepository()

	record, err := deliveryRepo.GetByOrderID(ctx, cmd.OrderID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		record, err = delivery.NewDelivery(kernel.NewUUID(), cmd.OrderID(), cmd.DriverID(), now)
		if err != nil {
			return err
		}
		if err = deliveryRepo.Add(ctx, record); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err = record.Reassign(cmd.DriverID(), now); err != nil {
			return err
		}
		if err = deliveryRepo.Update(ctx, record); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.DeliveryAssigned{
		DeliveryID:  record.ID(),
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.OrderNumber(),
		DriverID:    driver.ID,
		DriverName:  driver.Name,
		DriverPhone: driver.Phone,
		Status:      record.Status().String(),
		AssignedAt:  record.AssignedAt(),
		CustomerID:  aggregate.CustomerID(),
	})

	return nil
}
