package commands

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/events"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/locker"
)

// ConfirmPaymentCommandHandler moves a pending order to Placed once payment
// is confirmed. The OrderPlaced event is constructed from the committed
// aggregate state and published only after the transaction commits.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	orderLocks *locker.KeyedMutex
	publisher  ports.EventPublisher
	users      ports.UserDirectory
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmation.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	orderLocks *locker.KeyedMutex,
	publisher ports.EventPublisher,
	users ports.UserDirectory,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		orderLocks: orderLocks,
		publisher:  publisher,
		users:      users,
	}
}

// Handle processes the payment confirmation command.
// Serializes with other mutations of the same order, verifies the amount
// against the total inside the aggregate and publishes OrderPlaced on success.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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

	err = aggregate.ConfirmPayment(
		kernel.NewUUID(),
		cmd.Method(),
		cmd.TransactionRef(),
		cmd.Amount(),
		cmd.Details(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	customerName := ""
	if customer, lookupErr := h.users.Get(ctx, aggregate.CustomerID()); lookupErr == nil {
		customerName = customer.Name
	}

	h.publisher.Publish(ctx, events.OrderPlaced{
		OrderID:      aggregate.ID(),
		OrderNumber:  aggregate.OrderNumber(),
		CustomerName: customerName,
		Total:        aggregate.Totals().Total.String(),
		Status:       aggregate.Status().String(),
		CreatedAt:    aggregate.CreatedAt(),
		ItemsCount:   len(aggregate.Items()),
		CustomerID:   aggregate.CustomerID(),
	})

	return nil
}
