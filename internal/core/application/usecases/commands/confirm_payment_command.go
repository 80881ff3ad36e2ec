package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
)

// ConfirmPaymentCommand represents a payment confirmation for a pending
// order. The confirmed amount must equal the order total exactly; the
// comparison happens inside the order aggregate.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	method         order.PaymentMethod
	transactionRef string
	amount         kernel.Money
	details        string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to confirm payment for an order.
// Validates the order ID and payment method; the amount check against the
// order total is deferred to the aggregate.
func NewConfirmPaymentCommand(
	orderID kernel.UUID,
	method order.PaymentMethod,
	transactionRef string,
	amount kernel.Money,
	details string,
) (ConfirmPaymentCommand, error) {
	command := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setMethod(method),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	command.transactionRef = transactionRef
	command.amount = amount
	command.details = details
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmPaymentCommandIsNotConstructed if validation fails.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the order being paid.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Method returns the payment method.
func (c ConfirmPaymentCommand) Method() order.PaymentMethod {
	return c.method
}

// TransactionRef returns the external transaction reference, if any.
func (c ConfirmPaymentCommand) TransactionRef() string {
	return c.transactionRef
}

// Amount returns the confirmed amount.
func (c ConfirmPaymentCommand) Amount() kernel.Money {
	return c.amount
}

// Details returns the provider-specific detail blob, if any.
func (c ConfirmPaymentCommand) Details() string {
	return c.details
}

func (c *ConfirmPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmPaymentCommand) setMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.method = method
	return nil
}
