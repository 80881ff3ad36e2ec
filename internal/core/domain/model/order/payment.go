package order

import (
	"errors"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// PaymentMethod selects how the order was paid.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// Validate checks the PaymentMethod is one of the defined values.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodCash, PaymentMethodCard:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("payment method",
		fmt.Errorf("%q is not a valid payment method", string(m)))
}

// PaymentStatusCompleted is the status stamped on a confirmed payment.
const PaymentStatusCompleted = "completed"

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment records a confirmed payment for an order. Exactly one payment
// exists per order and its amount always equals the order total at
// confirmation time.
type Payment struct {
	id             kernel.UUID
	method         PaymentMethod
	transactionRef string
	amount         kernel.Money
	status         string
	details        string
	paidAt         time.Time

	isConstructed bool
}

// NewPayment creates a completed payment record.
func NewPayment(
	id kernel.UUID,
	method PaymentMethod,
	transactionRef string,
	amount kernel.Money,
	details string,
	paidAt time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		method.Validate(),
	); err != nil {
		return nil, err
	}

	return &Payment{
		id:             id,
		method:         method,
		transactionRef: transactionRef,
		amount:         amount,
		status:         PaymentStatusCompleted,
		details:        details,
		paidAt:         paidAt,
		isConstructed:  true,
	}, nil
}

// RestorePayment reconstructs a payment from persistence.
func RestorePayment(
	id kernel.UUID,
	method PaymentMethod,
	transactionRef string,
	amount kernel.Money,
	status string,
	details string,
	paidAt time.Time,
) (*Payment, error) {
	p, err := NewPayment(id, method, transactionRef, amount, details, paidAt)
	if err != nil {
		return nil, err
	}
	p.status = status
	return p, nil
}

// Validate ensures the payment was created through a constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// Method returns the payment method.
func (p *Payment) Method() PaymentMethod { return p.method }

// TransactionRef returns the external transaction reference, if any.
func (p *Payment) TransactionRef() string { return p.transactionRef }

// Amount returns the paid amount.
func (p *Payment) Amount() kernel.Money { return p.amount }

// Status returns the payment status.
func (p *Payment) Status() string { return p.status }

// Details returns the provider-specific detail blob, if any.
func (p *Payment) Details() string { return p.details }

// PaidAt returns the payment timestamp.
func (p *Payment) PaidAt() time.Time { return p.paidAt }
