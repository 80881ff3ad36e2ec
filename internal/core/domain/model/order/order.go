package order

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// EstimatedDeliveryWindow is added to the acceptance time to produce the
// estimated delivery timestamp.
const EstimatedDeliveryWindow = 30 * time.Minute

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a customer's checkout transaction. It owns
// the lifecycle state machine, the monetary breakdown, the immutable item
// lines and the one-to-one payment record.
//
// Invariants:
//   - Total always equals Subtotal + Tax + DeliveryFee, recomputed from the
//     items at creation, never set independently
//   - Status changes follow the transition table in Status; a failed
//     transition leaves the aggregate untouched
//   - Items are immutable after creation
//   - A payment exists if and only if the order has progressed past Pending
type Order struct {
	id                  kernel.UUID
	orderNumber         string
	customerID          kernel.UUID
	status              Status
	totals              Totals
	deliveryAddress     string
	deliveryLocation    *kernel.GeoPoint
	customerPhone       string
	specialInstructions string
	estimatedDelivery   *time.Time
	acceptedAt          *time.Time
	deliveredAt         *time.Time
	rejectionReason     string
	items               []*Item
	payment             *Payment
	createdAt           time.Time
	updatedAt           time.Time

	isConstructed bool
}

// NewOrder creates a Pending order with totals computed from the item lines
// and a freshly generated order number.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []*Item,
	deliveryAddress string,
	deliveryLocation *kernel.GeoPoint,
	customerPhone string,
	specialInstructions string,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if deliveryAddress == "" {
		return nil, errs.NewValueIsRequiredError("delivery address")
	}
	if customerPhone == "" {
		return nil, errs.NewValueIsRequiredError("customer phone")
	}
	if deliveryLocation != nil {
		if err := deliveryLocation.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:                  id,
		orderNumber:         generateOrderNumber(),
		customerID:          customerID,
		status:              Pending,
		totals:              CalculateTotals(items),
		deliveryAddress:     deliveryAddress,
		deliveryLocation:    deliveryLocation,
		customerPhone:       customerPhone,
		specialInstructions: specialInstructions,
		items:               append([]*Item(nil), items...),
		createdAt:           now,
		updatedAt:           now,
		isConstructed:       true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence. Totals and timestamps
// are taken as stored; no side effects are replayed.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	status Status,
	totals Totals,
	deliveryAddress string,
	deliveryLocation *kernel.GeoPoint,
	customerPhone string,
	specialInstructions string,
	estimatedDelivery *time.Time,
	acceptedAt *time.Time,
	deliveredAt *time.Time,
	rejectionReason string,
	items []*Item,
	payment *Payment,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}

	return &Order{
		id:                  id,
		orderNumber:         orderNumber,
		customerID:          customerID,
		status:              status,
		totals:              totals,
		deliveryAddress:     deliveryAddress,
		deliveryLocation:    deliveryLocation,
		customerPhone:       customerPhone,
		specialInstructions: specialInstructions,
		estimatedDelivery:   estimatedDelivery,
		acceptedAt:          acceptedAt,
		deliveredAt:         deliveredAt,
		rejectionReason:     rejectionReason,
		items:               append([]*Item(nil), items...),
		payment:             payment,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		isConstructed:       true,
	}, nil
}

// Validate ensures the order was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the human-readable order number, e.g. "ORD-6890F2A41B3C7".
func (o *Order) OrderNumber() string { return o.orderNumber }

// CustomerID returns the owning customer.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Totals returns the monetary breakdown.
func (o *Order) Totals() Totals { return o.totals }

// DeliveryAddress returns the delivery address.
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }

// DeliveryLocation returns the optional delivery coordinates.
func (o *Order) DeliveryLocation() *kernel.GeoPoint { return o.deliveryLocation }

// CustomerPhone returns the contact phone.
func (o *Order) CustomerPhone() string { return o.customerPhone }

// SpecialInstructions returns the optional special instructions.
func (o *Order) SpecialInstructions() string { return o.specialInstructions }

// EstimatedDeliveryTime returns the estimate set on acceptance, nil before.
func (o *Order) EstimatedDeliveryTime() *time.Time { return o.estimatedDelivery }

// AcceptedAt returns the acceptance timestamp, nil before acceptance.
func (o *Order) AcceptedAt() *time.Time { return o.acceptedAt }

// DeliveredAt returns the delivery timestamp, nil before delivery.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// RejectionReason returns the stored rejection or cancellation reason.
func (o *Order) RejectionReason() string { return o.rejectionReason }

// Items returns a copy of the order lines.
func (o *Order) Items() []*Item { return append([]*Item(nil), o.items...) }

// Payment returns the payment record, nil until payment is confirmed.
func (o *Order) Payment() *Payment { return o.payment }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// FirstPizzaID returns the pizza referenced by the first order line.
// Reviews attach to this pizza.
func (o *Order) FirstPizzaID() kernel.UUID {
	return o.items[0].PizzaID()
}

// ProgressPercentage reports how far the order is along the success path.
func (o *Order) ProgressPercentage() int {
	return o.status.ProgressPercentage()
}

// CanBeCancelled reports whether the customer may still cancel: only while
// the order is Pending or Placed.
func (o *Order) CanBeCancelled() bool {
	return o.status == Pending || o.status == Placed
}

// ConfirmPayment records the payment and moves the order from Pending to
// Placed. The confirmed amount must equal the order total exactly.
// Confirming an order that already has a payment is a conflict and does not
// create a second payment record.
func (o *Order) ConfirmPayment(
	paymentID kernel.UUID,
	method PaymentMethod,
	transactionRef string,
	amount kernel.Money,
	details string,
	now time.Time,
) error {
	if o.payment != nil {
		return errs.NewConflictError("order already has a confirmed payment")
	}
	if o.status != Pending {
		return errs.NewInvalidTransitionErrorWithCause(string(o.status), string(Placed),
			fmt.Errorf("payment can only be confirmed for a pending order"))
	}
	if !amount.IsEqual(o.totals.Total) {
		return errs.NewPaymentMismatchError(o.totals.Total.String(), amount.String())
	}

	payment, err := NewPayment(paymentID, method, transactionRef, amount, details, now)
	if err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(Placed)
	if err != nil {
		return err
	}

	o.payment = payment
	o.status = newStatus
	o.updatedAt = now
	return nil
}

// UpdateStatus applies an admin-driven transition. Placed is reachable only
// through ConfirmPayment and Cancelled only through Cancel, so both are
// rejected here even though the table allows them. Rejection requires a
// non-empty reason. Side effects per target:
//   - Accepted: stamps acceptedAt and the estimated delivery time
//   - Delivered: stamps deliveredAt
//   - Rejected: stores the reason
func (o *Order) UpdateStatus(target Status, reason string, now time.Time) error {
	if target == Placed {
		return errs.NewInvalidTransitionErrorWithCause(string(o.status), string(target),
			fmt.Errorf("orders are placed through payment confirmation"))
	}
	if target == Cancelled {
		return errs.NewInvalidTransitionErrorWithCause(string(o.status), string(target),
			fmt.Errorf("cancellation is customer-initiated"))
	}
	if target == Rejected && strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	switch newStatus {
	case Accepted:
		acceptedAt := now
		estimate := now.Add(EstimatedDeliveryWindow)
		o.acceptedAt = &acceptedAt
		o.estimatedDelivery = &estimate
	case Delivered:
		deliveredAt := now
		o.deliveredAt = &deliveredAt
	case Rejected:
		o.rejectionReason = reason
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Cancel moves the order to Cancelled with an optional reason. Allowed only
// while CanBeCancelled holds.
func (o *Order) Cancel(reason string, now time.Time) error {
	if !o.CanBeCancelled() {
		return errs.NewInvalidTransitionErrorWithCause(string(o.status), string(Cancelled),
			fmt.Errorf("order can no longer be cancelled"))
	}

	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.rejectionReason = reason
	o.updatedAt = now
	return nil
}

const orderNumberAlphabet = "0123456789ABCDEF"

// generateOrderNumber produces "ORD-" followed by 13 uppercase hex characters.
func generateOrderNumber() string {
	var b strings.Builder
	b.WriteString("ORD-")
	for i := 0; i < 13; i++ {
		b.WriteByte(orderNumberAlphabet[rand.Intn(len(orderNumberAlphabet))])
	}
	return b.String()
}
