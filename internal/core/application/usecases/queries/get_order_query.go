// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves the full view of a single order: items, payment,
// delivery and review. Only the owning customer or an admin may view an
// order; the check runs against the stored customer id.
type GetOrderQuery struct {
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order on behalf of an
// actor.
func NewGetOrderQuery(orderID, actorID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ActorID returns the identity requesting the view.
func (q GetOrderQuery) ActorID() kernel.UUID {
	return q.actorID
}

// OrderItemView is one order line in the read model.
type OrderItemView struct {
	ID            kernel.UUID
	PizzaID       kernel.UUID
	Quantity      int
	Size          string
	Crust         string
	BasePrice     string
	SizePrice     string
	CrustPrice    string
	ToppingsPrice string
	ItemTotal     string
	Toppings      []ToppingView
}

// ToppingView is one topping snapshot in the read model.
type ToppingView struct {
	ToppingID kernel.UUID
	Name      string
	Price     string
}

// PaymentView is the payment record in the read model.
type PaymentView struct {
	ID             kernel.UUID
	Method         string
	TransactionRef string
	Amount         string
	Status         string
	PaidAt         time.Time
}

// DeliveryView is the delivery record in the read model.
type DeliveryView struct {
	ID          kernel.UUID
	DriverID    kernel.UUID
	Status      string
	Latitude    *float64
	Longitude   *float64
	AssignedAt  time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
}

// ReviewView is the review record in the read model.
type ReviewView struct {
	ID             kernel.UUID
	Rating         int
	FoodRating     *int
	DeliveryRating *int
	Comment        string
	CreatedAt      time.Time
}

// GetOrderQueryResponse is the full order view assembled for the storefront
// and the admin dashboard.
type GetOrderQueryResponse struct {
	ID                    kernel.UUID
	OrderNumber           string
	CustomerID            kernel.UUID
	Status                string
	StatusLabel           string
	StatusColor           string
	ProgressPercentage    int
	Subtotal              string
	Tax                   string
	DeliveryFee           string
	Total                 string
	DeliveryAddress       string
	CustomerPhone         string
	SpecialInstructions   string
	EstimatedDeliveryTime *time.Time
	AcceptedAt            *time.Time
	DeliveredAt           *time.Time
	RejectionReason       string
	CanBeCancelled        bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Items                 []OrderItemView
	Payment               *PaymentView
	Delivery              *DeliveryView
	Review                *ReviewView
}
