package http

import (
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
)

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Items               []OrderItemRequest `json:"items"`
	DeliveryAddress     string             `json:"delivery_address"`
	DeliveryLatitude    *float64           `json:"delivery_latitude,omitempty"`
	DeliveryLongitude   *float64           `json:"delivery_longitude,omitempty"`
	CustomerPhone       string             `json:"customer_phone"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
}

// OrderItemRequest is one requested order line. Prices arrive as decimal
// strings; the menu service quotes them and the aggregate snapshots them.
type OrderItemRequest struct {
	PizzaID   string           `json:"pizza_id"`
	BasePrice string           `json:"base_price"`
	Size      string           `json:"size"`
	Crust     string           `json:"crust"`
	Quantity  int              `json:"quantity"`
	Toppings  []ToppingRequest `json:"toppings,omitempty"`
}

// ToppingRequest is one topping selection on an order line.
type ToppingRequest struct {
	ToppingID string `json:"topping_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
}

// ConfirmPaymentRequest is the body of POST /api/v1/orders/:id/payment.
type ConfirmPaymentRequest struct {
	Method         string `json:"method"`
	TransactionRef string `json:"transaction_ref,omitempty"`
	Amount         string `json:"amount"`
	Details        string `json:"details,omitempty"`
}

// UpdateOrderStatusRequest is the body of PATCH /api/v1/admin/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// AssignDriverRequest is the body of POST /api/v1/admin/orders/:id/driver.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

// UpdateDeliveryStatusRequest is the body of PATCH /api/v1/deliveries/:id/status.
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDeliveryLocationRequest is the body of POST /api/v1/deliveries/:id/location.
type UpdateDeliveryLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SubmitReviewRequest is the body of POST /api/v1/orders/:id/review.
type SubmitReviewRequest struct {
	Rating         int    `json:"rating"`
	FoodRating     *int   `json:"food_rating,omitempty"`
	DeliveryRating *int   `json:"delivery_rating,omitempty"`
	Comment        string `json:"comment,omitempty"`
}

// toItemInputs converts request lines into command inputs, validating ids
// and amounts on the way.
func toItemInputs(items []OrderItemRequest) ([]commands.OrderItemInput, error) {
	inputs := make([]commands.OrderItemInput, 0, len(items))
	for _, item := range items {
		pizzaID, err := kernel.UUIDFromString(item.PizzaID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("pizza id", err)
		}

		basePrice, err := kernel.NewMoneyFromString(item.BasePrice)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("base price", err)
		}

		toppings := make([]order.ToppingSelection, 0, len(item.Toppings))
		for _, topping := range item.Toppings {
			toppingID, toppingErr := kernel.UUIDFromString(topping.ToppingID)
			if toppingErr != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause("topping id", toppingErr)
			}
			price, priceErr := kernel.NewMoneyFromString(topping.Price)
			if priceErr != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause("topping price", priceErr)
			}
			toppings = append(toppings, order.ToppingSelection{
				ToppingID: toppingID,
				Name:      topping.Name,
				Price:     price,
			})
		}

		inputs = append(inputs, commands.OrderItemInput{
			PizzaID:   pizzaID,
			BasePrice: basePrice,
			Size:      order.Size(item.Size),
			Crust:     order.Crust(item.Crust),
			Quantity:  item.Quantity,
			Toppings:  toppings,
		})
	}

	return inputs, nil
}
