package http

import (
	"time"

	"pizzeria/internal/core/application/usecases/queries"
)

// OrderResponse is the full order view returned by GET /api/v1/orders/:id.
type OrderResponse struct {
	ID                    string              `json:"id"`
	OrderNumber           string              `json:"order_number"`
	CustomerID            string              `json:"customer_id"`
	Status                string              `json:"status"`
	StatusLabel           string              `json:"status_label"`
	StatusColor           string              `json:"status_color"`
	ProgressPercentage    int                 `json:"progress_percentage"`
	Subtotal              string              `json:"subtotal"`
	Tax                   string              `json:"tax"`
	DeliveryFee           string              `json:"delivery_fee"`
	Total                 string              `json:"total"`
	DeliveryAddress       string              `json:"delivery_address"`
	CustomerPhone         string              `json:"customer_phone"`
	SpecialInstructions   string              `json:"special_instructions,omitempty"`
	EstimatedDeliveryTime *time.Time          `json:"estimated_delivery_time,omitempty"`
	AcceptedAt            *time.Time          `json:"accepted_at,omitempty"`
	DeliveredAt           *time.Time          `json:"delivered_at,omitempty"`
	RejectionReason       string              `json:"rejection_reason,omitempty"`
	CanBeCancelled        bool                `json:"can_be_cancelled"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
	Items                 []OrderItemResponse `json:"items"`
	Payment               *PaymentResponse    `json:"payment,omitempty"`
	Delivery              *DeliveryResponse   `json:"delivery,omitempty"`
	Review                *ReviewResponse     `json:"review,omitempty"`
}

// OrderItemResponse is one order line in the order view.
type OrderItemResponse struct {
	ID            string            `json:"id"`
	PizzaID       string            `json:"pizza_id"`
	Quantity      int               `json:"quantity"`
	Size          string            `json:"size"`
	Crust         string            `json:"crust"`
	BasePrice     string            `json:"base_price"`
	SizePrice     string            `json:"size_price"`
	CrustPrice    string            `json:"crust_price"`
	ToppingsPrice string            `json:"toppings_price"`
	ItemTotal     string            `json:"item_total"`
	Toppings      []ToppingResponse `json:"toppings"`
}

// ToppingResponse is one topping snapshot in the order view.
type ToppingResponse struct {
	ToppingID string `json:"topping_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
}

// PaymentResponse is the payment record in the order view.
type PaymentResponse struct {
	ID             string    `json:"id"`
	Method         string    `json:"method"`
	TransactionRef string    `json:"transaction_ref,omitempty"`
	Amount         string    `json:"amount"`
	Status         string    `json:"status"`
	PaidAt         time.Time `json:"paid_at"`
}

// DeliveryResponse is the delivery record in the order view.
type DeliveryResponse struct {
	ID          string     `json:"id"`
	DriverID    string     `json:"driver_id"`
	Status      string     `json:"status"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	AssignedAt  time.Time  `json:"assigned_at"`
	PickedUpAt  *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// ReviewResponse is the review record in the order view.
type ReviewResponse struct {
	ID             string    `json:"id"`
	Rating         int       `json:"rating"`
	FoodRating     *int      `json:"food_rating,omitempty"`
	DeliveryRating *int      `json:"delivery_rating,omitempty"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ActiveOrderResponse is one row of GET /api/v1/admin/orders/active.
type ActiveOrderResponse struct {
	ID                    string     `json:"id"`
	OrderNumber           string     `json:"order_number"`
	CustomerID            string     `json:"customer_id"`
	Status                string     `json:"status"`
	StatusLabel           string     `json:"status_label"`
	StatusColor           string     `json:"status_color"`
	ProgressPercentage    int        `json:"progress_percentage"`
	Total                 string     `json:"total"`
	DeliveryAddress       string     `json:"delivery_address"`
	ItemCount             int        `json:"item_count"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

// CreatedResponse returns the id of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

func toOrderResponse(view queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		toppings := make([]ToppingResponse, 0, len(item.Toppings))
		for _, topping := range item.Toppings {
			toppings = append(toppings, ToppingResponse{
				ToppingID: topping.ToppingID.String(),
				Name:      topping.Name,
				Price:     topping.Price,
			})
		}
		items = append(items, OrderItemResponse{
			ID:            item.ID.String(),
			PizzaID:       item.PizzaID.String(),
			Quantity:      item.Quantity,
			Size:          item.Size,
			Crust:         item.Crust,
			BasePrice:     item.BasePrice,
			SizePrice:     item.SizePrice,
			CrustPrice:    item.CrustPrice,
			ToppingsPrice: item.ToppingsPrice,
			ItemTotal:     item.ItemTotal,
			Toppings:      toppings,
		})
	}

	response := OrderResponse{
		ID:                    view.ID.String(),
		OrderNumber:           view.OrderNumber,
		CustomerID:            view.CustomerID.String(),
		Status:                view.Status,
		StatusLabel:           view.StatusLabel,
		StatusColor:           view.StatusColor,
		ProgressPercentage:    view.ProgressPercentage,
		Subtotal:              view.Subtotal,
		Tax:                   view.Tax,
		DeliveryFee:           view.DeliveryFee,
		Total:                 view.Total,
		DeliveryAddress:       view.DeliveryAddress,
		CustomerPhone:         view.CustomerPhone,
		SpecialInstructions:   view.SpecialInstructions,
		EstimatedDeliveryTime: view.EstimatedDeliveryTime,
		AcceptedAt:            view.AcceptedAt,
		DeliveredAt:           view.DeliveredAt,
		RejectionReason:       view.RejectionReason,
		CanBeCancelled:        view.CanBeCancelled,
		CreatedAt:             view.CreatedAt,
		UpdatedAt:             view.UpdatedAt,
		Items:                 items,
	}

	if view.Payment != nil {
		response.Payment = &PaymentResponse{
			ID:             view.Payment.ID.String(),
			Method:         view.Payment.Method,
			TransactionRef: view.Payment.TransactionRef,
			Amount:         view.Payment.Amount,
			Status:         view.Payment.Status,
			PaidAt:         view.Payment.PaidAt,
		}
	}
	if view.Delivery != nil {
		response.Delivery = &DeliveryResponse{
			ID:          view.Delivery.ID.String(),
			DriverID:    view.Delivery.DriverID.String(),
			Status:      view.Delivery.Status,
			Latitude:    view.Delivery.Latitude,
			Longitude:   view.Delivery.Longitude,
			AssignedAt:  view.Delivery.AssignedAt,
			PickedUpAt:  view.Delivery.PickedUpAt,
			DeliveredAt: view.Delivery.DeliveredAt,
		}
	}
	if view.Review != nil {
		response.Review = &ReviewResponse{
			ID:             view.Review.ID.String(),
			Rating:         view.Review.Rating,
			FoodRating:     view.Review.FoodRating,
			DeliveryRating: view.Review.DeliveryRating,
			Comment:        view.Review.Comment,
			CreatedAt:      view.Review.CreatedAt,
		}
	}

	return response
}

func toActiveOrderResponses(rows []queries.GetActiveOrdersQueryResponse) []ActiveOrderResponse {
	responses := make([]ActiveOrderResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, ActiveOrderResponse{
			ID:                    row.ID.String(),
			OrderNumber:           row.OrderNumber,
			CustomerID:            row.CustomerID.String(),
			Status:                row.Status,
			StatusLabel:           row.StatusLabel,
			StatusColor:           row.StatusColor,
			ProgressPercentage:    row.ProgressPercentage,
			Total:                 row.Total,
			DeliveryAddress:       row.DeliveryAddress,
			ItemCount:             row.ItemCount,
			EstimatedDeliveryTime: row.EstimatedDeliveryTime,
			CreatedAt:             row.CreatedAt,
		})
	}
	return responses
}
