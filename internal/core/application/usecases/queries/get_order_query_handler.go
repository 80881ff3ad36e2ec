package queries

import (
	"context"
	"database/sql"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler assembles the full order view from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db, users)
//	query, err := NewGetOrderQuery(orderID, actorID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Order %s is %s\n", view.OrderNumber, view.StatusLabel)
type GetOrderQueryHandler struct {
	db    *gorm.DB
	users ports.UserDirectory
}

// NewGetOrderQueryHandler creates a handler for single-order retrieval.
// Requires a GORM database connection and the user directory for the
// owner-or-admin check.
func NewGetOrderQueryHandler(db *gorm.DB, users ports.UserDirectory) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, users: users}
}

// Handle executes the query and returns the assembled order view.
// Customers may only view their own orders; admins may view any order.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if !response.CustomerID.IsEqual(query.ActorID()) {
		actor, dirErr := h.users.Get(ctx, query.ActorID())
		if dirErr != nil {
			return GetOrderQueryResponse{}, dirErr
		}
		if !actor.IsAdmin() {
			return GetOrderQueryResponse{}, errs.NewUnauthorizedError("view order")
		}
	}

	if err = h.loadItems(ctx, &response); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = h.loadPayment(ctx, &response); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = h.loadDelivery(ctx, &response); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = h.loadReview(ctx, &response); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) loadOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			status,
			subtotal,
			tax,
			delivery_fee,
			total,
			delivery_address,
			customer_phone,
			special_instructions,
			estimated_delivery_time,
			accepted_at,
			delivered_at,
			rejection_reason,
			created_at,
			updated_at
		FROM orders
		WHERE id = ? AND deleted_at IS NULL
	`, orderID.Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID)
	}

	var response GetOrderQueryResponse
	var id, customerID uuid.UUID
	var instructions, rejectionReason sql.NullString

	err = rows.Scan(
		&id,
		&response.OrderNumber,
		&customerID,
		&response.Status,
		&response.Subtotal,
		&response.Tax,
		&response.DeliveryFee,
		&response.Total,
		&response.DeliveryAddress,
		&response.CustomerPhone,
		&instructions,
		&response.EstimatedDeliveryTime,
		&response.AcceptedAt,
		&response.DeliveredAt,
		&rejectionReason,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.SpecialInstructions = instructions.String
	response.RejectionReason = rejectionReason.String

	status := order.Status(response.Status)
	response.StatusLabel = status.Label()
	response.StatusColor = status.Color()
	response.ProgressPercentage = status.ProgressPercentage()
	response.CanBeCancelled = status == order.Pending || status == order.Placed

	return response, rows.Err()
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	response *GetOrderQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			pizza_id,
			quantity,
			size,
			crust,
			base_price,
			size_price,
			crust_price,
			toppings_price,
			item_total
		FROM order_items
		WHERE order_id = ?
		ORDER BY created_at
	`, response.ID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var item OrderItemView
		var id, pizzaID uuid.UUID

		err = rows.Scan(
			&id,
			&pizzaID,
			&item.Quantity,
			&item.Size,
			&item.Crust,
			&item.BasePrice,
			&item.SizePrice,
			&item.CrustPrice,
			&item.ToppingsPrice,
			&item.ItemTotal,
		)
		if err != nil {
			return err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return err
		}
		if item.PizzaID, err = kernel.UUIDFromBytes(pizzaID[:]); err != nil {
			return err
		}
		if item.Toppings, err = h.loadToppings(ctx, item.ID); err != nil {
			return err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	response.Items = items
	return nil
}

func (h GetOrderQueryHandler) loadToppings(
	ctx context.Context,
	itemID kernel.UUID,
) ([]ToppingView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			topping_id,
			name,
			price
		FROM order_item_toppings
		WHERE order_item_id = ?
		ORDER BY name
	`, itemID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	toppings := make([]ToppingView, 0)
	for rows.Next() {
		var topping ToppingView
		var toppingID uuid.UUID

		if err = rows.Scan(&toppingID, &topping.Name, &topping.Price); err != nil {
			return nil, err
		}
		if topping.ToppingID, err = kernel.UUIDFromBytes(toppingID[:]); err != nil {
			return nil, err
		}
		toppings = append(toppings, topping)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return toppings, nil
}

func (h GetOrderQueryHandler) loadPayment(
	ctx context.Context,
	response *GetOrderQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			method,
			transaction_ref,
			amount,
			status,
			paid_at
		FROM payments
		WHERE order_id = ?
	`, response.ID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		return rows.Err()
	}

	var payment PaymentView
	var id uuid.UUID

	err = rows.Scan(
		&id,
		&payment.Method,
		&payment.TransactionRef,
		&payment.Amount,
		&payment.Status,
		&payment.PaidAt,
	)
	if err != nil {
		return err
	}
	if payment.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return err
	}

	response.Payment = &payment
	return rows.Err()
}

func (h GetOrderQueryHandler) loadDelivery(
	ctx context.Context,
	response *GetOrderQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			driver_id,
			status,
			latitude,
			longitude,
			assigned_at,
			picked_up_at,
			delivered_at
		FROM deliveries
		WHERE order_id = ?
	`, response.ID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		return rows.Err()
	}

	var record DeliveryView
	var id, driverID uuid.UUID

	err = rows.Scan(
		&id,
		&driverID,
		&record.Status,
		&record.Latitude,
		&record.Longitude,
		&record.AssignedAt,
		&record.PickedUpAt,
		&record.DeliveredAt,
	)
	if err != nil {
		return err
	}
	if record.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return err
	}
	if record.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return err
	}

	response.Delivery = &record
	return rows.Err()
}

func (h GetOrderQueryHandler) loadReview(
	ctx context.Context,
	response *GetOrderQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			rating,
			food_rating,
			delivery_rating,
			comment,
			created_at
		FROM reviews
		WHERE order_id = ?
	`, response.ID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		return rows.Err()
	}

	var record ReviewView
	var id uuid.UUID
	var comment sql.NullString

	err = rows.Scan(
		&id,
		&record.Rating,
		&record.FoodRating,
		&record.DeliveryRating,
		&comment,
		&record.CreatedAt,
	)
	if err != nil {
		return err
	}
	if record.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return err
	}
	record.Comment = comment.String

	response.Review = &record
	return rows.Err()
}
