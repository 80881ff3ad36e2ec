package queries

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves all in-flight orders for the
// kitchen board. Uses direct SQL queries for optimal read performance in
// the CQRS pattern.
type GetActiveOrdersQueryHandler struct {
	db    *gorm.DB
	users ports.UserDirectory
}

// NewGetActiveOrdersQueryHandler creates a handler for active-order
// listing. Requires a GORM database connection and the user directory for
// the admin check.
func NewGetActiveOrdersQueryHandler(
	db *gorm.DB,
	users ports.UserDirectory,
) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db, users: users}
}

// Handle executes the query to retrieve all non-terminal orders, newest
// first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor, err := h.users.Get(ctx, query.ActorID())
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, errs.NewUnauthorizedError("list active orders")
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.customer_id,
			o.status,
			o.total,
			o.delivery_address,
			o.estimated_delivery_time,
			o.created_at,
			COUNT(i.id)
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.status NOT IN ('delivered', 'cancelled', 'rejected')
			AND o.deleted_at IS NULL
		GROUP BY o.id
		ORDER BY o.created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetActiveOrdersQueryResponse
		var id, customerID uuid.UUID

		err = rows.Scan(
			&id,
			&row.OrderNumber,
			&customerID,
			&row.Status,
			&row.Total,
			&row.DeliveryAddress,
			&row.EstimatedDeliveryTime,
			&row.CreatedAt,
			&row.ItemCount,
		)
		if err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if row.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}

		status := order.Status(row.Status)
		row.StatusLabel = status.Label()
		row.StatusColor = status.Color()
		row.ProgressPercentage = status.ProgressPercentage()
		orders = append(orders, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
