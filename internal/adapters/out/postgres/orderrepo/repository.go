package orderrepo

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items, topping snapshots and, if already
// present, the payment record.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	for _, item := range aggregate.Items() {
		itemDTO := itemFromDomain(aggregate.ID(), item)
		if err := r.db.WithContext(ctx).Create(&itemDTO).Error; err != nil {
			return err
		}

		if toppings := toppingsFromDomain(item.ID(), item.Toppings()); len(toppings) > 0 {
			if err := r.db.WithContext(ctx).Create(&toppings).Error; err != nil {
				return err
			}
		}
	}

	if payment := aggregate.Payment(); payment != nil {
		paymentDTO := paymentFromDomain(aggregate.ID(), payment)
		if err := r.db.WithContext(ctx).Create(&paymentDTO).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Items are immutable price
// snapshots and are never rewritten; the payment row is inserted the first
// time it appears on the aggregate.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select(
			"status",
			"estimated_delivery_time",
			"accepted_at",
			"delivered_at",
			"rejection_reason",
			"updated_at",
		).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if payment := aggregate.Payment(); payment != nil {
		var count int64
		err := r.db.WithContext(ctx).
			Model(&PaymentDTO{}).
			Where("order_id = ?", dto.ID).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count == 0 {
			paymentDTO := paymentFromDomain(aggregate.ID(), payment)
			if err = r.db.WithContext(ctx).Create(&paymentDTO).Error; err != nil {
				return err
			}
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID, including its items and payment.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetAllPendingBefore retrieves orders still pending payment that were
// created before the cutoff. Feeds the payment-window expiry sweep.
func (r *GormOrderRepository) GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", order.Pending.String(), cutoff).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, loadErr := r.load(ctx, dto)
		if loadErr != nil {
			return nil, loadErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

// load fetches the child rows for an order row and assembles the aggregate.
func (r *GormOrderRepository) load(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	var itemDTOs []ItemDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("created_at").
		Find(&itemDTOs).Error
	if err != nil {
		return nil, err
	}

	toppingDTOs := make(map[uuid.UUID][]ToppingDTO)
	if len(itemDTOs) > 0 {
		itemIDs := make([]uuid.UUID, 0, len(itemDTOs))
		for _, itemDTO := range itemDTOs {
			itemIDs = append(itemIDs, itemDTO.ID)
		}

		var rows []ToppingDTO
		err = r.db.WithContext(ctx).
			Where("order_item_id IN ?", itemIDs).
			Order("name").
			Find(&rows).Error
		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			toppingDTOs[row.OrderItemID] = append(toppingDTOs[row.OrderItemID], row)
		}
	}

	var paymentDTO *PaymentDTO
	var paymentRow PaymentDTO
	err = r.db.WithContext(ctx).First(&paymentRow, "order_id = ?", dto.ID).Error
	switch {
	case err == nil:
		paymentDTO = &paymentRow
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, err
	}

	return toDomain(dto, itemDTOs, toppingDTOs, paymentDTO)
}
