package postgres

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormOrderOwnership answers whether a user placed a given order. It backs
// topic authorization for the broadcast hub, so lookups bypass the unit of
// work and read committed state directly.
type GormOrderOwnership struct {
	db *gorm.DB
}

// NewGormOrderOwnership creates an ownership lookup over the orders table.
func NewGormOrderOwnership(db *gorm.DB) *GormOrderOwnership {
	return &GormOrderOwnership{db: db}
}

// IsOwner reports whether the order exists and belongs to the user.
// A missing order is not an error; it simply is not owned.
func (o *GormOrderOwnership) IsOwner(ctx context.Context, orderID, userID kernel.UUID) (bool, error) {
	var count int64
	result := o.db.WithContext(ctx).
		Table("orders").
		Where("id = ? AND customer_id = ? AND deleted_at IS NULL", orderID.Bytes(), userID.Bytes()).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
