// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence.
package deliveryrepo

import (
	"time"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// records. One delivery per order; reassignment rewrites the same row.
type DeliveryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DriverID    uuid.UUID `gorm:"type:uuid;index"`
	Status      string
	Latitude    *float64
	Longitude   *float64
	AssignedAt  time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery record to its database representation.
func fromDomain(record *delivery.Delivery) DeliveryDTO {
	var latitude, longitude *float64
	if point := record.CurrentLocation(); point != nil {
		lat, lon := point.Latitude(), point.Longitude()
		latitude, longitude = &lat, &lon
	}

	return DeliveryDTO{
		ID:          record.ID().Bytes(),
		OrderID:     record.OrderID().Bytes(),
		DriverID:    record.DriverID().Bytes(),
		Status:      record.Status().String(),
		Latitude:    latitude,
		Longitude:   longitude,
		AssignedAt:  record.AssignedAt(),
		PickedUpAt:  record.PickedUpAt(),
		DeliveredAt: record.DeliveredAt(),
		UpdatedAt:   record.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a delivery record using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	var currentLocation *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		currentLocation = &point
	}

	return delivery.RestoreDelivery(
		id,
		orderID,
		driverID,
		delivery.Status(dto.Status),
		currentLocation,
		dto.AssignedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		dto.UpdatedAt,
	)
}
