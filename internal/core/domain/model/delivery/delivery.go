package delivery

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery or RestoreDelivery factory functions.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// Delivery is the aggregate for an order's delivery record: the assigned
// driver, the delivery sub-status track and the last reported coordinates.
// It exists only once a driver has been assigned.
//
// Location updates overwrite the current coordinates without touching any
// other field; no plausibility checks are applied to successive coordinates.
type Delivery struct {
	id              kernel.UUID
	orderID         kernel.UUID
	driverID        kernel.UUID
	status          Status
	currentLocation *kernel.GeoPoint
	assignedAt      time.Time
	pickedUpAt      *time.Time
	deliveredAt     *time.Time
	updatedAt       time.Time

	isConstructed bool
}

// NewDelivery creates a delivery record for the order with the given driver,
// in Assigned status with the assignment timestamp stamped.
func NewDelivery(id, orderID, driverID kernel.UUID, now time.Time) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		driverID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:            id,
		orderID:       orderID,
		driverID:      driverID,
		status:        StatusAssigned,
		assignedAt:    now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistence.
func RestoreDelivery(
	id, orderID, driverID kernel.UUID,
	status Status,
	currentLocation *kernel.GeoPoint,
	assignedAt time.Time,
	pickedUpAt, deliveredAt *time.Time,
	updatedAt time.Time,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		driverID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:              id,
		orderID:         orderID,
		driverID:        driverID,
		status:          status,
		currentLocation: currentLocation,
		assignedAt:      assignedAt,
		pickedUpAt:      pickedUpAt,
		deliveredAt:     deliveredAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the delivery was created through a factory function.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// OrderID returns the order this delivery belongs to.
func (d *Delivery) OrderID() kernel.UUID { return d.orderID }

// DriverID returns the currently assigned driver.
func (d *Delivery) DriverID() kernel.UUID { return d.driverID }

// Status returns the delivery sub-status.
func (d *Delivery) Status() Status { return d.status }

// CurrentLocation returns the last reported coordinates, nil before the
// first location update.
func (d *Delivery) CurrentLocation() *kernel.GeoPoint { return d.currentLocation }

// AssignedAt returns the most recent assignment timestamp.
func (d *Delivery) AssignedAt() time.Time { return d.assignedAt }

// PickedUpAt returns the pick-up timestamp, nil until picked up.
func (d *Delivery) PickedUpAt() *time.Time { return d.pickedUpAt }

// DeliveredAt returns the drop-off timestamp, nil until delivered.
func (d *Delivery) DeliveredAt() *time.Time { return d.deliveredAt }

// UpdatedAt returns the last mutation timestamp.
func (d *Delivery) UpdatedAt() time.Time { return d.updatedAt }

// Reassign switches the delivery to a different driver, resetting the status
// to Assigned and stamping a fresh assignment timestamp. The caller is
// responsible for checking the order is not already delivered.
func (d *Delivery) Reassign(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	d.driverID = driverID
	d.status = StatusAssigned
	d.assignedAt = now
	d.updatedAt = now
	return nil
}

// UpdateStatus sets the delivery sub-status and stamps the matching
// timestamp: PickedUp stamps pickedUpAt, Delivered stamps deliveredAt.
// The order-level status machine is deliberately not consulted.
func (d *Delivery) UpdateStatus(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	switch status {
	case StatusPickedUp:
		pickedUpAt := now
		d.pickedUpAt = &pickedUpAt
	case StatusDelivered:
		deliveredAt := now
		d.deliveredAt = &deliveredAt
	}

	d.status = status
	d.updatedAt = now
	return nil
}

// UpdateLocation overwrites the current coordinates. Any valid coordinate
// pair is accepted.
func (d *Delivery) UpdateLocation(point kernel.GeoPoint, now time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}

	d.currentLocation = &point
	d.updatedAt = now
	return nil
}
