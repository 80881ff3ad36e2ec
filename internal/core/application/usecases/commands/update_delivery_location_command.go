package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrUpdateDeliveryLocationCommandIsNotConstructed = errors.New(
		"UpdateDeliveryLocationCommand must be created via NewUpdateDeliveryLocationCommand constructor",
	)
)

// UpdateDeliveryLocationCommand represents a driver location report for an
// active delivery. Coordinates overwrite the previous report; no movement
// plausibility check is applied.
type UpdateDeliveryLocationCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID
	location   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryLocationCommand creates a command to report driver
// coordinates. Latitude and longitude are validated as a GeoPoint.
func NewUpdateDeliveryLocationCommand(
	deliveryID, actorID kernel.UUID,
	latitude, longitude float64,
) (UpdateDeliveryLocationCommand, error) {
	command := UpdateDeliveryLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setActorID(actorID),
	); err != nil {
		return UpdateDeliveryLocationCommand{}, err
	}

	location, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return UpdateDeliveryLocationCommand{}, err
	}
	command.location = location

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDeliveryLocationCommandIsNotConstructed if validation fails.
func (c UpdateDeliveryLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryLocationCommandIsNotConstructed)
}

// DeliveryID returns the delivery being updated.
func (c UpdateDeliveryLocationCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ActorID returns the identity reporting the position.
func (c UpdateDeliveryLocationCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Location returns the reported coordinates.
func (c UpdateDeliveryLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateDeliveryLocationCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *UpdateDeliveryLocationCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
