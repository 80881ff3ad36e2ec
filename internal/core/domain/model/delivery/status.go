package delivery

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Status is the delivery sub-status track. It runs parallel to the order
// lifecycle but is not mechanically coupled to it: a delivery reaching
// Delivered does not drive the order status, and vice versa.
type Status string

const (
	// StatusAssigned is set when a driver is attached to the order.
	StatusAssigned Status = "assigned"

	// StatusPickedUp indicates the driver collected the order.
	StatusPickedUp Status = "picked_up"

	// StatusInTransit indicates the driver is en route.
	StatusInTransit Status = "in_transit"

	// StatusDelivered indicates the driver completed the drop-off.
	StatusDelivered Status = "delivered"

	// StatusFailed indicates the delivery attempt failed.
	StatusFailed Status = "failed"
)

// Validate checks the Status is one of the defined values.
func (s Status) Validate() error {
	switch s {
	case StatusAssigned, StatusPickedUp, StatusInTransit, StatusDelivered, StatusFailed:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("delivery status",
		fmt.Errorf("%q is not a valid delivery status", string(s)))
}

// String returns the wire value of the status.
func (s Status) String() string {
	return string(s)
}
