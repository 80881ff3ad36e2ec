// Package events defines the domain events emitted after committed state
// changes. Events are immutable records: they are constructed from aggregate
// state only after the surrounding transaction commits, and a transition that
// failed to persist never produces one.
//
// JSON-tagged fields form the broadcast payload for the event. Fields tagged
// "-" are routing metadata consumed by the fan-out layer and never serialized,
// so a payload cannot leak another customer's identity.
package events

import (
	"time"

	"pizzeria/internal/core/domain/model/kernel"
)

// Event names as published on the wire.
const (
	NameOrderPlaced             = "order.placed"
	NameOrderStatusUpdated      = "order.status.updated"
	NameDeliveryAssigned        = "delivery.assigned"
	NameDeliveryLocationUpdated = "delivery.location.updated"
)

// Event is a domain event with a stable wire name.
type Event interface {
	Name() string
}

// OrderPlaced is emitted when payment confirmation moves an order to Placed.
type OrderPlaced struct {
	OrderID      kernel.UUID `json:"order_id"`
	OrderNumber  string      `json:"order_number"`
	CustomerName string      `json:"customer_name"`
	Total        string      `json:"total"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	ItemsCount   int         `json:"items_count"`

	CustomerID kernel.UUID `json:"-"`
}

func (OrderPlaced) Name() string { return NameOrderPlaced }

// OrderStatusUpdated is emitted on every successful order status transition,
// carrying the previous and new status and the recomputed progress and ETA.
type OrderStatusUpdated struct {
	OrderID               kernel.UUID `json:"order_id"`
	OrderNumber           string      `json:"order_number"`
	Status                string      `json:"status"`
	PreviousStatus        string      `json:"previous_status"`
	StatusLabel           string      `json:"status_label"`
	ProgressPercentage    int         `json:"progress_percentage"`
	EstimatedDeliveryTime *time.Time  `json:"estimated_delivery_time,omitempty"`
	UpdatedAt             time.Time   `json:"updated_at"`

	CustomerID kernel.UUID `json:"-"`
}

func (OrderStatusUpdated) Name() string { return NameOrderStatusUpdated }

// DeliveryAssigned is emitted when a driver is assigned or reassigned.
type DeliveryAssigned struct {
	DeliveryID  kernel.UUID `json:"delivery_id"`
	OrderID     kernel.UUID `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	DriverID    kernel.UUID `json:"driver_id"`
	DriverName  string      `json:"driver_name"`
	DriverPhone string      `json:"driver_phone"`
	Status      string      `json:"status"`
	AssignedAt  time.Time   `json:"assigned_at"`

	CustomerID kernel.UUID `json:"-"`
}

func (DeliveryAssigned) Name() string { return NameDeliveryAssigned }

// DeliveryLocationUpdated is emitted on every driver location report. It is
// deliberately lightweight and never reaches the admin broadcast topic or
// other drivers.
type DeliveryLocationUpdated struct {
	DeliveryID kernel.UUID `json:"delivery_id"`
	OrderID    kernel.UUID `json:"order_id"`
	Latitude   float64     `json:"latitude"`
	Longitude  float64     `json:"longitude"`
	Status     string      `json:"status"`
	DriverName string      `json:"driver_name,omitempty"`
	UpdatedAt  time.Time   `json:"updated_at"`

	CustomerID kernel.UUID `json:"-"`
}

func (DeliveryLocationUpdated) Name() string { return NameDeliveryLocationUpdated }
