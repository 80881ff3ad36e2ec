// Package broadcast implements the real-time fan-out layer: topics,
// subscription authorization, the event router and the websocket hub.
// Delivery is at-most-once; a slow or broken subscriber is dropped, never
// retried, and a missed event is never replayed.
package broadcast

import (
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// Topic identifies one broadcast channel. The wire form is
// "admin.dashboard", "orders.{orderID}", "users.{userID}" or
// "drivers.{driverID}".
type Topic string

// TopicAdminDashboard receives every order-level event in the system.
const TopicAdminDashboard Topic = "admin.dashboard"

// Topic class prefixes.
const (
	classAdmin   = "admin"
	classOrders  = "orders"
	classUsers   = "users"
	classDrivers = "drivers"
)

// OrderTopic returns the per-order tracking topic.
func OrderTopic(orderID kernel.UUID) Topic {
	return Topic(classOrders + "." + orderID.String())
}

// UserTopic returns a customer's private notification topic.
func UserTopic(userID kernel.UUID) Topic {
	return Topic(classUsers + "." + userID.String())
}

// DriverTopic returns a driver's dispatch topic.
func DriverTopic(driverID kernel.UUID) Topic {
	return Topic(classDrivers + "." + driverID.String())
}

// ParseTopic validates a client-supplied topic string. Class must be known
// and the suffix must be a well-formed id; "admin.dashboard" is the only
// admin topic.
func ParseTopic(raw string) (Topic, error) {
	class, suffix, found := strings.Cut(raw, ".")
	if !found || suffix == "" {
		return "", errs.NewValueIsInvalidError("topic")
	}

	switch class {
	case classAdmin:
		if suffix != "dashboard" {
			return "", errs.NewValueIsInvalidError("topic")
		}
	case classOrders, classUsers, classDrivers:
		if _, err := kernel.UUIDFromString(suffix); err != nil {
			return "", errs.NewValueIsInvalidErrorWithCause("topic", err)
		}
	default:
		return "", errs.NewValueIsInvalidError("topic")
	}

	return Topic(raw), nil
}

// Class returns the topic's class prefix.
func (t Topic) Class() string {
	class, _, _ := strings.Cut(string(t), ".")
	return class
}

// Suffix returns the id part of the topic, empty for malformed topics.
func (t Topic) Suffix() string {
	_, suffix, _ := strings.Cut(string(t), ".")
	return suffix
}

// String returns the wire form of the topic.
func (t Topic) String() string {
	return string(t)
}
