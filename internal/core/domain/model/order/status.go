package order

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a fixed
// state machine: transitions not present in the table fail, they are never
// clamped or silently ignored.
//
// State transitions:
//
//	Pending ──> Placed ──> Accepted ──> Preparing ──> Baking ──> OutForDelivery ──> Delivered
//	   │           │
//	   └───────────┴──> Cancelled / Rejected
//
// Delivered, Cancelled and Rejected are terminal.
type Status string

const (
	// Pending is the initial status set at checkout, before payment.
	Pending Status = "pending"

	// Placed indicates payment was confirmed. Reachable from Pending only
	// through payment confirmation.
	Placed Status = "placed"

	// Accepted indicates the kitchen accepted the order.
	Accepted Status = "accepted"

	// Preparing indicates the order is being prepared.
	Preparing Status = "preparing"

	// Baking indicates the order is in the oven.
	Baking Status = "baking"

	// OutForDelivery indicates the order left the store.
	OutForDelivery Status = "out_for_delivery"

	// Delivered is the terminal success status.
	Delivered Status = "delivered"

	// Cancelled is a terminal status, customer-initiated, reachable only
	// from Pending or Placed.
	Cancelled Status = "cancelled"

	// Rejected is a terminal status, admin-initiated, reachable only from
	// Pending or Placed. A rejection always carries a reason.
	Rejected Status = "rejected"
)

// allowedTransitions is the complete transition table. Any pair not listed
// here is invalid.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Placed, Cancelled, Rejected},
		Placed:         {Accepted, Cancelled, Rejected},
		Accepted:       {Preparing},
		Preparing:      {Baking},
		Baking:         {OutForDelivery},
		OutForDelivery: {Delivered},
	}
}

// progressSteps is the ordered success sequence over which progress is defined.
func progressSteps() []Status {
	return []Status{Placed, Accepted, Preparing, Baking, OutForDelivery, Delivered}
}

func statusLabels() map[Status]string {
	return map[Status]string{
		Pending:        "Pending",
		Placed:         "Placed",
		Accepted:       "Accepted",
		Preparing:      "Preparing",
		Baking:         "Baking",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
		Rejected:       "Rejected",
	}
}

func statusColors() map[Status]string {
	return map[Status]string{
		Pending:        "gray",
		Placed:         "blue",
		Accepted:       "indigo",
		Preparing:      "yellow",
		Baking:         "orange",
		OutForDelivery: "purple",
		Delivered:      "green",
		Cancelled:      "red",
		Rejected:       "red",
	}
}

// Validate checks the Status is one of the defined values.
func (s Status) Validate() error {
	if _, ok := statusLabels()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the wire value of the status, e.g. "out_for_delivery".
func (s Status) String() string {
	return string(s)
}

// Label returns the human-readable name, e.g. "Out for Delivery".
// Every valid status has a label.
func (s Status) Label() string {
	if label, ok := statusLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// Color returns the display color associated with the status.
func (s Status) Color() string {
	if color, ok := statusColors()[s]; ok {
		return color
	}
	return "gray"
}

// CanTransitionTo reports whether the transition table allows s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if the table allows it, or an InvalidTransition
// error leaving the caller's status untouched.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(target) {
		return "", errs.NewInvalidTransitionError(string(s), string(target))
	}
	return target, nil
}

// IsTerminal reports whether no further transitions exist from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Rejected
}

// IsInProgress reports whether the order is between placement and delivery.
func (s Status) IsInProgress() bool {
	switch s {
	case Placed, Accepted, Preparing, Baking, OutForDelivery:
		return true
	default:
		return false
	}
}

// ProgressPercentage returns the position of the status within the success
// sequence Placed..Delivered as a truncated integer percentage. Statuses
// outside that sequence (Pending, Cancelled, Rejected) report 0.
func (s Status) ProgressPercentage() int {
	steps := progressSteps()
	for i, step := range steps {
		if step == s {
			return i * 100 / (len(steps) - 1)
		}
	}
	return 0
}
