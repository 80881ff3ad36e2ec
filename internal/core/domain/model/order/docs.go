// Package order provides domain entities and business logic for order management
// in the pizzeria system. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root owning items, payment, totals and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Item: An immutable order line with price snapshots taken at order time
//   - Payment: The one-to-one confirmed payment record
//   - Pricing: The fixed-point calculator for item and order totals
//
// Key business rules:
//   - Status follows the fixed workflow Pending -> Placed -> Accepted ->
//     Preparing -> Baking -> OutForDelivery -> Delivered, with Cancelled and
//     Rejected reachable only from Pending or Placed
//   - Placed is reachable only through payment confirmation, and the confirmed
//     amount must equal the order total
//   - Totals are always derived from the item lines, never set directly
//   - Item prices are snapshots: later menu price changes never alter
//     historical orders
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
