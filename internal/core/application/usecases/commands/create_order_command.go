package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// OrderItemInput carries one requested order line: the menu pizza, its base
// price snapshot, the chosen size and crust, quantity and topping snapshots.
type OrderItemInput struct {
	PizzaID   kernel.UUID
	BasePrice kernel.Money
	Size      order.Size
	Crust     order.Crust
	Quantity  int
	Toppings  []order.ToppingSelection
}

// CreateOrderCommand represents a customer checkout request. The order is
// created in Pending status with totals computed from the items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, items,
//	    "1 Main St", nil, "+15550100", "ring twice")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	customerID          kernel.UUID
	items               []OrderItemInput
	deliveryAddress     string
	deliveryLocation    *kernel.GeoPoint
	customerPhone       string
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identifiers, requires at least one item, a delivery address and
// a contact phone. Item contents are validated again by the order aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	items []OrderItemInput,
	deliveryAddress string,
	deliveryLocation *kernel.GeoPoint,
	customerPhone string,
	specialInstructions string,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setItems(items),
		command.setDeliveryAddress(deliveryAddress),
		command.setCustomerPhone(customerPhone),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	command.deliveryLocation = deliveryLocation
	command.specialInstructions = specialInstructions
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []OrderItemInput {
	return c.items
}

// DeliveryAddress returns the delivery destination address.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// DeliveryLocation returns the optional delivery coordinates.
func (c CreateOrderCommand) DeliveryLocation() *kernel.GeoPoint {
	return c.deliveryLocation
}

// CustomerPhone returns the contact phone.
func (c CreateOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// SpecialInstructions returns the optional special instructions.
func (c CreateOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}

	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CreateOrderCommand) setCustomerPhone(customerPhone string) error {
	if customerPhone == "" {
		return errs.NewValueIsRequiredError("customer phone")
	}

	c.customerPhone = customerPhone
	return nil
}
