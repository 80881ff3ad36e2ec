// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Money amounts are stored as numeric columns; price snapshots on the item
// rows are authoritative for historical orders and never recomputed.
type OrderDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber           string          `gorm:"uniqueIndex"`
	CustomerID            uuid.UUID       `gorm:"type:uuid;index"`
	Status                string          `gorm:"index"`
	Subtotal              decimal.Decimal `gorm:"type:numeric(10,2)"`
	Tax                   decimal.Decimal `gorm:"type:numeric(10,2)"`
	DeliveryFee           decimal.Decimal `gorm:"type:numeric(10,2)"`
	Total                 decimal.Decimal `gorm:"type:numeric(10,2)"`
	DeliveryAddress       string
	DeliveryLatitude      *float64
	DeliveryLongitude     *float64
	CustomerPhone         string
	SpecialInstructions   string
	EstimatedDeliveryTime *time.Time
	AcceptedAt            *time.Time
	DeliveredAt           *time.Time
	RejectionReason       string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt  `gorm:"index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line with its price snapshot.
type ItemDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;index"`
	PizzaID       uuid.UUID       `gorm:"type:uuid"`
	Quantity      int
	Size          string
	Crust         string
	BasePrice     decimal.Decimal `gorm:"type:numeric(10,2)"`
	SizePrice     decimal.Decimal `gorm:"type:numeric(10,2)"`
	CrustPrice    decimal.Decimal `gorm:"type:numeric(10,2)"`
	ToppingsPrice decimal.Decimal `gorm:"type:numeric(10,2)"`
	ItemTotal     decimal.Decimal `gorm:"type:numeric(10,2)"`
	CreatedAt     time.Time
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// ToppingDTO represents one topping snapshot attached to an order line.
type ToppingDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderItemID uuid.UUID       `gorm:"type:uuid;index"`
	ToppingID   uuid.UUID       `gorm:"type:uuid"`
	Name        string
	Price       decimal.Decimal `gorm:"type:numeric(10,2)"`
}

// TableName overrides GORM's default naming to use "order_item_toppings".
func (ToppingDTO) TableName() string {
	return "order_item_toppings"
}

// PaymentDTO represents the payment record attached to an order.
type PaymentDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Method         string
	TransactionRef string
	Amount         decimal.Decimal `gorm:"type:numeric(10,2)"`
	Status         string
	Details        string
	PaidAt         time.Time
}

// TableName overrides GORM's default naming to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var latitude, longitude *float64
	if point := aggregate.DeliveryLocation(); point != nil {
		lat, lon := point.Latitude(), point.Longitude()
		latitude, longitude = &lat, &lon
	}

	totals := aggregate.Totals()

	return OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		OrderNumber:           aggregate.OrderNumber(),
		CustomerID:            aggregate.CustomerID().Bytes(),
		Status:                aggregate.Status().String(),
		Subtotal:              totals.Subtotal.Decimal(),
		Tax:                   totals.Tax.Decimal(),
		DeliveryFee:           totals.DeliveryFee.Decimal(),
		Total:                 totals.Total.Decimal(),
		DeliveryAddress:       aggregate.DeliveryAddress(),
		DeliveryLatitude:      latitude,
		DeliveryLongitude:     longitude,
		CustomerPhone:         aggregate.CustomerPhone(),
		SpecialInstructions:   aggregate.SpecialInstructions(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		AcceptedAt:            aggregate.AcceptedAt(),
		DeliveredAt:           aggregate.DeliveredAt(),
		RejectionReason:       aggregate.RejectionReason(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
	}
}

// itemFromDomain converts an order line to its database representation.
func itemFromDomain(orderID kernel.UUID, item *order.Item) ItemDTO {
	return ItemDTO{
		ID:            item.ID().Bytes(),
		OrderID:       orderID.Bytes(),
		PizzaID:       item.PizzaID().Bytes(),
		Quantity:      item.Quantity(),
		Size:          string(item.Size()),
		Crust:         string(item.Crust()),
		BasePrice:     item.BasePrice().Decimal(),
		SizePrice:     item.SizePrice().Decimal(),
		CrustPrice:    item.CrustPrice().Decimal(),
		ToppingsPrice: item.ToppingsPrice().Decimal(),
		ItemTotal:     item.ItemTotal().Decimal(),
	}
}

// toppingsFromDomain converts an item's topping snapshots to rows.
func toppingsFromDomain(itemID kernel.UUID, toppings []order.ToppingSelection) []ToppingDTO {
	dtos := make([]ToppingDTO, 0, len(toppings))
	for _, topping := range toppings {
		dtos = append(dtos, ToppingDTO{
			ID:          uuid.New(),
			OrderItemID: itemID.Bytes(),
			ToppingID:   topping.ToppingID.Bytes(),
			Name:        topping.Name,
			Price:       topping.Price.Decimal(),
		})
	}
	return dtos
}

// paymentFromDomain converts the payment record to its database representation.
func paymentFromDomain(orderID kernel.UUID, payment *order.Payment) PaymentDTO {
	return PaymentDTO{
		ID:             payment.ID().Bytes(),
		OrderID:        orderID.Bytes(),
		Method:         string(payment.Method()),
		TransactionRef: payment.TransactionRef(),
		Amount:         payment.Amount().Decimal(),
		Status:         payment.Status(),
		Details:        payment.Details(),
		PaidAt:         payment.PaidAt(),
	}
}

// toDomain converts database rows to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder; stored price
// snapshots are taken as is.
func toDomain(dto OrderDTO, itemDTOs []ItemDTO, toppingDTOs map[uuid.UUID][]ToppingDTO, paymentDTO *PaymentDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var deliveryLocation *kernel.GeoPoint
	if dto.DeliveryLatitude != nil && dto.DeliveryLongitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.DeliveryLatitude, *dto.DeliveryLongitude)
		if pointErr != nil {
			return nil, pointErr
		}
		deliveryLocation = &point
	}

	items := make([]*order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := itemToDomain(itemDTO, toppingDTOs[itemDTO.ID])
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var payment *order.Payment
	if paymentDTO != nil {
		payment, err = paymentToDomain(*paymentDTO)
		if err != nil {
			return nil, err
		}
	}

	totals, err := totalsToDomain(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		order.Status(dto.Status),
		totals,
		dto.DeliveryAddress,
		deliveryLocation,
		dto.CustomerPhone,
		dto.SpecialInstructions,
		dto.EstimatedDeliveryTime,
		dto.AcceptedAt,
		dto.DeliveredAt,
		dto.RejectionReason,
		items,
		payment,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func totalsToDomain(dto OrderDTO) (order.Totals, error) {
	subtotal, err := kernel.MoneyFromDecimal(dto.Subtotal)
	if err != nil {
		return order.Totals{}, err
	}
	tax, err := kernel.MoneyFromDecimal(dto.Tax)
	if err != nil {
		return order.Totals{}, err
	}
	fee, err := kernel.MoneyFromDecimal(dto.DeliveryFee)
	if err != nil {
		return order.Totals{}, err
	}
	total, err := kernel.MoneyFromDecimal(dto.Total)
	if err != nil {
		return order.Totals{}, err
	}

	return order.Totals{Subtotal: subtotal, Tax: tax, DeliveryFee: fee, Total: total}, nil
}

func itemToDomain(dto ItemDTO, toppingDTOs []ToppingDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	pizzaID, err := kernel.UUIDFromBytes(dto.PizzaID[:])
	if err != nil {
		return nil, err
	}

	toppings := make([]order.ToppingSelection, 0, len(toppingDTOs))
	for _, toppingDTO := range toppingDTOs {
		toppingID, toppingErr := kernel.UUIDFromBytes(toppingDTO.ToppingID[:])
		if toppingErr != nil {
			return nil, toppingErr
		}
		price, priceErr := kernel.MoneyFromDecimal(toppingDTO.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		toppings = append(toppings, order.ToppingSelection{
			ToppingID: toppingID,
			Name:      toppingDTO.Name,
			Price:     price,
		})
	}

	basePrice, err := kernel.MoneyFromDecimal(dto.BasePrice)
	if err != nil {
		return nil, err
	}
	sizePrice, err := kernel.MoneyFromDecimal(dto.SizePrice)
	if err != nil {
		return nil, err
	}
	crustPrice, err := kernel.MoneyFromDecimal(dto.CrustPrice)
	if err != nil {
		return nil, err
	}
	toppingsPrice, err := kernel.MoneyFromDecimal(dto.ToppingsPrice)
	if err != nil {
		return nil, err
	}
	itemTotal, err := kernel.MoneyFromDecimal(dto.ItemTotal)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		id,
		pizzaID,
		dto.Quantity,
		order.Size(dto.Size),
		order.Crust(dto.Crust),
		basePrice,
		sizePrice,
		crustPrice,
		toppingsPrice,
		itemTotal,
		toppings,
	)
}

func paymentToDomain(dto PaymentDTO) (*order.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.MoneyFromDecimal(dto.Amount)
	if err != nil {
		return nil, err
	}

	return order.RestorePayment(
		id,
		order.PaymentMethod(dto.Method),
		dto.TransactionRef,
		amount,
		dto.Status,
		dto.Details,
		dto.PaidAt,
	)
}
