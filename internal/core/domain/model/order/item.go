package order

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// Size selects the pizza size. The size scales the base price by a fixed
// multiplier (see SizeMultiplierRatio).
type Size string

const (
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeExtraLarge Size = "extra_large"
)

// SizeMultiplierRatio returns the price multiplier for the size as an exact
// ratio: small 8/10, medium 1, large 13/10, extra large 16/10.
func (s Size) SizeMultiplierRatio() (num, den int64) {
	switch s {
	case SizeSmall:
		return 8, 10
	case SizeLarge:
		return 13, 10
	case SizeExtraLarge:
		return 16, 10
	default:
		return 1, 1
	}
}

// Validate checks the Size is one of the defined values.
func (s Size) Validate() error {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("size",
		fmt.Errorf("%q is not a valid size", string(s)))
}

// Crust selects the pizza crust. Thick and stuffed crusts carry a fixed
// surcharge added after the size multiplier.
type Crust string

const (
	CrustThin    Crust = "thin"
	CrustRegular Crust = "regular"
	CrustThick   Crust = "thick"
	CrustStuffed Crust = "stuffed"
)

// Surcharge returns the fixed crust surcharge: thin/regular 0, thick 2.00,
// stuffed 3.50.
func (c Crust) Surcharge() kernel.Money {
	switch c {
	case CrustThick:
		return kernel.MoneyFromCents(200)
	case CrustStuffed:
		return kernel.MoneyFromCents(350)
	default:
		return kernel.ZeroMoney()
	}
}

// Validate checks the Crust is one of the defined values.
func (c Crust) Validate() error {
	switch c {
	case CrustThin, CrustRegular, CrustThick, CrustStuffed:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("crust",
		fmt.Errorf("%q is not a valid crust", string(c)))
}

// ToppingSelection is a price snapshot of a topping at order time. Later menu
// price changes never alter historical orders.
type ToppingSelection struct {
	ToppingID kernel.UUID
	Name      string
	Price     kernel.Money
}

// Validate checks the topping reference is complete.
func (t ToppingSelection) Validate() error {
	if err := t.ToppingID.Validate(); err != nil {
		return err
	}
	if t.Name == "" {
		return errs.NewValueIsRequiredError("topping name")
	}
	return nil
}

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single line of an order: one pizza in a given size and crust with
// selected toppings. All component prices are snapshots taken at order time
// and the item is immutable once the order is created.
type Item struct {
	id            kernel.UUID
	pizzaID       kernel.UUID
	quantity      int
	size          Size
	crust         Crust
	basePrice     kernel.Money
	sizePrice     kernel.Money
	crustPrice    kernel.Money
	toppingsPrice kernel.Money
	itemTotal     kernel.Money
	toppings      []ToppingSelection

	isConstructed bool
}

// NewItem creates an order line, computing all component price snapshots and
// the rounded item total from the base price, size, crust, quantity and
// topping selection.
func NewItem(
	id kernel.UUID,
	pizzaID kernel.UUID,
	basePrice kernel.Money,
	size Size,
	crust Crust,
	quantity int,
	toppings []ToppingSelection,
) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		pizzaID.Validate(),
		size.Validate(),
		crust.Validate(),
	); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	toppingsPrice := kernel.ZeroMoney()
	for _, t := range toppings {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		toppingsPrice = toppingsPrice.Add(t.Price)
	}

	num, den := size.SizeMultiplierRatio()
	sized := basePrice.MulRatio(num, den)

	item := &Item{
		id:            id,
		pizzaID:       pizzaID,
		quantity:      quantity,
		size:          size,
		crust:         crust,
		basePrice:     basePrice,
		sizePrice:     sized.Sub(basePrice),
		crustPrice:    crust.Surcharge(),
		toppingsPrice: toppingsPrice,
		itemTotal:     CalculateItemTotal(basePrice, size, crust, quantity, toppingPrices(toppings)),
		toppings:      append([]ToppingSelection(nil), toppings...),
		isConstructed: true,
	}
	return item, nil
}

// RestoreItem reconstructs an order line from persistence without recomputing
// prices: the stored snapshots are authoritative for historical orders.
func RestoreItem(
	id kernel.UUID,
	pizzaID kernel.UUID,
	quantity int,
	size Size,
	crust Crust,
	basePrice, sizePrice, crustPrice, toppingsPrice, itemTotal kernel.Money,
	toppings []ToppingSelection,
) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		pizzaID.Validate(),
		size.Validate(),
		crust.Validate(),
	); err != nil {
		return nil, err
	}

	return &Item{
		id:            id,
		pizzaID:       pizzaID,
		quantity:      quantity,
		size:          size,
		crust:         crust,
		basePrice:     basePrice,
		sizePrice:     sizePrice,
		crustPrice:    crustPrice,
		toppingsPrice: toppingsPrice,
		itemTotal:     itemTotal,
		toppings:      append([]ToppingSelection(nil), toppings...),
		isConstructed: true,
	}, nil
}

// Validate ensures the item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// PizzaID returns the referenced menu pizza.
func (i *Item) PizzaID() kernel.UUID { return i.pizzaID }

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int { return i.quantity }

// Size returns the selected size.
func (i *Item) Size() Size { return i.size }

// Crust returns the selected crust.
func (i *Item) Crust() Crust { return i.crust }

// BasePrice returns the pizza's base price snapshot.
func (i *Item) BasePrice() kernel.Money { return i.basePrice }

// SizePrice returns the price delta contributed by the size.
func (i *Item) SizePrice() kernel.Money { return i.sizePrice }

// CrustPrice returns the crust surcharge snapshot.
func (i *Item) CrustPrice() kernel.Money { return i.crustPrice }

// ToppingsPrice returns the summed topping price snapshot.
func (i *Item) ToppingsPrice() kernel.Money { return i.toppingsPrice }

// ItemTotal returns the rounded total for this line.
func (i *Item) ItemTotal() kernel.Money { return i.itemTotal }

// Toppings returns a copy of the topping snapshots.
func (i *Item) Toppings() []ToppingSelection {
	return append([]ToppingSelection(nil), i.toppings...)
}

func toppingPrices(toppings []ToppingSelection) []kernel.Money {
	prices := make([]kernel.Money, 0, len(toppings))
	for _, t := range toppings {
		prices = append(prices, t.Price)
	}
	return prices
}
