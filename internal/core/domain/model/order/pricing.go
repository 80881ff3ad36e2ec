package order

import "pizzeria/internal/core/domain/model/kernel"

// Tax rate applied to the order subtotal, as an exact ratio (8%).
const (
	TaxRateNum int64 = 8
	TaxRateDen int64 = 100
)

// DeliveryFee is the flat delivery fee added to every order.
func DeliveryFee() kernel.Money {
	return kernel.MoneyFromCents(500)
}

// CalculateItemTotal computes the total for one order line:
//
//	round2(((base * sizeMultiplier) + crustSurcharge + sum(toppings)) * quantity)
//
// All arithmetic is decimal; rounding is applied exactly once, on the final
// line total.
func CalculateItemTotal(
	base kernel.Money,
	size Size,
	crust Crust,
	quantity int,
	toppingPrices []kernel.Money,
) kernel.Money {
	num, den := size.SizeMultiplierRatio()
	total := base.MulRatio(num, den).Add(crust.Surcharge())
	for _, p := range toppingPrices {
		total = total.Add(p)
	}
	return total.MulInt(quantity).Round2()
}

// Totals is the monetary breakdown of an order. Total is always derived from
// the other three fields, never set independently.
type Totals struct {
	Subtotal    kernel.Money
	Tax         kernel.Money
	DeliveryFee kernel.Money
	Total       kernel.Money
}

// CalculateTotals sums already-rounded item totals into the order breakdown.
// Item totals are not re-rounded; only the tax, itself a fresh product, is
// rounded once.
func CalculateTotals(items []*Item) Totals {
	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		subtotal = subtotal.Add(item.ItemTotal())
	}

	tax := subtotal.MulRatio(TaxRateNum, TaxRateDen).Round2()
	fee := DeliveryFee()

	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       subtotal.Add(tax).Add(fee),
	}
}
