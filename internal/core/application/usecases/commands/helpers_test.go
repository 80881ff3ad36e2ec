package commands_test

import (
	"testing"
	"time"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func testItems(t *testing.T) []*order.Item {
	t.Helper()
	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), testMoney(t, "10.00"),
		order.SizeMedium, order.CrustRegular, 1, nil)
	require.NoError(t, err)
	return []*order.Item{item}
}

func testItemInputs(t *testing.T) []commands.OrderItemInput {
	t.Helper()
	return []commands.OrderItemInput{{
		PizzaID:   kernel.NewUUID(),
		BasePrice: testMoney(t, "10.00"),
		Size:      order.SizeMedium,
		Crust:     order.CrustRegular,
		Quantity:  1,
	}}
}

func testPendingOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), customerID, testItems(t),
		"1 Main St", nil, "+15550100", "", testNow)
	require.NoError(t, err)
	return o
}

// testOrderInStatus walks a pending order along the success path until the
// target status is reached.
func testOrderInStatus(t *testing.T, customerID kernel.UUID, target order.Status) *order.Order {
	t.Helper()
	o := testPendingOrder(t, customerID)
	if target == order.Pending {
		return o
	}

	require.NoError(t, o.ConfirmPayment(
		kernel.NewUUID(), order.PaymentMethodCard, "txn", o.Totals().Total, "", testNow))
	if target == order.Placed {
		return o
	}

	for _, step := range []order.Status{
		order.Accepted, order.Preparing, order.Baking, order.OutForDelivery, order.Delivered,
	} {
		require.NoError(t, o.UpdateStatus(step, "", testNow))
		if step == target {
			return o
		}
	}

	t.Fatalf("cannot reach status %s on the success path", target)
	return nil
}
