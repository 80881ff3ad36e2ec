package delivery_test

import (
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDelivery(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create assigned delivery", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()
		driverID := kernel.NewUUID()

		d, err := delivery.NewDelivery(id, orderID, driverID, now)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.ID().IsEqual(id))
		assert.True(t, d.OrderID().IsEqual(orderID))
		assert.True(t, d.DriverID().IsEqual(driverID))
		assert.Equal(t, delivery.StatusAssigned, d.Status())
		assert.Equal(t, now, d.AssignedAt())
		assert.Nil(t, d.CurrentLocation())
		assert.Nil(t, d.PickedUpAt())
		assert.Nil(t, d.DeliveredAt())
	})

	t.Run("should fail with invalid driver ID", func(t *testing.T) {
		var invalidID kernel.UUID

		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), invalidID, now)

		require.Error(t, err)
		assert.Nil(t, d)
	})
}

func TestDelivery_Reassign(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should switch driver and reset to assigned", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)
		require.NoError(t, d.UpdateStatus(delivery.StatusInTransit, now.Add(time.Minute)))

		newDriver := kernel.NewUUID()
		reassignedAt := now.Add(5 * time.Minute)
		err = d.Reassign(newDriver, reassignedAt)

		require.NoError(t, err)
		assert.True(t, d.DriverID().IsEqual(newDriver))
		assert.Equal(t, delivery.StatusAssigned, d.Status())
		assert.Equal(t, reassignedAt, d.AssignedAt())
	})

	t.Run("should fail with invalid driver ID", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)
		original := d.DriverID()

		var invalidID kernel.UUID
		err = d.Reassign(invalidID, now)

		require.Error(t, err)
		assert.True(t, d.DriverID().IsEqual(original))
	})
}

func TestDelivery_UpdateStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should stamp pickup and delivery timestamps", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)

		pickedUpAt := now.Add(10 * time.Minute)
		require.NoError(t, d.UpdateStatus(delivery.StatusPickedUp, pickedUpAt))
		require.NotNil(t, d.PickedUpAt())
		assert.Equal(t, pickedUpAt, *d.PickedUpAt())
		assert.Nil(t, d.DeliveredAt())

		require.NoError(t, d.UpdateStatus(delivery.StatusInTransit, now.Add(11*time.Minute)))
		assert.Equal(t, delivery.StatusInTransit, d.Status())

		deliveredAt := now.Add(30 * time.Minute)
		require.NoError(t, d.UpdateStatus(delivery.StatusDelivered, deliveredAt))
		require.NotNil(t, d.DeliveredAt())
		assert.Equal(t, deliveredAt, *d.DeliveredAt())
	})

	t.Run("should allow marking a delivery failed", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)

		require.NoError(t, d.UpdateStatus(delivery.StatusFailed, now))
		assert.Equal(t, delivery.StatusFailed, d.Status())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)

		err = d.UpdateStatus(delivery.Status("lost"), now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, delivery.StatusAssigned, d.Status())
	})
}

func TestDelivery_UpdateLocation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should overwrite current coordinates", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)

		first, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)
		require.NoError(t, d.UpdateLocation(first, now))
		require.NotNil(t, d.CurrentLocation())
		assert.Equal(t, 40.7128, d.CurrentLocation().Latitude())

		second, err := kernel.NewGeoPoint(40.7200, -74.0100)
		require.NoError(t, err)
		require.NoError(t, d.UpdateLocation(second, now.Add(time.Minute)))
		assert.Equal(t, 40.7200, d.CurrentLocation().Latitude())
		assert.Equal(t, -74.0100, d.CurrentLocation().Longitude())
	})

	t.Run("should keep status untouched on location updates", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)
		require.NoError(t, d.UpdateStatus(delivery.StatusInTransit, now))

		point, err := kernel.NewGeoPoint(51.5074, -0.1278)
		require.NoError(t, err)
		require.NoError(t, d.UpdateLocation(point, now))

		assert.Equal(t, delivery.StatusInTransit, d.Status())
	})

	t.Run("should reject an unconstructed point", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)

		var invalid kernel.GeoPoint
		err = d.UpdateLocation(invalid, now)

		require.Error(t, err)
		assert.Nil(t, d.CurrentLocation())
	})
}

func TestRestoreDelivery(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should rebuild a delivery as stored", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(48.8566, 2.3522)
		require.NoError(t, err)
		pickedUpAt := now.Add(10 * time.Minute)

		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			delivery.StatusInTransit, &point, now, &pickedUpAt, nil, pickedUpAt)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, delivery.StatusInTransit, d.Status())
		require.NotNil(t, d.CurrentLocation())
		assert.Equal(t, 48.8566, d.CurrentLocation().Latitude())
	})

	t.Run("should fail with unknown status", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			delivery.Status("lost"), nil, now, nil, nil, now)

		require.Error(t, err)
		assert.Nil(t, d)
	})
}

func TestDelivery_Validate(t *testing.T) {
	t.Run("should reject deliveries not built by a constructor", func(t *testing.T) {
		var d delivery.Delivery

		err := d.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, delivery.ErrDeliveryIsNotConstructed)
	})
}
