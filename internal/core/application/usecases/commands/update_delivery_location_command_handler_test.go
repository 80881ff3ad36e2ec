package commands_test

import (
	"context"
	"testing"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/events"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/locker"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateDeliveryLocationCommand_InvalidCoordinates(t *testing.T) {
	_, err := commands.NewUpdateDeliveryLocationCommand(
		kernel.NewUUID(), kernel.NewUUID(), 91.0, 0.0)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewUpdateDeliveryLocationCommand(
		kernel.NewUUID(), kernel.NewUUID(), 0.0, -181.0)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestUpdateDeliveryLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	aggregate := testOrderInStatus(t, customerID, order.OutForDelivery)
	record, err := delivery.NewDelivery(kernel.NewUUID(), aggregate.ID(), driverID, testNow)
	require.NoError(t, err)
	require.NoError(t, record.UpdateStatus(delivery.StatusInTransit, testNow))

	cmd, err := commands.NewUpdateDeliveryLocationCommand(record.ID(), driverID, 40.7128, -74.0060)
	require.NoError(t, err)

	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, driverID).Return(driverUser(driverID), nil).Twice()

	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("Get", mock.Anything, record.ID()).Return(record, nil).Twice()
	deliveryRepo.On("Update", mock.Anything, record).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Twice()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.DeliveryLocationUpdated")).Once()

	h := commands.NewUpdateDeliveryLocationCommandHandler(factory, locker.NewKeyedMutex(), publisher, users)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, record.CurrentLocation())
	require.Equal(t, 40.7128, record.CurrentLocation().Latitude())

	published := publisher.Calls[0].Arguments.Get(1).(events.DeliveryLocationUpdated)
	require.Equal(t, 40.7128, published.Latitude)
	require.Equal(t, -74.0060, published.Longitude)
	require.Equal(t, "in_transit", published.Status)
	require.Equal(t, "Dave", published.DriverName)
	require.Equal(t, customerID, published.CustomerID)
	uow.AssertExpectations(t)
}

func TestUpdateDeliveryLocationCommandHandler_Handle_WrongDriver(t *testing.T) {
	ctx := context.Background()
	otherDriverID := kernel.NewUUID()
	record, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), testNow)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateDeliveryLocationCommand(record.ID(), otherDriverID, 40.0, -74.0)
	require.NoError(t, err)

	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, otherDriverID).Return(driverUser(otherDriverID), nil).Once()

	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("Get", mock.Anything, record.ID()).Return(record, nil).Twice()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Twice()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	publisher := new(MockEventPublisher)

	h := commands.NewUpdateDeliveryLocationCommandHandler(factory, locker.NewKeyedMutex(), publisher, users)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.Nil(t, record.CurrentLocation())
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

// A location report racing a driver reassignment must not write the stale
// driver back: the delivery is re-read under the per-order lock, so the
// committed reassignment survives and the fresh record carries the update.
func TestUpdateDeliveryLocationCommandHandler_Handle_ReassignmentDuringUpdate(t *testing.T) {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	adminID := kernel.NewUUID()
	deliveryID := kernel.NewUUID()
	newDriverID := kernel.NewUUID()
	aggregate := testOrderInStatus(t, customerID, order.OutForDelivery)

	stale, err := delivery.NewDelivery(deliveryID, aggregate.ID(), kernel.NewUUID(), testNow)
	require.NoError(t, err)
	reassigned, err := delivery.NewDelivery(deliveryID, aggregate.ID(), newDriverID, testNow)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDeliveryLocationCommand(deliveryID, adminID, 40.7128, -74.0060)
	require.NoError(t, err)

	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, adminID).Return(adminUser(adminID), nil).Once()
	users.On("Get", mock.Anything, newDriverID).Return(driverUser(newDriverID), nil).Once()

	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("Get", mock.Anything, deliveryID).Return(stale, nil).Once()
	deliveryRepo.On("Get", mock.Anything, deliveryID).Return(reassigned, nil).Once()
	deliveryRepo.On("Update", mock.Anything, reassigned).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Twice()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.DeliveryLocationUpdated")).Once()

	h := commands.NewUpdateDeliveryLocationCommandHandler(factory, locker.NewKeyedMutex(), publisher, users)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, newDriverID, reassigned.DriverID())
	require.NotNil(t, reassigned.CurrentLocation())
	require.Nil(t, stale.CurrentLocation(), "the stale read must never be written back")

	published := publisher.Calls[0].Arguments.Get(1).(events.DeliveryLocationUpdated)
	require.Equal(t, customerID, published.CustomerID)
	deliveryRepo.AssertExpectations(t)
}
