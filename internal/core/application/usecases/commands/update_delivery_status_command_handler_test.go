package commands_test

import (
	"context"
	"testing"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/locker"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateDeliveryStatusCommandHandler_Handle_ByAssignedDriver(t *testing.T) {
	ctx := context.Background()
	driverID := kernel.NewUUID()
	record, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), driverID, testNow)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(record.ID(), driverID, delivery.StatusPickedUp)
	require.NoError(t, err)

	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, driverID).Return(driverUser(driverID), nil).Once()

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", mock.Anything, record.ID()).Return(record, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", mock.Anything, record.ID()).Return(record, nil).Once(),
		deliveryRepo.On("Update", mock.Anything, record).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory, locker.NewKeyedMutex(), users)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, delivery.StatusPickedUp, record.Status())
	require.NotNil(t, record.PickedUpAt())
	uow.AssertExpectations(t)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_ByAdmin(t *testing.T) {
	ctx := context.Background()
	adminID := kernel.NewUUID()
	record, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), testNow)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(record.ID(), adminID, delivery.StatusFailed)
	require.NoError(t, err)

	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, adminID).Return(adminUser(adminID), nil).Once()

	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("Get", mock.Anything, record.ID()).Return(record, nil).Twice()
	deliveryRepo.On("Update", mock.Anything, record).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory, locker.NewKeyedMutex(), users)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, delivery.StatusFailed, record.Status())
}

func TestUpdateDeliveryStatusCommandHandler_Handle_WrongDriver(t *testing.T) {
	ctx := context.Background()
	otherDriverID := kernel.NewUUID()
	record, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), testNow)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(record.ID(), otherDriverID, delivery.StatusPickedUp)
	require.NoError(t, err)

	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, otherDriverID).
		Return(ports.User{ID: otherDriverID, Role: ports.RoleDriver}, nil).Once()

	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("Get", mock.Anything, record.ID()).Return(record, nil).Twice()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Twice()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory, locker.NewKeyedMutex(), users)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.Equal(t, delivery.StatusAssigned, record.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

// A driver reassignment that commits between the order-id lookup and the
// lock must win: the handler re-reads the delivery under the lock, so the
// update lands on the current driver's record and the stale read is never
// written back.
func TestUpdateDeliveryStatusCommandHandler_Handle_ReassignmentDuringUpdate(t *testing.T) {
	ctx := context.Background()
	adminID := kernel.NewUUID()
	deliveryID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	previousDriverID := kernel.NewUUID()
	newDriverID := kernel.NewUUID()

	stale, err := delivery.NewDelivery(deliveryID, orderID, previousDriverID, testNow)
	require.NoError(t, err)
	reassigned, err := delivery.NewDelivery(deliveryID, orderID, newDriverID, testNow)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, adminID, delivery.StatusPickedUp)
	require.NoError(t, err)

	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, adminID).Return(adminUser(adminID), nil).Once()

	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("Get", mock.Anything, deliveryID).Return(stale, nil).Once()
	deliveryRepo.On("Get", mock.Anything, deliveryID).Return(reassigned, nil).Once()
	deliveryRepo.On("Update", mock.Anything, reassigned).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory, locker.NewKeyedMutex(), users)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, newDriverID, reassigned.DriverID())
	require.Equal(t, delivery.StatusPickedUp, reassigned.Status())
	require.Equal(t, delivery.StatusAssigned, stale.Status(), "the stale read must never be written back")
	deliveryRepo.AssertExpectations(t)
}

// The newly assigned driver is authorized against the re-read record, not
// the pre-lock snapshot that still names the previous driver.
func TestUpdateDeliveryStatusCommandHandler_Handle_NewDriverAfterReassignment(t *testing.T) {
	ctx := context.Background()
	deliveryID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	newDriverID := kernel.NewUUID()

	stale, err := delivery.NewDelivery(deliveryID, orderID, kernel.NewUUID(), testNow)
	require.NoError(t, err)
	reassigned, err := delivery.NewDelivery(deliveryID, orderID, newDriverID, testNow)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, newDriverID, delivery.StatusPickedUp)
	require.NoError(t, err)

	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, newDriverID).Return(driverUser(newDriverID), nil).Once()

	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("Get", mock.Anything, deliveryID).Return(stale, nil).Once()
	deliveryRepo.On("Get", mock.Anything, deliveryID).Return(reassigned, nil).Once()
	deliveryRepo.On("Update", mock.Anything, reassigned).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory, locker.NewKeyedMutex(), users)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, delivery.StatusPickedUp, reassigned.Status())
}
