package commands_test

import (
	"context"
	"testing"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/events"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/locker"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	aggregate := testPendingOrder(t, customerID)
	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), customerID, "changed my mind")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.OrderStatusUpdated")).Once()

	h := commands.NewCancelOrderCommandHandler(factory, locker.NewKeyedMutex(), publisher)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Cancelled, aggregate.Status())
	require.Equal(t, "changed my mind", aggregate.RejectionReason())

	published := publisher.Calls[0].Arguments.Get(1).(events.OrderStatusUpdated)
	require.Equal(t, "cancelled", published.Status)
	require.Equal(t, "pending", published.PreviousStatus)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := context.Background()
	aggregate := testPendingOrder(t, kernel.NewUUID())
	stranger := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), stranger, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewCancelOrderCommandHandler(factory, locker.NewKeyedMutex(), publisher)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.Equal(t, order.Pending, aggregate.Status())
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_TooLate(t *testing.T) {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	aggregate := testOrderInStatus(t, customerID, order.Accepted)
	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), customerID, "too slow")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewCancelOrderCommandHandler(factory, locker.NewKeyedMutex(), publisher)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Equal(t, order.Accepted, aggregate.Status())
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
