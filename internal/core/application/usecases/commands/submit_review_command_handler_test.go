package commands_test

import (
	"context"
	"testing"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/review"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitReviewCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	aggregate := testOrderInStatus(t, customerID, order.Delivered)
	foodRating := 4
	cmd, err := commands.NewSubmitReviewCommand(
		aggregate.ID(), customerID, 5, &foodRating, nil, "great pizza")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	reviewRepo := new(MockReviewRepository)
	reviewRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).
		Return(nil, errs.NewObjectNotFoundError("order id", aggregate.ID())).Once()
	reviewRepo.On("Add", mock.Anything, mock.AnythingOfType("*review.Review")).Return(nil).Once()

	uow := new(MockReviewUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("ReviewRepository").Return(reviewRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitReviewCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	added := reviewRepo.Calls[1].Arguments.Get(1).(*review.Review)
	require.Equal(t, 5, added.Rating())
	require.True(t, added.PizzaID().IsEqual(aggregate.FirstPizzaID()))
	require.True(t, added.CustomerID().IsEqual(customerID))
	uow.AssertExpectations(t)
}

func TestSubmitReviewCommandHandler_Handle_NotDelivered(t *testing.T) {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	aggregate := testOrderInStatus(t, customerID, order.Baking)
	cmd, err := commands.NewSubmitReviewCommand(aggregate.ID(), customerID, 4, nil, nil, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	uow := new(MockReviewUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitReviewCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSubmitReviewCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := context.Background()
	aggregate := testOrderInStatus(t, kernel.NewUUID(), order.Delivered)
	stranger := kernel.NewUUID()
	cmd, err := commands.NewSubmitReviewCommand(aggregate.ID(), stranger, 4, nil, nil, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	uow := new(MockReviewUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitReviewCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestSubmitReviewCommandHandler_Handle_DuplicateReview(t *testing.T) {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	aggregate := testOrderInStatus(t, customerID, order.Delivered)
	existing, err := review.NewReview(
		kernel.NewUUID(), aggregate.ID(), customerID, aggregate.FirstPizzaID(),
		5, nil, nil, "", testNow)
	require.NoError(t, err)

	cmd, err := commands.NewSubmitReviewCommand(aggregate.ID(), customerID, 3, nil, nil, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	reviewRepo := new(MockReviewRepository)
	reviewRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).Return(existing, nil).Once()

	uow := new(MockReviewUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("ReviewRepository").Return(reviewRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitReviewCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	reviewRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestNewSubmitReviewCommand_InvalidRating(t *testing.T) {
	_, err := commands.NewSubmitReviewCommand(
		kernel.NewUUID(), kernel.NewUUID(), 0, nil, nil, "")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewSubmitReviewCommand(
		kernel.NewUUID(), kernel.NewUUID(), 6, nil, nil, "")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
