// Package http exposes the system's operations over REST. It coordinates
// between echo handlers and application use cases; all business rules live
// in the command and query handlers.
package http

import (
	"net/http"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the REST surface for orders, deliveries and reviews.
type Server struct {
	// Command handlers
	createOrderHandler            commands.CreateOrderCommandHandler
	confirmPaymentHandler         commands.ConfirmPaymentCommandHandler
	updateOrderStatusHandler      commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler            commands.CancelOrderCommandHandler
	assignDriverHandler           commands.AssignDriverCommandHandler
	updateDeliveryStatusHandler   commands.UpdateDeliveryStatusCommandHandler
	updateDeliveryLocationHandler commands.UpdateDeliveryLocationCommandHandler
	submitReviewHandler           commands.SubmitReviewCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates an HTTP server over the command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	updateDeliveryLocationHandler commands.UpdateDeliveryLocationCommandHandler,
	submitReviewHandler commands.SubmitReviewCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		confirmPaymentHandler:         confirmPaymentHandler,
		updateOrderStatusHandler:      updateOrderStatusHandler,
		cancelOrderHandler:            cancelOrderHandler,
		assignDriverHandler:           assignDriverHandler,
		updateDeliveryStatusHandler:   updateDeliveryStatusHandler,
		updateDeliveryLocationHandler: updateDeliveryLocationHandler,
		submitReviewHandler:           submitReviewHandler,
		getOrderHandler:               getOrderHandler,
		getActiveOrdersHandler:        getActiveOrdersHandler,
	}
}

// RegisterRoutes attaches every endpoint under /api/v1 behind the auth
// middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, secret string) {
	api := e.Group("/api/v1", AuthMiddleware(secret))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/payment", s.ConfirmPayment)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/review", s.SubmitReview)

	api.PATCH("/admin/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/admin/orders/:id/driver", s.AssignDriver)
	api.GET("/admin/orders/active", s.GetActiveOrders)

	api.PATCH("/deliveries/:id/status", s.UpdateDeliveryStatus)
	api.POST("/deliveries/:id/location", s.UpdateDeliveryLocation)
}

// CreateOrder handles POST /api/v1/orders. The order starts out pending
// payment; it appears on broadcast topics only once payment confirms.
func (s *Server) CreateOrder(ctx echo.Context) error {
	identity, ok := identityFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewUnauthorizedError("create order"))
	}

	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	items, err := toItemInputs(request.Items)
	if err != nil {
		return respondError(ctx, err)
	}

	var location *kernel.GeoPoint
	if request.DeliveryLatitude != nil && request.DeliveryLongitude != nil {
		point, pointErr := kernel.NewGeoPoint(*request.DeliveryLatitude, *request.DeliveryLongitude)
		if pointErr != nil {
			return respondError(ctx, pointErr)
		}
		location = &point
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		identity.UserID,
		items,
		request.DeliveryAddress,
		location,
		request.CustomerPhone,
		request.SpecialInstructions,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	identity, ok := identityFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewUnauthorizedError("view order"))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("order id", err))
	}

	query, err := queries.NewGetOrderQuery(orderID, identity.UserID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(view))
}

// ConfirmPayment handles POST /api/v1/orders/:id/payment.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("order id", err))
	}

	var request ConfirmPaymentRequest
	if err = ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	amount, err := kernel.NewMoneyFromString(request.Amount)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("amount", err))
	}

	cmd, err := commands.NewConfirmPaymentCommand(
		orderID,
		order.PaymentMethod(request.Method),
		request.TransactionRef,
		amount,
		request.Details,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	identity, ok := identityFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewUnauthorizedError("cancel order"))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("order id", err))
	}

	var request CancelOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, identity.UserID, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	identity, ok := identityFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewUnauthorizedError("update order status"))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("order id", err))
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(
		orderID,
		identity.UserID,
		order.Status(request.Status),
		request.Reason,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDriver handles POST /api/v1/admin/orders/:id/driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	identity, ok := identityFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewUnauthorizedError("assign driver"))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("order id", err))
	}

	var request AssignDriverRequest
	if err = ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("driver id", err))
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID, identity.UserID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDeliveryStatus handles PATCH /api/v1/deliveries/:id/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	identity, ok := identityFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewUnauthorizedError("update delivery status"))
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("delivery id", err))
	}

	var request UpdateDeliveryStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		deliveryID,
		identity.UserID,
		delivery.Status(request.Status),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDeliveryLocation handles POST /api/v1/deliveries/:id/location.
func (s *Server) UpdateDeliveryLocation(ctx echo.Context) error {
	identity, ok := identityFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewUnauthorizedError("update delivery location"))
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("delivery id", err))
	}

	var request UpdateDeliveryLocationRequest
	if err = ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewUpdateDeliveryLocationCommand(
		deliveryID,
		identity.UserID,
		request.Latitude,
		request.Longitude,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateDeliveryLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitReview handles POST /api/v1/orders/:id/review.
func (s *Server) SubmitReview(ctx echo.Context) error {
	identity, ok := identityFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewUnauthorizedError("review order"))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("order id", err))
	}

	var request SubmitReviewRequest
	if err = ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewSubmitReviewCommand(
		orderID,
		identity.UserID,
		request.Rating,
		request.FoodRating,
		request.DeliveryRating,
		request.Comment,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.submitReviewHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetActiveOrders handles GET /api/v1/admin/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	identity, ok := identityFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewUnauthorizedError("list active orders"))
	}

	query, err := queries.NewGetActiveOrdersQuery(identity.UserID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toActiveOrderResponses(orders))
}
