// Package http is the inbound HTTP adapter. Handlers stay thin: they bind
// the payload, build a command or query, and translate errors to status
// codes. All business rules live behind the command and query handlers.
package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	applyItemChangeHandler   commands.ApplyItemChangeCommandHandler
	changeStatusHandler      commands.ChangeOrderStatusCommandHandler
	changeLocationHandler    commands.ChangeOrderLocationCommandHandler
	updateDetailsHandler     commands.UpdateOrderDetailsCommandHandler
	deleteLocationHandler    commands.DeleteLocationCommandHandler
	recordPaymentHandler     commands.RecordPaymentCommandHandler
	settlePaymentHandler     commands.SettlePaymentCommandHandler
	assignRiderHandler       commands.AssignRiderCommandHandler
	advanceAssignmentHandler commands.AdvanceAssignmentCommandHandler

	// Query handlers
	getOrderProjectionHandler   queries.GetOrderProjectionQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
	getAvailableRidersHandler   queries.GetAvailableRidersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	applyItemChangeHandler commands.ApplyItemChangeCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	changeLocationHandler commands.ChangeOrderLocationCommandHandler,
	updateDetailsHandler commands.UpdateOrderDetailsCommandHandler,
	deleteLocationHandler commands.DeleteLocationCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	settlePaymentHandler commands.SettlePaymentCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	advanceAssignmentHandler commands.AdvanceAssignmentCommandHandler,
	getOrderProjectionHandler queries.GetOrderProjectionQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	getAvailableRidersHandler queries.GetAvailableRidersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		applyItemChangeHandler:      applyItemChangeHandler,
		changeStatusHandler:         changeStatusHandler,
		changeLocationHandler:       changeLocationHandler,
		updateDetailsHandler:        updateDetailsHandler,
		deleteLocationHandler:       deleteLocationHandler,
		recordPaymentHandler:        recordPaymentHandler,
		settlePaymentHandler:        settlePaymentHandler,
		assignRiderHandler:          assignRiderHandler,
		advanceAssignmentHandler:    advanceAssignmentHandler,
		getOrderProjectionHandler:   getOrderProjectionHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
		getAvailableRidersHandler:   getAvailableRidersHandler,
	}
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/uncompleted", s.GetUncompletedOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/items", s.AddOrderItem)
	api.PUT("/orders/:orderID/items/:itemID", s.ChangeOrderItemQuantity)
	api.DELETE("/orders/:orderID/items/:itemID", s.RemoveOrderItem)
	api.PUT("/orders/:orderID/status", s.ChangeOrderStatus)
	api.PUT("/orders/:orderID/location", s.ChangeOrderLocation)
	api.PATCH("/orders/:orderID", s.UpdateOrder)
	api.POST("/orders/:orderID/payments", s.RecordPayment)
	api.PUT("/payments/:paymentID/status", s.SettlePayment)
	api.GET("/riders/available", s.GetAvailableRiders)
	api.POST("/assignments", s.AssignRider)
	api.POST("/assignments/:assignmentID/advance", s.AdvanceAssignment)
	api.DELETE("/locations/:locationID", s.DeleteLocation)
}

// ErrorResponse is the JSON body returned on any failure.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IDResponse returns the server-generated identifier of a created resource.
type IDResponse struct {
	ID string `json:"id"`
}

// respondError maps application errors to HTTP status codes. Anything not
// classified by an errs sentinel is a 500.
func respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrInvariantViolated):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrTransientStorage):
		code = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

// badRequest is for errors raised before a command exists: malformed JSON,
// unparseable identifiers, unknown enum values.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// pathUUID parses a path parameter as a UUID.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}
