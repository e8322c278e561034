package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the payload for appending a ledger row to an
// order. Cash rows settle immediately unless settle_at_once is false.
type RecordPaymentRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	Kind         string          `json:"kind"`
	SettleAtOnce bool            `json:"settle_at_once"`
}

// SettlePaymentRequest resolves a pending ledger row.
type SettlePaymentRequest struct {
	Status string `json:"status"`
}

// RecordPayment handles POST /api/v1/orders/:orderID/payments.
func (s *Server) RecordPayment(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request RecordPaymentRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	method, err := payment.MethodFromString(request.Method)
	if err != nil {
		return respondError(ctx, err)
	}

	kind, err := payment.KindFromString(request.Kind)
	if err != nil {
		return respondError(ctx, err)
	}

	paymentID := kernel.NewUUID()
	cmd, err := commands.NewRecordPaymentCommand(
		paymentID, orderID, request.Amount, method, kind, request.SettleAtOnce)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: paymentID.String()})
}

// SettlePayment handles PUT /api/v1/payments/:paymentID/status.
func (s *Server) SettlePayment(ctx echo.Context) error {
	paymentID, err := pathUUID(ctx, "paymentID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request SettlePaymentRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := payment.StatusFromString(request.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSettlePaymentCommand(paymentID, target)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.settlePaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}
