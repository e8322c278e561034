package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/domain/services"
)

// RecordPaymentCommandHandler appends one row to an order's payment ledger.
// Refunds are validated against the net amount already settled, inside the
// same transaction that reads the ledger, so concurrent refunds cannot
// overdraw it.
type RecordPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	ledger     services.PaymentLedger
}

// NewRecordPaymentCommandHandler creates a handler for ledger appends.
func NewRecordPaymentCommandHandler(uowFactory PaymentUoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewPaymentLedger(),
	}
}

// Handle processes the payment recording command.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, command RecordPaymentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	paymentRepo := uow.PaymentRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if command.Kind() == payment.KindRefund {
		rows, rowsErr := paymentRepo.GetByOrderID(ctx, aggregate.ID())
		if rowsErr != nil {
			return rowsErr
		}

		if err = h.ledger.ValidateRefund(aggregate, rows, command.Amount()); err != nil {
			return err
		}
	}

	row, err := payment.NewPayment(
		command.PaymentID(), aggregate.ID(), command.Amount(),
		command.Method(), command.Kind(), time.Now())
	if err != nil {
		return err
	}

	if command.SettleAtOnce() {
		if err = row.MarkCompleted(); err != nil {
			return err
		}
	}

	if err = paymentRepo.Add(ctx, row); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
