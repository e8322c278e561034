package commands

import (
	"context"

	"orderflow/internal/core/domain/model/payment"
)

// SettlePaymentCommandHandler resolves a pending or processing ledger row.
// Terminal rows reject further transitions at the entity level, which makes
// replayed settlement callbacks harmless.
type SettlePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewSettlePaymentCommandHandler creates a handler for ledger settlement.
func NewSettlePaymentCommandHandler(uowFactory PaymentUoWFactory) SettlePaymentCommandHandler {
	return SettlePaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the settlement command.
func (h SettlePaymentCommandHandler) Handle(ctx context.Context, command SettlePaymentCommand) error {
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

	paymentRepo := uow.PaymentRepository()

	row, err := paymentRepo.Get(ctx, command.PaymentID())
	if err != nil {
		return err
	}

	switch command.Target() {
	case payment.StatusProcessing:
		err = row.MarkProcessing()
	case payment.StatusCompleted:
		err = row.MarkCompleted()
	case payment.StatusFailed:
		err = row.MarkFailed()
	case payment.StatusCancelled:
		err = row.MarkCancelled()
	case payment.StatusPending, payment.StatusUnknown:
		err = command.Target().Validate()
	}
	if err != nil {
		return err
	}

	if err = paymentRepo.Update(ctx, row); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
