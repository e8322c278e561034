package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completedPaymentFor(t *testing.T, orderID kernel.UUID, amount int64) *payment.Payment {
	t.Helper()
	row, err := payment.NewPayment(
		kernel.NewUUID(), orderID, decimal.NewFromInt(amount),
		payment.Cash, payment.KindPayment, time.Now())
	require.NoError(t, err)
	require.NoError(t, row.MarkCompleted())
	return row
}

func TestRecordPaymentCommandHandler_Handle_CashSettledAtOnce(t *testing.T) {
	ctx := context.Background()
	o := assignableOrder(t)
	cmd, err := commands.NewRecordPaymentCommand(
		kernel.NewUUID(), o.ID(), decimal.NewFromInt(50),
		payment.Cash, payment.KindPayment, true)
	require.NoError(t, err)

	var recorded *payment.Payment
	orderRepo := new(MockOrderRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		paymentRepo.On("Add", mock.Anything, mock.AnythingOfType("*payment.Payment")).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*payment.Payment) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordPaymentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, recorded)
	assert.Equal(t, payment.StatusCompleted, recorded.Status())
	assert.True(t, strings.HasPrefix(recorded.Reference(), "TXN-"))

	orderRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecordPaymentCommandHandler_Handle_GatewayPaymentStaysPending(t *testing.T) {
	ctx := context.Background()
	o := assignableOrder(t)
	cmd, err := commands.NewRecordPaymentCommand(
		kernel.NewUUID(), o.ID(), decimal.NewFromInt(95),
		payment.PaystackAPI, payment.KindPayment, false)
	require.NoError(t, err)

	var recorded *payment.Payment
	orderRepo := new(MockOrderRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		paymentRepo.On("Add", mock.Anything, mock.AnythingOfType("*payment.Payment")).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*payment.Payment) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordPaymentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, recorded)
	assert.Equal(t, payment.StatusPending, recorded.Status())
	uow.AssertExpectations(t)
}

func TestRecordPaymentCommandHandler_Handle_RefundWithinNetPaid(t *testing.T) {
	ctx := context.Background()
	o := assignableOrder(t)
	rows := []*payment.Payment{completedPaymentFor(t, o.ID(), 50)}

	cmd, err := commands.NewRecordPaymentCommand(
		kernel.NewUUID(), o.ID(), decimal.NewFromInt(20),
		payment.Cash, payment.KindRefund, true)
	require.NoError(t, err)

	var recorded *payment.Payment
	orderRepo := new(MockOrderRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		paymentRepo.On("GetByOrderID", mock.Anything, o.ID()).Return(rows, nil).Once(),
		paymentRepo.On("Add", mock.Anything, mock.AnythingOfType("*payment.Payment")).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*payment.Payment) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordPaymentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, recorded)
	assert.Equal(t, payment.KindRefund, recorded.Kind())
	assert.True(t, strings.HasPrefix(recorded.Reference(), "RFD-"))
	uow.AssertExpectations(t)
}

func TestRecordPaymentCommandHandler_Handle_RefundOverdrawsLedger(t *testing.T) {
	ctx := context.Background()
	o := assignableOrder(t)
	rows := []*payment.Payment{completedPaymentFor(t, o.ID(), 50)}

	cmd, err := commands.NewRecordPaymentCommand(
		kernel.NewUUID(), o.ID(), decimal.NewFromInt(60),
		payment.Cash, payment.KindRefund, true)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		paymentRepo.On("GetByOrderID", mock.Anything, o.ID()).Return(rows, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordPaymentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvariantViolated)

	paymentRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
