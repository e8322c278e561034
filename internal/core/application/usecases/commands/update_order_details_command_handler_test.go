package commands_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// pricedDeliveryOrder carries items totalling 85 plus a 10 location fee.
func pricedDeliveryOrder(t *testing.T) *order.Order {
	t.Helper()
	o := assignableOrder(t)

	jollof, err := order.NewMenuItemSnapshot(
		kernel.NewUUID(), "Jollof Rice", "regular", decimal.NewFromInt(25))
	require.NoError(t, err)
	_, err = o.AddItem(kernel.NewUUID(), jollof, 2)
	require.NoError(t, err)

	chicken, err := order.NewMenuItemSnapshot(
		kernel.NewUUID(), "Grilled Chicken", "regular", decimal.NewFromInt(35))
	require.NoError(t, err)
	_, err = o.AddItem(kernel.NewUUID(), chicken, 1)
	require.NoError(t, err)

	return o
}

func TestUpdateOrderDetailsCommandHandler_Handle_SwitchToPickupDropsFee(t *testing.T) {
	ctx := context.Background()
	o := pricedDeliveryOrder(t)
	require.True(t, o.TotalPrice().Equal(decimal.NewFromInt(95)))

	pickup := order.Pickup
	cmd, err := commands.NewUpdateOrderDetailsCommand(o.ID(), &pickup, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderDetailsCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Pickup, o.DeliveryType())
	assert.True(t, o.DeliveryFee().IsZero())
	assert.True(t, o.TotalPrice().Equal(decimal.NewFromInt(85)),
		"pickup total is the item sum alone")

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderDetailsCommandHandler_Handle_SwitchBackToDeliveryRestoresFee(t *testing.T) {
	ctx := context.Background()
	o := pricedDeliveryOrder(t)
	require.NoError(t, o.ChangeDeliveryType(order.Pickup))
	require.True(t, o.TotalPrice().Equal(decimal.NewFromInt(85)))

	deliveryType := order.Delivery
	cmd, err := commands.NewUpdateOrderDetailsCommand(o.ID(), &deliveryType, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderDetailsCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Delivery, o.DeliveryType())
	assert.True(t, o.TotalPrice().Equal(decimal.NewFromInt(95)),
		"the retained location reference prices the fee again")

	uow.AssertExpectations(t)
}

func TestUpdateOrderDetailsCommandHandler_Handle_SetsCustomerPhone(t *testing.T) {
	ctx := context.Background()
	number, err := kernel.NewOrderNumber(time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), 2)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, order.Pickup, nil, time.Now())
	require.NoError(t, err)

	phone := "0209876543"
	cmd, err := commands.NewUpdateOrderDetailsCommand(o.ID(), nil, &phone)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderDetailsCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, o.CustomerPhone())
	assert.Equal(t, "0209876543", *o.CustomerPhone())

	uow.AssertExpectations(t)
}

func TestUpdateOrderDetailsCommandHandler_Handle_SwitchToDeliveryWithoutLocation(t *testing.T) {
	ctx := context.Background()
	number, err := kernel.NewOrderNumber(time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), 3)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, order.Pickup, nil, time.Now())
	require.NoError(t, err)

	deliveryType := order.Delivery
	phone := "0241234567"
	cmd, err := commands.NewUpdateOrderDetailsCommand(o.ID(), &deliveryType, &phone)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderDetailsCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsRequired,
		"a delivery order needs a location")

	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestNewUpdateOrderDetailsCommand_RequiresAField(t *testing.T) {
	_, err := commands.NewUpdateOrderDetailsCommand(kernel.NewUUID(), nil, nil)
	require.ErrorIs(t, err, commands.ErrNothingToUpdate)
}
