package commands

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// AssignRiderCommandHandler hands a delivery order to a rider. All
// preconditions are checked inside one transaction, and the unique index on
// non-cancelled assignments per order backs up the check-then-act window:
// a lost race surfaces as a conflict error, never as a double assignment.
type AssignRiderCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewAssignRiderCommandHandler creates a handler for rider assignment.
func NewAssignRiderCommandHandler(uowFactory AssignmentUoWFactory) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
// Preconditions: the order is a delivery order in Accepted, Ready or Out for
// Delivery, not routed through an external channel, with no existing
// non-cancelled assignment; the rider is active, available and below
// capacity.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, command AssignRiderCommand) error {
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
	riderRepo := uow.RiderRepository()
	assignmentRepo := uow.AssignmentRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = h.checkOrderAssignable(aggregate); err != nil {
		return err
	}

	rider, err := riderRepo.Get(ctx, command.RiderID())
	if err != nil {
		return err
	}

	if !rider.CanAcceptOrders() {
		return errs.NewInvariantViolationErrorWithCause(
			"rider can accept orders",
			fmt.Errorf("rider %s is inactive, unavailable or at capacity", rider.ID()))
	}

	// re-check immediately before the insert; the unique index has the
	// final word under concurrency
	taken, err := assignmentRepo.ExistsNonCancelledForOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	if taken {
		return errs.NewConflictError("assignment", aggregate.ID().String())
	}

	assignment, err := delivery.NewAssignment(
		command.AssignmentID(), aggregate.ID(), rider.ID(), time.Now())
	if err != nil {
		return err
	}

	if err = assignmentRepo.Add(ctx, assignment); err != nil {
		return err
	}

	rider.IncrementCurrentOrders()
	if err = riderRepo.Update(ctx, rider); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h AssignRiderCommandHandler) checkOrderAssignable(aggregate *order.Order) error {
	if aggregate.DeliveryType() != order.Delivery {
		return errs.NewInvariantViolationError(
			"only delivery orders take rider assignments")
	}
	if aggregate.IsExternalChannel() {
		return errs.NewInvariantViolationError(
			"external channel orders are delivered by the partner")
	}

	switch aggregate.Status() {
	case order.Accepted, order.Ready, order.OutForDelivery:
		return nil
	case order.StatusUnknown, order.Pending, order.Fulfilled, order.Cancelled:
		fallthrough
	default:
		return errs.NewInvariantViolationErrorWithCause(
			"order status allows assignment",
			fmt.Errorf("order is %s", aggregate.Status()))
	}
}
