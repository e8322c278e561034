package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/delivery"
)

// AdvanceAssignmentCommandHandler walks a delivery assignment along its
// status chain. Terminal transitions recount the rider's workload from the
// assignment rows, and a completed delivery cascades the order to Fulfilled
// exactly once, all within one transaction.
type AdvanceAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewAdvanceAssignmentCommandHandler creates a handler for assignment
// progression.
func NewAdvanceAssignmentCommandHandler(uowFactory AssignmentUoWFactory) AdvanceAssignmentCommandHandler {
	return AdvanceAssignmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment progression command.
func (h AdvanceAssignmentCommandHandler) Handle(ctx context.Context, command AdvanceAssignmentCommand) error {
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

	assignmentRepo := uow.AssignmentRepository()

	assignment, err := assignmentRepo.Get(ctx, command.AssignmentID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	delivered := false

	switch command.Action() {
	case ActionAccept:
		err = assignment.Accept()
	case ActionPickUp:
		err = assignment.PickUp(now)
	case ActionStartTransit:
		err = assignment.StartTransit()
	case ActionDeliver:
		delivered, err = assignment.Deliver(now)
	case ActionReturn:
		err = assignment.Return()
	case ActionCancel:
		err = assignment.Cancel()
	case AssignmentActionUnknown:
		err = command.Action().Validate()
	}
	if err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, assignment); err != nil {
		return err
	}

	if delivered {
		if err = h.cascadeOrderFulfillment(ctx, uow, assignment); err != nil {
			return err
		}
	}

	if assignment.Status().IsTerminal() {
		if err = h.recountRiderStats(ctx, uow, assignment, now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// cascadeOrderFulfillment moves the delivered order to Fulfilled. The
// aggregate reports whether the status actually changed, so a replayed
// delivery never rewrites an already fulfilled order.
func (h AdvanceAssignmentCommandHandler) cascadeOrderFulfillment(
	ctx context.Context, uow AssignmentUoW, assignment *delivery.Assignment,
) error {
	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, assignment.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.MarkFulfilledByDelivery() {
		return nil
	}

	return orderRepo.Update(ctx, aggregate)
}

// recountRiderStats replaces the rider's denormalized counters with a fresh
// recount from the assignment rows.
func (h AdvanceAssignmentCommandHandler) recountRiderStats(
	ctx context.Context, uow AssignmentUoW, assignment *delivery.Assignment, now time.Time,
) error {
	riderRepo := uow.RiderRepository()

	rider, err := riderRepo.Get(ctx, assignment.RiderID())
	if err != nil {
		return err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats, err := uow.AssignmentRepository().StatsForRider(ctx, rider.ID(), dayStart)
	if err != nil {
		return err
	}

	rider.ApplyStats(stats)
	return riderRepo.Update(ctx, rider)
}
